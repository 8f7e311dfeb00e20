package models

import "errors"

var (
	// ErrInvalidConfiguration marks market or simulation parameters outside
	// their domain. Callers wrap it with the offending field.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidLeg marks an option leg that cannot be priced.
	ErrInvalidLeg = errors.New("invalid option leg")
)

package montecarlo

import "sort"

// breakevenPoints estimates the underlying prices at which the aggregate
// strategy payoff crosses zero, from the simulated sample alone. The sample
// is scanned in price order for payoff sign changes, each crossing is
// linearly interpolated, and crossings within bandwidth dollars of each other
// collapse into their average. Staying sample-based keeps the engine agnostic
// to leg count and payoff shape; precision scales with the sample size.
//
// The returned prices are ascending. Strategies that are profitable (or
// unprofitable) everywhere in the sampled range return an empty list.
func breakevenPoints(prices, payoffs []float64, bandwidth float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	order := make([]int, len(prices))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return prices[order[a]] < prices[order[b]] })

	var crossings []float64
	for k, idx := range order {
		p1 := payoffs[idx]
		if p1 == 0 {
			// An exact-zero sample is a crossing at its own price; the
			// strict sign checks below would otherwise skip it.
			crossings = append(crossings, prices[idx])
			continue
		}
		if k == 0 {
			continue
		}
		p0 := payoffs[order[k-1]]
		if (p0 < 0 && p1 > 0) || (p0 > 0 && p1 < 0) {
			x0 := prices[order[k-1]]
			x1 := prices[idx]
			crossings = append(crossings, x0+(x1-x0)*(-p0)/(p1-p0))
		}
	}
	if len(crossings) == 0 {
		return []float64{}
	}

	// Crossings arrive ascending; merge runs of neighbors closer than the
	// bandwidth into their cluster average.
	clustered := make([]float64, 0, len(crossings))
	clusterSum := crossings[0]
	clusterCount := 1.0
	last := crossings[0]
	for _, c := range crossings[1:] {
		if c-last <= bandwidth {
			clusterSum += c
			clusterCount++
		} else {
			clustered = append(clustered, clusterSum/clusterCount)
			clusterSum = c
			clusterCount = 1
		}
		last = c
	}
	clustered = append(clustered, clusterSum/clusterCount)

	return clustered
}

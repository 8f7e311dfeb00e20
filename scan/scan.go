// Package scan values batches of strategy scenarios on a worker pool and
// ranks the results by expected value.
package scan

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/dhmueller/mcval/models"
	"github.com/dhmueller/mcval/montecarlo"
	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
)

// Job is one valuation request: a market scenario plus the strategy legs.
type Job struct {
	Name   string
	Config montecarlo.Config
	Legs   []models.OptionLeg
}

// Result pairs a job with its full valuation report. Err is set when the
// job's configuration or legs were rejected; a failed job never aborts the
// batch.
type Result struct {
	Name   string                  `json:"name"`
	Report *models.ValuationResult `json:"report,omitempty"`
	Err    error                   `json:"-"`
}

// Run values every job, one Simulator per job since engine instances are not
// safe for concurrent calls. Results come back sorted by expected value,
// best first, with failed jobs last. Progress rendering is optional so tests
// and library callers can run quietly.
func Run(jobs []Job, progress bool) []Result {
	if len(jobs) == 0 {
		return nil
	}

	var p *mpb.Progress
	var bar *mpb.Bar
	if progress {
		p = mpb.New(mpb.WithWidth(64))
		bar = p.AddBar(int64(len(jobs)),
			mpb.PrependDecorators(
				decor.Name("Valuing"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	results := make([]Result, len(jobs))
	jobChan := make(chan int, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < workerCount(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobChan {
				results[i] = runJob(jobs[i])
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)
	wg.Wait()
	if p != nil {
		p.Wait()
	}

	sort.SliceStable(results, func(a, b int) bool {
		if (results[a].Err == nil) != (results[b].Err == nil) {
			return results[a].Err == nil
		}
		if results[a].Err != nil {
			return false
		}
		return results[a].Report.ExpectedValue > results[b].Report.ExpectedValue
	})

	return results
}

func runJob(j Job) Result {
	sim, err := montecarlo.NewSimulator(j.Config)
	if err != nil {
		return Result{Name: j.Name, Err: fmt.Errorf("%s: %w", j.Name, err)}
	}
	report, err := sim.Analyze(j.Legs)
	if err != nil {
		return Result{Name: j.Name, Err: fmt.Errorf("%s: %w", j.Name, err)}
	}
	return Result{Name: j.Name, Report: report}
}

func workerCount() int {
	if counts, err := cpu.Counts(true); err == nil && counts > 0 {
		return counts
	}
	return runtime.NumCPU()
}

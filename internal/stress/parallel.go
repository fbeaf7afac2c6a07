package stress

import (
	"runtime"
	"sync"
)

// trialResult pairs a trial's sequence number with its report so results can
// be reassembled in order regardless of which worker finished first.
type trialResult struct {
	seq    int
	report Report
}

// Run executes cfg.Trials independent trials using a pool of workers and
// returns their reports ordered by trial number. Trial i uses seed
// cfg.Seed+i. Each worker owns its own map and reference array; the map
// itself is never shared across goroutines.
func (r *Runner) Run() []Report {
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > r.cfg.Trials {
		workers = r.cfg.Trials
	}

	items := make(chan int)
	results := make(chan trialResult, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for seq := range items {
				results <- trialResult{seq: seq, report: r.Trial(r.cfg.Seed + int64(seq))}
			}
		}()
	}

	go func() {
		for i := 0; i < r.cfg.Trials; i++ {
			items <- i
		}
		close(items)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	reports := make([]Report, r.cfg.Trials)
	for res := range results {
		reports[res.seq] = res.report
	}
	return reports
}

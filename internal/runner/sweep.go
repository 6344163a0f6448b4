package runner

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"sandfall/internal/sims/sand"
)

// Builder creates a populated world for one seed.
type Builder func(seed int64) (*sand.World, error)

// SweepOptions controls a sweep.
type SweepOptions struct {
	Seeds   []int64
	Ticks   int
	Workers int
}

// SweepResult is the outcome of one seed.
type SweepResult struct {
	Seed    int64
	Initial sand.Census
	Final   sand.Census
	Elapsed time.Duration
	Err     error
}

// Sweep runs one world per seed for opts.Ticks ticks on a pool of workers and
// returns the results ordered by seed. Seeds not started before ctx ends are
// reported with the context's error.
func Sweep(ctx context.Context, build Builder, opts SweepOptions) []SweepResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan int64)
	results := make(chan SweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runSeed(ctx, build, seed, opts.Ticks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, seed := range opts.Seeds {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := map[int64]bool{}
	all := make([]SweepResult, 0, len(opts.Seeds))
	for res := range results {
		done[res.Seed] = true
		all = append(all, res)
	}
	for _, seed := range opts.Seeds {
		if !done[seed] {
			all = append(all, SweepResult{Seed: seed, Err: ctx.Err()})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })
	return all
}

func runSeed(ctx context.Context, build Builder, seed int64, ticks int) SweepResult {
	res := SweepResult{Seed: seed}
	w, err := build(seed)
	if err != nil {
		res.Err = err
		return res
	}
	res.Initial = w.Census()
	start := time.Now()
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		w.Step()
	}
	res.Elapsed = time.Since(start)
	res.Final = w.Census()
	return res
}

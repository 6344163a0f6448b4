// Package runner drives sand worlds without a display: a paced or unpaced
// tick loop and a parallel sweep over seeds.
package runner

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"sandfall/internal/core"
	"sandfall/internal/sims/sand"
)

// Observer is notified after every tick. *telemetry.Metrics satisfies it.
type Observer interface {
	ObserveTick(rep sand.Report, census sand.Census, elapsed time.Duration)
}

// Options controls a run.
type Options struct {
	// Ticks is the number of ticks to run; zero runs until the context ends.
	Ticks int
	// TPS paces the loop; zero runs as fast as possible.
	TPS int
	// LogEvery logs a census line every n ticks; zero disables it.
	LogEvery int
}

// Result summarizes a finished run.
type Result struct {
	Ticks   int
	Census  sand.Census
	Elapsed time.Duration
}

// Run advances w until opts.Ticks ticks have run or ctx is done. Cancellation
// is checked between ticks only. When opts.Ticks is positive, stopping early
// returns the context's error alongside the partial result.
func Run(ctx context.Context, w *sand.World, opts Options, logger *log.Logger, observers ...Observer) (Result, error) {
	var pacer *core.FixedStep
	if opts.TPS > 0 {
		pacer = core.NewFixedStep(opts.TPS)
	}
	start := time.Now()
	res := Result{}
	for opts.Ticks <= 0 || res.Ticks < opts.Ticks {
		if err := ctx.Err(); err != nil {
			return finish(res, w, start), stopErr(opts, err)
		}
		if pacer != nil {
			if err := wait(ctx, pacer); err != nil {
				return finish(res, w, start), stopErr(opts, err)
			}
		}

		tickStart := time.Now()
		w.Step()
		elapsed := time.Since(tickStart)
		res.Ticks++

		if len(observers) > 0 {
			census := w.Census()
			for _, o := range observers {
				o.ObserveTick(w.LastReport(), census, elapsed)
			}
		}
		if opts.LogEvery > 0 && res.Ticks%opts.LogEvery == 0 {
			logCensus(logger, res.Ticks, w.Census())
		}
	}
	return finish(res, w, start), nil
}

func finish(res Result, w *sand.World, start time.Time) Result {
	res.Census = w.Census()
	res.Elapsed = time.Since(start)
	return res
}

func stopErr(opts Options, err error) error {
	if opts.Ticks <= 0 {
		return nil
	}
	return err
}

// wait blocks until the pacer allows the next tick or ctx ends.
func wait(ctx context.Context, pacer *core.FixedStep) error {
	for !pacer.ShouldStep() {
		timer := time.NewTimer(pacer.Until())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

func logCensus(logger *log.Logger, tick int, census sand.Census) {
	kv := []any{"tick", tick, "particles", census.Total()}
	for _, k := range sand.Kinds() {
		if k != sand.KindEmpty && census[k] > 0 {
			kv = append(kv, k.String(), census[k])
		}
	}
	logger.Info("census", kv...)
}

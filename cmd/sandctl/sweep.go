package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sandfall/internal/runner"
	"sandfall/internal/sims/sand"
)

var (
	flagSweepSeeds   int
	flagSweepTicks   int
	flagSweepWorkers int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a world across many seeds",
	Long: `Run the selected world once per seed, starting at --seed, on a pool of
workers and report the surviving population per kind.

Examples:
  sandctl sweep --scenario campfire --seeds 16 --ticks 500
  sandctl sweep --scenario oilspill --seed 100 --seeds 8 --workers 2`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&flagSweepSeeds, "seeds", 8, "Number of consecutive seeds")
	sweepCmd.Flags().IntVar(&flagSweepTicks, "ticks", 300, "Ticks per seed")
	sweepCmd.Flags().IntVar(&flagSweepWorkers, "workers", 0, "Parallel workers (0 = NumCPU)")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	if flagSweepSeeds <= 0 {
		return fmt.Errorf("--seeds must be positive, got %d", flagSweepSeeds)
	}
	seeds := make([]int64, flagSweepSeeds)
	for i := range seeds {
		seeds[i] = flagSeed + int64(i)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	build := func(seed int64) (*sand.World, error) {
		w, _, err := buildWorld(cmd, map[string]string{"seed": strconv.FormatInt(seed, 10)})
		return w, err
	}
	logger.Info("sweep", "scenario", flagScenario, "seeds", len(seeds), "ticks", flagSweepTicks)
	results := runner.Sweep(ctx, build, runner.SweepOptions{Seeds: seeds, Ticks: flagSweepTicks, Workers: flagSweepWorkers})

	kinds := sand.Kinds()[1:]
	fmt.Printf("  %-8s", "seed")
	for _, k := range kinds {
		fmt.Printf("  %6s", k)
	}
	fmt.Printf("  %10s\n", "elapsed")

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			logger.Error("seed failed", "seed", res.Seed, "err", res.Err)
			continue
		}
		fmt.Printf("  %-8d", res.Seed)
		for _, k := range kinds {
			fmt.Printf("  %6d", res.Final[k])
		}
		fmt.Printf("  %10s\n", res.Elapsed.Round(time.Microsecond))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d seeds failed", failed, len(results))
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"sandfall/internal/runner"
	"sandfall/internal/sims/sand"
	"sandfall/internal/telemetry"
)

var (
	flagTicks       int
	flagTPS         int
	flagLogEvery    int
	flagMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance a world without a window",
	Long: `Advance a world headless and print the final census.

With --ticks 0 the run lasts until interrupted. --tps paces the loop; 0 runs
as fast as possible. --metrics-addr serves Prometheus metrics for the run.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Ticks to run (0 = until interrupted)")
	runCmd.Flags().IntVar(&flagTPS, "tps", 0, "Ticks per second (0 = unpaced)")
	runCmd.Flags().IntVar(&flagLogEvery, "log-every", 0, "Log the census every N ticks (0 = never)")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve /metrics on this address (host:port)")
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	w, _, err := buildWorld(cmd, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var observers []runner.Observer
	serveErr := make(chan error, 1)
	if flagMetricsAddr != "" {
		m := telemetry.New()
		m.ObserveCensus(w.Census())
		observers = append(observers, m)

		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() { serveErr <- telemetry.Serve(srvCtx, flagMetricsAddr, m.Handler(), logger) }()
	}

	size := w.Size()
	logger.Info("run", "scenario", flagScenario, "w", size.W, "h", size.H, "seed", w.Seed(), "ticks", flagTicks)
	res, err := runner.Run(ctx, w, runner.Options{Ticks: flagTicks, TPS: flagTPS, LogEvery: flagLogEvery}, logger, observers...)
	if err != nil {
		return err
	}
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
	default:
	}

	logger.Info("done", "ticks", res.Ticks, "elapsed", res.Elapsed)
	printCensus(res.Census)
	return nil
}

func printCensus(c sand.Census) {
	fmt.Printf("  %-6s  %8s\n", "kind", "count")
	fmt.Printf("  %-6s  %8s\n", "----", "-----")
	for _, k := range sand.Kinds() {
		if k == sand.KindEmpty {
			continue
		}
		fmt.Printf("  %-6s  %8d\n", k, c[k])
	}
	fmt.Printf("  %-6s  %8d\n", "total", c.Total())
}

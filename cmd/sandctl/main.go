// sandctl drives sand worlds from the command line.
//
// Usage:
//
//	sandctl run        - Advance a world headless, logging census and serving metrics
//	sandctl tui        - Play in the terminal
//	sandctl sweep      - Run a scenario across many seeds
//	sandctl params     - Print the parameter snapshot
//	sandctl scenarios  - List built-in scenarios
//
// Global flags:
//
//	--scenario <name|file>  - Built-in scenario or YAML file
//	--seed <value>          - World seed
//	--set key=value         - Parameter override (repeatable)
//	--log-level <level>     - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"sandfall/internal/app"
)

var (
	flagScenario string
	flagSeed     int64
	flagWidth    int
	flagHeight   int
	flagSets     app.Overrides
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sandctl",
	Short: "Falling-sand worlds without a window",
	Long: `sandctl runs falling-sand worlds headless or in the terminal.

Examples:
  sandctl scenarios
  sandctl run --scenario campfire --ticks 600 --log-every 100
  sandctl run --scenario basin --tps 60 --metrics-addr :9102
  sandctl tui --scenario oilspill
  sandctl sweep --scenario campfire --seeds 16 --ticks 500
  sandctl params --set smoke_chance=0.05`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagScenario, "scenario", "", "Built-in scenario name or YAML file")
	pf.Int64Var(&flagSeed, "seed", 42, "World seed")
	pf.IntVar(&flagWidth, "width", 256, "Grid width when no scenario sets it")
	pf.IntVar(&flagHeight, "height", 192, "Grid height when no scenario sets it")
	pf.Var(&flagSets, "set", "Parameter override key=value (repeatable)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sandctl",
		Level:           level,
	})
	return logger, nil
}

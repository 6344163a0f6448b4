package main

import (
	"github.com/spf13/cobra"

	"sandfall/internal/app"
	"sandfall/internal/tui"
)

var flagTUITPS int

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Play in the terminal",
	Long: `Open the world in the terminal. Each character cell shows two grid rows.

Keys: 1-7 select a kind, +/- brush size, space pause, n single step, c clear,
r restart, s reseed, tab parameter panel, q quit. Left mouse paints, right
mouse erases.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&flagTUITPS, "tps", 30, "Ticks per second")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	w, setup, err := buildWorld(cmd, nil)
	if err != nil {
		return err
	}
	return tui.Run(app.NewSession(w, w.Config().Seed, setup), flagTUITPS)
}

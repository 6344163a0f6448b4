//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"sandfall/internal/app"
	"sandfall/internal/scenario"
	"sandfall/internal/sims/sand"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "sand"})

	var (
		world *sand.World
		setup func(*sand.World)
		err   error
	)
	if cfg.Scenario != "" {
		sc, loadErr := scenario.Load(cfg.Scenario)
		if loadErr != nil {
			logger.Fatal("load scenario", "err", loadErr)
		}
		world, err = sc.NewWorld(cfg.ExplicitMap(flag.CommandLine))
		setup = sc.Apply
	} else {
		world, err = sand.NewWithConfig(sand.FromMap(cfg.Map()))
	}
	if err != nil {
		logger.Fatal("create world", "err", err)
	}

	session := app.NewSession(world, world.Config().Seed, setup)
	game := app.New(session, cfg.Scale, cfg.HUDWidth)
	size := world.Size()
	logger.Info("starting", "w", size.W, "h", size.H, "seed", session.Seed(), "scenario", cfg.Scenario)

	ebiten.SetWindowTitle("sandfall")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+max(cfg.HUDWidth, 0), size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("run", "err", err)
	}
}

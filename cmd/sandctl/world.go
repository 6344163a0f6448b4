package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"sandfall/internal/scenario"
	"sandfall/internal/sims/sand"
)

// overrides merges --set with the size and seed flags. A scenario keeps its
// own size and seed unless those flags were given explicitly.
func overrides(cmd *cobra.Command) map[string]string {
	out := make(map[string]string, len(flagSets)+3)
	for k, v := range flagSets {
		out[k] = v
	}
	flags := cmd.Flags()
	if flagScenario == "" || flags.Changed("width") {
		out["w"] = strconv.Itoa(flagWidth)
	}
	if flagScenario == "" || flags.Changed("height") {
		out["h"] = strconv.Itoa(flagHeight)
	}
	if flagScenario == "" || flags.Changed("seed") {
		out["seed"] = strconv.FormatInt(flagSeed, 10)
	}
	return out
}

// buildWorld creates the world selected by the global flags, with extra
// applied last. setup repaints the scenario after a reset and is nil without
// one.
func buildWorld(cmd *cobra.Command, extra map[string]string) (w *sand.World, setup func(*sand.World), err error) {
	values := overrides(cmd)
	for k, v := range extra {
		values[k] = v
	}
	if flagScenario == "" {
		w, err = sand.NewWithConfig(sand.FromMap(values))
		return w, nil, err
	}
	sc, err := scenario.Load(flagScenario)
	if err != nil {
		return nil, nil, err
	}
	w, err = sc.NewWorld(values)
	if err != nil {
		return nil, nil, err
	}
	return w, sc.Apply, nil
}

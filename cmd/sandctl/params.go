package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the parameter snapshot",
	Long:  `Print the world's tunable parameters after --scenario and --set are applied.`,
	RunE:  runParams,
}

func runParams(cmd *cobra.Command, _ []string) error {
	w, _, err := buildWorld(cmd, nil)
	if err != nil {
		return err
	}
	size := w.Size()
	fmt.Printf("world %dx%d  seed %d\n", size.W, size.H, w.Seed())
	for _, group := range w.Parameters().Groups {
		fmt.Println()
		fmt.Println(group.Name)
		for _, p := range group.Params {
			fmt.Printf("  %-20s %-10s %s\n", p.Key, p.Value, p.Label)
		}
	}
	return nil
}

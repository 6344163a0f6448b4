package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sandfall/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List built-in scenarios",
	RunE:  runScenarios,
}

func runScenarios(_ *cobra.Command, _ []string) error {
	names := scenario.Builtins()
	maxLen := len("NAME")
	for _, n := range names {
		maxLen = max(maxLen, len(n))
	}
	fmt.Printf("  %-*s  %s\n", maxLen, "NAME", "DESCRIPTION")
	for _, n := range names {
		sc, err := scenario.Load(n)
		if err != nil {
			return err
		}
		fmt.Printf("  %-*s  %s\n", maxLen, n, sc.Description)
	}
	fmt.Println()
	fmt.Println("Use one with --scenario <name>, or pass a YAML file path.")
	return nil
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func agentsCmd() *cobra.Command {
	var agentPoolPath string

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Inspect the Agent Registry",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every agent in the pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(agentPoolPath)
			if err != nil {
				return err
			}
			bold := color.New(color.Bold)
			bold.Printf("%-18s %-10s %7s %7s %9s %8s %6s\n", "NAME", "FAMILY", "QUALITY", "RATE", "CAPACITY", "LATENCY", "LOCAL")
			for _, a := range registry.All() {
				quality := color.GreenString("%.2f", a.Quality)
				if a.Quality < 0.7 {
					quality = color.YellowString("%.2f", a.Quality)
				}
				local := "no"
				if a.IsLocal {
					local = "yes"
				}
				fmt.Printf("%-18s %-10s %7s %7.3f %9d %8.2f %6s\n", a.Name, a.ModelFamily, quality, a.TokenRate, a.Capacity, a.Latency, local)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.PersistentFlags().StringVar(&agentPoolPath, "agents", "", "path to a JSON agent pool (defaults to the built-in bootstrap pool)")
	return cmd
}

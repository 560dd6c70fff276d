// Package main provides the intentwave CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "intentwave",
		Short: "Plan and execute a backlog of intents across a heterogeneous agent pool",
		Long: `intentwave routes a backlog of work items ("intents") onto a pool of
executors ("agents"), partitions the dependency graph into parallel
waves, binds each intent to the cheapest capable agent, and executes
the resulting plan wave by wave with per-intent and aggregate quality
gates, retry, and escalation.`,
		Version: version,
	}

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(agentsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

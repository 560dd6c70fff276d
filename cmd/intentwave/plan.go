package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joss/intentwave/internal/plan"
	strutil "github.com/joss/intentwave/internal/strings"
)

func planCmd() *cobra.Command {
	var agentPoolPath string
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "plan <intents.json>",
		Short: "Build a Plan from a normalized intent backlog",
		Long: `Partition the intent backlog into waves, route each intent to a
profile, and solve for a cost-minimizing assignment within agent
capacity. Pass "-" to read intents from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intents, err := loadIntents(args[0])
			if err != nil {
				return err
			}
			registry, err := loadRegistry(agentPoolPath)
			if err != nil {
				return err
			}

			result, err := plan.Build(intents, registry, solverConfigFromEnv())
			if err != nil {
				return err
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Plan)
			}
			printPlanSummary(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&agentPoolPath, "agents", "", "path to a JSON agent pool (defaults to the built-in bootstrap pool)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "emit the Plan as JSON instead of a human-readable summary")
	return cmd
}

func printPlanSummary(r *plan.Result) {
	bold := color.New(color.Bold)
	p := r.Plan

	bold.Println("Plan summary")
	fmt.Printf("  intents:           %d\n", p.TotalIntents)
	fmt.Printf("  waves:             %d\n", p.TotalWaves)
	fmt.Printf("  peak parallelism:  %d\n", p.PeakParallelism)
	fmt.Printf("  bottleneck wave:   %d\n", p.BottleneckWave)
	fmt.Printf("  estimated cost:    %.2f\n", p.TotalEstimatedCost)
	fmt.Printf("  estimated tokens:  %d\n", p.TotalEstimatedTokens)
	fmt.Printf("  critical path:     %v\n", p.CriticalPath)
	if r.SolverReport != nil && !r.SolverReport.ProvenOptimal {
		fmt.Println(color.YellowString("  note: solver did not prove optimality (time budget or problem size)"))
	}

	width := terminalWidth()
	for _, w := range p.Waves {
		color.New(color.FgCyan).Printf("\nwave %d", w.Wave)
		fmt.Printf(" (%d agents, cost %.2f)\n", w.AgentsNeeded, w.EstimatedCost)
		for _, i := range w.Intents {
			line := fmt.Sprintf("  %-20s %-16s -> %-20s (%s, %d tok)", i.ID, i.Profile, i.Model, i.Complexity, i.EstimatedTokens)
			fmt.Println(strutil.Truncate(line, width))
		}
	}
}

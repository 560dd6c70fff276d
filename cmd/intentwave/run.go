package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joss/intentwave/internal/agents"
	"github.com/joss/intentwave/internal/backend"
	"github.com/joss/intentwave/internal/config"
	"github.com/joss/intentwave/internal/domain"
	"github.com/joss/intentwave/internal/executor"
	"github.com/joss/intentwave/internal/plan"
	"github.com/joss/intentwave/internal/runtime"
	"github.com/joss/intentwave/internal/session"
)

func runCmd() *cobra.Command {
	var agentPoolPath string
	var watch bool
	var maxWorkers int
	var maxRetries int
	var simulatedQuality float64

	cmd := &cobra.Command{
		Use:   "run <intents.json>",
		Short: "Plan and execute an intent backlog wave by wave",
		Long: `Builds a Plan the same way "intentwave plan" does, then executes it
against a built-in simulated backend, applying Gate 1/2/3 and the
retry/escalation ladder as it goes. Pass --watch for a live terminal
dashboard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("INTENTWAVE_SESSION_ID") == "" {
				os.Setenv("INTENTWAVE_SESSION_ID", session.NewID())
			}

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

			e := config.Env()
			cfg := executor.DefaultConfig()
			cfg.MinWaveQuality = e.MinWaveQuality
			cfg.MaxWorkers = e.MaxWorkers
			cfg.MaxRetries = e.MaxRetries
			if maxWorkers > 0 {
				cfg.MaxWorkers = maxWorkers
			}
			if maxRetries > 0 {
				cfg.MaxRetries = maxRetries
			}
			if e.SessionTimeoutSeconds > 0 {
				cfg.SessionTimeout = time.Duration(e.SessionTimeoutSeconds * float64(time.Second))
			}

			back := backend.NewSimulatedBackend(simulatedQuality)

			if watch {
				return runWithDashboard(intents, result.Plan, registry, back, cfg)
			}
			return runPlain(intents, result.Plan, registry, back, cfg)
		},
	}

	cmd.Flags().StringVar(&agentPoolPath, "agents", "", "path to a JSON agent pool (defaults to the built-in bootstrap pool)")
	cmd.Flags().BoolVar(&watch, "watch", false, "show a live terminal dashboard instead of a plain event log")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "override the max-concurrent-dispatches bound")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "override the max-attempts-per-intent bound")
	cmd.Flags().Float64Var(&simulatedQuality, "simulated-quality", 0.88, "quality score the built-in simulated backend reports on an unscripted attempt")
	return cmd
}

func runPlain(intents []domain.Intent, p domain.Plan, registry *agents.Registry, back backend.Backend, cfg executor.Config) error {
	emitted := make(chan executor.Event, 64)
	ex := executor.New(cfg, registry, back, executor.ChannelEmitter(emitted))

	done := make(chan struct{})
	go func() {
		for ev := range emitted {
			printEvent(ev)
		}
		close(done)
	}()

	shutdown := runtime.NewShutdownManager(5 * time.Second)
	shutdown.ListenForSignals()
	ctx := shutdown.Context()

	result, err := ex.Run(ctx, intents, p)
	close(emitted)
	<-done
	if err != nil {
		return err
	}

	fmt.Println()
	bold := color.New(color.Bold)
	bold.Println("Execution result")
	fmt.Printf("  passed:       %d\n", result.Passed)
	fmt.Printf("  failed:       %d\n", result.Failed)
	fmt.Printf("  human review: %d\n", result.HumanReview)
	fmt.Printf("  complete:     %v\n", result.Complete)
	fmt.Printf("  verdict:      %s (score %.1f)\n", result.FinalVerdict.VerdictLabel, result.FinalVerdict.Score)
	return nil
}

func printEvent(ev executor.Event) {
	switch ev.Type {
	case executor.EventWaveStarted:
		color.New(color.FgCyan, color.Bold).Printf("== wave %d started (%d intents) ==\n", ev.Wave, ev.IntentCount)
	case executor.EventWaveCompleted:
		c := color.GreenString
		if ev.Status != "pass" {
			c = color.YellowString
		}
		fmt.Println(c("== wave %d completed: %s (score %.1f, %.2fs) ==", ev.Wave, ev.Status, ev.Score, ev.Duration))
	case executor.EventIntentStarted:
		fmt.Printf("  %-16s started on %s (%s)\n", ev.IntentID, ev.Model, ev.Profile)
	case executor.EventIntentCompleted:
		c := color.GreenString
		if ev.Status != "completed" {
			c = color.RedString
		}
		fmt.Println("  " + c("%-16s attempt %d -> %s (score %.1f)", ev.IntentID, ev.Attempt, ev.Status, ev.Score))
	case executor.EventIntentRetried:
		fmt.Println("  " + color.YellowString("%-16s retrying attempt %d on %s", ev.IntentID, ev.Attempt, ev.Model))
	case executor.EventIntentEscalated:
		fmt.Println("  " + color.MagentaString("%-16s escalating %s -> %s (attempt %d)", ev.IntentID, ev.FromModel, ev.ToModel, ev.Attempt))
	case executor.EventIntentHumanReview:
		fmt.Println("  " + color.RedString("%-16s flagged for human review after %d attempts: %s", ev.IntentID, ev.Attempts, ev.LastError))
	case executor.EventExecutionCompleted:
		color.New(color.Bold).Printf("== execution completed: %s (passed=%d failed=%d human_review=%d) ==\n", ev.Verdict, ev.Passed, ev.Failed, ev.HumanReview)
	}
}

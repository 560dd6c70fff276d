package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/joss/intentwave/internal/agents"
	"github.com/joss/intentwave/internal/config"
	"github.com/joss/intentwave/internal/costmodel"
	"github.com/joss/intentwave/internal/domain"
	"github.com/joss/intentwave/internal/solver"
)

// terminalWidth returns the current terminal column width, falling back
// to 80 when stdout is not a terminal (piped output, CI logs).
func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// loadIntents reads a JSON array of normalized intent records (spec §6)
// from the given path, or stdin when path is "-".
func loadIntents(path string) ([]domain.Intent, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var intents []domain.Intent
	if err := json.Unmarshal(data, &intents); err != nil {
		return nil, fmt.Errorf("parse intents: %w", err)
	}
	return intents, nil
}

// loadRegistry reads a JSON array of agent records from path, falling
// back to the default bootstrap pool when path is empty.
func loadRegistry(path string) (*agents.Registry, error) {
	if path == "" {
		return agents.New(agents.DefaultPool())
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var pool []domain.Agent
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("parse agent pool: %w", err)
	}
	return agents.New(pool)
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// solverConfigFromEnv builds a solver.Config seeded from the
// configuration singleton, which itself is seeded from INTENTWAVE_*
// environment variables.
func solverConfigFromEnv() solver.Config {
	e := config.Env()
	cfg := solver.DefaultConfig()
	cfg.Weights = costmodel.Weights{
		OverkillWeight: e.OverkillWeight,
		LatencyWeight:  e.LatencyWeight,
		DeadlineWeight: e.DeadlineWeight,
		ContextBonus:   e.ContextBonus,
	}
	cfg.BudgetCap = e.BudgetCap
	cfg.QualityFloorOverride = e.QualityFloorOverride
	cfg.RandomSeed = e.RandomSeed
	if e.SolverTimeLimitSeconds > 0 {
		cfg.TimeBudget = time.Duration(e.SolverTimeLimitSeconds * float64(time.Second))
	}
	return cfg
}

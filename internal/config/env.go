// Package config provides centralized configuration management.
// Eliminates scattered os.Getenv calls across the codebase by loading
// the spec's configuration surface once into a singleton.
package config

import (
	"os"
	"strconv"
	"sync"
)

// Options holds every tunable on the configuration surface (spec §6).
// CLI flags, when present, take precedence over the environment values
// loaded here; Env() only supplies the defaults a flag-less invocation
// runs with.
type Options struct {
	OverkillWeight        float64
	LatencyWeight         float64
	DeadlineWeight        float64
	ContextBonus          float64
	BudgetCap             *float64
	QualityFloorOverride  *float64
	SolverTimeLimitSeconds float64
	MaxWorkers            int
	MaxRetries            int
	MinWaveQuality        float64
	SessionTimeoutSeconds float64
	RandomSeed            int64
}

var (
	env     *Options
	envOnce sync.Once
)

// Env returns the singleton configuration, loaded once on first call
// from INTENTWAVE_* environment variables, falling back to the spec §6
// defaults.
func Env() *Options {
	envOnce.Do(func() {
		env = &Options{
			OverkillWeight:         getEnvFloat("INTENTWAVE_OVERKILL_WEIGHT", 2.0),
			LatencyWeight:          getEnvFloat("INTENTWAVE_LATENCY_WEIGHT", 0.001),
			DeadlineWeight:         getEnvFloat("INTENTWAVE_DEADLINE_WEIGHT", 1.0),
			ContextBonus:           getEnvFloat("INTENTWAVE_CONTEXT_BONUS", 0.5),
			BudgetCap:              getEnvFloatPtr("INTENTWAVE_BUDGET_CAP"),
			QualityFloorOverride:   getEnvFloatPtr("INTENTWAVE_QUALITY_FLOOR_OVERRIDE"),
			SolverTimeLimitSeconds: getEnvFloat("INTENTWAVE_SOLVER_TIME_LIMIT_SECONDS", 5.0),
			MaxWorkers:             getEnvInt("INTENTWAVE_MAX_WORKERS", 8),
			MaxRetries:             getEnvInt("INTENTWAVE_MAX_RETRIES", 4),
			MinWaveQuality:         getEnvFloat("INTENTWAVE_MIN_WAVE_QUALITY", 0.70),
			SessionTimeoutSeconds:  getEnvFloat("INTENTWAVE_SESSION_TIMEOUT_SECONDS", 0),
			RandomSeed:             int64(getEnvInt("INTENTWAVE_RANDOM_SEED", 1)),
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvFloatPtr(key string) *float64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

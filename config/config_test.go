package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/meenmo/bondmc"
	"github.com/meenmo/bondmc/config"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	if len(cfg.Curve.Maturities) != 6 || len(cfg.Curve.Rates) != 6 {
		t.Fatalf("default curve has %d/%d pillars, want 6/6", len(cfg.Curve.Maturities), len(cfg.Curve.Rates))
	}
	if cfg.Curve.Maturities[0] != 1 || cfg.Curve.Maturities[5] != 30 {
		t.Fatalf("default maturities = %v, want {1,...,30}", cfg.Curve.Maturities)
	}
	if cfg.Simulation.Trials != 10000 {
		t.Fatalf("default trials = %d, want 10000", cfg.Simulation.Trials)
	}
	if cfg.Simulation.ShockStdDev != 0.005 {
		t.Fatalf("default shock stddev = %g, want 0.005", cfg.Simulation.ShockStdDev)
	}

	c, err := cfg.BaseCurve()
	if err != nil {
		t.Fatalf("BaseCurve: %v", err)
	}
	if got := c.Rate(30); got != 0.035 {
		t.Fatalf("default curve Rate(30) = %g, want 0.035", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bondmc.yaml")
	body := `
curve:
  maturities: [1, 5, 10]
  rates: [0.02, 0.03, 0.04]
simulation:
  trials: 500
  workers: 4
  seed: 99
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Simulation.Trials != 500 || cfg.Simulation.Workers != 4 || cfg.Simulation.Seed != 99 {
		t.Fatalf("simulation config = %+v, want trials=500 workers=4 seed=99", cfg.Simulation)
	}
	// Unset keys keep their defaults.
	if cfg.Simulation.ShockStdDev != 0.005 {
		t.Fatalf("shock stddev = %g, want default 0.005", cfg.Simulation.ShockStdDev)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("logging level = %q, want default info", cfg.Logging.Level)
	}

	c, err := cfg.BaseCurve()
	if err != nil {
		t.Fatalf("BaseCurve: %v", err)
	}
	if got := c.Rate(7.5); got != 0.035 {
		t.Fatalf("Rate(7.5) = %g, want 0.035 (midpoint of 5y and 10y pillars)", got)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()

	if _, err := config.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestBaseCurve_InvalidPillars(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Curve.Rates = cfg.Curve.Rates[:3]

	if _, err := cfg.BaseCurve(); !errors.Is(err, bondmc.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for mismatched pillars, got %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BONDMC_SIMULATION_TRIALS", "777")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.Trials != 777 {
		t.Fatalf("trials = %d, want env override 777", cfg.Simulation.Trials)
	}
}

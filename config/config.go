// Package config handles configuration loading for bondmc tools. It
// supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/meenmo/bondmc/curve"
)

// Config represents the complete tool configuration.
type Config struct {
	Curve      CurveConfig      `mapstructure:"curve"      yaml:"curve"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	History    HistoryConfig    `mapstructure:"history"    yaml:"history"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// CurveConfig defines the base yield curve pillars.
type CurveConfig struct {
	// Maturities are pillar maturities in years, strictly increasing.
	Maturities []float64 `mapstructure:"maturities" yaml:"maturities"`
	// Rates are annual rates in decimal form, one per maturity.
	Rates []float64 `mapstructure:"rates" yaml:"rates"`
}

// SimulationConfig holds Monte Carlo settings.
type SimulationConfig struct {
	// Trials is the default simulation count (minimum 2).
	Trials int `mapstructure:"trials" yaml:"trials"`
	// Workers is the number of concurrent simulation workers.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// ShockStdDev is the per-pillar rate shock standard deviation
	// (0.005 = 50 basis points).
	ShockStdDev float64 `mapstructure:"shock_stddev" yaml:"shock_stddev"`
	// Seed, when non-zero, makes runs deterministic.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// HistoryConfig holds run persistence settings.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Path is the SQLite database file for recorded runs.
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Default returns the built-in configuration: the demonstration curve with
// pillars at {1,2,3,5,10,30} years, 10 000 trials, sequential execution,
// and history disabled.
func Default() Config {
	return Config{
		Curve: CurveConfig{
			Maturities: []float64{1, 2, 3, 5, 10, 30},
			Rates:      []float64{0.01, 0.015, 0.02, 0.025, 0.03, 0.035},
		},
		Simulation: SimulationConfig{
			Trials:      10000,
			Workers:     1,
			ShockStdDev: 0.005,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    defaultHistoryPath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./bondmc.yaml (working directory)
//  2. ~/.bondmc/config.yaml (home directory)
//
// Environment variables override config file values.
// Format: BONDMC_<SECTION>_<KEY>, e.g., BONDMC_SIMULATION_TRIALS.
func Load() (Config, error) {
	v := newViper()

	v.SetConfigName("bondmc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".bondmc"))
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads the configuration from an explicit path.
func LoadFromFile(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return unmarshal(v)
}

// BaseCurve builds the configured yield curve, validating the pillars.
func (c Config) BaseCurve() (*curve.Curve, error) {
	return curve.New(c.Curve.Maturities, c.Curve.Rates)
}

func newViper() *viper.Viper {
	v := viper.New()

	def := Default()
	v.SetDefault("curve.maturities", def.Curve.Maturities)
	v.SetDefault("curve.rates", def.Curve.Rates)
	v.SetDefault("simulation.trials", def.Simulation.Trials)
	v.SetDefault("simulation.workers", def.Simulation.Workers)
	v.SetDefault("simulation.shock_stddev", def.Simulation.ShockStdDev)
	v.SetDefault("simulation.seed", def.Simulation.Seed)
	v.SetDefault("history.enabled", def.History.Enabled)
	v.SetDefault("history.path", def.History.Path)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	v.SetEnvPrefix("BONDMC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bondmc_history.db"
	}
	return filepath.Join(home, ".bondmc", "history.db")
}

// Package config provides unified configuration loading for vesound.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kvernstuen/vesound/internal/earth"
)

// Config contains all vesound settings.
type Config struct {
	// Survey describes the sounding geometry to build.
	Survey SurveyConfig `json:"survey" yaml:"survey"`

	// Models are the layered-earth models to forward-model. The first
	// model is the reference the others are compared against.
	Models []earth.Model `json:"models" yaml:"models"`

	// Noise configures the multiplicative perturbation applied to
	// exported observations.
	Noise NoiseConfig `json:"noise" yaml:"noise"`

	// Output configures where result files are written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Store configures the local run catalog.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging configures log verbosity.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SurveyConfig holds the symmetric-spread builder parameters.
type SurveyConfig struct {
	// AMin/AMax bound the electrode separations in meters.
	AMin float64 `json:"a_min" yaml:"a_min"`
	AMax float64 `json:"a_max" yaml:"a_max"`

	// NStations is the number of linearly spaced separations.
	NStations int `json:"n_stations" yaml:"n_stations"`
}

// NoiseConfig configures the exported-observation perturbation.
type NoiseConfig struct {
	// Fraction is the maximum relative noise amplitude (e.g. 0.025).
	Fraction float64 `json:"fraction" yaml:"fraction"`

	// Seed fixes the noise sequence so exports are reproducible.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// OutputConfig configures result file placement.
type OutputConfig struct {
	// Dir is the directory result files are written into. Created on demand.
	Dir string `json:"dir" yaml:"dir"`
}

// StoreConfig configures the run catalog.
type StoreConfig struct {
	// Enabled records runs in the catalog when true.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database path.
	Path string `json:"path" yaml:"path"`
}

// LoggingConfig configures vesound's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the canonical equivalence exercise:
// a 25-station sounding over two models whose middle layers share a
// conductance of 2 S.
func Default() *Config {
	return &Config{
		Survey: SurveyConfig{AMin: 20, AMax: 100, NStations: 25},
		Models: []earth.Model{
			{Name: "layered_earth_a", Thicknesses: []float64{50, 20}, Resistivities: []float64{2000, 10, 2000}},
			{Name: "layered_earth_b", Thicknesses: []float64{50, 10}, Resistivities: []float64{2000, 5, 2000}},
		},
		Noise:   NoiseConfig{Fraction: 0.025, Seed: 1},
		Output:  OutputConfig{Dir: "assets"},
		Store:   StoreConfig{Enabled: true, Path: ".vesound/runs.db"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads configuration: defaults -> optional YAML file -> environment
// variable overrides. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file, layered over
// the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration consistency before a run starts.
func (c *Config) Validate() error {
	if c.Survey.AMin <= 0 || c.Survey.AMax <= 0 || c.Survey.AMax < c.Survey.AMin {
		return fmt.Errorf("survey separations must satisfy 0 < a_min <= a_max, got [%g, %g]",
			c.Survey.AMin, c.Survey.AMax)
	}
	if c.Survey.NStations < 1 {
		return fmt.Errorf("n_stations must be >= 1, got %d", c.Survey.NStations)
	}
	if c.Noise.Fraction < 0 {
		return fmt.Errorf("noise fraction must be non-negative, got %g", c.Noise.Fraction)
	}
	for i, m := range c.Models {
		if m.Name == "" {
			return fmt.Errorf("models[%d] has no name", i)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("models[%d] (%s): %w", i, m.Name, err)
		}
	}

	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// applyEnvOverrides applies VESOUND_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VESOUND_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("VESOUND_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("VESOUND_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VESOUND_NOISE_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Noise.Fraction = f
		}
	}
	if v := os.Getenv("VESOUND_NOISE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Noise.Seed = n
		}
	}
}

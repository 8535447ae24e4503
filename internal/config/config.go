package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Solver struct {
		MaxEvaluations int     `yaml:"max_evaluations"`
		Tolerance      float64 `yaml:"tolerance"`
	} `yaml:"solver"`
	Forecast struct {
		DefaultHorizonYears int `yaml:"default_horizon_years"`
	} `yaml:"forecast"`
	History struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"history"`
	Preview struct {
		Rows int `yaml:"rows"`
	} `yaml:"preview"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is fine; defaults cover every field.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.History.SQLitePath = v
	}
	if v := os.Getenv("MAX_FIT_EVALS"); v != "" {
		var evals int
		if _, err := fmt.Sscanf(v, "%d", &evals); err == nil {
			cfg.Solver.MaxEvaluations = evals
		}
	}
	if v := os.Getenv("FORECAST_YEARS"); v != "" {
		var years int
		if _, err := fmt.Sscanf(v, "%d", &years); err == nil {
			cfg.Forecast.DefaultHorizonYears = years
		}
	}

	// Defaults
	if cfg.Solver.MaxEvaluations == 0 {
		cfg.Solver.MaxEvaluations = 5000
	}
	if cfg.Solver.Tolerance == 0 {
		cfg.Solver.Tolerance = 1e-10
	}
	if cfg.Forecast.DefaultHorizonYears == 0 {
		cfg.Forecast.DefaultHorizonYears = 5
	}
	if cfg.History.SQLitePath == "" {
		cfg.History.SQLitePath = "data/reservoir_bench.db"
	}
	if cfg.Preview.Rows == 0 {
		cfg.Preview.Rows = 10
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Solver.MaxEvaluations <= 0 {
		return fmt.Errorf("solver.max_evaluations must be positive")
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("solver.tolerance must be positive")
	}
	if c.Forecast.DefaultHorizonYears <= 0 {
		return fmt.Errorf("forecast.default_horizon_years must be positive")
	}
	if c.Preview.Rows <= 0 {
		return fmt.Errorf("preview.rows must be positive")
	}
	return nil
}

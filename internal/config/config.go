// Package config loads CLI/runtime settings for the parahpf command,
// layering defaults, an optional YAML file, and environment variables -
// the same three-tier precedence the retrieved logistics-platform pack
// uses for its services (pkg/config/config.go), scaled down to what a
// single-binary solver CLI actually needs: no gRPC/HTTP/database/tracing
// sections, just logging, metrics, and history-store settings plus the
// solver's own tolerance/round-negative defaults.
package config

import (
	"fmt"
)

// Config is the root configuration structure, unmarshaled via koanf tags.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Solver  SolverConfig  `koanf:"solver"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	History HistoryConfig `koanf:"history"`
}

// AppConfig carries identifying metadata, unused by the solver itself but
// useful in logs and metrics labels.
type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"`
}

// SolverConfig exposes the defaults applied when a CLI invocation doesn't
// override them with a flag.
type SolverConfig struct {
	Tolerance     float64 `koanf:"tolerance"`
	RoundNegative bool    `koanf:"round_negative"`
}

// LogConfig mirrors internal/logging.Config field-for-field so the loader
// can unmarshal directly into it.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Output     string `koanf:"output"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the optional Prometheus exposition endpoint
// (SPEC_FULL.md §2.6).
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// HistoryConfig controls the optional sqlite run-history store
// (SPEC_FULL.md §2.7).
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Validate checks the handful of settings that would otherwise fail deep
// inside the solver or a collaborator with a confusing error.
func (c *Config) Validate() error {
	if c.Solver.Tolerance < 0 {
		return fmt.Errorf("solver.tolerance must be >= 0, got %g", c.Solver.Tolerance)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}

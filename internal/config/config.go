// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New(ctx) builds a Config with defaults; Load layers file and env on top.
//   - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// TeamSize is the default team size N. Values below 2 are clamped by the engine.
	TeamSize int `koanf:"team_size"`

	// ActivityCap is the default per-team activity cap C. Values below 1 are clamped.
	ActivityCap int `koanf:"activity_cap"`

	// ImportWorkers bounds concurrent line parsing during roster import.
	ImportWorkers int `koanf:"import_workers"`

	// FormationTimeoutMS bounds how long a formation run may take.
	FormationTimeoutMS int `koanf:"formation_timeout_ms"`

	// Seed fixes the shuffle for reproducible runs; 0 means time-seeded.
	Seed int64 `koanf:"seed"`

	// MaxImportBytes caps an uploaded roster body.
	MaxImportBytes int64 `koanf:"max_import_bytes"`

	// MetricsIntervalMS controls how often system gauges refresh.
	MetricsIntervalMS int `koanf:"metrics_interval_ms"`

	// MetricsEnabled turns off counters and histograms when false; gauges
	// keep updating.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLabels are constant labels added to every metric (file only).
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		TeamSize:           5,
		ActivityCap:        2,
		ImportWorkers:      4,
		FormationTimeoutMS: 5000,
		Seed:               0,
		MaxImportBytes:     1 << 20,
		MetricsIntervalMS:  10_000,
		MetricsEnabled:     true,
		MetricsNamespace:   "teammate",
	}
}

// FormationTimeout returns FormationTimeoutMS as a duration.
func (c *Config) FormationTimeout() time.Duration {
	return time.Duration(c.FormationTimeoutMS) * time.Millisecond
}

// MetricsInterval returns MetricsIntervalMS as a duration.
func (c *Config) MetricsInterval() time.Duration {
	return time.Duration(c.MetricsIntervalMS) * time.Millisecond
}

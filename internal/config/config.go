// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MoviesPath and TracksPath locate the catalog sources. Each is a CSV
	// path, a SQLite file (sqlite://path, *.db, *.sqlite) or a postgres:// DSN.
	MoviesPath string `koanf:"movies_path"`
	TracksPath string `koanf:"tracks_path"`

	// VocabularyPath points at the fitted vector space artifact.
	VocabularyPath string `koanf:"vocabulary_path"`

	// StrictTitles rejects catalogs with duplicate movie titles.
	StrictTitles bool `koanf:"strict_titles"`

	// VectorizeWorkers bounds parallel vectorization at load.
	VectorizeWorkers int `koanf:"vectorize_workers"`

	// Selection and result bounds for a recommendation request.
	MinSelection int `koanf:"min_selection"`
	MaxSelection int `koanf:"max_selection"`
	MinK         int `koanf:"min_k"`
	MaxK         int `koanf:"max_k"`

	// SampleSize is the default number of titles offered for selection.
	SampleSize int `koanf:"sample_size"`

	// SampleSeed seeds title sampling. Zero seeds from the clock.
	SampleSeed uint64 `koanf:"sample_seed"`

	// RateLimitPerMinute caps API requests per client IP. Zero disables it.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// RequestTimeoutMS bounds a single HTTP request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		MoviesPath:         "data/movies_processed.csv",
		TracksPath:         "data/tracks_processed.csv",
		VocabularyPath:     "models/vocabulary.json",
		StrictTitles:       false,
		VectorizeWorkers:   runtime.NumCPU(),
		MinSelection:       1,
		MaxSelection:       5,
		MinK:               10,
		MaxK:               30,
		SampleSize:         10,
		SampleSeed:         0,
		RateLimitPerMinute: 120,
		RequestTimeoutMS:   10_000,
	}
}

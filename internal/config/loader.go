package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CROSSTUNE_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CROSSTUNE_CONFIG is set
//  3. env (prefix CROSSTUNE_), including values from a local .env file
func Load(_ context.Context) (*Config, error) {
	// A missing .env is fine; variables already in the environment win.
	_ = godotenv.Load()

	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// CROSSTUNE_MOVIES_PATH -> movies_path (flat keys, underscores preserved).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the cross-field constraints of a Config.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MoviesPath == "" || c.TracksPath == "":
		return fmt.Errorf("%w: movies_path and tracks_path must not be empty", ErrInvalidConfig)
	case c.VocabularyPath == "":
		return fmt.Errorf("%w: vocabulary_path must not be empty", ErrInvalidConfig)
	case c.MinSelection < 1 || c.MaxSelection < c.MinSelection:
		return fmt.Errorf("%w: selection bounds %d..%d", ErrInvalidConfig, c.MinSelection, c.MaxSelection)
	case c.MinK < 1 || c.MaxK < c.MinK:
		return fmt.Errorf("%w: k bounds %d..%d", ErrInvalidConfig, c.MinK, c.MaxK)
	case c.SampleSize < 0:
		return fmt.Errorf("%w: sample_size must not be negative", ErrInvalidConfig)
	case c.RateLimitPerMinute < 0:
		return fmt.Errorf("%w: rate_limit_per_minute must not be negative", ErrInvalidConfig)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/crosstune/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MinK, convey.ShouldEqual, 10)
				convey.So(cfg.MaxK, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CROSSTUNE_ADDR", ":8080")
			_ = os.Setenv("CROSSTUNE_MOVIES_PATH", "sqlite://catalog.db")
			_ = os.Setenv("CROSSTUNE_STRICT_TITLES", "true")
			_ = os.Setenv("CROSSTUNE_MAX_K", "50")
			_ = os.Setenv("CROSSTUNE_SAMPLE_SEED", "42")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MoviesPath, convey.ShouldEqual, "sqlite://catalog.db")
				convey.So(cfg.StrictTitles, convey.ShouldBeTrue)
				convey.So(cfg.MaxK, convey.ShouldEqual, 50)
				convey.So(cfg.SampleSeed, convey.ShouldEqual, uint64(42))
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_format: json
tracks_path: "postgres://crosstune@localhost/catalog"
min_selection: 2
max_selection: 4
vectorize_workers: 3
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CROSSTUNE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.TracksPath, convey.ShouldEqual, "postgres://crosstune@localhost/catalog")
				convey.So(cfg.MinSelection, convey.ShouldEqual, 2)
				convey.So(cfg.MaxSelection, convey.ShouldEqual, 4)
				convey.So(cfg.VectorizeWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.MoviesPath, convey.ShouldEqual, "data/movies_processed.csv") // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
max_k: 40
sample_size: 12
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CROSSTUNE_CONFIG", tmpFile)
			_ = os.Setenv("CROSSTUNE_ADDR", ":8080")
			_ = os.Setenv("CROSSTUNE_MAX_K", "35")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxK, convey.ShouldEqual, 35)
				convey.So(cfg.SampleSize, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CROSSTUNE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("CROSSTUNE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with inverted k bounds", func() {
			_ = os.Setenv("CROSSTUNE_MIN_K", "20")
			_ = os.Setenv("CROSSTUNE_MAX_K", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "k bounds")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing an empty addr", func() {
			tmpFile := createTempConfigFile("addr: \"\"\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CROSSTUNE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return validation error for empty addr", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("CROSSTUNE_MAX_K", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"CROSSTUNE_CONFIG",
		"CROSSTUNE_ADDR",
		"CROSSTUNE_MOVIES_PATH",
		"CROSSTUNE_STRICT_TITLES",
		"CROSSTUNE_MIN_K",
		"CROSSTUNE_MAX_K",
		"CROSSTUNE_SAMPLE_SEED",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "crosstune-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}

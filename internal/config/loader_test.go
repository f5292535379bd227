package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/teammate/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New(ctx))
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TEAMMATE_ADDR", ":8080")
			_ = os.Setenv("TEAMMATE_TEAM_SIZE", "4")
			_ = os.Setenv("TEAMMATE_ACTIVITY_CAP", "1")
			_ = os.Setenv("TEAMMATE_IMPORT_WORKERS", "16")
			_ = os.Setenv("TEAMMATE_SEED", "42")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TeamSize, convey.ShouldEqual, 4)
				convey.So(cfg.ActivityCap, convey.ShouldEqual, 1)
				convey.So(cfg.ImportWorkers, convey.ShouldEqual, 16)
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.FormationTimeoutMS, convey.ShouldEqual, 5000)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(`
# team defaults
addr: ":9090"
team_size: 6
activity_cap: 3
formation_timeout_ms: 250
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TEAMMATE_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values merge with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TeamSize, convey.ShouldEqual, 6)
				convey.So(cfg.ActivityCap, convey.ShouldEqual, 3)
				convey.So(cfg.FormationTimeoutMS, convey.ShouldEqual, 250)
				convey.So(cfg.ImportWorkers, convey.ShouldEqual, 4)
			})

			convey.Convey("And env vars override file values", func() {
				_ = os.Setenv("TEAMMATE_TEAM_SIZE", "3")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamSize, convey.ShouldEqual, 3)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			tmpFile := createTempConfigFile("addr: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TEAMMATE_CONFIG", tmpFile)

			_, err := config.Load(ctx)

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("TEAMMATE_CONFIG", "/nonexistent/teammate.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a numeric env var is not a number", func() {
			_ = os.Setenv("TEAMMATE_TEAM_SIZE", "lots")

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When addr is empty", func() {
			_ = os.Setenv("TEAMMATE_ADDR", "")

			_, err := config.Load(ctx)

			convey.Convey("Then a validation error is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When workers or timeouts are not positive", func() {
			for _, kv := range [][2]string{
				{"TEAMMATE_IMPORT_WORKERS", "0"},
				{"TEAMMATE_FORMATION_TIMEOUT_MS", "-1"},
				{"TEAMMATE_MAX_IMPORT_BYTES", "0"},
				{"TEAMMATE_METRICS_INTERVAL_MS", "0"},
			} {
				clearConfigEnvVars()
				_ = os.Setenv(kv[0], kv[1])
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When metrics settings come from file and env", func() {
			tmpFile := createTempConfigFile(`
metrics_namespace: league
metrics_labels:
  env: staging
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TEAMMATE_CONFIG", tmpFile)
			_ = os.Setenv("TEAMMATE_METRICS_ENABLED", "false")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "league")
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"env": "staging"})
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the metrics namespace is blank", func() {
			_ = os.Setenv("TEAMMATE_METRICS_NAMESPACE", " ")

			_, err := config.Load(ctx)

			convey.Convey("Then a validation error is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When team size and cap are below their minimums", func() {
			_ = os.Setenv("TEAMMATE_TEAM_SIZE", "0")
			_ = os.Setenv("TEAMMATE_ACTIVITY_CAP", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are accepted and left for the engine to clamp", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamSize, convey.ShouldEqual, 0)
				convey.So(cfg.ActivityCap, convey.ShouldEqual, 0)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"TEAMMATE_CONFIG",
		"TEAMMATE_ADDR",
		"TEAMMATE_LOG_LEVEL",
		"TEAMMATE_TEAM_SIZE",
		"TEAMMATE_ACTIVITY_CAP",
		"TEAMMATE_IMPORT_WORKERS",
		"TEAMMATE_FORMATION_TIMEOUT_MS",
		"TEAMMATE_SEED",
		"TEAMMATE_MAX_IMPORT_BYTES",
		"TEAMMATE_METRICS_INTERVAL_MS",
		"TEAMMATE_METRICS_ENABLED",
		"TEAMMATE_METRICS_NAMESPACE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "teammate-config-*.yaml")
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

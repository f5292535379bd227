package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	app "github.com/okian/teammate/internal/app"
	"github.com/okian/teammate/internal/config"
	"github.com/okian/teammate/pkg/logger"
	"github.com/okian/teammate/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When configuration comes from the environment", func() {
			_ = os.Setenv("TEAMMATE_ADDR", ":8181")
			_ = os.Setenv("TEAMMATE_TEAM_SIZE", "4")
			_ = os.Setenv("TEAMMATE_IMPORT_WORKERS", "2")
			defer func() {
				_ = os.Unsetenv("TEAMMATE_ADDR")
				_ = os.Unsetenv("TEAMMATE_TEAM_SIZE")
				_ = os.Unsetenv("TEAMMATE_IMPORT_WORKERS")
			}()

			convey.Convey("Then the service picks it up", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8181")

				svc := newService(cfg, logger.Nop())
				convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
				defer svc.Stop()
				convey.So(svc.GetStats()["teamSize"], convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the address is empty", func() {
			_ = os.Setenv("TEAMMATE_ADDR", " ")
			defer func() { _ = os.Unsetenv("TEAMMATE_ADDR") }()

			convey.Convey("Then configuration loading fails", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a wired mux", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.MaxImportBytes = 1 << 10
		svc := newService(cfg, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		mux := newMux(ctx, cfg, svc, logger.Nop())

		convey.Convey("Then docs and API routes are both served", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats", "/participants"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then the configured upload limit applies", func() {
			w := httptest.NewRecorder()
			body := strings.Repeat("x", 2<<10)
			mux.ServeHTTP(w, httptest.NewRequest("POST", "/participants/import", strings.NewReader(body)))
			convey.So(w.Code, convey.ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})
}

func TestConfigureMetrics(t *testing.T) {
	convey.Convey("Given metrics settings in the config", t, func() {
		defer metrics.Configure()
		cfg := config.New(context.Background())
		cfg.MetricsNamespace = "league"
		cfg.MetricsIntervalMS = 1500
		cfg.MetricsLabels = map[string]string{"env": "test"}

		configureMetrics(cfg)
		metrics.UpdateParticipantsTotal(3)

		convey.Convey("Then the process-wide registry follows them", func() {
			convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 1500*time.Millisecond)
			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)
			found := false
			for _, mf := range families {
				if mf.GetName() == "league_formation_participants" {
					found = true
					convey.So(mf.GetMetric()[0].GetLabel()[0].GetValue(), convey.ShouldEqual, "test")
				}
			}
			convey.So(found, convey.ShouldBeTrue)
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metrics updaters", t, func() {
		convey.Convey("When their context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.Convey("Then they return", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx, 10*time.Millisecond) }, convey.ShouldNotPanic)
				convey.So(func() { startServiceMetricsUpdater(ctx, app.New()) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating once", func() {
			convey.So(func() {
				updateSystemMetrics()
				updateServiceMetrics(app.New())
			}, convey.ShouldNotPanic)
		})
	})
}

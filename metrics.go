package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	renders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arrows_renders_total",
		Help: "Number of times an arrow surface was redrawn",
	})

	updateSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arrows_update_skips_total",
		Help: "Number of update passes that skipped drawing",
	}, []string{"reason"})

	arrowsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arrows_created_total",
		Help: "Number of arrows created",
	})

	arrowsDestroyed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arrows_destroyed_total",
		Help: "Number of arrows destroyed",
	})

	arrowsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arrows_live",
		Help: "Number of arrows currently registered",
	})
)

// serveMetrics exposes the default registry on addr until the process
// exits. It returns immediately; listen errors are logged.
func serveMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(addr, mux)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger().Error("metrics server stopped", slog.String("addr", addr), slog.Any("error", err))
		}
	}()
}

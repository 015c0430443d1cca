package main

import (
	"log/slog"
	"net/http"

	"github.com/angeloszaimis/keep-alive/internal/handler"
	"github.com/angeloszaimis/keep-alive/internal/metrics"
)

// setupRouter serves /health and /metrics; every other path or method
// falls through to the JSON 404.
func setupRouter(log *slog.Logger, metricsCollector *metrics.Collector) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", handler.NewHealthHandler(log))
	mux.Handle("GET /metrics", metricsCollector.Handler())
	mux.HandleFunc("/", handler.NotFound)

	return handler.RequestLogger(log, metricsCollector.EventChannel(), mux)
}

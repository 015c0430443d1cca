package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angeloszaimis/keep-alive/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every request at debug level and reports it to events,
// which may be nil.
func RequestLogger(logger *slog.Logger, events chan<- metrics.MetricEvent, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		logger.Debug("Request served",
			slog.String("from", extractClientIP(r)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.statusCode),
			slog.Duration("duration", duration),
			slog.String("user_agent", r.UserAgent()))

		metrics.Emit(events, metrics.MetricEvent{
			Type:       metrics.EventRequestServed,
			Timestamp:  time.Now(),
			Method:     r.Method,
			StatusCode: wrapped.statusCode,
			Duration:   duration,
		})
	})
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

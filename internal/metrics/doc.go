// Package metrics collects keep-alive and HTTP metrics for Prometheus.
//
// Producers send MetricEvent values on a buffered channel; a single collector
// goroutine applies them to a private registry, so emitting never blocks the
// request path or a keep-alive tick. Tracked series:
//   - keepalive_attempts_total{result}
//   - keepalive_ticks_total{outcome}
//   - keepalive_attempt_duration_seconds
//   - keepalive_last_success_timestamp_seconds
//   - keepalive_http_requests_total{method,status}
//
// Example usage:
//
//	collector := metrics.NewCollector(256, logger)
//	collector.Start(ctx)
//
//	metrics.Emit(collector.EventChannel(), metrics.MetricEvent{
//		Type:     metrics.EventAttemptCompleted,
//		Success:  true,
//		Duration: 120 * time.Millisecond,
//	})
//
//	mux.Handle("GET /metrics", collector.Handler())
//
// Remaining events are drained when the context passed to Start is cancelled.
package metrics

package metrics

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type EventType string

const (
	EventAttemptCompleted EventType = "attempt_completed"
	EventTickCompleted    EventType = "tick_completed"
	EventRequestServed    EventType = "request_served"
)

const (
	OutcomeSuccess   = "success"
	OutcomeExhausted = "exhausted"
	OutcomeCancelled = "cancelled"
)

type MetricEvent struct {
	Type       EventType
	Timestamp  time.Time
	Duration   time.Duration
	StatusCode int
	Success    bool
	Outcome    string
	Method     string
}

type Collector struct {
	eventCh  chan MetricEvent
	registry *prometheus.Registry
	logger   *slog.Logger

	attempts        *prometheus.CounterVec
	ticks           *prometheus.CounterVec
	attemptDuration prometheus.Histogram
	lastSuccess     prometheus.Gauge
	requests        *prometheus.CounterVec
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		eventCh:  make(chan MetricEvent, bufferSize),
		registry: registry,
		logger:   logger,
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "keepalive_attempts_total",
			Help: "Keep-alive GET attempts by result.",
		}, []string{"result"}),
		ticks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "keepalive_ticks_total",
			Help: "Completed keep-alive ticks by outcome.",
		}, []string{"outcome"}),
		attemptDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "keepalive_attempt_duration_seconds",
			Help:    "Duration of keep-alive GET attempts.",
			Buckets: prometheus.DefBuckets,
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "keepalive_last_success_timestamp_seconds",
			Help: "Unix time of the last successful keep-alive attempt.",
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "keepalive_http_requests_total",
			Help: "HTTP requests served by method and status.",
		}, []string{"method", "status"}),
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

// Gatherer exposes the collector's registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventAttemptCompleted:
		result := "failure"
		if event.Success {
			result = "success"
			c.lastSuccess.Set(float64(event.Timestamp.Unix()))
		}
		c.attempts.WithLabelValues(result).Inc()
		c.attemptDuration.Observe(event.Duration.Seconds())

	case EventTickCompleted:
		c.ticks.WithLabelValues(event.Outcome).Inc()

	case EventRequestServed:
		c.requests.WithLabelValues(event.Method, strconv.Itoa(event.StatusCode)).Inc()

	default:
		c.logger.Debug("Ignoring unknown metric event", slog.String("type", string(event.Type)))
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

// Emit sends event without blocking; it is dropped when ch is nil or full.
func Emit(ch chan<- MetricEvent, event MetricEvent) {
	if ch == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case ch <- event:
	default:
	}
}

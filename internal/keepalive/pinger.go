package keepalive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angeloszaimis/keep-alive/config"
	"github.com/angeloszaimis/keep-alive/internal/metrics"
	"github.com/angeloszaimis/keep-alive/pkg/logger"
)

// ErrUnexpectedStatus marks a response outside the 2xx range.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Result describes one finished tick.
type Result struct {
	TickID    string
	Attempts  int
	Succeeded bool
	Err       error
}

type Pinger struct {
	client     *http.Client
	target     string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
	events     chan<- metrics.MetricEvent
}

type Option func(*Pinger)

// WithHTTPClient replaces the default client. Without it the zero-value
// client is used, which imposes no timeout of its own.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Pinger) {
		p.client = client
	}
}

// WithEvents reports attempts and ticks to a metrics collector.
func WithEvents(events chan<- metrics.MetricEvent) Option {
	return func(p *Pinger) {
		p.events = events
	}
}

func NewPinger(cfg config.KeepAliveConfig, logger *slog.Logger, opts ...Option) *Pinger {
	p := &Pinger{
		client:     &http.Client{},
		target:     cfg.URL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Attempts is the number of GET requests a permanently failing tick makes.
// A limit of zero still makes one attempt.
func (p *Pinger) Attempts() int {
	return max(1, p.maxRetries)
}

// Ping runs one tick. Failures are logged and reported in the Result; they
// are never returned as errors to the caller.
func (p *Pinger) Ping(ctx context.Context) Result {
	res := Result{TickID: uuid.NewString()}
	log := p.logger.With(slog.String("tick_id", res.TickID), slog.String("url", p.target))
	limit := p.Attempts()

	for {
		start := time.Now()
		status, err := p.attempt(ctx)
		p.emitAttempt(start, status, err == nil)

		if err == nil {
			res.Attempts++
			res.Succeeded = true
			res.Err = nil
			log.Log(ctx, logger.LevelKeepAlive, "Keep-alive request sent",
				slog.Int("status", status),
				slog.Int("attempt", res.Attempts))
			p.emitTick(metrics.OutcomeSuccess)
			return res
		}

		res.Attempts++
		res.Err = err
		log.Error("Keep-alive request failed",
			slog.Int("attempt", res.Attempts),
			slog.Int("max_retries", limit),
			slog.String("error", err.Error()))

		if res.Attempts >= limit {
			log.Error("Keep-alive request permanently failed",
				slog.Int("attempts", res.Attempts))
			p.emitTick(metrics.OutcomeExhausted)
			return res
		}

		if err := wait(ctx, p.retryDelay); err != nil {
			log.Warn("Keep-alive tick cancelled",
				slog.Int("attempts", res.Attempts))
			res.Err = err
			p.emitTick(metrics.OutcomeCancelled)
			return res
		}
	}
}

func (p *Pinger) attempt(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target, nil)
	if err != nil {
		return 0, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return res.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	return res.StatusCode, nil
}

// wait pauses the calling goroutine only; it returns early with the
// context's error when ctx is cancelled.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Pinger) emitAttempt(start time.Time, status int, success bool) {
	metrics.Emit(p.events, metrics.MetricEvent{
		Type:       metrics.EventAttemptCompleted,
		Timestamp:  time.Now(),
		Duration:   time.Since(start),
		StatusCode: status,
		Success:    success,
	})
}

func (p *Pinger) emitTick(outcome string) {
	metrics.Emit(p.events, metrics.MetricEvent{
		Type:      metrics.EventTickCompleted,
		Timestamp: time.Now(),
		Outcome:   outcome,
	})
}

package keepalive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/angeloszaimis/keep-alive/config"
)

// ErrSchedulerStarted is returned by Start on a scheduler that was already
// started, including one that has since been stopped.
var ErrSchedulerStarted = errors.New("keep-alive scheduler already started")

// Ticker runs one keep-alive tick.
type Ticker interface {
	Ping(ctx context.Context) Result
}

type Scheduler struct {
	mutex    sync.Mutex
	cron     *cron.Cron
	schedule cron.Schedule
	spec     string
	ticker   Ticker
	logger   *slog.Logger
	cancel   context.CancelFunc
	started  bool
	stopped  bool
}

// NewScheduler parses spec with the standard five-field cron syntax, which
// also accepts descriptors such as "@every 1m". An empty spec falls back to
// config.DefaultSchedule.
func NewScheduler(spec string, ticker Ticker, logger *slog.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = config.DefaultSchedule
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid keep-alive schedule %q: %w", spec, err)
	}

	cronLog := cronLogger{logger: logger}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog)),
		),
		schedule: schedule,
		spec:     spec,
		ticker:   ticker,
		logger:   logger,
	}, nil
}

// Start registers the keep-alive job and starts firing it. Ticks receive a
// context derived from ctx that Stop cancels.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.started {
		return ErrSchedulerStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.started = true

	s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		s.ticker.Ping(runCtx)
	}))
	s.cron.Start()

	s.logger.Info("Keep-alive scheduler started",
		slog.String("schedule", s.spec),
		slog.Time("next_run", s.NextRun(time.Now())))

	return nil
}

// Stop cancels in-flight ticks and waits for them to return, or for ctx to
// expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mutex.Lock()
	if !s.started || s.stopped {
		s.mutex.Unlock()
		return nil
	}
	s.stopped = true
	s.cancel()
	stopped := s.cron.Stop()
	s.mutex.Unlock()

	select {
	case <-stopped.Done():
		s.logger.Info("Keep-alive scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRun reports when the job fires next after from.
func (s *Scheduler) NextRun(from time.Time) time.Time {
	return s.schedule.Next(from)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, slog.String("error", err.Error()))...)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/angeloszaimis/keep-alive/config"
	"github.com/angeloszaimis/keep-alive/internal/httpserver"
	"github.com/angeloszaimis/keep-alive/internal/keepalive"
	"github.com/angeloszaimis/keep-alive/internal/logdir"
	"github.com/angeloszaimis/keep-alive/internal/metrics"
	"github.com/angeloszaimis/keep-alive/pkg/logger"
)

const metricsBufferSize = 256

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.Any("err", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, afero.NewOsFs(), os.Stdout); err != nil {
		slog.Error("Server startup failed", slog.Any("err", err))
		cancel()
		os.Exit(1)
	}
}

// run starts the service and blocks until ctx is cancelled or the server
// fails. Errors returned before the server listens are startup failures.
func run(ctx context.Context, fs afero.Fs, console io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	created, err := logdir.Ensure(fs, cfg.Logging.Dirs()...)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:       cfg.Logging.Level,
		AddSource:   cfg.Server.Environment != config.EnvProd,
		Environment: cfg.Server.Environment,
		Console:     console,
		File:        logger.NewFileWriter(fs, cfg.Logging.File, console),
	})
	for _, dir := range created {
		log.Info("Created logs directory", slog.String("dir", dir))
	}

	collector := metrics.NewCollector(metricsBufferSize, log)
	collector.Start(ctx)

	pinger := keepalive.NewPinger(cfg.KeepAlive, log, keepalive.WithEvents(collector.EventChannel()))
	scheduler, err := keepalive.NewScheduler(cfg.KeepAlive.Schedule, pinger, log)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(cfg.Server.Address(), setupRouter(log, collector), log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	if err := srv.Listen(); err != nil {
		log.Error("Server startup failed", slog.Any("err", err))
		return fmt.Errorf("listen on %s: %w", cfg.Server.Address(), err)
	}

	if err := scheduler.Start(ctx); err != nil {
		return err
	}

	log.Info("Server successfully started", slog.Int("port", cfg.Server.Port))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Serve()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case serveErr = <-srvErrCh:
		if serveErr != nil {
			log.Error("Server stopped unexpectedly", slog.Any("err", serveErr))
		}
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := scheduler.Stop(stopCtx); err != nil {
		log.Warn("Keep-alive scheduler did not stop in time", slog.Any("err", err))
	}

	return serveErr
}

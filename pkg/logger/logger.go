package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelKeepAlive sits between info and warn and marks successful keep-alive pings.
const LevelKeepAlive = slog.Level(2)

// Options configures New. Console defaults to os.Stdout; File is optional.
type Options struct {
	Level       string
	AddSource   bool
	Environment string
	Console     io.Writer
	File        io.Writer
}

func New(opts Options) *slog.Logger {
	level := parseLevel(opts.Level)

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	consoleOpts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   opts.AddSource,
		ReplaceAttr: dropTime(replaceLevel),
	}

	var handlers []slog.Handler
	if strings.ToLower(opts.Environment) == "prod" {
		handlers = append(handlers, slog.NewJSONHandler(console, consoleOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(console, consoleOpts))
	}

	if opts.File != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.File, &slog.HandlerOptions{
			Level:       level,
			AddSource:   opts.AddSource,
			ReplaceAttr: replaceLevel,
		}))
	}

	return slog.New(newFanout(handlers...)).With(
		slog.String("environment", opts.Environment),
	)
}

func parseLevel(level string) slog.Level {

	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelKeepAlive {
		a.Value = slog.StringValue("KEEP_ALIVE")
	}
	return a
}

func dropTime(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey && len(groups) == 0 {
			return slog.Attr{}
		}
		return next(groups, a)
	}
}

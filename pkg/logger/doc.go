// Package logger provides structured logging with configurable log levels.
// It wraps the standard log/slog package and writes every record twice: an
// un-timestamped line to the console and a timestamped line appended to the
// log file. Failures writing the file are reported on the console and never
// returned to the caller.
package logger

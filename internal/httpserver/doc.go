// Package httpserver wraps net/http's server with address validation,
// fail-fast listening and bounded graceful shutdown.
package httpserver

// Package handler implements the HTTP surface of the keep-alive service:
// the liveness probe, the JSON not-found fallback and request logging.
package handler

// Package keepalive periodically sends a GET request to a target URL so that
// an idle host does not suspend the service behind it.
//
// A Pinger performs one tick: it retries a failed request up to a configured
// number of attempts with a fixed delay in between. A Scheduler fires the
// Pinger on a cron schedule, ten-minute aligned by default, running each tick
// on its own goroutine so that a retry wait never blocks the HTTP server or
// later ticks.
package keepalive

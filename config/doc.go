// Package config loads the service configuration from environment variables
// (optionally seeded from a .env file) into an explicit Config value. It covers
// the listen port, the keep-alive target and retry policy, and log settings.
package config

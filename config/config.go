package config

import (
	"errors"
	"log/slog"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	DefaultPort       = 3000
	DefaultLogDir     = "logs"
	DefaultLogFile    = "logs/keepalive.log"
	DefaultMaxRetries = 3
	DefaultRetryDelay = 5000 * time.Millisecond

	// DefaultSchedule fires every ten minutes on the wall-clock minute grid.
	DefaultSchedule = "*/10 * * * *"
)

// ErrMissingKeepAliveURL is returned by Load when KEEP_ALIVE_URL is unset.
var ErrMissingKeepAliveURL = errors.New("KEEP_ALIVE_URL is not defined in environment variables")

type ServerConfig struct {
	Port        int
	Environment string
}

// Address returns the listen address for all interfaces.
func (s ServerConfig) Address() string {
	return net.JoinHostPort("", strconv.Itoa(s.Port))
}

type KeepAliveConfig struct {
	URL        string
	MaxRetries int
	RetryDelay time.Duration
	Schedule   string
}

type LoggingConfig struct {
	Level string
	File  string
	Dir   string
}

// Dirs returns the directories that must exist before the log file is written.
func (l LoggingConfig) Dirs() []string {
	dirs := []string{l.Dir}
	if parent := filepath.Dir(l.File); parent != "." && filepath.Clean(parent) != filepath.Clean(l.Dir) {
		dirs = append(dirs, parent)
	}
	return dirs
}

type Config struct {
	Server    ServerConfig
	KeepAlive KeepAliveConfig
	Logging   LoggingConfig
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("app_env", EnvDev)
	v.SetDefault("log_level", LogLevelInfo)
	v.SetDefault("log_file", DefaultLogFile)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{"keep_alive_url", "max_retry", "retry_delay"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	port, err := cast.ToIntE(v.Get("port"))
	if err != nil {
		slog.Error("invalid PORT", slog.String("value", v.GetString("port")))
		return nil, validation.NewError("validation_invalid_port", "PORT must be an integer")
	}

	cfg := Config{
		Server: ServerConfig{
			Port:        port,
			Environment: strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		},
		KeepAlive: KeepAliveConfig{
			URL:        strings.TrimSpace(v.GetString("keep_alive_url")),
			MaxRetries: nonNegativeInt(v, "max_retry", DefaultMaxRetries),
			RetryDelay: time.Duration(nonNegativeInt(v, "retry_delay", int(DefaultRetryDelay/time.Millisecond))) * time.Millisecond,
			Schedule:   DefaultSchedule,
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
			File:  v.GetString("log_file"),
			Dir:   DefaultLogDir,
		},
	}

	if cfg.KeepAlive.URL == "" {
		slog.Error("missing keep-alive target", slog.String("env", "KEEP_ALIVE_URL"))
		return nil, ErrMissingKeepAliveURL
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

// nonNegativeInt reads key as an integer, falling back when it is unset,
// non-numeric or negative.
func nonNegativeInt(v *viper.Viper, key string, fallback int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback
	}

	n, err := cast.ToIntE(raw)
	if err != nil || n < 0 {
		slog.Warn("ignoring invalid numeric setting, using default",
			slog.String("env", strings.ToUpper(key)),
			slog.String("value", raw),
			slog.Int("default", fallback))
		return fallback
	}

	return n
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Port,
						validation.Required,
						validation.Min(1),
						validation.Max(65535),
					),
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
				)
			}),
		),
		validation.Field(&c.KeepAlive,
			validation.By(func(value interface{}) error {
				kc, ok := value.(KeepAliveConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a KeepAliveConfig")
				}
				return validation.ValidateStruct(&kc,
					validation.Field(&kc.URL,
						validation.Required,
						is.URL,
						validation.By(validateTargetURL),
					),
					validation.Field(&kc.MaxRetries, validation.Min(0)),
					validation.Field(&kc.RetryDelay, validation.Min(time.Duration(0))),
					validation.Field(&kc.Schedule, validation.Required),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
					validation.Field(&lc.File, validation.Required),
					validation.Field(&lc.Dir, validation.Required),
				)
			}),
		),
	)
}

func validateTargetURL(value interface{}) error {
	target, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	parsedURL, err := url.Parse(target)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}

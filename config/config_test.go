package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/keep-alive/config"
)

var envKeys = []string{"PORT", "APP_ENV", "LOG_LEVEL", "LOG_FILE", "KEEP_ALIVE_URL", "MAX_RETRY", "RETRY_DELAY"}

var _ = Describe("Config", func() {
	BeforeEach(func() {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}
	})

	AfterEach(func() {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}
	})

	Describe("Load", func() {
		Context("without KEEP_ALIVE_URL", func() {
			It("should fail with the missing url error", func() {
				cfg, err := config.Load()
				Expect(err).To(MatchError(config.ErrMissingKeepAliveURL))
				Expect(cfg).To(BeNil())
			})

			It("should treat a blank value as missing", func() {
				os.Setenv("KEEP_ALIVE_URL", "   ")
				_, err := config.Load()
				Expect(err).To(MatchError(config.ErrMissingKeepAliveURL))
			})
		})

		Context("with only KEEP_ALIVE_URL set", func() {
			BeforeEach(func() {
				os.Setenv("KEEP_ALIVE_URL", "https://example.onrender.com/health")
			})

			It("should apply defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(config.DefaultPort))
				Expect(cfg.Server.Environment).To(Equal(config.EnvDev))
				Expect(cfg.Server.Address()).To(Equal(":3000"))
				Expect(cfg.KeepAlive.URL).To(Equal("https://example.onrender.com/health"))
				Expect(cfg.KeepAlive.MaxRetries).To(Equal(config.DefaultMaxRetries))
				Expect(cfg.KeepAlive.RetryDelay).To(Equal(5 * time.Second))
				Expect(cfg.KeepAlive.Schedule).To(Equal("*/10 * * * *"))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelInfo))
				Expect(cfg.Logging.File).To(Equal(config.DefaultLogFile))
				Expect(cfg.Logging.Dirs()).To(Equal([]string{"logs"}))
			})
		})

		Context("with environment overrides", func() {
			BeforeEach(func() {
				os.Setenv("KEEP_ALIVE_URL", "http://localhost:8080/ping")
				os.Setenv("PORT", "8081")
				os.Setenv("APP_ENV", "prod")
				os.Setenv("LOG_LEVEL", "DEBUG")
				os.Setenv("LOG_FILE", "/var/log/keepalive/app.log")
				os.Setenv("MAX_RETRY", "5")
				os.Setenv("RETRY_DELAY", "250")
			})

			It("should read every value", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(8081))
				Expect(cfg.Server.Environment).To(Equal(config.EnvProd))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelDebug))
				Expect(cfg.KeepAlive.MaxRetries).To(Equal(5))
				Expect(cfg.KeepAlive.RetryDelay).To(Equal(250 * time.Millisecond))
			})

			It("should also require the log file directory", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.Dirs()).To(Equal([]string{"logs", "/var/log/keepalive"}))
			})
		})

		Context("with retry settings", func() {
			BeforeEach(func() {
				os.Setenv("KEEP_ALIVE_URL", "https://example.com")
			})

			It("should keep zero retries", func() {
				os.Setenv("MAX_RETRY", "0")
				os.Setenv("RETRY_DELAY", "0")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.KeepAlive.MaxRetries).To(Equal(0))
				Expect(cfg.KeepAlive.RetryDelay).To(BeZero())
			})

			It("should fall back for non-numeric values", func() {
				os.Setenv("MAX_RETRY", "three")
				os.Setenv("RETRY_DELAY", "5s")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.KeepAlive.MaxRetries).To(Equal(config.DefaultMaxRetries))
				Expect(cfg.KeepAlive.RetryDelay).To(Equal(config.DefaultRetryDelay))
			})

			It("should fall back for negative values", func() {
				os.Setenv("MAX_RETRY", "-2")
				os.Setenv("RETRY_DELAY", "-100")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.KeepAlive.MaxRetries).To(Equal(config.DefaultMaxRetries))
				Expect(cfg.KeepAlive.RetryDelay).To(Equal(config.DefaultRetryDelay))
			})
		})

		Context("with invalid values", func() {
			BeforeEach(func() {
				os.Setenv("KEEP_ALIVE_URL", "https://example.com")
			})

			It("should reject a non-http target", func() {
				os.Setenv("KEEP_ALIVE_URL", "ftp://example.com/file")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject a non-numeric port", func() {
				os.Setenv("PORT", "http")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject an out of range port", func() {
				os.Setenv("PORT", "70000")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unknown environment", func() {
				os.Setenv("APP_ENV", "qa")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unknown log level", func() {
				os.Setenv("LOG_LEVEL", "verbose")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = &config.Config{
				Server:    config.ServerConfig{Port: 3000, Environment: config.EnvDev},
				KeepAlive: config.KeepAliveConfig{URL: "https://example.com", MaxRetries: 3, RetryDelay: time.Second, Schedule: config.DefaultSchedule},
				Logging:   config.LoggingConfig{Level: config.LogLevelInfo, File: config.DefaultLogFile, Dir: config.DefaultLogDir},
			}
		})

		It("should accept a complete config", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject a target without host", func() {
			cfg.KeepAlive.URL = "http://"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject negative retries", func() {
			cfg.KeepAlive.MaxRetries = -1
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject an empty schedule", func() {
			cfg.KeepAlive.Schedule = ""
			Expect(cfg.Validate()).NotTo(Succeed())
		})
	})
})

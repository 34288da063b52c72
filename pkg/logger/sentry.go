package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error forwarding to Sentry. An empty DSN disables
// the integration entirely, which is the expected state for local use.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

func initSentry(cfg SentryConfig) (bool, error) {
	if cfg.DSN == "" {
		return false, nil
	}
	env := cfg.Environment
	if env == "" {
		env = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		return false, fmt.Errorf("logger: sentry init: %w", err)
	}
	return true, nil
}

// sentryHandler forwards errors as Sentry issues and keeps warnings as
// searchable log entries.
func sentryHandler(min slog.Level) slog.Handler {
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if min > slog.LevelWarn {
		logLevel = []slog.Level{slog.LevelError}
	}
	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())
}

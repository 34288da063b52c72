package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// Options configures the logger destinations and verbosity.
type Options struct {
	// Level is the minimum level: debug, info, warn or error. Empty means
	// info.
	Level string `yaml:"level"`

	// Format selects console encoding: text or json. Empty means text.
	Format string `yaml:"format"`

	// File, when set, appends JSON records to this path in addition to
	// console output.
	File string `yaml:"file"`

	// Sentry, when it carries a DSN, forwards warnings and errors.
	Sentry SentryConfig `yaml:"sentry"`
}

// New builds a logger from opts. The returned close function flushes and
// releases every destination; call it before process exit.
func New(opts Options, extractors ...ContextExtractor) (*slog.Logger, func(), error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var console slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		console = slog.NewTextHandler(os.Stderr, handlerOpts)
	case "json":
		console = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		return nil, nil, fmt.Errorf("logger: unknown format %q", opts.Format)
	}

	handlers := []slog.Handler{console}
	var file io.Closer

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logger: open log file: %w", err)
		}
		file = f
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
	}

	sentryEnabled, err := initSentry(opts.Sentry)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, nil, err
	}
	if sentryEnabled {
		handlers = append(handlers, sentryHandler(level))
	}

	var handler slog.Handler
	if len(handlers) == 1 {
		handler = handlers[0]
	} else {
		handler = newFanoutHandler(handlers...)
	}

	closeFn := func() {
		if sentryEnabled {
			sentry.Flush(2 * time.Second)
		}
		if file != nil {
			file.Close()
		}
	}
	return slog.New(newContextHandler(handler, extractors...)), closeFn, nil
}

// NewNope returns a logger that discards everything. Use as a default when
// logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Package logger builds the service's zerolog loggers. Level and format
// arrive through SESSION_LOG_LEVEL and SESSION_LOG_FORMAT (see
// internal/config): console output for local work, json for deployments.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceTag = "session-api"

var (
	processLogger zerolog.Logger
	fallbackOnce  sync.Once
)

// GetLogger returns the process logger for call sites without an injected
// one, defaulting to console output at info level until New has run.
func GetLogger() zerolog.Logger {
	fallbackOnce.Do(func() {
		processLogger = build(consoleWriter(), zerolog.InfoLevel)
	})
	return processLogger
}

// New builds the logger from the configured level and format and promotes
// it to the process logger.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse SESSION_LOG_LEVEL %q: %w", level, err)
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "json":
		out = os.Stdout
	case "console", "":
		out = consoleWriter()
	default:
		return zerolog.Logger{}, fmt.Errorf("unsupported SESSION_LOG_FORMAT %q", format)
	}

	zerolog.SetGlobalLevel(lvl)
	// Claim the fallback so a later GetLogger cannot reset the
	// configured logger to the console default.
	fallbackOnce.Do(func() {})
	processLogger = build(out, lvl)
	return processLogger, nil
}

func build(out io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(out).With().
		Timestamp().
		Str("service", serviceTag).
		Logger().
		Level(lvl)
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
}

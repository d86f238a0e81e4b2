// Package logging provides the zerolog application logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"legalapi/internal/config"
)

// New builds the service logger. Request-scoped logging is handled by the
// HTTP middleware; this logger covers startup, migrations, and background
// concerns.
func New(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "legalapi").
		Logger()
}

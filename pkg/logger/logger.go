package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Format     string
	TimeFormat string
	Output     io.Writer
}

// New builds a zerolog logger from cfg.
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	switch cfg.Format {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// Setup replaces the global logger used through github.com/rs/zerolog/log.
func Setup(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	log.Logger = l
	zerolog.SetGlobalLevel(l.GetLevel())
	// log.Ctx falls back to the global logger for contexts without one.
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ProgrammerShajib/fullstack/config"
)

// Configure sets the global level and returns the process logger.
// Unknown levels fall back to info. Format "console" writes human-readable
// lines, anything else writes JSON.
func Configure(cfg config.LoggingConfig) zerolog.Logger {
	return New(os.Stdout, cfg)
}

// New is Configure with an explicit destination.
func New(out io.Writer, cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Logger()
}

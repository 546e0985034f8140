package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New constructs a zerolog logger from config settings and installs it as
// the global logger. Defaults to JSON at info level on stdout.
func New(level, format string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		lvl = parsed
	}

	var out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if strings.ToLower(strings.TrimSpace(format)) != "console" {
		logger = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	}

	log.Logger = logger
	return logger
}

package log

import (
	"io"
	"os"
	"strings"
	"wither/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a new zerolog.Logger based on the provided configuration.
// Path "stdout" writes JSON to stdout, "console" writes human readable
// output to stderr, anything else is a rotated log file.
func New(cfg config.LogConfig) zerolog.Logger {
	var writer io.Writer
	switch strings.ToLower(cfg.Path) {
	case "", "stdout":
		writer = os.Stdout
	case "console":
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	default:
		writer = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
	}

	return newLogger(writer, cfg.Level)
}

func newLogger(writer io.Writer, levelName string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil || levelName == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(writer).With().Timestamp().Logger().Level(level)
}

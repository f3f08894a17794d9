package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// serviceName tags every log line so aggregated streams stay attributable.
const serviceName = "gift-server"

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the global logger instance. Before New has applied the
// configured level and format it defaults to console output at info level.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		globalLogger = zerolog.New(consoleWriter).With().
			Timestamp().
			Str("service", serviceName).
			Logger().Level(zerolog.InfoLevel)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return globalLogger
}

// New constructs a zerolog logger based on level and format configuration.
func New(level, format string) (zerolog.Logger, error) {
	writer, err := build(level, format, os.Stdout)
	if err != nil {
		return zerolog.Logger{}, err
	}

	zerolog.SetGlobalLevel(writer.GetLevel())

	// Update global logger
	globalLogger = writer

	return globalLogger, nil
}

func build(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		writer = zerolog.New(out).With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	case "console":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.New(consoleWriter).With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	return writer.Level(lvl), nil
}

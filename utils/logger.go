package utils

import (
	"io"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// ParseLogLevel maps LOG_LEVEL values onto fiber log levels, defaulting to info
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// SetupLogger configures the application logger. When file is set, logs are
// written to stderr and appended to file; the returned func closes it.
func SetupLogger(level string, file string) (func() error, error) {
	log.SetLevel(ParseLogLevel(level))

	if file == "" {
		log.SetOutput(os.Stderr)
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))

	return f.Close, nil
}

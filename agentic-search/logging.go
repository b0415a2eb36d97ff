package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the server logger from the configuration. Output goes to
// stderr or to the configured log file; stdout is reserved for JSON-RPC
// framing. The returned close function releases the log file, if any.
func NewLogger(cfg Config) (zerolog.Logger, func() error, error) {
	var writer io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = file
		closeFn = file.Close
	}

	if !strings.EqualFold(cfg.LogFormat, "json") {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.LogFile != "",
		}
	}

	logger := zerolog.New(writer).
		Level(parseLogLevel(cfg.LogLevel, zerolog.InfoLevel)).
		With().
		Timestamp().
		Str("service", serverName).
		Logger()
	return logger, closeFn, nil
}

// parseLogLevel parses a level name, accepting the WARNING alias.
func parseLogLevel(value string, defaultValue zerolog.Level) zerolog.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "warning" {
		value = "warn"
	}
	if value == "" {
		return defaultValue
	}
	level, err := zerolog.ParseLevel(value)
	if err != nil || level == zerolog.NoLevel {
		return defaultValue
	}
	return level
}

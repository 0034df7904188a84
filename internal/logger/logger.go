// Package logger builds the structured slog logger used by every command.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const redacted = "[REDACTED]"

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	// File is used when Output is "file".
	File string `mapstructure:"file"`
}

// NewLogger initializes a new slog logger based on the provided configuration.
// When output is nil the destination is taken from cfg.Output; stderr is the
// default so that stdout stays free for the run's status line.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = resolveOutput(cfg)
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = new(slog.Level)
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactSecrets,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

func resolveOutput(cfg Config) io.Writer {
	switch cfg.Output {
	case "stdout":
		return os.Stdout
	case "file":
		path := cfg.File
		if path == "" {
			path = "pr-review.log"
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			return os.Stderr
		}
		return file
	default:
		return os.Stderr
	}
}

// redactSecrets blanks any attribute whose key names a credential.
func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	if strings.Contains(key, "token") || strings.Contains(key, "api_key") ||
		strings.Contains(key, "apikey") || strings.Contains(key, "private_key") {
		if a.Value.Kind() == slog.KindString && a.Value.String() != "" {
			return slog.String(a.Key, redacted)
		}
	}
	return a
}

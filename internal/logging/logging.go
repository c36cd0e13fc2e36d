// Package logging builds the process logger. The logger is handed to the
// booking runner explicitly so tests can capture output through any writer.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// JSON switches to JSON output for production log collectors.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// FromEnv reads GYMSCHED_LOG_LEVEL and GYMSCHED_LOG_FORMAT.
func FromEnv() Options {
	return Options{
		Level: os.Getenv("GYMSCHED_LOG_LEVEL"),
		JSON:  strings.EqualFold(os.Getenv("GYMSCHED_LOG_FORMAT"), "json"),
	}
}

func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(out, hopts)
	} else {
		h = slog.NewTextHandler(out, hopts)
	}
	return slog.New(h).With("service", "gymsched")
}

// WithRunID tags a logger with a fresh identifier so all lines from one run
// can be correlated in the host trigger's log stream.
func WithRunID(log *slog.Logger) *slog.Logger {
	return log.With("run_id", uuid.NewString())
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package logger provides the process-wide structured logger used by every
// loggraph package.
//
// Packages never construct their own handlers. They derive a child logger
// with With("component", "...") and let the CLI decide level and format.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Format selects the slog handler used for output
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	current = newLogger(os.Stderr, FormatText)
)

func newLogger(w io.Writer, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func init() {
	level.Set(slog.LevelWarn)
}

// Configure replaces the output writer and format of the default logger.
func Configure(w io.Writer, format Format) error {
	switch format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	mu.Lock()
	defer mu.Unlock()
	current = newLogger(w, format)
	return nil
}

// SetLevel parses a level name (debug, info, warn, error) and applies it.
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// Default returns the current process logger
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// With returns a child of the default logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Package logging builds the process logger: a text handler on the
// terminal, optionally fanned out to a JSON log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func SetLevel(l slog.Level) { level.Set(l) }

// New returns a logger writing text to w and, when file is non-nil, JSON to
// file. Both handlers share the package level.
func New(w io.Writer, file io.Writer) *slog.Logger {
	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Open creates the logger used by the CLI. The returned close function
// releases the log file, if any, and may be called more than once.
func Open(levelName, path string) (*slog.Logger, func() error, error) {
	l, err := ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}
	SetLevel(l)

	if path == "" {
		return New(os.Stderr, nil), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(os.Stderr, f), sync.OnceValue(f.Close), nil
}

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level  slog.Level
	Format string // "text" (default) or "json"
	// File, when set, receives a copy of every record and is rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout document and JSON-RPC output).
// It standardizes common keys (e.g., "error" -> "err").
func New(opts Options) (*slog.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
		}
		w = io.MultiWriter(os.Stderr, rotating)
		closer = rotating
	}
	return slog.New(newHandler(w, opts)), closer
}

func newHandler(w io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level: opts.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if strings.EqualFold(opts.Format, "json") {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

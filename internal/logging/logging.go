// Package logging builds the slog logger shared by the extension binaries.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Options selects the handler and level.
type Options struct {
	Level      string // debug, info, warn, error; unknown values fall back to info
	JSON       bool
	Timestamps bool
}

// New returns a logger writing to w. Meltano captures extension stderr and
// re-emits it, so JSON output is opt-in through MELTANO_LOG_JSON.
func New(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if !opts.Timestamps {
		hopts.ReplaceAttr = dropTime
	}

	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h)
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	level := slog.LevelInfo
	if name == "" {
		return level
	}
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.TrimSpace(name))); err == nil {
		level = parsed
	}
	return level
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

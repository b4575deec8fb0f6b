// Package logging configures log/slog for vkbuild and carries the logger
// through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Options controls the handler New installs.
type Options struct {
	// Verbose lowers the level to debug, which shows collaborator output.
	Verbose bool
	// JSON selects slog's JSON handler instead of the pretty one.
	JSON bool
}

// New returns a logger writing to w (os.Stderr when nil).
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(NewPrettyHandler(w, hopts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type key struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

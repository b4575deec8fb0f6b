package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
)

// LineWriter is an io.Writer that emits every complete line it receives
// as a log record at a fixed level. Close flushes a trailing partial line.
type LineWriter struct {
	logger *slog.Logger
	level  slog.Level
	attrs  []any
	buf    []byte
}

// NewLineWriter returns a LineWriter logging through logger at level.
func NewLineWriter(logger *slog.Logger, level slog.Level, attrs ...any) *LineWriter {
	return &LineWriter{logger: logger, level: level, attrs: attrs}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *LineWriter) Close() error {
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *LineWriter) emit(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Log(context.Background(), w.level, msg, w.attrs...)
}

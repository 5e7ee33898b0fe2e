package logger

import (
	"io"
	"log/slog"
)

// New builds the process logger: JSON in production, text otherwise.
func New(isProduction bool, level slog.Level, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if isProduction {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

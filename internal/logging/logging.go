// Package logging provides minimal logger construction helpers.
package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New creates a deterministic text logger at the provided level.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	})

	return slog.New(handler)
}

// NewForStream picks a handler for w: text when w is a terminal, JSON when it
// is piped or redirected so scripts can parse diagnostics.
func NewForStream(w io.Writer, level slog.Leveler) *slog.Logger {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return New(w, level)
}

// Level returns the level for the verbosity flag.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

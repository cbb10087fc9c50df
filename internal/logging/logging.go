// Package logging builds the slog loggers used across monodither.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Component names attached to log records.
const (
	ComponentCLI      = "cli"
	ComponentPipeline = "pipeline"
	ComponentEncoder  = "encoder"
	ComponentConfig   = "config"
)

// New returns a tint-formatted logger writing to w. Colour is enabled only
// when w is a terminal. verbose lowers the level to Debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(tint.NewHandler(io.Discard, &tint.Options{Level: slog.LevelError + 1}))
}

// WithComponent tags every record of l with a component attribute.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With("component", component)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Package logging writes tail's diagnostics to the error stream.
package logging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/yiblet/tail/internal/tail"
)

// Logger prints "PROG: message" diagnostics and optional debug traces.
type Logger struct {
	err   *log.Logger
	debug *log.Logger
}

// New creates a logger writing to w. The program prefix is styled when w is
// a terminal. Debug traces are discarded unless debug is set.
func New(w io.Writer, prog string, debug bool) *Logger {
	prefix := prog + ": "
	if IsTerminal(w) {
		prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render(prog) + ": "
	}

	l := &Logger{err: log.New(w, prefix, 0)}
	if debug {
		l.debug = log.New(w, prog+": debug: ", log.Lmicroseconds)
	}
	return l
}

// Errorf prints a diagnostic.
func (l *Logger) Errorf(format string, args ...any) {
	l.err.Printf(format, args...)
}

// Debugf prints a trace when debugging is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l.debug == nil {
		return
	}
	l.debug.Printf(format, args...)
}

// SourceError prints the diagnostic for a failed source.
func (l *Logger) SourceError(err *tail.SourceError) {
	if err == nil {
		return
	}
	l.err.Print(FormatSourceError(err))
}

// FormatSourceError renders a source failure the way coreutils does.
func FormatSourceError(err *tail.SourceError) string {
	reason := err.Err
	var pathErr *fs.PathError
	if errors.As(reason, &pathErr) {
		reason = pathErr.Err
	}

	switch err.Kind {
	case tail.OpenFailure:
		return fmt.Sprintf("cannot open '%s' for reading: %v", err.Source, reason)
	case tail.SeekFailure:
		return fmt.Sprintf("%s: cannot seek: %v", err.Source, reason)
	case tail.WriteFailure:
		return fmt.Sprintf("error writing output for '%s': %v", err.Source, reason)
	default:
		return fmt.Sprintf("error reading '%s': %v", err.Source, reason)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package logging

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/yiblet/tail/internal/tail"
)

func TestFormatSourceError(t *testing.T) {
	tests := []struct {
		name     string
		err      *tail.SourceError
		expected string
	}{
		{
			name: "open failure unwraps path error",
			err: &tail.SourceError{
				Source: "missing.log",
				Kind:   tail.OpenFailure,
				Err:    &fs.PathError{Op: "open", Path: "missing.log", Err: fs.ErrNotExist},
			},
			expected: "cannot open 'missing.log' for reading: file does not exist",
		},
		{
			name:     "read failure",
			err:      &tail.SourceError{Source: "dir", Kind: tail.ReadFailure, Err: errors.New("is a directory")},
			expected: "error reading 'dir': is a directory",
		},
		{
			name:     "seek failure",
			err:      &tail.SourceError{Source: "f", Kind: tail.SeekFailure, Err: errors.New("illegal seek")},
			expected: "f: cannot seek: illegal seek",
		},
		{
			name:     "write failure",
			err:      &tail.SourceError{Source: "f", Kind: tail.WriteFailure, Err: errors.New("broken pipe")},
			expected: "error writing output for 'f': broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSourceError(tt.err); got != tt.expected {
				t.Errorf("FormatSourceError() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLogger_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "tail", false)

	l.Errorf("option %s is bad", "-x")
	l.Debugf("hidden")
	l.SourceError(&tail.SourceError{Source: "a", Kind: tail.ReadFailure, Err: errors.New("boom")})
	l.SourceError(nil)

	expected := "tail: option -x is bad\ntail: error reading 'a': boom\n"
	if buf.String() != expected {
		t.Errorf("got %q, want %q", buf.String(), expected)
	}
}

func TestLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "tail", true).Debugf("offset %d", 42)

	if !strings.HasPrefix(buf.String(), "tail: debug: ") || !strings.HasSuffix(buf.String(), "offset 42\n") {
		t.Errorf("unexpected debug line %q", buf.String())
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

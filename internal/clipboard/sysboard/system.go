// Package sysboard writes the system clipboard. Clipboard helper commands
// (pbcopy on macOS, xclip or xsel on Linux) are preferred because they keep
// serving the content after tail exits; otherwise the native clipboard
// from golang.design/x/clipboard is used.
package sysboard

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"

	"golang.design/x/clipboard"
)

// SystemClipboard implements clipboard.Clipboard for the host system
type SystemClipboard struct {
	lookPath func(string) (string, error)

	initOnce sync.Once
	initErr  error
}

// New creates a new SystemClipboard instance
func New() *SystemClipboard {
	return &SystemClipboard{lookPath: exec.LookPath}
}

// IsSupported returns true if clipboard operations are supported on this system
func (s *SystemClipboard) IsSupported() bool {
	if _, _, ok := s.command(); ok {
		return true
	}
	return s.init() == nil
}

// Write implements Clipboard.Write for SystemClipboard
func (s *SystemClipboard) Write(r io.Reader) error {
	if name, args, ok := s.command(); ok {
		cmd := exec.Command(name, args...)
		cmd.Stdin = r
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("failed to run %s: %w", name, err)
		}
		return nil
	}

	if err := s.init(); err != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// command returns the helper command for the current platform, if installed.
func (s *SystemClipboard) command() (string, []string, bool) {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "linux":
		candidates = [][]string{
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}

	for _, c := range candidates {
		if _, err := s.lookPath(c[0]); err == nil {
			return c[0], c[1:], true
		}
	}
	return "", nil, false
}

func (s *SystemClipboard) init() error {
	s.initOnce.Do(func() {
		s.initErr = clipboard.Init()
	})
	return s.initErr
}

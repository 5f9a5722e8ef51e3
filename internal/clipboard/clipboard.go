// Package clipboard copies tail's output to a clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrUnsupported is returned when no clipboard is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// Clipboard is a write-only clipboard sink.
type Clipboard interface {
	// Write replaces the clipboard content with everything read from r.
	Write(r io.Reader) error

	// IsSupported reports whether the clipboard can be written.
	IsSupported() bool
}

// Copy writes data to c, failing early when c is unavailable.
func Copy(c Clipboard, data []byte) error {
	if !c.IsSupported() {
		return ErrUnsupported
	}
	if err := c.Write(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

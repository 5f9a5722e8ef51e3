// Package mockboard provides a mock clipboard implementation for testing.
package mockboard

import (
	"io"
)

// MockClipboard implements clipboard.Clipboard for testing
type MockClipboard struct {
	data        []byte
	unsupported bool
	writeErr    error
}

// New creates a new MockClipboard instance
func New() *MockClipboard {
	return &MockClipboard{}
}

// Write implements Clipboard.Write for MockClipboard
func (m *MockClipboard) Write(r io.Reader) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// SetData sets the mock clipboard data directly (for testing)
func (m *MockClipboard) SetData(data []byte) {
	m.data = data
}

// GetData returns the current clipboard data (for testing)
func (m *MockClipboard) GetData() []byte {
	return m.data
}

// SetSupported controls the IsSupported result
func (m *MockClipboard) SetSupported(supported bool) {
	m.unsupported = !supported
}

// SetWriteError makes every Write fail with err
func (m *MockClipboard) SetWriteError(err error) {
	m.writeErr = err
}

// IsSupported returns true unless disabled with SetSupported
func (m *MockClipboard) IsSupported() bool {
	return !m.unsupported
}

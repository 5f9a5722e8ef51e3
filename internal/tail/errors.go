package tail

import (
	"errors"
	"fmt"
)

// Kind classifies the I/O operation that failed while processing a source.
type Kind int

const (
	// ReadFailure is the zero value so that unclassified errors surface as read errors.
	ReadFailure Kind = iota
	OpenFailure
	SeekFailure
	WriteFailure
)

func (k Kind) String() string {
	switch k {
	case OpenFailure:
		return "open"
	case SeekFailure:
		return "seek"
	case ReadFailure:
		return "read"
	case WriteFailure:
		return "write"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IOError tags an underlying error with the operation that produced it.
// Components return it; the dispatcher attaches the source name.
type IOError struct {
	Kind Kind
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// SourceError is the error descriptor reported for a failed source.
type SourceError struct {
	Source string
	Kind   Kind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func opError(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Kind: kind, Err: err}
}

// newSourceError classifies err for source name. Errors that were not tagged
// by a component are reported as read failures.
func newSourceError(name string, err error) *SourceError {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return &SourceError{Source: name, Kind: ioErr.Kind, Err: ioErr.Err}
	}
	return &SourceError{Source: name, Kind: ReadFailure, Err: err}
}

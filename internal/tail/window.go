package tail

import (
	"bufio"
	"errors"
	"io"
)

// LineWindow keeps the most recent lines pushed into it, up to a fixed
// capacity. The oldest line is dropped when a new one arrives at capacity.
type LineWindow struct {
	lines [][]byte
	head  int // index of the oldest line once the window is full
	limit uint64
}

// NewLineWindow creates an empty window holding at most limit lines. Storage
// grows on demand so a large limit costs nothing until lines arrive.
func NewLineWindow(limit uint64) *LineWindow {
	return &LineWindow{limit: limit}
}

// Push appends line, evicting the oldest line when the window is full.
// The window keeps line itself; callers must not reuse its backing array.
func (lw *LineWindow) Push(line []byte) {
	if lw.limit == 0 {
		return
	}
	if uint64(len(lw.lines)) < lw.limit {
		lw.lines = append(lw.lines, line)
		return
	}
	lw.lines[lw.head] = line
	lw.head++
	if lw.head == len(lw.lines) {
		lw.head = 0
	}
}

// Len returns the number of lines currently held.
func (lw *LineWindow) Len() int {
	return len(lw.lines)
}

// Lines returns the held lines in arrival order.
func (lw *LineWindow) Lines() [][]byte {
	out := make([][]byte, 0, len(lw.lines))
	out = append(out, lw.lines[lw.head:]...)
	return append(out, lw.lines[:lw.head]...)
}

// WriteTo writes the held lines to w in arrival order.
func (lw *LineWindow) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, line := range lw.Lines() {
		if err := writeBlock(w, line); err != nil {
			return written, err
		}
		written += int64(len(line))
	}
	return written, nil
}

// TailStream writes the last n lines of r to w. r is read strictly forward
// and at most n lines are held at any time.
func TailStream(r io.Reader, n uint64, w io.Writer, blockSize int) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	window := NewLineWindow(n)
	br := bufio.NewReaderSize(r, blockSize)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			window.Push(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, opError(ReadFailure, err)
		}
	}
	return window.WriteTo(w)
}

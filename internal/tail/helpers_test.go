package tail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// memSource is an in-memory Source; streaming when seekable is false.
type memSource struct {
	*bytes.Reader
	seekable bool
	closed   bool
}

func newMemSource(data string, seekable bool) *memSource {
	return &memSource{Reader: bytes.NewReader([]byte(data)), seekable: seekable}
}

func (m *memSource) Seek(offset int64, whence int) (int64, error) {
	if !m.seekable {
		return 0, errors.New("not seekable")
	}
	return m.Reader.Seek(offset, whence)
}

func (m *memSource) Seekable() bool { return m.seekable }

func (m *memSource) Close() error {
	m.closed = true
	return nil
}

// mapOpener opens in-memory sources by name; names missing from the map fail.
type mapOpener struct {
	files    map[string]string
	seekable bool
	opened   []*memSource
}

func (o *mapOpener) Open(name string) (Source, error) {
	data, ok := o.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file or directory", name)
	}
	src := newMemSource(data, o.seekable)
	o.opened = append(o.opened, src)
	return src, nil
}

// countingReadSeeker records how many bytes were read through it.
type countingReadSeeker struct {
	rs   io.ReadSeeker
	read int64
}

func (c *countingReadSeeker) Read(p []byte) (int, error) {
	n, err := c.rs.Read(p)
	c.read += int64(n)
	return n, err
}

func (c *countingReadSeeker) Seek(offset int64, whence int) (int64, error) {
	return c.rs.Seek(offset, whence)
}

// failingWriter fails every write after limit bytes.
type failingWriter struct {
	limit int
	buf   bytes.Buffer
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.buf.Len()+len(p) > f.limit {
		return 0, errors.New("broken pipe")
	}
	return f.buf.Write(p)
}

// shortWriter accepts only half of every write.
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

// failingReader returns data then a read error.
type failingReader struct {
	data string
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, errors.New("input/output error")
	}
	f.done = true
	return copy(p, f.data), nil
}

// splitLines splits data after every terminator; an unterminated final line
// is kept as its own element.
func splitLines(data string) []string {
	var lines []string
	for data != "" {
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:i+1])
		data = data[i+1:]
	}
	return lines
}

// lastLines is the reference result for a from-bottom tail.
func lastLines(data string, n int) string {
	lines := splitLines(data)
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "")
}

// afterLines is the reference result for a from-top skip.
func afterLines(data string, n int) string {
	lines := splitLines(data)
	if n >= len(lines) {
		return ""
	}
	return strings.Join(lines[n:], "")
}

// sampleInputs covers empty input, terminated and unterminated final lines,
// blank lines and lines longer than the small block sizes used in tests.
func sampleInputs() map[string]string {
	long := strings.Repeat("x", 37)
	var many strings.Builder
	for i := 1; i <= 200; i++ {
		fmt.Fprintf(&many, "line %d\n", i)
	}
	return map[string]string{
		"empty":             "",
		"single newline":    "\n",
		"terminated":        "a\nb\nc\nd\n",
		"unterminated":      "a\nb\nc",
		"blank lines":       "\n\n\nx\n\n",
		"no terminator":     "just one line",
		"long lines":        long + "\n" + long + long + "\n" + long,
		"many lines":        many.String(),
		"crlf":              "one\r\ntwo\r\nthree\r\n",
		"binary bytes":      "\x00\xff\n\x01\x02\n\xfe",
		"trailing partial":  many.String() + "partial",
		"only terminators":  strings.Repeat("\n", 50),
		"single char lines": strings.Repeat("z\n", 64),
	}
}

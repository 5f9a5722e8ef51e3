// Package source opens the byte streams that tail reads from and decides
// whether each one can be scanned backward.
package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/yiblet/tail/internal/tail"
	"golang.org/x/exp/mmap"
)

// ErrNotSeekable is returned by Seek on streaming sources.
var ErrNotSeekable = errors.New("source is not seekable")

// Stream is an opened source. Regular files are seekable; pipes, terminals
// and other special files are streaming.
type Stream struct {
	r      io.Reader
	rs     io.ReadSeeker
	closer io.Closer
}

// NewStream wraps r as a source. r is seekable when it implements
// io.ReadSeeker and is not an *os.File; files are classified by Open.
func NewStream(r io.Reader) *Stream {
	s := &Stream{r: r}
	if _, isFile := r.(*os.File); !isFile {
		if rs, ok := r.(io.ReadSeeker); ok {
			s.rs = rs
		}
	}
	return s
}

func (s *Stream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Seek implements io.Seeker for seekable streams.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.rs == nil {
		return 0, ErrNotSeekable
	}
	return s.rs.Seek(offset, whence)
}

// Seekable reports whether the stream supports repositioning.
func (s *Stream) Seekable() bool {
	return s.rs != nil
}

// Close releases the underlying handle. Standard input is never closed.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Opener opens named files and "-" for standard input.
type Opener struct {
	stdin   io.Reader
	useMmap bool
}

// NewOpener creates an opener reading "-" from stdin. With useMmap set,
// regular files are memory mapped instead of read through a file handle.
func NewOpener(stdin io.Reader, useMmap bool) *Opener {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Opener{stdin: stdin, useMmap: useMmap}
}

// Open implements tail.Opener.
func (o *Opener) Open(name string) (tail.Source, error) {
	if name == tail.StdinName {
		return o.openStdin()
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if !info.Mode().IsRegular() {
		return &Stream{r: file, closer: file}, nil
	}
	if o.useMmap {
		file.Close()
		return openMapped(name)
	}
	return &Stream{r: file, rs: file, closer: file}, nil
}

func (o *Opener) openStdin() (tail.Source, error) {
	file, ok := o.stdin.(*os.File)
	if !ok {
		return NewStream(o.stdin), nil
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat standard input: %w", err)
	}
	if !info.Mode().IsRegular() {
		return &Stream{r: file}, nil
	}

	// A redirected file may already be partly consumed; it starts at the
	// inherited offset.
	off, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return &Stream{r: file}, nil
	}
	section := io.NewSectionReader(file, off, max(info.Size()-off, 0))
	return &Stream{r: section, rs: section}, nil
}

func openMapped(name string) (tail.Source, error) {
	ra, err := mmap.Open(name)
	if err != nil {
		return nil, err
	}
	section := io.NewSectionReader(ra, 0, int64(ra.Len()))
	return &Stream{r: section, rs: section, closer: ra}, nil
}

// FSOpener opens sources from an fs.FS. Files that implement io.Seeker and
// report a regular mode are seekable.
type FSOpener struct {
	fsys fs.FS
}

// NewFSOpener creates an opener rooted at fsys.
func NewFSOpener(fsys fs.FS) *FSOpener {
	return &FSOpener{fsys: fsys}
}

// Open implements tail.Opener.
func (o *FSOpener) Open(name string) (tail.Source, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	file, err := o.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	s := &Stream{r: file, closer: file}
	if rs, ok := file.(io.ReadSeeker); ok && info.Mode().IsRegular() {
		s.rs = rs
	}
	return s, nil
}

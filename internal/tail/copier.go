package tail

import (
	"errors"
	"io"
)

// CopyRemaining copies every byte left in r to w using buf as the block
// buffer. Bytes are passed through unchanged. A read of zero bytes without an
// error, or io.EOF, ends the copy.
func CopyRemaining(r io.Reader, w io.Writer, buf []byte) (int64, error) {
	if len(buf) == 0 {
		buf = make([]byte, DefaultBlockSize)
	}

	var written int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := writeBlock(w, buf[:n]); werr != nil {
				return written, werr
			}
			written += int64(n)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return written, nil
			}
			return written, opError(ReadFailure, err)
		}
		if n == 0 {
			return written, nil
		}
	}
}

// writeBlock writes p in full; a short write is reported as io.ErrShortWrite.
func writeBlock(w io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := w.Write(p)
	if err != nil {
		return opError(WriteFailure, err)
	}
	if n != len(p) {
		return opError(WriteFailure, io.ErrShortWrite)
	}
	return nil
}

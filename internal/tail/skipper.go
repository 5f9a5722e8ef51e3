package tail

import (
	"bufio"
	"errors"
	"io"
)

// SkipLines discards the first n lines of r and streams everything after
// them to w as it arrives. Skipped lines are never held in memory, however
// long they are.
func SkipLines(r io.Reader, n uint64, w io.Writer, blockSize int) (int64, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	buf := make([]byte, blockSize)
	if n == 0 {
		return CopyRemaining(r, w, buf)
	}

	br := bufio.NewReaderSize(r, blockSize)
	for skipped := uint64(0); skipped < n; {
		_, err := br.ReadSlice('\n')
		switch {
		case err == nil:
			skipped++
		case errors.Is(err, bufio.ErrBufferFull):
			// Same line continues in the next slice.
		case errors.Is(err, io.EOF):
			return 0, nil
		default:
			return 0, opError(ReadFailure, err)
		}
	}
	return CopyRemaining(br, w, buf)
}

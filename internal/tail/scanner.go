package tail

import (
	"bytes"
	"fmt"
	"io"
)

// ScanResult describes where a backward scan stopped.
type ScanResult struct {
	// Offset is the byte offset at which the requested lines begin.
	Offset int64
	// Size is the length of the source when the scan started.
	Size int64
	// Scanned is the number of bytes read by the scan.
	Scanned int64
	// Emitted is the number of bytes already written to the sink by the scan.
	Emitted int64
	// Found reports whether the boundary was located before the source start.
	Found bool
}

// scanState lives for a single backward scan.
type scanState struct {
	remaining int64  // bytes before the block most recently read
	newlines  uint64 // lines counted so far, from the end
	prevLen   int64  // length of the block most recently read
	scanned   int64
}

// BackwardScanner finds the start of the last N lines of a seekable source by
// reading fixed-size blocks from the end toward the start.
type BackwardScanner struct {
	buf []byte
}

// NewBackwardScanner returns a scanner with a reusable block buffer of
// blockSize bytes.
func NewBackwardScanner(blockSize int) *BackwardScanner {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &BackwardScanner{buf: make([]byte, blockSize)}
}

// Scan positions rs so that the last n lines can be copied from it. When the
// boundary is found inside a block, the part of that block after the boundary
// is written to w immediately and rs is left at the end of that block. When
// the source holds n lines or fewer, Offset is 0 and the caller must rewind.
// For n == 0, rs is left at end-of-source and nothing is written.
func (s *BackwardScanner) Scan(rs io.ReadSeeker, n uint64, w io.Writer) (ScanResult, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return ScanResult{}, opError(SeekFailure, err)
	}
	res := ScanResult{Size: size}
	if n == 0 {
		res.Offset = size
		res.Found = true
		return res, nil
	}

	st := scanState{remaining: size}
	for st.remaining > 0 {
		blockLen := min(st.remaining, int64(len(s.buf)))

		// Step back over the block just read and the one about to be read.
		if _, err := rs.Seek(-(blockLen + st.prevLen), io.SeekCurrent); err != nil {
			return res, opError(SeekFailure, err)
		}
		block := s.buf[:blockLen]
		if _, err := io.ReadFull(rs, block); err != nil {
			return res, opError(ReadFailure, err)
		}
		first := st.scanned == 0
		st.remaining -= blockLen
		st.prevLen = blockLen
		st.scanned += blockLen
		res.Scanned = st.scanned
		if st.scanned > size {
			return res, opError(ReadFailure, fmt.Errorf("scanned %d bytes of a %d byte source", st.scanned, size))
		}

		// An unterminated final line still counts as a line.
		if first && block[blockLen-1] != '\n' {
			st.newlines++
		}

		end := len(block)
		for {
			i := bytes.LastIndexByte(block[:end], '\n')
			if i < 0 {
				break
			}
			st.newlines++
			if st.newlines > n {
				tail := block[i+1:]
				if err := writeBlock(w, tail); err != nil {
					return res, err
				}
				res.Emitted = int64(len(tail))
				res.Offset = st.remaining + int64(i) + 1
				res.Found = true
				return res, nil
			}
			end = i
		}
	}
	return res, nil
}

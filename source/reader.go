// Package source loads input files into owned byte buffers.
//
// Symbolic links are followed: the size of a link is the size of its target.
package source

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/internal/pool"
)

// Read loads the whole file at path into a buffer from the content pool.
//
// The returned buffer holds exactly as many bytes as the file had when its
// size was queried. The caller owns the buffer and releases it with
// pool.PutContentBuffer. A file that shrinks while being read fails with
// errs.ErrIO; bytes appended after the size query are ignored.
func Read(path string) (*pool.ByteBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", errs.ErrIO, path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %q: %w", errs.ErrIO, path, err)
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %q is not a regular file", errs.ErrIO, path)
	}
	if uint64(st.Size()) > math.MaxInt {
		return nil, fmt.Errorf("%w: %q is %d bytes", errs.ErrAllocation, path, st.Size())
	}

	bb := pool.GetContentBuffer()
	if _, err := io.ReadFull(f, bb.ExtendOrGrow(int(st.Size()))); err != nil {
		pool.PutContentBuffer(bb)
		return nil, fmt.Errorf("%w: read %q: %w", errs.ErrIO, path, err)
	}

	return bb, nil
}

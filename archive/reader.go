package archive

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/internal/options"
)

// Gather reassembles the payload stream of the archive at base, described by
// m, into a single buffer of exactly m.TotalBytes bytes.
//
// All segments are checked for presence and readability before any byte is
// read; a missing one fails with errs.ErrMissingSegment. Their sizes must add
// up to m.TotalBytes, otherwise Gather fails with errs.ErrCorruptArchive
// before allocating the payload. Segments are then copied in index order, and
// a segment that changed size since the check fails the same way.
func Gather(base string, m Manifest, opts ...ReaderOption) ([]byte, error) {
	cfg := ReaderConfig{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	// sum saturates at math.MaxUint64
	var sum uint64
	for i := range m.SegmentCount {
		size, err := checkSegment(SegmentName(base, i))
		if err != nil {
			return nil, err
		}
		if sum+size < sum {
			sum = math.MaxUint64
		} else {
			sum += size
		}
	}

	if m.TotalBytes > math.MaxInt {
		return nil, fmt.Errorf("%w: manifest declares %d bytes", errs.ErrAllocation, m.TotalBytes)
	}
	if sum != m.TotalBytes {
		return nil, fmt.Errorf("%w: segments hold %d bytes, manifest declares %d",
			errs.ErrCorruptArchive, sum, m.TotalBytes)
	}

	buf := make([]byte, m.TotalBytes)

	var offset uint64
	for i := range m.SegmentCount {
		n, err := copySegment(SegmentName(base, i), buf[offset:])
		if err != nil {
			return nil, err
		}
		offset += n

		cfg.logger.Debug("gathered segment", "segment", SegmentName(base, i), "size", humanize.IBytes(n))
	}

	if offset != m.TotalBytes {
		return nil, fmt.Errorf("%w: segments hold %d bytes, manifest declares %d",
			errs.ErrCorruptArchive, offset, m.TotalBytes)
	}

	cfg.logger.Info("archive reassembled",
		"manifest", base,
		"segments", m.SegmentCount,
		"size", humanize.IBytes(m.TotalBytes))

	return buf, nil
}

// Open reads the manifest at path and reassembles the archive it describes.
func Open(path string, opts ...ReaderOption) ([]byte, Manifest, error) {
	m, err := ReadManifest(path)
	if err != nil {
		return nil, Manifest{}, err
	}

	buf, err := Gather(path, m, opts...)
	if err != nil {
		return nil, m, err
	}

	return buf, m, nil
}

// checkSegment verifies that the segment exists and can be opened, and
// returns its size.
func checkSegment(name string) (uint64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", errs.ErrMissingSegment, name, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat segment %q: %w", errs.ErrIO, name, err)
	}
	if !st.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %q is not a regular file", errs.ErrMissingSegment, name)
	}

	return uint64(st.Size()), nil
}

// copySegment copies the segment file into dst, which holds the part of the
// payload that is still unfilled, and returns the segment size.
func copySegment(name string, dst []byte) (uint64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", errs.ErrMissingSegment, name, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat segment %q: %w", errs.ErrIO, name, err)
	}

	size := uint64(st.Size())
	if size > uint64(len(dst)) {
		return 0, fmt.Errorf("%w: segment %q holds %d bytes, only %d declared bytes remain",
			errs.ErrCorruptArchive, name, size, len(dst))
	}

	if _, err := io.ReadFull(f, dst[:size]); err != nil {
		return 0, fmt.Errorf("%w: read segment %q: %w", errs.ErrIO, name, err)
	}

	return size, nil
}

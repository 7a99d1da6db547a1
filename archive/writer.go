package archive

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/internal/chunkio"
	"github.com/arloliu/segar/internal/collision"
	"github.com/arloliu/segar/internal/options"
	"github.com/arloliu/segar/internal/pool"
	"github.com/arloliu/segar/record"
)

// Writer packs records into segment files of at most the configured maximum
// size and writes the manifest on Close.
//
// Records are written in the order they are added. When a segment fills up
// in the middle of a record, the rest of the record is carried into the next
// segment. A Writer is not safe for concurrent use.
type Writer struct {
	cfg   WriterConfig
	base  string
	names *collision.Tracker

	seg      *os.File // currently open segment, nil before the first write
	segName  string
	segIndex uint64 // number of segments opened so far
	written  uint64 // payload bytes committed across all segments
	closed   bool
}

// NewWriter creates a Writer whose manifest will be written to base and whose
// segments are named base_data0, base_data1, ...
//
// No file is created until the first record is added.
func NewWriter(base string, opts ...WriterOption) (*Writer, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: empty output path", errs.ErrIO)
	}

	cfg := defaultWriterConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{
		cfg:   cfg,
		base:  base,
		names: collision.NewTracker(),
	}, nil
}

// AddFile encodes the file at path under its basename and appends the record
// to the archive.
func (w *Writer) AddFile(path string) error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	if err := w.trackName(record.Basename(path), path); err != nil {
		return err
	}

	rec, err := record.EncodeFile(path)
	if err != nil {
		return err
	}
	defer pool.PutRecordBuffer(rec)

	w.cfg.logger.Info("encoding file", "path", path, "size", humanize.IBytes(uint64(rec.Len())))

	return w.drain(rec.Bytes())
}

// AddRecord appends a record with the given name and content to the archive.
func (w *Writer) AddRecord(name string, content []byte) error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	if err := record.ValidateName(name); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrEncode, err)
	}
	if err := w.trackName(name, name); err != nil {
		return err
	}

	rec := record.Encode(name, content)
	defer pool.PutRecordBuffer(rec)

	return w.drain(rec.Bytes())
}

// Written returns the number of payload bytes committed so far.
func (w *Writer) Written() uint64 {
	return w.written
}

// SegmentCount returns the number of segments opened so far.
func (w *Writer) SegmentCount() uint64 {
	return w.segIndex
}

// Close closes the last segment and writes the manifest. The Writer cannot be
// used afterwards.
func (w *Writer) Close() (Manifest, error) {
	if w.closed {
		return Manifest{}, errs.ErrWriterClosed
	}
	w.closed = true

	if err := w.closeSegment(); err != nil {
		return Manifest{}, err
	}

	m := Manifest{SegmentCount: w.segIndex, TotalBytes: w.written}
	if err := WriteManifest(w.base, m); err != nil {
		return Manifest{}, err
	}

	w.cfg.logger.Info("archive written",
		"manifest", w.base,
		"names", w.names.Count(),
		"segments", m.SegmentCount,
		"bytes", m.TotalBytes,
		"size", humanize.IBytes(m.TotalBytes))

	return m, nil
}

// Abort closes the open segment without writing a manifest. Segments already
// written are left on disk. Abort is a no-op on a closed Writer.
func (w *Writer) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true

	return w.closeSegment()
}

func (w *Writer) trackName(name, path string) error {
	err := w.names.Track(name, path)
	if err == nil {
		return nil
	}
	if w.cfg.strictNames || !errors.Is(err, errs.ErrDuplicateName) {
		return err
	}

	w.cfg.logger.Warn("duplicate record name, decoding keeps the last one", "name", name, "path", path)

	return nil
}

// drain writes one encoded record, rotating to a new segment whenever the
// current one is full. carry is the part of the record not yet written.
func (w *Writer) drain(rec []byte) error {
	maxSize := w.cfg.maxSegmentSize

	var offset uint64
	for carry := uint64(len(rec)); carry > 0; carry = uint64(len(rec)) - offset {
		left := maxSize - w.written%maxSize
		n := min(left, carry)

		if left == maxSize {
			if err := w.rotate(); err != nil {
				return err
			}
		}

		w.cfg.logger.Debug("writing to segment",
			"segment", w.segName, "bytes", n, "size", humanize.IBytes(n))

		written, err := chunkio.Write(w.seg, rec[offset:offset+n])
		w.written += uint64(written)
		offset += uint64(written)
		if err != nil {
			return fmt.Errorf("%w: write segment %q: %w", errs.ErrIO, w.segName, err)
		}
	}

	return nil
}

func (w *Writer) rotate() error {
	if err := w.closeSegment(); err != nil {
		return err
	}

	name := SegmentName(w.base, w.segIndex)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("%w: create segment %q: %w", errs.ErrIO, name, err)
	}

	w.seg, w.segName = f, name
	w.segIndex++
	w.cfg.logger.Debug("opened segment", "segment", name, "index", w.segIndex-1)

	return nil
}

func (w *Writer) closeSegment() error {
	if w.seg == nil {
		return nil
	}

	f := w.seg
	w.seg = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close segment %q: %w", errs.ErrIO, w.segName, err)
	}

	return nil
}

// Pack writes the files at paths, in order, into an archive at base and
// returns its manifest. On failure the open segment is closed and no
// manifest is written.
func Pack(base string, paths []string, opts ...WriterOption) (Manifest, error) {
	w, err := NewWriter(base, opts...)
	if err != nil {
		return Manifest{}, err
	}

	for _, path := range paths {
		if err := w.AddFile(path); err != nil {
			_ = w.Abort()
			return Manifest{}, err
		}
	}

	return w.Close()
}

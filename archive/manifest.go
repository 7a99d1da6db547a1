package archive

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/arloliu/segar/endian"
	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/format"
)

var engine = endian.GetLittleEndianEngine()

// Manifest records how many segments an archive has and how many payload
// bytes they hold in total.
type Manifest struct {
	SegmentCount uint64 `yaml:"segment_count"`
	TotalBytes   uint64 `yaml:"total_bytes"`
}

// Bytes returns the 16-byte on-disk form of the manifest.
func (m Manifest) Bytes() []byte {
	buf := make([]byte, 0, format.ManifestSize)
	buf = engine.AppendUint64(buf, m.SegmentCount)

	return engine.AppendUint64(buf, m.TotalBytes)
}

// Parse decodes a manifest from data, which must be exactly
// format.ManifestSize bytes long.
func (m *Manifest) Parse(data []byte) error {
	if len(data) != format.ManifestSize {
		return fmt.Errorf("%w: manifest is %d bytes, want %d", errs.ErrCorruptArchive, len(data), format.ManifestSize)
	}

	m.SegmentCount = engine.Uint64(data)
	m.TotalBytes = engine.Uint64(data[format.LenSize:])

	return nil
}

// SegmentName returns the path of the segment with the given index.
func SegmentName(base string, index uint64) string {
	return base + format.SegmentSuffix + strconv.FormatUint(index, 10)
}

// ReadManifest reads the manifest file at path.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest

	f, err := os.Open(path)
	if err != nil {
		return m, fmt.Errorf("%w: open manifest %q: %w", errs.ErrIO, path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return m, fmt.Errorf("%w: stat manifest %q: %w", errs.ErrIO, path, err)
	}
	if !st.Mode().IsRegular() || st.Size() != format.ManifestSize {
		return m, fmt.Errorf("%w: %q is not a %d-byte manifest file", errs.ErrCorruptArchive, path, format.ManifestSize)
	}

	buf := make([]byte, format.ManifestSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return m, fmt.Errorf("%w: read manifest %q: %w", errs.ErrIO, path, err)
	}

	if err := m.Parse(buf); err != nil {
		return Manifest{}, err
	}

	return m, nil
}

// WriteManifest writes m to path, replacing any existing file.
func WriteManifest(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create manifest %q: %w", errs.ErrIO, path, err)
	}

	if _, err := f.Write(m.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("%w: write manifest %q: %w", errs.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close manifest %q: %w", errs.ErrIO, path, err)
	}

	return nil
}

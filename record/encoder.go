package record

import (
	"fmt"

	"github.com/arloliu/segar/endian"
	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/format"
	"github.com/arloliu/segar/internal/pool"
	"github.com/arloliu/segar/source"
)

var engine = endian.GetLittleEndianEngine()

// Entry describes one record of a payload stream.
type Entry struct {
	Name string `yaml:"name"`
	Size uint64 `yaml:"size"`
}

// Basename returns the part of path after the last '/' or '\', or the whole
// path when it contains neither.
func Basename(path string) string {
	for i := len(path); i > 0; i-- {
		if path[i-1] == '/' || path[i-1] == '\\' {
			return path[i:]
		}
	}

	return path
}

// EncodedSize returns the number of bytes a record with the given name and
// content length occupies in the payload stream.
func EncodedSize(name string, contentLen uint64) uint64 {
	return 2*format.LenSize + uint64(len(name)) + contentLen
}

// Append appends the record [len(name)][name][len(content)][content] to buf.
func Append(buf []byte, name string, content []byte) []byte {
	buf = engine.AppendUint64(buf, uint64(len(name)))
	buf = append(buf, name...)
	buf = engine.AppendUint64(buf, uint64(len(content)))

	return append(buf, content...)
}

// EncodeFile reads the file at path and encodes it, under its basename, into
// a buffer from the record pool.
//
// The caller owns the returned buffer and releases it with
// pool.PutRecordBuffer. Failures wrap errs.ErrEncode together with the
// underlying cause.
func EncodeFile(path string) (*pool.ByteBuffer, error) {
	name := Basename(path)
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w %q: %w", errs.ErrEncode, path, err)
	}

	content, err := source.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errs.ErrEncode, path, err)
	}
	defer pool.PutContentBuffer(content)

	return Encode(name, content.Bytes()), nil
}

// Encode encodes one record into a buffer from the record pool. The caller
// owns the returned buffer.
func Encode(name string, content []byte) *pool.ByteBuffer {
	rec := pool.GetRecordBuffer()
	rec.Grow(int(EncodedSize(name, uint64(len(content)))))
	rec.B = Append(rec.B, name, content)

	return rec
}

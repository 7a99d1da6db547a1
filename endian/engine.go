// Package endian provides the byte codec used for every length field in a
// segar archive.
//
// Two layers are offered. EndianEngine is the fixed-width fast path: it
// combines encoding/binary's ByteOrder and AppendByteOrder so callers can
// append 8-byte lengths without temporary slices:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, uint64(len(name)))
//
// Encode, AppendUint and Decode handle an arbitrary field width. They are
// always little-endian.
//
// # Truncation
//
// Encode and AppendUint do not check for overflow: a value larger than
// 2^(8*width)-1 silently loses its high bytes. With the 8-byte width used by
// the container this cannot happen.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of
// all segar length fields.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Encode returns value as a width-byte little-endian sequence.
func Encode(value uint64, width int) []byte {
	return AppendUint(make([]byte, 0, width), value, width)
}

// AppendUint appends value to buf as a width-byte little-endian sequence.
func AppendUint(buf []byte, value uint64, width int) []byte {
	if width == 8 {
		return binary.LittleEndian.AppendUint64(buf, value)
	}

	for range width {
		buf = append(buf, byte(value))
		value >>= 8
	}

	return buf
}

// Decode reads a width-byte little-endian value starting at b[start].
//
// A nil buffer decodes to 0. Bytes past the eighth contribute nothing, the
// same way Encode shifts them out.
func Decode(b []byte, start, width int) uint64 {
	if b == nil {
		return 0
	}
	if width == 8 {
		return binary.LittleEndian.Uint64(b[start:])
	}

	var res uint64
	for i := min(width, 8) - 1; i >= 0; i-- {
		res = res<<8 | uint64(b[start+i])
	}

	return res
}

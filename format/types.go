// Package format defines the wire-level constants of the segar container and
// the parser for human-readable segment sizes.
package format

import "math"

const (
	LenSize      = 8           // LenSize is the width in bytes of every length field.
	ManifestSize = 2 * LenSize // ManifestSize is the fixed size of the manifest file.

	// Unlimited is the internal maximum segment size used when no limit is requested.
	// With it, written%Unlimited never wraps, so only one segment is produced.
	Unlimited uint64 = math.MaxUint64

	// MaxWriteChunk bounds the size of a single write call.
	MaxWriteChunk = 128 * 1024 * 1024 // 128MiB

	SegmentSuffix = "_data"      // SegmentSuffix joins the manifest path and the segment index.
	LogFileName   = "parser.log" // LogFileName is the default decode log file.
)

// Size units accepted by ParseSize.
const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
)

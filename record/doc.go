// Package record implements the self-describing record framing of a segar
// payload stream.
//
// A record stores one file under its basename:
//
//	[8-byte name_len][name][8-byte content_len][content]
//
// Both lengths are little-endian. Records are concatenated without any
// separator; record boundaries are found only by walking the length fields.
//
// EncodeFile and Encode build records in pooled buffers that the caller owns.
// Walk and List iterate a reassembled payload, and Decoder.Extract writes its
// records back to disk.
package record

// Package archive splits a payload stream of records across capped-size
// segment files and reassembles it.
//
// An archive written to base consists of:
//
//	base          manifest: [8-byte segment count][8-byte total bytes]
//	base_data0    first slice of the payload stream
//	base_data1    ...
//
// Segments are cut at arbitrary byte offsets of the encoded stream, so one
// record may continue from one segment into the next. The manifest is written
// last, once every segment has been closed, and it always satisfies
//
//	TotalBytes == sum(size of segments) == sum(size of encoded records)
//
// Writer produces archives and Gather/Open reassemble the payload stream in
// memory; package record decodes the reassembled stream.
package archive

// Package segar packs files into a length-prefixed binary container that can
// be split across capped-size segment files, and unpacks them again.
//
// # Format
//
// Every input file becomes one record holding its basename and content:
//
//	[8-byte name_len][name][8-byte content_len][content]
//
// Records are concatenated into a payload stream, which is cut into segment
// files named <base>_data0, <base>_data1, ... of at most the requested size.
// The file <base> itself is a 16-byte manifest holding the segment count and
// the total payload size. All integers are little-endian.
//
// # Basic Usage
//
// Packing two files into 32MiB segments:
//
//	m, err := segar.Encode("out", []string{"dir/file0", "dir/file1"},
//	    archive.WithMaxSegmentSize(32*format.MiB),
//	)
//
// Unpacking them into the current directory:
//
//	entries, err := segar.Decode("out", nil)
//
// # Package Structure
//
// This package provides convenient wrappers around the archive and record
// packages. Use them directly for incremental writing (archive.Writer) or for
// walking a payload without touching the disk (record.Walk).
package segar

import (
	"github.com/arloliu/segar/archive"
	"github.com/arloliu/segar/record"
)

// Encode packs the files at paths, in order, into an archive whose manifest
// is written to base.
//
// Without archive.WithMaxSegmentSize the payload goes into a single segment.
func Encode(base string, paths []string, opts ...archive.WriterOption) (archive.Manifest, error) {
	return archive.Pack(base, paths, opts...)
}

// Decode reassembles the archive whose manifest is at path and extracts every
// record into a file. It returns the extracted entries in archive order.
func Decode(path string, readerOpts []archive.ReaderOption, decoderOpts ...record.DecoderOption) ([]record.Entry, error) {
	decoder, err := record.NewDecoder(decoderOpts...)
	if err != nil {
		return nil, err
	}

	payload, _, err := archive.Open(path, readerOpts...)
	if err != nil {
		return nil, err
	}

	return decoder.Extract(payload)
}

// List reassembles the archive whose manifest is at path and returns its
// manifest and entries without extracting anything.
func List(path string, opts ...archive.ReaderOption) (archive.Manifest, []record.Entry, error) {
	payload, m, err := archive.Open(path, opts...)
	if err != nil {
		return m, nil, err
	}

	entries, err := record.List(payload)
	if err != nil {
		return m, nil, err
	}

	return m, entries, nil
}

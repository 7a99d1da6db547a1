// Package chunkio writes large buffers in bounded chunks.
package chunkio

import (
	"io"

	"github.com/arloliu/segar/format"
)

// Write writes all of data to w, issuing writes of at most
// format.MaxWriteChunk bytes each. It returns the number of bytes written;
// a writer that accepts fewer bytes than offered without an error yields
// io.ErrShortWrite.
func Write(w io.Writer, data []byte) (int, error) {
	return writeChunks(w, data, format.MaxWriteChunk)
}

func writeChunks(w io.Writer, data []byte, chunkSize int) (int, error) {
	written := 0
	for written < len(data) {
		chunk := data[written:min(written+chunkSize, len(data))]
		n, err := w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		if n < len(chunk) {
			return written, io.ErrShortWrite
		}
	}

	return written, nil
}

// Package errs defines the sentinel errors returned by segar packages.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") and should be
// checked with errors.Is.
package errs

import "errors"

var (
	// ErrParse is returned when a size argument is malformed or overflows.
	ErrParse = errors.New("invalid size")

	// ErrIO is returned when opening, reading or writing a file fails.
	ErrIO = errors.New("i/o failure")

	// ErrAllocation is returned when a buffer of the requested size cannot be allocated.
	ErrAllocation = errors.New("buffer allocation failed")

	// ErrMissingSegment is returned when a segment named by the manifest is absent or unreadable.
	ErrMissingSegment = errors.New("missing segment")

	// ErrCorruptArchive is returned when segment or record data contradicts the manifest.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrEncode is returned when an input file cannot be encoded into a record.
	ErrEncode = errors.New("cannot encode file")

	// ErrTruncatedRecord is returned when a record length field runs past the payload end.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrInvalidName is returned when a decoded record name is not a plain file name.
	ErrInvalidName = errors.New("invalid record name")

	// ErrDuplicateName is returned when two inputs share a basename and strict names are enabled.
	ErrDuplicateName = errors.New("duplicate record name")

	// ErrWriterClosed is returned when a closed archive writer is used.
	ErrWriterClosed = errors.New("archive writer is closed")
)

package record

import (
	"fmt"
	"strings"

	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/format"
)

// Walk calls fn for every record in payload, in order.
//
// Every length field is checked against the remaining payload before it is
// used; a record that runs past the end fails with errs.ErrCorruptArchive
// wrapping errs.ErrTruncatedRecord. The content slice passed to fn aliases
// payload and is only valid during the call. An error returned by fn stops
// the walk and is returned as is.
func Walk(payload []byte, fn func(name string, content []byte) error) error {
	pos := 0
	for pos < len(payload) {
		start := pos

		nameLen, err := readLen(payload, pos, start, "name length")
		if err != nil {
			return err
		}
		pos += format.LenSize

		if nameLen > uint64(len(payload)-pos) {
			return truncated(start, "name of %d bytes", nameLen)
		}
		name := string(payload[pos : pos+int(nameLen)])
		pos += int(nameLen)

		contentLen, err := readLen(payload, pos, start, "content length")
		if err != nil {
			return err
		}
		pos += format.LenSize

		if contentLen > uint64(len(payload)-pos) {
			return truncated(start, "content of %d bytes", contentLen)
		}
		content := payload[pos : pos+int(contentLen)]
		pos += int(contentLen)

		if err := fn(name, content); err != nil {
			return err
		}
	}

	return nil
}

// List returns the name and content size of every record in payload.
func List(payload []byte) ([]Entry, error) {
	var entries []Entry
	err := Walk(payload, func(name string, content []byte) error {
		entries = append(entries, Entry{Name: name, Size: uint64(len(content))})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ValidateName reports whether name can be used as a file name inside the
// output directory. Empty names, "." and "..", and names containing a path
// separator or NUL byte are rejected with errs.ErrInvalidName.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", errs.ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", errs.ErrInvalidName, name)
	}

	return nil
}

func readLen(payload []byte, pos, start int, field string) (uint64, error) {
	if len(payload)-pos < format.LenSize {
		return 0, truncated(start, "%s", field)
	}

	return engine.Uint64(payload[pos:]), nil
}

func truncated(start int, detail string, args ...any) error {
	return fmt.Errorf("%w: %w: record at offset %d: %s runs past end of payload",
		errs.ErrCorruptArchive, errs.ErrTruncatedRecord, start, fmt.Sprintf(detail, args...))
}

package collision

import (
	"fmt"

	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/internal/hash"
)

// Tracker records the basenames packed into one archive and reports names
// that were already seen. Decoding an archive with duplicate names would let
// the later record overwrite the earlier file.
type Tracker struct {
	names   map[uint64][]string // name ID → distinct names sharing it
	sources map[string]string   // name → first source path
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[uint64][]string),
		sources: make(map[string]string),
	}
}

// Track registers name, packed from path. It returns an error wrapping
// errs.ErrDuplicateName when the same name was tracked before. Different
// names that share a hash are kept apart.
func (t *Tracker) Track(name, path string) error {
	id := hash.NameID(name)
	for _, existing := range t.names[id] {
		if existing == name {
			return fmt.Errorf("%w: %q from %q already packed from %q",
				errs.ErrDuplicateName, name, path, t.sources[name])
		}
	}

	t.names[id] = append(t.names[id], name)
	t.sources[name] = path

	return nil
}

// Count returns the number of distinct names tracked.
func (t *Tracker) Count() int {
	return len(t.sources)
}

// Package hash derives stable identifiers for record names.
package hash

import "github.com/cespare/xxhash/v2"

// NameID returns the xxHash64 of a record name.
func NameID(name string) uint64 {
	return xxhash.Sum64String(name)
}

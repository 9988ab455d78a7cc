// Package id generates identifiers for journal entries.
package id

import "github.com/oklog/ulid/v2"

// New returns a fresh ULID string. Entry ids carry their creation
// millisecond, so trades logged back to back still get distinct,
// time-ordered ids; ulid.Make's default entropy is monotonic within a
// millisecond and safe for concurrent use.
func New() string {
	return ulid.Make().String()
}

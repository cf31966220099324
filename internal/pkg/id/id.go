package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string. ULIDs sort by creation time, so session rows
// listed by id come back oldest first.
func New() string {
	return ulid.Make().String()
}

package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time, so ids of notifications created later sort after earlier ones.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// NewWithPrefix returns prefix + "-" + New().
func NewWithPrefix(prefix string) string {
	return prefix + "-" + New()
}

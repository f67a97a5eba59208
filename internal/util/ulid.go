package util

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. IDs are used to correlate the log
// lines of one generation call, so crypto/rand entropy without monotonic
// ordering is enough.
func NewULID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

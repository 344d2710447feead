// Package ulid wraps github.com/oklog/ulid/v2 with prefixed, monotonic
// identifiers used to correlate API calls and TUI sessions in the logs.
package ulid

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// PrefixRequest marks a single backend API call
	PrefixRequest = "req"

	// PrefixQuery marks one natural-language query submitted by the user
	PrefixQuery = "qry"

	// PrefixSession marks one interactive TUI session
	PrefixSession = "ses"

	// PrefixSeparator is used to separate the prefix from the ULID
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// ULID is a ulid.ULID carrying an optional prefix
type ULID struct {
	ulid.ULID
	prefix string
}

// GenerateWithPrefix creates a new ULID with the current timestamp and a prefix.
func GenerateWithPrefix(prefix string) ULID {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	entropyLock.Unlock()
	return ULID{id, prefix}
}

// String returns "prefix-ulid", or the bare ULID when no prefix is set.
func (u ULID) String() string {
	if u.prefix != "" {
		return u.prefix + PrefixSeparator + u.ULID.String()
	}
	return u.ULID.String()
}

// RequestID generates a new ULID with the request prefix
func RequestID() string {
	return GenerateWithPrefix(PrefixRequest).String()
}

// QueryID generates a new ULID with the query prefix
func QueryID() string {
	return GenerateWithPrefix(PrefixQuery).String()
}

// SessionID generates a new ULID with the session prefix
func SessionID() string {
	return GenerateWithPrefix(PrefixSession).String()
}

// Package id issues the session identifiers that tag every log line of one
// command invocation.
package id

import (
	cryptoRand "crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader = ulid.Monotonic(cryptoRand.Reader, 0)
)

// NewSession returns a ULID string. Sessions started within the same
// millisecond still sort in creation order.
func NewSession() string {
	return newAt(time.Now())
}

func newAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), entropy)
	if err != nil {
		// only on clock overflow or entropy failure
		panic(err)
	}
	return id.String()
}

// SessionTime reports when a session id was issued.
func SessionTime(session string) (time.Time, error) {
	u, err := ulid.ParseStrict(session)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}

// Package state stores OAuth "state" values between the consent redirect and
// the provider callback. Each value can be consumed exactly once.
package state

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// DefaultTTL is how long a state value stays valid when no TTL is given.
const DefaultTTL = 10 * time.Minute

var (
	// ErrEmptyState is returned when saving an empty state value.
	ErrEmptyState = errors.New("state: empty value")

	// ErrStoreClosed is returned by a Memory store after Close.
	ErrStoreClosed = errors.New("state: store closed")
)

// Store keeps pending state values.
type Store interface {
	// Save records state as pending for ttl. A non-positive ttl uses DefaultTTL.
	Save(ctx context.Context, state string, ttl time.Duration) error

	// Consume removes state and reports whether it was pending and unexpired.
	Consume(ctx context.Context, state string) (bool, error)
}

// New returns a random URL-safe state value with 256 bits of entropy.
func New() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func resolveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

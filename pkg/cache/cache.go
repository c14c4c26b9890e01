// Package cache stores solve results so repeated runs of the same problem
// return immediately.
//
// Entries are opaque byte slices addressed by string keys. Keys are derived
// by a [Keyer] from a hash of the problem definition and the options that
// affect the result, so editing a problem file naturally invalidates its
// entry.
//
// Backends:
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long solve results are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a key-value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKeyOpts holds the options that change a solve result.
type ResultKeyOpts struct {
	Strict bool `json:"strict,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for the solve result of a problem.
	ResultKey(problemHash string, opts ResultKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(problemHash string, opts ResultKeyOpts) string {
	return hashKey("result", problemHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, so that several tools or users can
// share one backend (typically Redis) without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey implements Keyer.
func (k *ScopedKeyer) ResultKey(problemHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(problemHash, opts)
}

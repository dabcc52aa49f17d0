// Package cache stores rendered artifacts keyed by their inputs.
//
// # Overview
//
// A render is fully determined by the record bytes, the drawing
// configuration and the output format, so its artifact can be reused for as
// long as the entry lives. Four backends implement [Cache]:
//
//   - [FileCache]: one file per entry, for the CLI
//   - [RedisCache]: shared storage for several render servers
//   - [MemoryCache]: process-local map, for a single render server
//   - [NullCache]: stores nothing, for --no-cache
//
// Keys come from a [Keyer] so that backends never see raw inputs:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(records), cache.ArtifactKeyOpts{
//	    Format: "svg", ConfigHash: cfgHash,
//	})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data
//	}
//
// # Errors
//
// Backends report a miss as (nil, false, nil). Errors are reserved for
// storage failures; callers treat them as misses and render anyway.
// Remote backends retry transient failures with a [Backoff] before giving
// up.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long artifacts are kept when callers do not choose.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations are safe
// for concurrent use.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered output.
	ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs besides the records.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	ConfigHash string `json:"config"`
	Header     bool   `json:"header,omitempty"`
	Engine     string `json:"engine,omitempty"`
	Legacy     bool   `json:"legacy,omitempty"`
}

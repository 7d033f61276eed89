// Package cache stores published document sets keyed by query
// fingerprint, with byte accounting based on DocSet.MemSize.
package cache

import (
	"context"

	"github.com/hupe1980/searchgo/docset"
)

// Key identifies a cached result set.
//
// Fingerprint is a hash of the canonical query encoding. Generation is
// the index generation the result was computed against; including it
// means a mutated index can never serve stale sets.
type Key struct {
	Fingerprint uint64
	Generation  uint64
}

// DocSetCache is a cache for immutable, published document sets.
// Implementations must never mutate stored values, and callers must
// treat returned sets as read-only.
type DocSetCache interface {
	// Get returns a cached set. ok=false if missing.
	Get(ctx context.Context, key Key) (ds docset.DocSet, ok bool)

	// Set caches a set. The cache may retain ds; the caller must not
	// mutate it afterwards (published sets are immutable anyway).
	Set(ctx context.Context, key Key, ds docset.DocSet)
}

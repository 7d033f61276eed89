// Package docset defines the document-set abstraction used for search
// and filter results, plus a default set algebra any representation can
// reuse.
//
// A DocSet is an unordered set of document ids, fully materialized and
// immutable. WARNING: any DocSet returned from a Searcher must not be
// modified as it may have been retrieved from a cache and could be
// shared.
package docset

import (
	"errors"
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/searchgo/core"
)

// DocSet represents an unordered set of document ids.
//
// All methods are read-only; a published DocSet is safe for
// unsynchronized concurrent use.
type DocSet interface {
	// Size returns the number of documents in the set.
	Size() int

	// Exists returns true if the document is in the set.
	Exists(id core.DocID) bool

	// Iterator returns a sequence over all documents in the set. Each
	// call yields a fresh, independent pass that produces every member
	// exactly once. The order is unspecified and may differ between
	// representations or between calls.
	Iterator() iter.Seq[core.DocID]

	// Bits returns a dense bitmap view of the set: bit i is set iff
	// document i is a member. The bitmap may be shared with the set
	// itself, so callers must treat it as read-only unless they own
	// the specific instance. For sparse representations this is a
	// heavyweight operation.
	Bits() *roaring.Bitmap

	// MemSize returns the approximate memory consumption in bytes,
	// not counting Go object overhead. Caches use it for relative
	// accounting only.
	MemSize() int64

	// Intersection returns the intersection of this set with another
	// set. Neither set is modified; the result is independently owned.
	Intersection(other DocSet) DocSet

	// IntersectionSize returns the number of documents in the
	// intersection. May be cheaper than materializing it.
	IntersectionSize(other DocSet) int

	// Union returns the union of this set with another set. Neither
	// set is modified; the result is independently owned.
	Union(other DocSet) DocSet

	// UnionSize returns the number of documents in the union. May be
	// cheaper than materializing it.
	UnionSize(other DocSet) int
}

// Sparser is implemented by representations that can intersect against
// an arbitrary operand without materializing a dense bitmap. The
// default algebra offers the other operand first refusal through this
// hook before taking the bitmap path; intersection is commutative, so
// swapping the operands is always safe.
type Sparser interface {
	// ClaimIntersection computes the intersection with other, or
	// declines with ok=false.
	ClaimIntersection(other DocSet) (res DocSet, ok bool)

	// ClaimIntersectionSize counts the intersection with other, or
	// declines with ok=false.
	ClaimIntersectionSize(other DocSet) (n int, ok bool)
}

// Ranked is implemented by DocSets whose iteration order is
// meaningful. Equality between two ranked sets compares order as well
// as membership.
type Ranked interface {
	DocSet

	// Ordered reports whether iteration order carries ranking.
	Ordered() bool
}

// Mutable is the mutation capability. Only representations designed
// for single-writer, pre-publication use implement it; published
// representations never do.
type Mutable interface {
	DocSet

	// Add inserts the document if it is not already present.
	Add(id core.DocID) error

	// AddUnique inserts a document the caller knows is not present.
	// May be faster than Add; membership is undefined if the
	// precondition is violated.
	AddUnique(id core.DocID) error
}

// ErrUnsupportedOperation is returned when a mutation is attempted on
// a representation that does not allow modification.
var ErrUnsupportedOperation = fmt.Errorf("docset: immutable representation: %w", errors.ErrUnsupported)

// Add inserts id into s if the representation allows modification.
// Immutable representations fail with ErrUnsupportedOperation on every
// call, with no partial effect.
func Add(s DocSet, id core.DocID) error {
	m, ok := s.(Mutable)
	if !ok {
		return ErrUnsupportedOperation
	}
	return m.Add(id)
}

// AddUnique inserts a document the caller has already proven absent.
// Immutable representations fail with ErrUnsupportedOperation on every
// call, with no partial effect.
func AddUnique(s DocSet, id core.DocID) error {
	m, ok := s.(Mutable)
	if !ok {
		return ErrUnsupportedOperation
	}
	return m.AddUnique(id)
}

package docset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// The functions in this file form the default set algebra: a
// representation-agnostic fallback built only from Iterator and Bits.
// Concrete representations delegate to them for the cases they have no
// faster answer for, so a new representation only needs to override
// the operations it can actually speed up.

// BitsOf builds a dense bitmap view from the iterator. Inefficient
// fallback for representations without a native bitmap.
func BitsOf(s DocSet) *roaring.Bitmap {
	bits := roaring.New()
	for id := range s.Iterator() {
		bits.Add(uint32(id))
	}
	return bits
}

// Intersection is the default intersection. The other operand gets
// first refusal via the Sparser hook; the fallback clones a's bitmap
// and ANDs b's bitmap into it.
func Intersection(a, b DocSet) DocSet {
	if sp, ok := b.(Sparser); ok {
		if res, ok := sp.ClaimIntersection(a); ok {
			return res
		}
	}

	bits := a.Bits().Clone()
	bits.And(b.Bits())
	return NewBitDocSet(bits)
}

// Union is the default union: clone-OR over bitmap views. Unlike
// intersection there is no swap-delegation here; a sparse
// representation that wants a cheaper union overrides its own Union
// method instead.
func Union(a, b DocSet) DocSet {
	bits := a.Bits().Clone()
	bits.Or(b.Bits())
	return NewBitDocSet(bits)
}

// IntersectionSize is the default intersection cardinality, with the
// same swap-delegation rule as Intersection. The fallback materializes
// the intersection and counts it; representations are expected to
// override with a counting pass where they can.
func IntersectionSize(a, b DocSet) int {
	if sp, ok := b.(Sparser); ok {
		if n, ok := sp.ClaimIntersectionSize(a); ok {
			return n
		}
	}
	return Intersection(a, b).Size()
}

// UnionSize is the default union cardinality: materialize, then count.
func UnionSize(a, b DocSet) int {
	return Union(a, b).Size()
}

// Equal reports whether a and b contain the same documents. If both
// operands are ranked, the ranking order must match as well; otherwise
// membership alone decides. Not implemented efficiently, for testing
// and correctness paths only.
func Equal(a, b DocSet) bool {
	if a.Size() != b.Size() {
		return false
	}

	ra, aRanked := a.(Ranked)
	rb, bRanked := b.(Ranked)
	if aRanked && bRanked && ra.Ordered() && rb.Ordered() {
		return equalOrdered(ra, rb)
	}

	return a.Bits().Equals(b.Bits())
}

// equalOrdered walks a's iteration order against b's in lock step.
// Sizes are already known to match.
func equalOrdered(a, b DocSet) bool {
	next, stop := iter.Pull(b.Iterator())
	defer stop()

	for ida := range a.Iterator() {
		idb, ok := next()
		if !ok || ida != idb {
			return false
		}
	}
	return true
}

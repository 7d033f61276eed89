package docset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/searchgo/core"
)

// BitDocSet is the dense representation: a roaring bitmap with one bit
// per document id. Membership, intersection and union are bitwise
// operations. Costly for very sparse sets over large id ranges; use
// HashDocSet there.
type BitDocSet struct {
	bits *roaring.Bitmap
}

var _ DocSet = (*BitDocSet)(nil)

// NewBitDocSet wraps bits. The set takes ownership; the caller must
// not modify bits afterwards.
func NewBitDocSet(bits *roaring.Bitmap) *BitDocSet {
	if bits == nil {
		bits = roaring.New()
	}
	return &BitDocSet{bits: bits}
}

// BitDocSetOf builds a dense set from ids.
func BitDocSetOf(ids ...core.DocID) *BitDocSet {
	bits := roaring.New()
	for _, id := range ids {
		bits.Add(uint32(id))
	}
	return &BitDocSet{bits: bits}
}

// Size returns the number of documents in the set.
func (s *BitDocSet) Size() int {
	return int(s.bits.GetCardinality()) //nolint:gosec
}

// Exists returns true if the document is in the set.
func (s *BitDocSet) Exists(id core.DocID) bool {
	return s.bits.Contains(uint32(id))
}

// Iterator returns a fresh ascending pass over the set.
func (s *BitDocSet) Iterator() iter.Seq[core.DocID] {
	return func(yield func(core.DocID) bool) {
		it := s.bits.Iterator()
		for it.HasNext() {
			if !yield(core.DocID(it.Next())) {
				return
			}
		}
	}
}

// Bits returns the internal bitmap, not a copy. Treat it as read-only
// unless you own this set.
func (s *BitDocSet) Bits() *roaring.Bitmap {
	return s.bits
}

// MemSize returns the serialized size of the bitmap in bytes.
func (s *BitDocSet) MemSize() int64 {
	return int64(s.bits.GetSizeInBytes()) //nolint:gosec
}

// Intersection returns the intersection with other. A dense operand is
// handled natively; everything else goes through the default algebra,
// which gives a sparse operand first refusal.
func (s *BitDocSet) Intersection(other DocSet) DocSet {
	if o, ok := other.(*BitDocSet); ok {
		return &BitDocSet{bits: roaring.And(s.bits, o.bits)}
	}
	return Intersection(s, other)
}

// IntersectionSize counts the intersection without materializing it
// when the operand is dense too.
func (s *BitDocSet) IntersectionSize(other DocSet) int {
	if o, ok := other.(*BitDocSet); ok {
		return int(s.bits.AndCardinality(o.bits)) //nolint:gosec
	}
	return IntersectionSize(s, other)
}

// Union returns the union with other.
func (s *BitDocSet) Union(other DocSet) DocSet {
	if o, ok := other.(*BitDocSet); ok {
		return &BitDocSet{bits: roaring.Or(s.bits, o.bits)}
	}
	return Union(s, other)
}

// UnionSize counts the union via |A|+|B|-|A∩B| when the operand is
// dense, avoiding the materialized union of the default path.
func (s *BitDocSet) UnionSize(other DocSet) int {
	if o, ok := other.(*BitDocSet); ok {
		and := s.bits.AndCardinality(o.bits)
		return int(s.bits.GetCardinality() + o.bits.GetCardinality() - and) //nolint:gosec
	}
	return UnionSize(s, other)
}

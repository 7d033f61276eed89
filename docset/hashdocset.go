package docset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/searchgo/core"
)

// hashEntryBytes approximates the per-entry cost of the id map: 4 key
// bytes plus bucket overhead.
const hashEntryBytes = 12

// HashDocSet is the sparse representation: an explicit hash set of
// ids. It never allocates bit-range-sized structures, which makes it
// the right choice for small result sets over large id spaces.
type HashDocSet struct {
	ids map[core.DocID]struct{}
}

var (
	_ DocSet  = (*HashDocSet)(nil)
	_ Sparser = (*HashDocSet)(nil)
)

// NewHashDocSet builds a sparse set from ids. Duplicates collapse.
func NewHashDocSet(ids ...core.DocID) *HashDocSet {
	m := make(map[core.DocID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &HashDocSet{ids: m}
}

// Size returns the number of documents in the set.
func (s *HashDocSet) Size() int {
	return len(s.ids)
}

// Exists returns true if the document is in the set.
func (s *HashDocSet) Exists(id core.DocID) bool {
	_, ok := s.ids[id]
	return ok
}

// Iterator returns a fresh pass over the set in map order.
func (s *HashDocSet) Iterator() iter.Seq[core.DocID] {
	return func(yield func(core.DocID) bool) {
		for id := range s.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Bits materializes a dense view. Heavyweight for a sparse set; the
// algebra avoids it wherever the Sparser hook applies.
func (s *HashDocSet) Bits() *roaring.Bitmap {
	return BitsOf(s)
}

// MemSize returns the approximate footprint of the id map.
func (s *HashDocSet) MemSize() int64 {
	return int64(len(s.ids)) * hashEntryBytes
}

// Intersection probes this set's members against the other operand.
func (s *HashDocSet) Intersection(other DocSet) DocSet {
	res, _ := s.ClaimIntersection(other)
	return res
}

// IntersectionSize counts the intersection without materializing it.
func (s *HashDocSet) IntersectionSize(other DocSet) int {
	n, _ := s.ClaimIntersectionSize(other)
	return n
}

// ClaimIntersection implements Sparser. The smaller side is probed
// against the larger side's membership test, so no dense structure is
// ever built.
func (s *HashDocSet) ClaimIntersection(other DocSet) (DocSet, bool) {
	if o, ok := other.(*HashDocSet); ok && len(o.ids) < len(s.ids) {
		return o.ClaimIntersection(s)
	}

	res := make(map[core.DocID]struct{}, len(s.ids))
	for id := range s.ids {
		if other.Exists(id) {
			res[id] = struct{}{}
		}
	}
	return &HashDocSet{ids: res}, true
}

// ClaimIntersectionSize implements Sparser.
func (s *HashDocSet) ClaimIntersectionSize(other DocSet) (int, bool) {
	if o, ok := other.(*HashDocSet); ok && len(o.ids) < len(s.ids) {
		return o.ClaimIntersectionSize(s)
	}

	n := 0
	for id := range s.ids {
		if other.Exists(id) {
			n++
		}
	}
	return n, true
}

// Union merges with other. Two sparse sets merge into a sparse set; a
// dense operand keeps its layout and absorbs this set's ids.
func (s *HashDocSet) Union(other DocSet) DocSet {
	if o, ok := other.(*HashDocSet); ok {
		res := make(map[core.DocID]struct{}, len(s.ids)+len(o.ids))
		for id := range s.ids {
			res[id] = struct{}{}
		}
		for id := range o.ids {
			res[id] = struct{}{}
		}
		return &HashDocSet{ids: res}
	}

	bits := other.Bits().Clone()
	for id := range s.ids {
		bits.Add(uint32(id))
	}
	return NewBitDocSet(bits)
}

// UnionSize counts |A|+|B|-|A∩B| by probing, never materializing.
func (s *HashDocSet) UnionSize(other DocSet) int {
	n, _ := s.ClaimIntersectionSize(other)
	return len(s.ids) + other.Size() - n
}

package docset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/searchgo/core"
)

// defaultCutover is the cardinality at which a Builder abandons the
// hash layout for a bitmap. Past a few tens of thousands of ids the
// map costs more per entry than the compressed bitmap.
const defaultCutover = 1 << 15

// Builder accumulates document ids before publication. It is the only
// representation implementing Mutable and is strictly single-writer:
// it must not be shared until Build has frozen it into an immutable
// set.
//
// A Builder starts with a hash layout and cuts over to a bitmap once
// the set grows past the cutover point, so callers do not need to
// guess the result cardinality up front.
type Builder struct {
	ids     map[core.DocID]struct{}
	bits    *roaring.Bitmap
	cutover int
	built   bool
}

var _ Mutable = (*Builder)(nil)

// NewBuilder creates a Builder. sizeHint pre-sizes the hash layout; a
// hint at or past the cutover point starts directly on the bitmap.
func NewBuilder(sizeHint int) *Builder {
	b := &Builder{cutover: defaultCutover}
	if sizeHint >= b.cutover {
		b.bits = roaring.New()
	} else {
		if sizeHint < 0 {
			sizeHint = 0
		}
		b.ids = make(map[core.DocID]struct{}, sizeHint)
	}
	return b
}

// Add inserts the document if it is not already present. Fails with
// ErrUnsupportedOperation once the Builder has been built.
func (b *Builder) Add(id core.DocID) error {
	if b.built {
		return ErrUnsupportedOperation
	}
	if b.bits != nil {
		b.bits.Add(uint32(id))
		return nil
	}
	b.ids[id] = struct{}{}
	if len(b.ids) >= b.cutover {
		b.migrate()
	}
	return nil
}

// AddUnique inserts a document the caller knows is absent. Both
// layouts absorb duplicates for free, so this is Add without the
// contract; it exists so callers can express the precondition.
func (b *Builder) AddUnique(id core.DocID) error {
	return b.Add(id)
}

func (b *Builder) migrate() {
	bits := roaring.New()
	for id := range b.ids {
		bits.Add(uint32(id))
	}
	b.bits = bits
	b.ids = nil
}

// Build freezes the accumulated ids into an immutable DocSet: sparse
// if the set stayed below the cutover, dense otherwise. The Builder
// refuses all further mutation.
func (b *Builder) Build() DocSet {
	b.built = true
	if b.bits != nil {
		return &BitDocSet{bits: b.bits}
	}
	return &HashDocSet{ids: b.ids}
}

// Size returns the number of documents accumulated so far.
func (b *Builder) Size() int {
	if b.bits != nil {
		return int(b.bits.GetCardinality()) //nolint:gosec
	}
	return len(b.ids)
}

// Exists returns true if the document has been added.
func (b *Builder) Exists(id core.DocID) bool {
	if b.bits != nil {
		return b.bits.Contains(uint32(id))
	}
	_, ok := b.ids[id]
	return ok
}

// Iterator returns a fresh pass over the accumulated ids.
func (b *Builder) Iterator() iter.Seq[core.DocID] {
	if b.bits != nil {
		return NewBitDocSet(b.bits).Iterator()
	}
	return func(yield func(core.DocID) bool) {
		for id := range b.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Bits returns a dense view of the accumulated ids.
func (b *Builder) Bits() *roaring.Bitmap {
	if b.bits != nil {
		return b.bits
	}
	return BitsOf(b)
}

// MemSize returns the approximate footprint of the current layout.
func (b *Builder) MemSize() int64 {
	if b.bits != nil {
		return int64(b.bits.GetSizeInBytes()) //nolint:gosec
	}
	return int64(len(b.ids)) * hashEntryBytes
}

// Intersection uses the default algebra.
func (b *Builder) Intersection(other DocSet) DocSet {
	return Intersection(b, other)
}

// IntersectionSize uses the default algebra.
func (b *Builder) IntersectionSize(other DocSet) int {
	return IntersectionSize(b, other)
}

// Union uses the default algebra.
func (b *Builder) Union(other DocSet) DocSet {
	return Union(b, other)
}

// UnionSize uses the default algebra.
func (b *Builder) UnionSize(other DocSet) int {
	return UnionSize(b, other)
}

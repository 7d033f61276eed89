package docset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/searchgo/core"
)

// DocList is a ranked result window: document ids in ranking order
// with optional scores, plus the offset of the window and the total
// number of matches it was cut from. Iteration order is the ranking,
// and equality between two DocLists compares that order.
//
// Membership tests scan the window; DocLists are meant to stay small
// (one page of results).
type DocList struct {
	ids     []core.DocID
	scores  []float32 // nil when scores were not requested
	offset  int
	matches int
}

var (
	_ DocSet = (*DocList)(nil)
	_ Ranked = (*DocList)(nil)
)

// NewDocList builds a ranked list over ids. The list takes ownership
// of both slices. scores may be nil; when present it must be parallel
// to ids. matches is the total hit count the window was cut from and
// offset the window's position in it.
func NewDocList(ids []core.DocID, scores []float32, offset, matches int) *DocList {
	return &DocList{ids: ids, scores: scores, offset: offset, matches: matches}
}

// Size returns the number of documents in the window.
func (l *DocList) Size() int {
	return len(l.ids)
}

// Exists returns true if the document is in the window.
func (l *DocList) Exists(id core.DocID) bool {
	for _, d := range l.ids {
		if d == id {
			return true
		}
	}
	return false
}

// Iterator returns a fresh pass in ranking order.
func (l *DocList) Iterator() iter.Seq[core.DocID] {
	return func(yield func(core.DocID) bool) {
		for _, id := range l.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Ordered implements Ranked.
func (l *DocList) Ordered() bool { return true }

// Scores returns the per-document scores in ranking order, or nil if
// scores were not requested. Read-only.
func (l *DocList) Scores() []float32 { return l.scores }

// Offset returns the window's position within the full match list.
func (l *DocList) Offset() int { return l.offset }

// Matches returns the total number of matches the window was cut from.
func (l *DocList) Matches() int { return l.matches }

// Bits materializes a dense view of the window.
func (l *DocList) Bits() *roaring.Bitmap {
	return BitsOf(l)
}

// MemSize returns the approximate footprint of the id and score
// slices.
func (l *DocList) MemSize() int64 {
	n := int64(len(l.ids)) * 4
	if l.scores != nil {
		n += int64(len(l.scores)) * 4
	}
	return n
}

// Intersection returns the intersection with other via the default
// algebra. The result is an unordered set; ranking does not survive
// set algebra.
func (l *DocList) Intersection(other DocSet) DocSet {
	return Intersection(l, other)
}

// IntersectionSize counts the intersection via the default algebra.
func (l *DocList) IntersectionSize(other DocSet) int {
	return IntersectionSize(l, other)
}

// Union returns the union with other via the default algebra.
func (l *DocList) Union(other DocSet) DocSet {
	return Union(l, other)
}

// UnionSize counts the union via the default algebra.
func (l *DocList) UnionSize(other DocSet) int {
	return UnionSize(l, other)
}

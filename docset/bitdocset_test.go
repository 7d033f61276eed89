package docset

import (
	"testing"

	"github.com/hupe1980/searchgo/core"
	"github.com/stretchr/testify/assert"
)

func TestBitDocSet_DensePairFastPaths(t *testing.T) {
	a := BitDocSetOf(1, 3, 5, 9)
	b := BitDocSetOf(3, 5, 7)

	inter := a.Intersection(b)
	assert.IsType(t, &BitDocSet{}, inter)
	assert.Equal(t, map[core.DocID]int{3: 1, 5: 1}, members(inter))
	assert.Equal(t, 2, a.IntersectionSize(b))

	union := a.Union(b)
	assert.IsType(t, &BitDocSet{}, union)
	assert.Equal(t, 5, union.Size())
	assert.Equal(t, 5, a.UnionSize(b))
}

func TestBitDocSet_IteratorAscending(t *testing.T) {
	s := BitDocSetOf(9, 1, 100000, 5)

	var got []core.DocID
	for id := range s.Iterator() {
		got = append(got, id)
	}
	assert.Equal(t, []core.DocID{1, 5, 9, 100000}, got)
}

func TestBitDocSet_BitsIsSharedView(t *testing.T) {
	s := BitDocSetOf(1, 2)

	bits := s.Bits()
	assert.True(t, bits.Contains(1))
	assert.True(t, bits.Contains(2))

	// Same instance on every call; callers owning the set may rely on
	// writes being visible.
	assert.Same(t, bits, s.Bits())
}

func TestNewBitDocSet_NilBitmap(t *testing.T) {
	s := NewBitDocSet(nil)
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Exists(0))
}

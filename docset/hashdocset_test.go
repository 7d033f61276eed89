package docset

import (
	"testing"

	"github.com/hupe1980/searchgo/core"
	"github.com/stretchr/testify/assert"
)

func TestHashDocSet_Duplicates(t *testing.T) {
	s := NewHashDocSet(1, 1, 2, 2, 2)
	assert.Equal(t, 2, s.Size())
}

func TestHashDocSet_ClaimProbesSmallerSide(t *testing.T) {
	small := NewHashDocSet(2, 4)
	big := NewHashDocSet(1, 2, 3, 4, 5, 6)

	// Both call orders must produce the same set.
	res1, ok := small.ClaimIntersection(big)
	assert.True(t, ok)
	res2, ok := big.ClaimIntersection(small)
	assert.True(t, ok)

	want := map[core.DocID]int{2: 1, 4: 1}
	assert.Equal(t, want, members(res1))
	assert.Equal(t, want, members(res2))

	n, ok := big.ClaimIntersectionSize(small)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestHashDocSet_UnionKeepsSparseLayout(t *testing.T) {
	a := NewHashDocSet(1, 2)
	b := NewHashDocSet(2, 3)

	union := a.Union(b)
	assert.IsType(t, &HashDocSet{}, union)
	assert.Equal(t, map[core.DocID]int{1: 1, 2: 1, 3: 1}, members(union))
}

func TestHashDocSet_UnionWithDense(t *testing.T) {
	sparse := NewHashDocSet(1, 9)
	dense := BitDocSetOf(2, 9, 100)

	union := sparse.Union(dense)
	assert.IsType(t, &BitDocSet{}, union)
	assert.Equal(t, 4, union.Size())
	assert.Equal(t, 4, sparse.UnionSize(dense))

	// The dense operand's own bitmap must not have absorbed the ids.
	assert.False(t, dense.Exists(1))
}

func TestHashDocSet_UnionSizeWithoutMaterializing(t *testing.T) {
	a := NewHashDocSet(1, 2, 3)
	b := NewHashDocSet(3, 4)
	assert.Equal(t, 4, a.UnionSize(b))
	assert.Equal(t, 4, b.UnionSize(a))
}

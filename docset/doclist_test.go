package docset

import (
	"testing"

	"github.com/hupe1980/searchgo/core"
	"github.com/stretchr/testify/assert"
)

func TestDocList_Window(t *testing.T) {
	l := NewDocList([]core.DocID{10, 4, 7}, []float32{0.9, 0.8, 0.5}, 20, 113)

	assert.Equal(t, 3, l.Size())
	assert.Equal(t, 20, l.Offset())
	assert.Equal(t, 113, l.Matches())
	assert.Equal(t, []float32{0.9, 0.8, 0.5}, l.Scores())
	assert.True(t, l.Ordered())

	assert.True(t, l.Exists(4))
	assert.False(t, l.Exists(5))
}

func TestDocList_IterationIsRankingOrder(t *testing.T) {
	l := NewDocList([]core.DocID{10, 4, 7}, nil, 0, 3)

	var got []core.DocID
	for id := range l.Iterator() {
		got = append(got, id)
	}
	assert.Equal(t, []core.DocID{10, 4, 7}, got)
}

func TestDocList_AlgebraDropsRanking(t *testing.T) {
	l := NewDocList([]core.DocID{10, 4, 7}, nil, 0, 3)
	s := NewHashDocSet(4, 7, 9)

	inter := l.Intersection(s)
	assert.Equal(t, map[core.DocID]int{4: 1, 7: 1}, members(inter))
	_, ranked := inter.(Ranked)
	assert.False(t, ranked)

	assert.Equal(t, 4, l.UnionSize(s))
}

package docset

import (
	"testing"

	"github.com/hupe1980/searchgo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SmallSetStaysSparse(t *testing.T) {
	b := NewBuilder(4)
	for _, id := range []core.DocID{1, 3, 5} {
		require.NoError(t, b.Add(id))
	}
	require.NoError(t, b.AddUnique(7))

	built := b.Build()
	assert.IsType(t, &HashDocSet{}, built)
	assert.Equal(t, map[core.DocID]int{1: 1, 3: 1, 5: 1, 7: 1}, members(built))
}

func TestBuilder_CutoverPreservesMembership(t *testing.T) {
	b := NewBuilder(0)
	n := defaultCutover + 100
	for i := range n {
		require.NoError(t, b.Add(core.DocID(i*2))) //nolint:gosec
	}

	built := b.Build()
	assert.IsType(t, &BitDocSet{}, built)
	assert.Equal(t, n, built.Size())
	assert.True(t, built.Exists(0))
	assert.True(t, built.Exists(core.DocID((n-1)*2))) //nolint:gosec
	assert.False(t, built.Exists(1))
}

func TestBuilder_LargeHintStartsDense(t *testing.T) {
	b := NewBuilder(defaultCutover)
	require.NoError(t, b.Add(1))

	assert.IsType(t, &BitDocSet{}, b.Build())
}

func TestBuilder_RefusesMutationAfterBuild(t *testing.T) {
	b := NewBuilder(2)
	require.NoError(t, b.Add(1))

	built := b.Build()
	assert.ErrorIs(t, b.Add(2), ErrUnsupportedOperation)
	assert.ErrorIs(t, b.AddUnique(2), ErrUnsupportedOperation)
	assert.Equal(t, 1, built.Size())
}

func TestBuilder_DuplicateAdds(t *testing.T) {
	b := NewBuilder(2)
	require.NoError(t, b.Add(5))
	require.NoError(t, b.Add(5))
	assert.Equal(t, 1, b.Size())
}

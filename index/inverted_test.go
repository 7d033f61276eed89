package index

import (
	"testing"

	"github.com/hupe1980/searchgo/core"
	"github.com/hupe1980/searchgo/docset"
	"github.com/hupe1980/searchgo/metadata"
	"github.com/stretchr/testify/assert"
)

func seed(ix *Inverted) {
	ix.Add(1, metadata.Document{"category": metadata.String("tech"), "year": metadata.Int(2023)})
	ix.Add(2, metadata.Document{"category": metadata.String("tech"), "year": metadata.Int(2024)})
	ix.Add(3, metadata.Document{"category": metadata.String("news"), "year": metadata.Int(2024)})
	ix.Add(4, metadata.Document{"category": metadata.String("sports")})
}

func ids(s docset.DocSet) map[core.DocID]struct{} {
	m := make(map[core.DocID]struct{})
	for id := range s.Iterator() {
		m[id] = struct{}{}
	}
	return m
}

func TestEval_Equality(t *testing.T) {
	ix := New()
	seed(ix)

	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("tech")},
	))
	assert.Equal(t, map[core.DocID]struct{}{1: {}, 2: {}}, ids(got))
}

func TestEval_Conjunction(t *testing.T) {
	ix := New()
	seed(ix)

	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("tech")},
		metadata.Filter{Key: "year", Operator: metadata.OpEqual, Value: metadata.Int(2024)},
	))
	assert.Equal(t, map[core.DocID]struct{}{2: {}}, ids(got))
}

func TestEval_In(t *testing.T) {
	ix := New()
	seed(ix)

	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpIn, Value: metadata.Array([]metadata.Value{
			metadata.String("news"), metadata.String("sports"),
		})},
	))
	assert.Equal(t, map[core.DocID]struct{}{3: {}, 4: {}}, ids(got))
}

func TestEval_ScanFallback(t *testing.T) {
	ix := New()
	seed(ix)

	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "year", Operator: metadata.OpGreaterThan, Value: metadata.Int(2023)},
	))
	assert.Equal(t, map[core.DocID]struct{}{2: {}, 3: {}}, ids(got))
}

func TestEval_IndexedNarrowsScan(t *testing.T) {
	ix := New()
	seed(ix)

	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("tech")},
		metadata.Filter{Key: "year", Operator: metadata.OpLessThan, Value: metadata.Int(2024)},
	))
	assert.Equal(t, map[core.DocID]struct{}{1: {}}, ids(got))
}

func TestEval_MissingValue(t *testing.T) {
	ix := New()
	seed(ix)

	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("finance")},
	))
	assert.Equal(t, 0, got.Size())
}

func TestEval_EmptyFilterSetMatchesAll(t *testing.T) {
	ix := New()
	seed(ix)

	assert.Equal(t, 4, ix.Eval(nil).Size())
	assert.Equal(t, 4, ix.Eval(metadata.NewFilterSet()).Size())
}

func TestRemoveAndUpdate(t *testing.T) {
	ix := New()
	seed(ix)

	ix.Remove(2)
	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("tech")},
	))
	assert.Equal(t, map[core.DocID]struct{}{1: {}}, ids(got))

	ix.Update(1, metadata.Document{"category": metadata.String("news")})
	got = ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("news")},
	))
	assert.Equal(t, map[core.DocID]struct{}{1: {}, 3: {}}, ids(got))
}

func TestGenerationBumpsOnMutation(t *testing.T) {
	ix := New()
	g0 := ix.Generation()

	ix.Add(1, metadata.Document{"k": metadata.Int(1)})
	g1 := ix.Generation()
	assert.Greater(t, g1, g0)

	ix.Remove(1)
	assert.Greater(t, ix.Generation(), g1)

	ix.Remove(99) // unknown id, no change
	g2 := ix.Generation()
	ix.Remove(99)
	assert.Equal(t, g2, ix.Generation())
}

func TestEvalWithGeneration(t *testing.T) {
	ix := New()
	seed(ix)

	fs := metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("tech")},
	)

	got, gen := ix.EvalWithGeneration(fs)
	assert.Equal(t, map[core.DocID]struct{}{1: {}, 2: {}}, ids(got))
	assert.Equal(t, ix.Generation(), gen)

	ix.Add(5, metadata.Document{"category": metadata.String("tech")})

	got, gen = ix.EvalWithGeneration(fs)
	assert.Equal(t, 3, got.Size())
	assert.Equal(t, ix.Generation(), gen, "generation must match the evaluated snapshot")
}

func TestEval_ResultDoesNotAliasIndex(t *testing.T) {
	ix := New()
	seed(ix)

	got := ix.Eval(metadata.NewFilterSet(
		metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("tech")},
	))

	ix.Remove(1)
	ix.Remove(2)

	// The published set keeps its membership.
	assert.Equal(t, map[core.DocID]struct{}{1: {}, 2: {}}, ids(got))
}

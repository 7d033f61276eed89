// Package index provides an inverted index over metadata documents.
// Filter evaluation produces immutable document sets.
package index

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/searchgo/core"
	"github.com/hupe1980/searchgo/docset"
	"github.com/hupe1980/searchgo/metadata"
)

// Inverted accelerates metadata filtering for common equality/in
// queries.
//
// Indexed operators:
// - OpEqual
// - OpIn (array of values)
//
// Other operators fall back to scanning + evaluating
// metadata.FilterSet against the stored documents.
type Inverted struct {
	mu sync.RWMutex

	// key -> valueKey -> ids
	fields map[string]map[string]map[core.DocID]struct{}

	// docs keeps the registered documents for the scan fallback and
	// for Remove/Update bookkeeping.
	docs map[core.DocID]metadata.Document

	// gen is bumped on every mutation. Result caches key on it so a
	// changed index never serves stale sets.
	gen atomic.Uint64
}

// New creates an empty inverted index.
func New() *Inverted {
	return &Inverted{
		fields: make(map[string]map[string]map[core.DocID]struct{}),
		docs:   make(map[core.DocID]metadata.Document),
	}
}

// Generation returns a counter that changes whenever the index
// contents change.
func (ix *Inverted) Generation() uint64 {
	return ix.gen.Load()
}

// Size returns the number of registered documents.
func (ix *Inverted) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Add registers a document under id. The document is cloned; later
// caller-side mutation does not leak into the index. Re-adding an id
// replaces the previous document.
func (ix *Inverted) Add(id core.DocID, doc metadata.Document) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if old, ok := ix.docs[id]; ok {
		ix.removeLocked(id, old)
	}
	doc = doc.Clone()
	ix.docs[id] = doc
	ix.addLocked(id, doc)
	ix.gen.Add(1)
}

// Remove unregisters a document. Unknown ids are a no-op.
func (ix *Inverted) Remove(id core.DocID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	doc, ok := ix.docs[id]
	if !ok {
		return
	}
	ix.removeLocked(id, doc)
	delete(ix.docs, id)
	ix.gen.Add(1)
}

// Update replaces the document registered under id.
func (ix *Inverted) Update(id core.DocID, doc metadata.Document) {
	ix.Add(id, doc)
}

func (ix *Inverted) addLocked(id core.DocID, doc metadata.Document) {
	for k, v := range doc {
		vm, ok := ix.fields[k]
		if !ok {
			vm = make(map[string]map[core.DocID]struct{})
			ix.fields[k] = vm
		}
		vk := v.Key()
		ids, ok := vm[vk]
		if !ok {
			ids = make(map[core.DocID]struct{})
			vm[vk] = ids
		}
		ids[id] = struct{}{}
	}
}

func (ix *Inverted) removeLocked(id core.DocID, doc metadata.Document) {
	for k, v := range doc {
		vm, ok := ix.fields[k]
		if !ok {
			continue
		}
		vk := v.Key()
		ids, ok := vm[vk]
		if !ok {
			continue
		}
		delete(ids, id)
		if len(ids) == 0 {
			delete(vm, vk)
		}
		if len(vm) == 0 {
			delete(ix.fields, k)
		}
	}
}

// Eval evaluates a filter set and returns the matching documents as an
// immutable DocSet. Equality and in filters resolve through postings
// and are combined with set intersections; other operators narrow the
// candidates by scanning.
//
// The returned set is independently owned and safe to publish.
func (ix *Inverted) Eval(fs *metadata.FilterSet) docset.DocSet {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.evalLocked(fs)
}

// EvalWithGeneration evaluates fs and also returns the generation the
// result was computed against. Both are read under the same lock, so
// the pair stays consistent while writers are active.
func (ix *Inverted) EvalWithGeneration(fs *metadata.FilterSet) (docset.DocSet, uint64) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.evalLocked(fs), ix.gen.Load()
}

func (ix *Inverted) evalLocked(fs *metadata.FilterSet) docset.DocSet {
	if fs == nil || len(fs.Filters) == 0 {
		return ix.allLocked()
	}

	var postings []docset.DocSet
	var slow []metadata.Filter

	for _, f := range fs.Filters {
		switch f.Operator {
		case metadata.OpEqual:
			ids := ix.postingsLocked(f.Key, f.Value)
			if len(ids) == 0 {
				return docset.NewHashDocSet()
			}
			postings = append(postings, freeze(ids))

		case metadata.OpIn:
			arr, ok := f.Value.AsArray()
			if !ok {
				return docset.NewHashDocSet()
			}
			b := docset.NewBuilder(0)
			for _, v := range arr {
				for id := range ix.postingsLocked(f.Key, v) {
					_ = b.Add(id)
				}
			}
			if b.Size() == 0 {
				return docset.NewHashDocSet()
			}
			postings = append(postings, b.Build())

		default:
			slow = append(slow, f)
		}
	}

	var candidates docset.DocSet
	if len(postings) > 0 {
		// Smallest first keeps every intermediate result small and
		// lets the sparse side claim the work.
		sort.Slice(postings, func(i, j int) bool {
			return postings[i].Size() < postings[j].Size()
		})
		candidates = postings[0]
		for _, p := range postings[1:] {
			candidates = candidates.Intersection(p)
			if candidates.Size() == 0 {
				return candidates
			}
		}
	} else {
		candidates = ix.allLocked()
	}

	if len(slow) == 0 {
		return candidates
	}

	rest := metadata.NewFilterSet(slow...)
	b := docset.NewBuilder(candidates.Size())
	for id := range candidates.Iterator() {
		if rest.Matches(ix.docs[id]) {
			_ = b.AddUnique(id)
		}
	}
	return b.Build()
}

// postingsLocked returns the live posting map for key/value, or nil.
func (ix *Inverted) postingsLocked(key string, v metadata.Value) map[core.DocID]struct{} {
	vm, ok := ix.fields[key]
	if !ok {
		return nil
	}
	return vm[v.Key()]
}

// freeze copies a live posting map into an immutable set, so results
// never alias index internals.
func freeze(ids map[core.DocID]struct{}) docset.DocSet {
	b := docset.NewBuilder(len(ids))
	for id := range ids {
		_ = b.AddUnique(id)
	}
	return b.Build()
}

func (ix *Inverted) allLocked() docset.DocSet {
	b := docset.NewBuilder(len(ix.docs))
	for id := range ix.docs {
		_ = b.AddUnique(id)
	}
	return b.Build()
}

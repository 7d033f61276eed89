package searchgo

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/searchgo/cache"
	"github.com/hupe1980/searchgo/core"
	"github.com/hupe1980/searchgo/docset"
	"github.com/hupe1980/searchgo/index"
	"github.com/hupe1980/searchgo/metadata"
	"github.com/hupe1980/searchgo/resource"
)

// defaultCacheCapacity is the result cache budget when none is
// configured.
const defaultCacheCapacity = 32 << 20

// Searcher evaluates metadata filters against an inverted index and
// caches the resulting document sets.
//
// All returned DocSets are immutable and may be shared between
// callers; they must never be modified.
type Searcher struct {
	index      *index.Inverted
	cache      cache.DocSetCache // nil when caching is disabled
	rc         *resource.Controller
	limitEvals bool
	logger     *Logger
	group      singleflight.Group
	closed     atomic.Bool
}

// New creates a Searcher.
func New(opts ...Option) *Searcher {
	o := options{
		logger:        NoopLogger(),
		cacheCapacity: defaultCacheCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var rc *resource.Controller
	if o.resourceCfg != (resource.Config{}) {
		rc = resource.NewController(o.resourceCfg)
	}

	s := &Searcher{
		index:      index.New(),
		rc:         rc,
		limitEvals: o.resourceCfg.MaxEvaluations > 0,
		logger:     o.logger,
	}

	if !o.noCache {
		var codec *cache.Codec
		if o.compression != cache.CompressionNone {
			codec = cache.NewCodec(o.compression, rc)
		}
		s.cache = cache.NewLRU(o.cacheCapacity, rc, codec)
	}

	return s
}

// Index returns the underlying inverted index.
func (s *Searcher) Index() *index.Inverted {
	return s.index
}

// Insert registers a document under id, replacing any previous
// document with the same id.
func (s *Searcher) Insert(id core.DocID, doc metadata.Document) {
	s.index.Add(id, doc)
	s.logger.LogInsert(context.Background(), uint32(id), len(doc))
}

// Update replaces the document registered under id.
func (s *Searcher) Update(id core.DocID, doc metadata.Document) {
	s.index.Update(id, doc)
}

// Delete unregisters a document.
func (s *Searcher) Delete(id core.DocID) {
	s.index.Remove(id)
	s.logger.LogDelete(context.Background(), uint32(id))
}

// Search evaluates the filter set and returns the matching documents
// as an immutable DocSet. Results are cached per query fingerprint and
// index generation; concurrent identical queries evaluate once.
func (s *Searcher) Search(ctx context.Context, fs *metadata.FilterSet) (docset.DocSet, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.Key{
		Fingerprint: fingerprint(fs),
		Generation:  s.index.Generation(),
	}

	if s.cache != nil {
		if ds, ok := s.cache.Get(ctx, key); ok {
			s.logger.LogSearch(ctx, key.Fingerprint, true, ds.Size(), nil)
			return ds, nil
		}
	}

	v, err, _ := s.group.Do(flightKey(key), func() (any, error) {
		if s.limitEvals {
			if err := s.rc.AcquireEvaluation(ctx); err != nil {
				return nil, err
			}
			defer s.rc.ReleaseEvaluation()
		}

		// The generation is re-read under the evaluation lock so the
		// result is cached under the generation it was computed
		// against, even when a writer slipped in after the lookup.
		ds, gen := s.index.EvalWithGeneration(fs)
		if s.cache != nil {
			s.cache.Set(ctx, cache.Key{Fingerprint: key.Fingerprint, Generation: gen}, ds)
		}
		return ds, nil
	})
	if err != nil {
		s.logger.LogSearch(ctx, key.Fingerprint, false, 0, err)
		return nil, err
	}

	ds := v.(docset.DocSet)
	s.logger.LogSearch(ctx, key.Fingerprint, false, ds.Size(), nil)
	return ds, nil
}

// Close marks the searcher closed; subsequent searches fail with
// ErrClosed. Close is idempotent.
func (s *Searcher) Close() error {
	s.closed.Store(true)
	return nil
}

// fingerprint hashes the canonical encoding of a filter set. Filter
// order is significant: the encoding is positional, as FilterSet
// documents.
func fingerprint(fs *metadata.FilterSet) uint64 {
	h := xxhash.New()
	if fs == nil {
		return h.Sum64()
	}
	for _, f := range fs.Filters {
		_, _ = h.WriteString(f.Key)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(string(f.Operator))
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(f.Value.Key())
		_, _ = h.Write([]byte{0x1e})
	}
	return h.Sum64()
}

func flightKey(key cache.Key) string {
	buf := make([]byte, 0, 42)
	buf = strconv.AppendUint(buf, key.Fingerprint, 16)
	buf = append(buf, ':')
	buf = strconv.AppendUint(buf, key.Generation, 16)
	return string(buf)
}

package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/searchgo/docset"
	"github.com/hupe1980/searchgo/resource"
)

// LRU implements DocSetCache with least-recently-used eviction.
//
// Entries are accounted in bytes: DocSet.MemSize for directly stored
// sets, payload length for codec-compressed entries. A
// resource.Controller, if provided, enforces a global budget on top of
// the cache's own capacity.
type LRU struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[Key]*list.Element
	evictList *list.List
	rc        *resource.Controller
	codec     *Codec // nil stores sets directly

	hits   atomic.Int64
	misses atomic.Int64
}

var _ DocSetCache = (*LRU)(nil)

type entry struct {
	key   Key
	ds    docset.DocSet // nil when the entry is compressed
	raw   []byte        // codec payload, nil when stored directly
	bytes int64
}

// NewLRU creates an LRU cache with the given capacity in bytes. rc
// may be nil (no global budget). codec may be nil (sets are retained
// as-is instead of compressed).
func NewLRU(capacity int64, rc *resource.Controller, codec *Codec) *LRU {
	return &LRU{
		capacity:  capacity,
		items:     make(map[Key]*list.Element),
		evictList: list.New(),
		rc:        rc,
		codec:     codec,
	}
}

// Get returns a cached set. Compressed entries are decoded into a
// fresh dense set on every hit.
func (c *LRU) Get(ctx context.Context, key Key) (docset.DocSet, bool) {
	c.mu.Lock()
	ent, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}
	c.evictList.MoveToFront(ent)
	e := ent.Value.(*entry)
	ds, raw := e.ds, e.raw
	c.mu.Unlock()

	if raw != nil {
		// Decode outside the lock; the payload is immutable.
		decoded, err := c.codec.Decode(ctx, raw)
		if err != nil {
			// Drop the entry so a bad payload does not keep failing
			// and holding budget until eviction. A concurrent Set may
			// have replaced it in the meantime, so only the same entry
			// is removed.
			c.mu.Lock()
			if cur, ok := c.items[key]; ok && cur.Value.(*entry) == e {
				c.removeElement(cur)
			}
			c.mu.Unlock()
			c.misses.Add(1)
			return nil, false
		}
		c.hits.Add(1)
		return decoded, true
	}

	c.hits.Add(1)
	return ds, true
}

// Set caches a set under key. Entries larger than the capacity, or
// refused by the global budget, are not cached.
func (c *LRU) Set(ctx context.Context, key Key, ds docset.DocSet) {
	e := &entry{key: key, ds: ds, bytes: ds.MemSize()}
	if c.codec != nil {
		if raw, err := c.codec.Encode(ctx, ds); err == nil {
			e.ds, e.raw, e.bytes = nil, raw, int64(len(raw))
		}
		// On encode failure the set is kept uncompressed.
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.items[key]; ok {
		c.removeElement(old)
	}

	if e.bytes > c.capacity {
		return
	}

	// Evict locally first so released memory is available before we
	// ask the global budget for more.
	for c.size+e.bytes > c.capacity {
		tail := c.evictList.Back()
		if tail == nil {
			break
		}
		c.removeElement(tail)
	}

	if c.rc != nil && !c.rc.TryAcquireMemory(e.bytes) {
		return
	}

	ent := c.evictList.PushFront(e)
	c.items[key] = ent
	c.size += e.bytes
}

func (c *LRU) removeElement(ent *list.Element) {
	e := ent.Value.(*entry)
	c.evictList.Remove(ent)
	delete(c.items, e.key)
	c.size -= e.bytes
	if c.rc != nil {
		c.rc.ReleaseMemory(e.bytes)
	}
}

// Size returns the accounted bytes currently held.
func (c *LRU) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cumulative hit and miss counts.
func (c *LRU) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge drops all entries and releases their budget.
func (c *LRU) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		tail := c.evictList.Back()
		if tail == nil {
			return
		}
		c.removeElement(tail)
	}
}

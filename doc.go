// Package searchgo provides the document-filtering core of an
// embedded retrieval engine for Go.
//
// The heart of the module is the docset package: an immutable
// document-set abstraction with a default set algebra that any
// representation can reuse, plus dense (bitmap), sparse (hash) and
// ranked representations. On top of it, searchgo wires an inverted
// index over typed metadata documents and a fingerprint-keyed result
// cache.
//
// # Quick Start
//
//	s := searchgo.New(searchgo.WithCacheCapacity(8 << 20))
//
//	s.Insert(1, metadata.Document{"category": metadata.String("tech")})
//	s.Insert(2, metadata.Document{"category": metadata.String("news")})
//
//	ds, _ := s.Search(ctx, metadata.NewFilterSet(
//	    metadata.Filter{Key: "category", Operator: metadata.OpEqual, Value: metadata.String("tech")},
//	))
//	for id := range ds.Iterator() {
//	    fmt.Println(id)
//	}
//
// # Immutability
//
// Any DocSet returned from a Searcher must not be modified: it may
// have been retrieved from the cache and could be shared. Combine sets
// with the docset algebra instead; every operation returns a new,
// independently owned set.
//
// # Key Features
//
//   - Double-dispatch set algebra: the cheaper representation decides
//     the algorithm, whichever operand starts the call
//   - Roaring-bitmap dense sets, hash-based sparse sets, ranked lists
//   - Result caching with MemSize-based accounting and optional
//     LZ4/ZSTD entry compression
//   - Structured logging via log/slog
package searchgo

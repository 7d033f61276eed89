package core

// DocID is a dense, non-negative identifier for a document within a
// single index. It is strictly 32-bit, allowing for max 4 Billion
// documents per index. Used for all hot-path structures (posting
// lists, bitmaps, result sets).
type DocID uint32

// MaxDocID is the maximum possible value for a DocID.
const MaxDocID = ^DocID(0)

package searchgo

import (
	"errors"

	"github.com/hupe1980/searchgo/docset"
)

var (
	// ErrClosed is returned when the searcher has been closed.
	ErrClosed = errors.New("searchgo: closed")

	// ErrUnsupportedOperation is returned when a mutation is attempted
	// on an immutable document set. Re-exported from docset so callers
	// holding only the facade can match it.
	ErrUnsupportedOperation = docset.ErrUnsupportedOperation
)

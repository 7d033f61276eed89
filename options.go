package searchgo

import (
	"github.com/hupe1980/searchgo/cache"
	"github.com/hupe1980/searchgo/resource"
)

type options struct {
	logger        *Logger
	cacheCapacity int64
	compression   cache.Compression
	resourceCfg   resource.Config
	noCache       bool
}

// Option configures Searcher constructor behavior.
type Option func(*options)

// WithLogger configures the logger. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithCacheCapacity sets the result cache capacity in bytes. The
// default is 32 MiB.
func WithCacheCapacity(capacity int64) Option {
	return func(o *options) {
		o.cacheCapacity = capacity
	}
}

// WithCompression selects the compression used for cached result
// sets. The default keeps sets uncompressed in memory.
//
// Compressed entries trade CPU on every hit for a smaller footprint;
// use it when result sets are large and hit rates moderate.
func WithCompression(c cache.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceConfig sets global budgets (memory, concurrent
// evaluations, codec throughput).
func WithResourceConfig(cfg resource.Config) Option {
	return func(o *options) {
		o.resourceCfg = cfg
	}
}

// WithoutCache disables result caching entirely.
func WithoutCache() Option {
	return func(o *options) {
		o.noCache = true
	}
}

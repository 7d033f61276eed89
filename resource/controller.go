// Package resource tracks global budgets: cache memory, concurrent
// evaluations, and codec throughput.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory (cached
	// result sets). If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxEvaluations is the maximum number of concurrent filter
	// evaluations. If 0, defaults to 1.
	MaxEvaluations int64

	// CodecLimitBytesPerSec caps the throughput of cache entry
	// compression/decompression. If 0, unlimited.
	CodecLimitBytesPerSec int64
}

// Controller manages global resources (memory, concurrency, codec
// throughput).
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	evalSem *semaphore.Weighted

	// Codec throughput
	codecLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxEvaluations <= 0 {
		cfg.MaxEvaluations = 1
	}

	c := &Controller{
		cfg:     cfg,
		evalSem: semaphore.NewWeighted(cfg.MaxEvaluations),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.CodecLimitBytesPerSec > 0 {
		c.codecLimiter = rate.NewLimiter(rate.Limit(cfg.CodecLimitBytesPerSec), int(cfg.CodecLimitBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory. If a hard limit is
// configured and usage would exceed it, this blocks until memory is
// available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if the limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireEvaluation reserves an evaluation slot. Blocks if all slots
// are busy.
func (c *Controller) AcquireEvaluation(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.evalSem.Acquire(ctx, 1)
}

// TryAcquireEvaluation reserves an evaluation slot without blocking.
func (c *Controller) TryAcquireEvaluation() bool {
	if c == nil {
		return true
	}
	return c.evalSem.TryAcquire(1)
}

// ReleaseEvaluation releases an evaluation slot.
func (c *Controller) ReleaseEvaluation() {
	if c == nil {
		return
	}
	c.evalSem.Release(1)
}

// AcquireCodec waits until the codec throughput limit allows the
// specified number of bytes.
func (c *Controller) AcquireCodec(ctx context.Context, bytes int) error {
	if c == nil || c.codecLimiter == nil {
		return nil
	}
	return c.codecLimiter.WaitN(ctx, bytes)
}

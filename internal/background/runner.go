// Package background runs detached side effects that must not block or fail a request.
package background

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner executes fire-and-forget tasks. Failures are logged, never returned.
type Runner struct {
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRunner returns a runner whose tasks each get their own context bounded by timeout.
// A zero timeout leaves tasks unbounded.
func NewRunner(logger *zap.Logger, timeout time.Duration) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, timeout: timeout}
}

// Go starts fn in its own goroutine. The context passed to fn is not tied to any request.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("background task panicked", zap.String("task", name), zap.Any("panic", rec))
			}
		}()

		ctx := context.Background()
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		if err := fn(ctx); err != nil {
			r.logger.Warn("background task failed", zap.String("task", name), zap.Error(err))
		}
	}()
}

// Wait blocks until every started task has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

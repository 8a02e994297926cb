// Package taskrunner schedules work detached from the request lifecycle.
// Completion is observed only through durable state, never through a return
// value, so the submitting request is free to respond immediately.
package taskrunner

import (
	"context"
	"sync"

	"vidquiz/internal/logger"

	"go.uber.org/zap"
)

// Runner submits a task for execution independent of the caller.
type Runner interface {
	Submit(task func(ctx context.Context))
}

// GoRunner runs each task on its own goroutine with panic recovery. Wait
// drains in-flight tasks, which main uses during graceful shutdown.
type GoRunner struct {
	wg sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewGoRunner creates a new GoRunner.
func NewGoRunner() *GoRunner {
	return &GoRunner{}
}

// Submit implements Runner
func (r *GoRunner) Submit(task func(ctx context.Context)) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		logger.Get().Warn("task submitted after runner shutdown, dropping")
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				logger.Get().Error("task panicked", zap.Any("panic", p))
			}
		}()
		task(context.Background())
	}()
}

// Wait blocks until all submitted tasks have finished. Further submissions
// are dropped.
func (r *GoRunner) Wait() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
}

// SyncRunner executes tasks inline. Used in tests to make the detached job
// body deterministic.
type SyncRunner struct{}

// Submit implements Runner
func (SyncRunner) Submit(task func(ctx context.Context)) {
	task(context.Background())
}

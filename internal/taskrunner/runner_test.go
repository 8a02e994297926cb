package taskrunner

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoRunner_WaitDrainsTasks(t *testing.T) {
	runner := NewGoRunner()
	var ran atomic.Int32

	for i := 0; i < 10; i++ {
		runner.Submit(func(ctx context.Context) {
			ran.Add(1)
		})
	}
	runner.Wait()

	assert.Equal(t, int32(10), ran.Load())
}

func TestGoRunner_RecoversPanics(t *testing.T) {
	runner := NewGoRunner()
	var after atomic.Bool

	runner.Submit(func(ctx context.Context) {
		panic("boom")
	})
	runner.Submit(func(ctx context.Context) {
		after.Store(true)
	})
	runner.Wait()

	assert.True(t, after.Load(), "a panicking task must not take the runner down")
}

func TestGoRunner_DropsTasksAfterWait(t *testing.T) {
	runner := NewGoRunner()
	runner.Wait()

	var ran atomic.Bool
	runner.Submit(func(ctx context.Context) {
		ran.Store(true)
	})
	runner.Wait()

	assert.False(t, ran.Load())
}

func TestSyncRunner_RunsInline(t *testing.T) {
	var ran bool
	SyncRunner{}.Submit(func(ctx context.Context) {
		ran = true
	})
	assert.True(t, ran)
}

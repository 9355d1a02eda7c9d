package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/testing/leaktest"
)

const testQueueSize = 10

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, testQueueSize)
	pool.Start()
	defer pool.Stop()

	job := JobFunc(func(context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})
	pool.Enqueue(job)
	pool.Enqueue(job)

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestPool_FailingJobKeepsWorkerAlive(t *testing.T) {
	var executed int32
	pool := NewPool(1, testQueueSize)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(JobFunc(func(context.Context) error { return errors.New("boom") }))
	pool.Enqueue(JobFunc(func(context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	}))

	require.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return pool.Stats().Processed == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), pool.Stats().Failed)
}

func TestPool_PanickingJobIsContained(t *testing.T) {
	var executed atomic.Int32
	pool := NewPool(1, testQueueSize)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(JobFunc(func(context.Context) error { panic("bad job") }))
	pool.Enqueue(JobFunc(func(context.Context) error {
		executed.Add(1)
		return nil
	}))

	require.Eventually(t, func() bool { return executed.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return pool.Stats().Processed == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), pool.Stats().Failed)
}

func TestPool_TryEnqueueFull(t *testing.T) {
	pool := NewPool(1, 1) // not started, so nothing drains the queue
	defer pool.Stop()
	noop := JobFunc(func(context.Context) error { return nil })

	assert.True(t, pool.TryEnqueue(noop))
	assert.False(t, pool.TryEnqueue(noop))
	assert.Equal(t, int64(1), pool.Stats().Dropped)
}

func TestPool_StopCancelsJobContext(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	started := make(chan struct{})
	var cancelled atomic.Bool

	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}))
	<-started

	pool.Stop()

	assert.True(t, cancelled.Load())
}

func TestPool_EnqueueAfterStopDoesNotBlock(t *testing.T) {
	pool := NewPool(1, 0)
	pool.Start()
	pool.Stop()

	done := make(chan struct{})
	go func() {
		pool.Enqueue(JobFunc(func(context.Context) error { return nil }))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked after Stop")
	}
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	checker := leaktest.New(t)

	pool := NewPool(4, 4)
	pool.Start()
	pool.Enqueue(JobFunc(func(ctx context.Context) error { return nil }))
	pool.Stop()

	checker.Check(0)
}

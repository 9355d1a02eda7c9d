package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Stats are cumulative job outcomes since the pool was created
type Stats struct {
	Processed int64
	Failed    int64
	Dropped   int64
}

// Pool runs jobs on a fixed number of goroutines fed by a bounded queue.
// A job that panics is counted as failed and its worker keeps running.
type Pool struct {
	size  int
	queue chan Job
	wg    sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	processed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

func NewPool(workers int, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		size:   workers,
		queue:  make(chan Job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (p *Pool) Start() {
	p.wg.Add(p.size)
	for range p.size {
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.queue:
			p.process(job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) process(job Job) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", ErrMsgJobPanicked, r)
		}
		p.processed.Add(1)
		if err != nil {
			p.failed.Add(1)
			logger.FromContext(p.ctx).Error(LogMsgWorkerJobFailed, "error", err)
		}
	}()
	err = job.Process(p.ctx)
}

// Enqueue queues job, blocking while the queue is full. After Stop it
// returns at once and the job is discarded.
func (p *Pool) Enqueue(job Job) {
	select {
	case p.queue <- job:
	case <-p.ctx.Done():
		p.dropped.Add(1)
	}
}

// TryEnqueue queues job without blocking and reports whether it was queued
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case p.queue <- job:
		return true
	default:
		p.dropped.Add(1)
		logger.FromContext(p.ctx).Warn(LogMsgWorkerQueueFull, "queued", len(p.queue))
		return false
	}
}

func (p *Pool) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
		Dropped:   p.dropped.Load(),
	}
}

// Stop cancels the context handed to running jobs and waits for the workers
// to exit. Jobs still queued are not run.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

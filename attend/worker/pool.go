package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrPoolClosed = errors.New("worker pool closed")

// Pool provides bounded concurrency execution.
type Pool struct {
	tasks    chan func()
	wg       sync.WaitGroup
	shutdown chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
	closed   bool
	size     int
}

// New creates a worker pool with the given size.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	queueSize := size * 8
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		tasks:    make(chan func(), queueSize),
		shutdown: make(chan struct{}),
		size:     size,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				if task != nil {
					task()
				}
			}
		}()
	}

	return p
}

// Submit enqueues a task for execution.
func (p *Pool) Submit(task func()) error {
	return p.submit(context.Background(), task)
}

func (p *Pool) submit(ctx context.Context, task func()) error {
	// The read lock keeps tasks open for the duration of the send; close
	// waits for it after shutdown has woken any blocked sender.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case <-p.shutdown:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		return nil
	}
}

// SubmitWait enqueues a task and waits for it to complete or for ctx to be
// done. A task still running when ctx ends keeps its worker until it returns.
// A panicking task is reported as an error.
func (p *Pool) SubmitWait(ctx context.Context, task func() error) error {
	if task == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	result := make(chan error, 1)
	err := p.submit(ctx, func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("worker task panic: %v", r)
			}
		}()
		result <- task()
	})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-result:
		return err
	}
}

// Shutdown stops accepting tasks and waits for queued and in-flight tasks
// until ctx is done.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.close()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// StopNow closes the pool without waiting for tasks to finish.
func (p *Pool) StopNow() {
	p.close()
}

func (p *Pool) close() {
	p.stopOnce.Do(func() {
		close(p.shutdown)
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
}

// Size returns the worker count.
func (p *Pool) Size() int {
	return p.size
}

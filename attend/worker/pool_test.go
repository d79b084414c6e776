package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yogansh2008/AutoAttendDevArc/attend"
)

var _ attend.WorkerPool = (*Pool)(nil)

func TestPoolConcurrencyLimit(t *testing.T) {
	pool := New(2)
	defer func() {
		_ = pool.Shutdown(context.Background())
	}()

	var current int32
	var max int32

	work := func() {
		val := atomic.AddInt32(&current, 1)
		for {
			prev := atomic.LoadInt32(&max)
			if val <= prev {
				break
			}
			if atomic.CompareAndSwapInt32(&max, prev, val) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&current, -1)
	}

	for i := 0; i < 4; i++ {
		if err := pool.Submit(work); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	_ = pool.Shutdown(context.Background())
	if max > 2 {
		t.Fatalf("expected max concurrency <= 2, got %d", max)
	}
}

func TestPoolSize(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{size: 4, want: 4},
		{size: 0, want: 1},
		{size: -3, want: 1},
	}
	for _, tt := range tests {
		pool := New(tt.size)
		if got := pool.Size(); got != tt.want {
			t.Errorf("New(%d).Size() = %d, want %d", tt.size, got, tt.want)
		}
		pool.StopNow()
	}
}

func TestPoolSubmitAfterShutdown(t *testing.T) {
	pool := New(1)
	_ = pool.Shutdown(context.Background())
	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed after shutdown, got %v", err)
	}
	if err := pool.SubmitWait(context.Background(), func() error { return nil }); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed from SubmitWait, got %v", err)
	}
}

func TestPoolShutdownIsIdempotent(t *testing.T) {
	pool := New(2)
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("first shutdown: %v", err)
	}
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
	pool.StopNow()
}

func TestPoolShutdownDrainsQueue(t *testing.T) {
	pool := New(1)

	var ran int32
	for i := 0; i < 5; i++ {
		if err := pool.Submit(func() {
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&ran, 1)
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := atomic.LoadInt32(&ran); got != 5 {
		t.Fatalf("expected 5 tasks to run, got %d", got)
	}
}

func TestPoolShutdownContextTimeout(t *testing.T) {
	pool := New(1)
	release := make(chan struct{})
	defer close(release)

	if err := pool.Submit(func() { <-release }); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := pool.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline exceeded, got %v", err)
	}
}

func TestPoolSubmitWaitReturnsTaskError(t *testing.T) {
	pool := New(1)
	defer func() {
		_ = pool.Shutdown(context.Background())
	}()

	want := errors.New("task failed")
	err := pool.SubmitWait(context.Background(), func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected task error, got %v", err)
	}
	if err := pool.SubmitWait(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be a no-op, got %v", err)
	}
}

func TestPoolSubmitWaitRecoversPanic(t *testing.T) {
	pool := New(1)
	defer func() {
		_ = pool.Shutdown(context.Background())
	}()

	err := pool.SubmitWait(context.Background(), func() error { panic("bad input") })
	if err == nil {
		t.Fatal("expected panic to be reported as error")
	}

	// The worker survives the panic.
	if err := pool.SubmitWait(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("pool unusable after panic: %v", err)
	}
}

func TestPoolSubmitWaitContextTimeout(t *testing.T) {
	pool := New(1)
	defer func() {
		_ = pool.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pool.SubmitWait(ctx, func() error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline exceeded, got %v", err)
	}
}

func TestPoolSubmitWaitCanceledContext(t *testing.T) {
	pool := New(1)
	defer func() {
		_ = pool.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	err := pool.SubmitWait(ctx, func() error {
		ran.Store(true)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if ran.Load() {
		t.Fatal("task ran despite canceled context")
	}
}

func TestPoolConcurrentSubmitAndShutdown(t *testing.T) {
	pool := New(2)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pool.Submit(func() {})
			if err != nil && !errors.Is(err, ErrPoolClosed) {
				t.Errorf("unexpected submit error: %v", err)
			}
		}()
	}
	_ = pool.Shutdown(context.Background())
	wg.Wait()
}

package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestImportLimiter_AcquireRelease(t *testing.T) {
	l := NewImportLimiter(2, time.Second)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if got := l.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}

	l.Release()
	l.Release()
	if got := l.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after release = %d, want 0", got)
	}
}

func TestImportLimiter_RejectsWhenFull(t *testing.T) {
	l := NewImportLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	err := l.Acquire(ctx)
	if !errors.Is(err, ErrTooManyImports) {
		t.Errorf("Acquire() on full limiter error = %v, want ErrTooManyImports", err)
	}
}

func TestImportLimiter_ContextCancellation(t *testing.T) {
	l := NewImportLimiter(1, time.Minute)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := l.Acquire(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}
}

func TestImportLimiter_UnblocksWaiter(t *testing.T) {
	l := NewImportLimiter(1, time.Second)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	acquired := make(chan error, 1)
	go func() {
		acquired <- l.Acquire(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	l.Release()

	select {
	case err := <-acquired:
		if err != nil {
			t.Errorf("waiting Acquire() error = %v", err)
		}
		l.Release()
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the freed slot")
	}
}

func TestImportLimiter_ConcurrentAccess(t *testing.T) {
	l := NewImportLimiter(4, time.Second)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(ctx); err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			if got := l.ActiveCount(); got > 4 {
				t.Errorf("ActiveCount() = %d, want <= 4", got)
			}
			time.Sleep(time.Millisecond)
			l.Release()
		}()
	}
	wg.Wait()

	if got := l.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after drain = %d, want 0", got)
	}
}

func TestImportLimiter_WaitForDrain(t *testing.T) {
	l := NewImportLimiter(2, time.Second)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	go func() {
		time.Sleep(30 * time.Millisecond)
		l.Release()
	}()

	drainCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := l.WaitForDrain(drainCtx); err != nil {
		t.Errorf("WaitForDrain() error = %v", err)
	}
	if got := l.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() = %d, want 0", got)
	}
}

func TestImportLimiter_WaitForDrainCancelled(t *testing.T) {
	l := NewImportLimiter(1, time.Second)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestImportLimiter_Defaults(t *testing.T) {
	l := NewImportLimiter(0, 0)

	if got := cap(l.semaphore); got != DefaultMaxConcurrentImports {
		t.Errorf("capacity = %d, want %d", got, DefaultMaxConcurrentImports)
	}
	if l.maxWait != DefaultImportWait {
		t.Errorf("maxWait = %v, want %v", l.maxWait, DefaultImportWait)
	}
}

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRoomLocks_SerialisesOneRoom(t *testing.T) {
	locks := NewRoomLocks()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locks.Acquire(ctx, 7, 0)
			if err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected at most one holder at a time, saw %d", maxInside)
	}
}

func TestRoomLocks_RoomsAreIndependent(t *testing.T) {
	locks := NewRoomLocks()
	ctx := context.Background()

	release, err := locks.Acquire(ctx, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	other, err := locks.Acquire(ctx, 2, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("expected a different room to lock immediately, got %v", err)
	}
	other()
}

func TestRoomLocks_WaitLimits(t *testing.T) {
	locks := NewRoomLocks()
	release, err := locks.Acquire(context.Background(), 3, 0)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("timeout", func(t *testing.T) {
		_, err := locks.Acquire(context.Background(), 3, 20*time.Millisecond)
		if !errors.Is(err, ErrLockTimeout) {
			t.Errorf("expected ErrLockTimeout, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := locks.Acquire(ctx, 3, time.Second)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("release is idempotent", func(t *testing.T) {
		release()
		release()
		again, err := locks.Acquire(context.Background(), 3, 20*time.Millisecond)
		if err != nil {
			t.Fatalf("expected lock to be free, got %v", err)
		}
		again()
	})
}

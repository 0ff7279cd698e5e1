package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RoomLocks serialises callers per room inside one process. Waiting holds no
// storage resources.
type RoomLocks struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{slots: make(map[int64]chan struct{})}
}

// Acquire blocks until the caller holds roomID's slot. A positive wait bounds
// the time spent queueing and fails with ErrLockTimeout; ctx ending returns
// ctx.Err().
func (l *RoomLocks) Acquire(ctx context.Context, roomID int64, wait time.Duration) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[roomID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[roomID] = slot
	}
	l.mu.Unlock()

	var timeout <-chan time.Time
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout:
		return nil, fmt.Errorf("room %d: %w", roomID, ErrLockTimeout)
	}

	var once sync.Once
	return func() { once.Do(func() { <-slot }) }, nil
}

package postgres

import (
	"context"
	"fmt"
	"hotelbooking/internal/store"
)

// LockRoom queues callers of this process per room without holding a pool
// connection. Other instances are excluded by lockRoomInTx, which runs on the
// booking transaction's own connection, so a booking never holds more than
// one connection.
func (s *Store) LockRoom(ctx context.Context, roomID int64) (func(), error) {
	return s.locks.Acquire(ctx, roomID, s.opts.LockWaitTimeout)
}

// lockRoomInTx takes pg_advisory_xact_lock for the room. Postgres releases it
// at commit or rollback.
func (s *Store) lockRoomInTx(ctx context.Context, q querier, roomID int64) error {
	waitCtx := ctx
	if s.opts.LockWaitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.opts.LockWaitTimeout)
		defer cancel()
	}

	if err := q.Exec(waitCtx, `SELECT pg_advisory_xact_lock($1)`, roomID); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if waitCtx.Err() != nil {
			return fmt.Errorf("room %d: %w", roomID, store.ErrLockTimeout)
		}
		return fmt.Errorf("failed to lock room %d: %w", roomID, err)
	}
	return nil
}

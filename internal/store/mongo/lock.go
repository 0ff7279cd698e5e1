package mongo

import (
	"context"
	"fmt"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/model"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const lockPollInterval = 25 * time.Millisecond

func roomLockID(roomID int64) string {
	return fmt.Sprintf("room_lock_%d", roomID)
}

// releaseFilter matches the lock only while owner still holds it, so a
// holder whose lock expired and was taken over cannot delete the successor's.
func releaseFilter(lockID, owner string) bson.M {
	return bson.M{"_id": lockID, "owner": owner}
}

// LockRoom inserts a lock document keyed by room. A duplicate key means
// another request holds the lock; expired holders are evicted and the insert
// retried until the wait timeout or ctx ends.
func (s *Store) LockRoom(ctx context.Context, roomID int64) (func(), error) {
	lockID := roomLockID(roomID)
	owner := uuid.NewString()
	waitCtx, cancel := context.WithTimeout(ctx, s.opts.LockWaitTimeout)
	defer cancel()

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		now := time.Now().UTC()
		lock := &model.RoomLock{
			ID:        lockID,
			RoomID:    roomID,
			Owner:     owner,
			ExpiresAt: now.Add(s.opts.LockTTL),
			CreatedAt: now,
		}

		_, err := s.locks.InsertOne(waitCtx, lock)
		if err == nil {
			return s.releaser(lockID, owner), nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if waitCtx.Err() != nil {
				return nil, fmt.Errorf("room %d: %w", roomID, store.ErrLockTimeout)
			}
			return nil, fmt.Errorf("failed to acquire room lock: %w", err)
		}

		// The TTL monitor only runs once a minute, so stale locks are removed here.
		_, _ = s.locks.DeleteOne(waitCtx, bson.M{"_id": lockID, "expires_at": bson.M{"$lt": now}})

		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("room %d: %w", roomID, store.ErrLockTimeout)
		}
	}
}

func (s *Store) releaser(lockID, owner string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.WriteTimeout)
		defer cancel()
		_, _ = s.locks.DeleteOne(ctx, releaseFilter(lockID, owner))
	}
}

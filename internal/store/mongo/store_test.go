package mongo

import (
	"context"
	"testing"
	"time"
)

func TestRoomLockID(t *testing.T) {
	tests := []struct {
		roomID int64
		want   string
	}{
		{roomID: 1, want: "room_lock_1"},
		{roomID: 42, want: "room_lock_42"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := roomLockID(tt.roomID); got != tt.want {
				t.Errorf("roomLockID(%d) = %q, expected %q", tt.roomID, got, tt.want)
			}
		})
	}
}

func TestReleaseFilter(t *testing.T) {
	filter := releaseFilter("room_lock_7", "holder-a")
	if filter["_id"] != "room_lock_7" {
		t.Errorf("expected lock id in filter, got %v", filter["_id"])
	}
	if filter["owner"] != "holder-a" {
		t.Errorf("expected release to be scoped to its owner, got %v", filter)
	}
	if other := releaseFilter("room_lock_7", "holder-b"); other["owner"] == filter["owner"] {
		t.Error("a later holder must not match an earlier holder's release")
	}
}

type ctxKey struct{}

func TestDetached(t *testing.T) {
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "session"))
	d := detached{parent}

	if v := d.Value(ctxKey{}); v != nil {
		t.Errorf("expected values to be hidden, got %v", v)
	}

	cancel()
	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("expected cancellation to propagate")
	}
}

func TestWithTimeout_KeepsShorterDeadline(t *testing.T) {
	s := &Store{}
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ctx, done := s.withTimeout(parent, time.Hour)
	defer done()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Errorf("expected the parent's shorter deadline, got %v", time.Until(deadline))
	}
}

func TestCollectionDefs(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range collectionDefs() {
		if seen[def.Name] {
			t.Errorf("collection %s defined twice", def.Name)
		}
		seen[def.Name] = true
	}
	for _, name := range []string{HotelsCollection, RoomsCollection, RoomTypesCollection, BookingsCollection, RoomLocksCollection, CountersCollection} {
		if !seen[name] {
			t.Errorf("missing collection %s", name)
		}
	}
}

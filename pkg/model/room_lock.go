package model

import "time"

// RoomLock is the advisory lock document that serialises booking attempts on a room.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    int64     `bson:"room_id" json:"room_id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Package store defines the Entity Store shared by every vertical and the
// errors its drivers translate storage failures into.
package store

import (
	"context"
	"errors"
	"hotelbooking/pkg/model"
)

var (
	ErrNotFound        = errors.New("entity not found")
	ErrBookingConflict = errors.New("booking overlaps an existing booking for the room")
	ErrAlreadySeeded   = errors.New("reference data already seeded")
	ErrLockTimeout     = errors.New("timed out waiting for room lock")
)

// TransactionFunc runs inside a store transaction. Store calls made with the
// ctx it receives join the transaction.
type TransactionFunc func(ctx context.Context) error

type Store interface {
	LoadRoomWithBookings(ctx context.Context, roomID int64) (*model.Room, error)
	LoadHotelWithRooms(ctx context.Context, hotelID int64) (*model.Hotel, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	// ListRoomsWithBookings returns every room of the hotel, or of all hotels
	// when hotelID is 0, ordered by room id.
	ListRoomsWithBookings(ctx context.Context, hotelID int64) ([]*model.Room, error)

	FindBookingByReference(ctx context.Context, reference string) (*model.Booking, error)
	FindAllBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	CountBookings(ctx context.Context) (int64, error)

	SearchHotelsByName(ctx context.Context, name string) ([]*model.Hotel, error)
	FindAllHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error)
	CountHotels(ctx context.Context) (int64, error)
	ListRoomTypes(ctx context.Context) ([]*model.RoomType, error)

	// SeedReferenceData stores room types, hotels and their rooms, assigning
	// ids to hotels and rooms in place.
	SeedReferenceData(ctx context.Context, roomTypes []*model.RoomType, hotels []*model.Hotel) error
	// ClearTransactionalData removes bookings, rooms and hotels. Room types stay.
	ClearTransactionalData(ctx context.Context) error

	// LockRoom blocks until the caller holds the room's lock or ctx ends.
	LockRoom(ctx context.Context, roomID int64) (release func(), err error)
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

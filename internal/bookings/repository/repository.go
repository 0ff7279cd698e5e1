// Package repository names the slices of the Entity Store the bookings
// vertical depends on. store.Store satisfies all of them.
package repository

import (
	"context"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/model"
)

type BookingRepository interface {
	LoadHotelWithRooms(ctx context.Context, hotelID int64) (*model.Hotel, error)
	LoadRoomWithBookings(ctx context.Context, roomID int64) (*model.Room, error)
	ListRoomsWithBookings(ctx context.Context, hotelID int64) ([]*model.Room, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	FindBookingByReference(ctx context.Context, reference string) (*model.Booking, error)
	FindAllBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	CountBookings(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn store.TransactionFunc) error
}

type RoomLockRepository interface {
	LockRoom(ctx context.Context, roomID int64) (release func(), err error)
}

var (
	_ BookingRepository  = store.Store(nil)
	_ RoomLockRepository = store.Store(nil)
)

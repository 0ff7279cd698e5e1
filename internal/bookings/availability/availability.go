// Package availability decides whether a room can take a requested stay.
// Stays are half-open intervals [checkIn, checkOut): the checkout day is free
// for the next guest.
package availability

import (
	"hotelbooking/pkg/model"
	"time"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// IsAvailable reports whether room can host numberOfGuests between checkIn and
// checkOut given its existing bookings. A room whose type is not loaded has no
// capacity. Callers guarantee checkOut is after checkIn and numberOfGuests > 0.
func IsAvailable(room *model.Room, existing []*model.Booking, checkIn, checkOut time.Time, numberOfGuests int) bool {
	if numberOfGuests > room.Capacity() {
		return false
	}
	return FirstConflict(existing, checkIn, checkOut) == nil
}

// FirstConflict returns the first booking overlapping the stay, or nil.
func FirstConflict(existing []*model.Booking, checkIn, checkOut time.Time) *model.Booking {
	for _, b := range existing {
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return b
		}
	}
	return nil
}

// FindAvailableRooms filters rooms against their own bookings, keeping input order.
func FindAvailableRooms(rooms []*model.Room, numberOfGuests int, checkIn, checkOut time.Time) []*model.Room {
	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		if IsAvailable(room, room.Bookings, checkIn, checkOut, numberOfGuests) {
			available = append(available, room)
		}
	}
	return available
}

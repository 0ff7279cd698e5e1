package repository

import (
	"context"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/model"
)

type HotelRepository interface {
	FindAllHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error)
	CountHotels(ctx context.Context) (int64, error)
	LoadHotelWithRooms(ctx context.Context, hotelID int64) (*model.Hotel, error)
	SearchHotelsByName(ctx context.Context, name string) ([]*model.Hotel, error)
}

// Pinger is what the readiness check needs from the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ HotelRepository = store.Store(nil)
	_ Pinger          = store.Store(nil)
)

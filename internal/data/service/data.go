package service

import (
	"context"
	"errors"
	"hotelbooking/internal/data/repository"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
)

// DefaultHotelNames are the hotels created by Seed.
var DefaultHotelNames = []string{"Travelodge", "Premier Inn", "Holiday Inn", "Budget Inn", "Savoy"}

// defaultRoomLayout is the room type of each room in a seeded hotel.
var defaultRoomLayout = []int64{
	model.RoomTypeSingle, model.RoomTypeSingle,
	model.RoomTypeDouble, model.RoomTypeDouble,
	model.RoomTypeDeluxe, model.RoomTypeDeluxe,
}

func DefaultRoomTypes() []*model.RoomType {
	return []*model.RoomType{
		{ID: model.RoomTypeSingle, Name: "Single", Capacity: 1},
		{ID: model.RoomTypeDouble, Name: "Double", Capacity: 2},
		{ID: model.RoomTypeDeluxe, Name: "Deluxe", Capacity: 4},
	}
}

func DefaultHotels() []*model.Hotel {
	hotels := make([]*model.Hotel, 0, len(DefaultHotelNames))
	for _, name := range DefaultHotelNames {
		h := &model.Hotel{Name: sanitizer.SanitizeName(name)}
		for _, typeID := range defaultRoomLayout {
			h.Rooms = append(h.Rooms, &model.Room{RoomTypeID: typeID})
		}
		hotels = append(hotels, h)
	}
	return hotels
}

type SeedSummary struct {
	RoomTypes int                   `json:"room_types"`
	Hotels    []*model.HotelSummary `json:"hotels"`
	Rooms     int                   `json:"rooms"`
}

type DataService interface {
	Seed(ctx context.Context) (*SeedSummary, error)
	Clear(ctx context.Context) error
}

type dataService struct {
	repo repository.DataRepository
	cfg  *config.Config
}

func NewDataService(repo repository.DataRepository, cfg *config.Config) DataService {
	return &dataService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *dataService) Seed(ctx context.Context) (*SeedSummary, error) {
	roomTypes := DefaultRoomTypes()
	hotels := DefaultHotels()

	if err := s.repo.SeedReferenceData(ctx, roomTypes, hotels); err != nil {
		if errors.Is(err, store.ErrAlreadySeeded) {
			s.cfg.Log.Warn("Seed skipped: store already holds hotels")
			return nil, apperrors.Conflict("Database already seeded")
		}
		if apperrors.IsContextError(err) {
			return nil, apperrors.Cancelled("Seed", err)
		}
		s.cfg.Log.Error("Failed to seed reference data", "error", err)
		return nil, apperrors.Internal("Failed to seed data", err)
	}

	summary := &SeedSummary{RoomTypes: len(roomTypes)}
	for _, h := range hotels {
		summary.Hotels = append(summary.Hotels, &model.HotelSummary{ID: h.ID, Name: h.Name})
		summary.Rooms += len(h.Rooms)
	}

	s.cfg.Log.Info("Reference data seeded",
		"room_types", summary.RoomTypes,
		"hotels", len(summary.Hotels),
		"rooms", summary.Rooms,
	)
	return summary, nil
}

func (s *dataService) Clear(ctx context.Context) error {
	if err := s.repo.ClearTransactionalData(ctx); err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.Cancelled("Clear", err)
		}
		s.cfg.Log.Error("Failed to clear data", "error", err)
		return apperrors.Internal("Failed to clear data", err)
	}

	s.cfg.Log.Info("Bookings, rooms and hotels cleared")
	return nil
}

// SeedIfEmpty seeds at startup and treats an already seeded store as done.
func SeedIfEmpty(ctx context.Context, svc DataService) error {
	_, err := svc.Seed(ctx)
	if err != nil && apperrors.AsAppError(err).Code == apperrors.CodeConflict {
		return nil
	}
	return err
}

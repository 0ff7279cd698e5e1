package service

import (
	"context"
	"errors"
	"fmt"
	"hotelbooking/internal/hotels/repository"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
	"net/http"
	"sync"
)

type HotelService interface {
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.HotelSummary, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Hotel, error)
	SearchByName(ctx context.Context, name string) ([]*model.HotelSummary, error)
}

type hotelService struct {
	repo repository.HotelRepository
	cfg  *config.Config
}

func NewHotelService(repo repository.HotelRepository, cfg *config.Config) HotelService {
	return &hotelService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *hotelService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.HotelSummary, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var hotels []*model.Hotel
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountHotels(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count hotels", "error", err)
			errCount = s.readError("count hotels", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		hotels, err = s.repo.FindAllHotels(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all hotels",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = s.readError("retrieve hotels", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return summarize(hotels), count, nil
}

func (s *hotelService) GetByID(ctx context.Context, id int64) (*model.Hotel, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid hotel ID: %d", id))
	}

	hotel, err := s.repo.LoadHotelWithRooms(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Hotel", fmt.Sprint(id))
		}
		s.cfg.Log.Error("Failed to get hotel by ID",
			"id", id,
			"error", err,
		)
		return nil, s.readError("retrieve hotel", err)
	}

	return hotel, nil
}

// SearchByName does a case-insensitive contains match on the hotel name.
func (s *hotelService) SearchByName(ctx context.Context, name string) ([]*model.HotelSummary, error) {
	term := sanitizer.SanitizeSearchTerm(name)
	if term == "" {
		return nil, apperrors.InvalidInput("Hotel name cannot be empty")
	}

	hotels, err := s.repo.SearchHotelsByName(ctx, term)
	if err != nil {
		s.cfg.Log.Error("Failed to search hotels",
			"name", term,
			"error", err,
		)
		return nil, s.readError("search hotels", err)
	}
	if len(hotels) == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("No hotels match %q", term), http.StatusNotFound)
	}

	s.cfg.Log.Debug("Hotel search completed", "name", term, "matches", len(hotels))
	return summarize(hotels), nil
}

func (s *hotelService) readError(op string, err error) error {
	if apperrors.IsContextError(err) {
		return apperrors.Cancelled("Hotel lookup", err)
	}
	return apperrors.Internal("Failed to "+op, err)
}

func summarize(hotels []*model.Hotel) []*model.HotelSummary {
	out := make([]*model.HotelSummary, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, &model.HotelSummary{ID: h.ID, Name: h.Name})
	}
	return out
}

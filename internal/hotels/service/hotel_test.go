package service

import (
	"context"
	"errors"
	"hotelbooking/internal/store"
	"hotelbooking/internal/store/memory"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

type mockHotelRepository struct {
	findAllFunc func(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error)
	countFunc   func(ctx context.Context) (int64, error)
	loadFunc    func(ctx context.Context, id int64) (*model.Hotel, error)
	searchFunc  func(ctx context.Context, name string) ([]*model.Hotel, error)
}

func (m *mockHotelRepository) FindAllHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Hotel{}, nil
}

func (m *mockHotelRepository) CountHotels(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockHotelRepository) LoadHotelWithRooms(ctx context.Context, id int64) (*model.Hotel, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockHotelRepository) SearchHotelsByName(ctx context.Context, name string) ([]*model.Hotel, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, name)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.Discard()}
}

func TestGetAll_ConcurrentAccess(t *testing.T) {
	var inFlight, peak atomic.Int32
	track := func() func() {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return func() { inFlight.Add(-1) }
	}

	repo := &mockHotelRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
			defer track()()
			return []*model.Hotel{{ID: 1, Name: "Savoy"}}, nil
		},
		countFunc: func(ctx context.Context) (int64, error) {
			defer track()()
			return 1, nil
		},
	}

	hotels, total, err := NewHotelService(repo, testConfig()).GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(hotels) != 1 || hotels[0].Name != "Savoy" {
		t.Errorf("unexpected result %v %d", hotels, total)
	}
	if peak.Load() != 2 {
		t.Errorf("expected count and find to run concurrently, peak=%d", peak.Load())
	}
}

func TestGetAll_LimitNormalization(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		offset         int64
		expectedLimit  int
		expectedOffset int64
	}{
		{name: "zero limit uses default", limit: 0, expectedLimit: config.DefaultPaginationLimit},
		{name: "negative limit uses default", limit: -5, expectedLimit: config.DefaultPaginationLimit},
		{name: "over max is clamped", limit: 500, expectedLimit: config.MaxPaginationLimit},
		{name: "negative offset is zeroed", limit: 5, offset: -1, expectedLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			var gotOffset int64
			repo := &mockHotelRepository{
				findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
					gotLimit, gotOffset = limit, offset
					return nil, nil
				},
			}
			if _, _, err := NewHotelService(repo, testConfig()).GetAll(context.Background(), tt.limit, tt.offset); err != nil {
				t.Fatal(err)
			}
			if gotLimit != tt.expectedLimit || gotOffset != tt.expectedOffset {
				t.Errorf("expected %d/%d, got %d/%d", tt.expectedLimit, tt.expectedOffset, gotLimit, gotOffset)
			}
		})
	}
}

func TestGetAll_RepoErrors(t *testing.T) {
	repo := &mockHotelRepository{
		countFunc: func(ctx context.Context) (int64, error) { return 0, errors.New("boom") },
	}
	_, _, err := NewHotelService(repo, testConfig()).GetAll(context.Background(), 10, 0)
	if apperrors.AsAppError(err).Code != apperrors.CodeInternal {
		t.Errorf("expected internal error, got %v", err)
	}

	repo = &mockHotelRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
			return nil, context.DeadlineExceeded
		},
	}
	_, _, err = NewHotelService(repo, testConfig()).GetAll(context.Background(), 10, 0)
	if apperrors.AsAppError(err).Code != apperrors.CodeCancelled {
		t.Errorf("expected cancelled error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	s := memory.New()
	savoy := &model.Hotel{Name: "Savoy", Rooms: []*model.Room{{RoomTypeID: model.RoomTypeDouble}}}
	if err := s.SeedReferenceData(context.Background(),
		[]*model.RoomType{{ID: model.RoomTypeDouble, Name: "Double", Capacity: 2}},
		[]*model.Hotel{savoy},
	); err != nil {
		t.Fatal(err)
	}
	svc := NewHotelService(s, testConfig())

	hotel, err := svc.GetByID(context.Background(), savoy.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hotel.Name != "Savoy" || len(hotel.Rooms) != 1 || hotel.Rooms[0].RoomTypeName() != "Double" {
		t.Errorf("unexpected hotel %+v", hotel)
	}

	tests := []struct {
		name   string
		id     int64
		status int
	}{
		{name: "zero id", id: 0, status: http.StatusBadRequest},
		{name: "unknown id", id: 42, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(context.Background(), tt.id)
			if got := apperrors.AsAppError(err).StatusCode(); got != tt.status {
				t.Errorf("expected %d, got %d (%v)", tt.status, got, err)
			}
		})
	}
}

func TestSearchByName(t *testing.T) {
	var searched string
	repo := &mockHotelRepository{
		searchFunc: func(ctx context.Context, name string) ([]*model.Hotel, error) {
			searched = name
			if name == "inn" {
				return []*model.Hotel{{ID: 2, Name: "Premier Inn"}, {ID: 3, Name: "Holiday Inn"}}, nil
			}
			return nil, nil
		},
	}
	svc := NewHotelService(repo, testConfig())

	hotels, err := svc.SearchByName(context.Background(), "  inn ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if searched != "inn" {
		t.Errorf("expected sanitized term, repository got %q", searched)
	}
	if len(hotels) != 2 || hotels[1].Name != "Holiday Inn" {
		t.Errorf("unexpected hotels %v", hotels)
	}

	tests := []struct {
		name   string
		term   string
		status int
	}{
		{name: "empty", term: "", status: http.StatusBadRequest},
		{name: "whitespace", term: " \t ", status: http.StatusBadRequest},
		{name: "no match", term: "ritz", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SearchByName(context.Background(), tt.term)
			if got := apperrors.AsAppError(err).StatusCode(); got != tt.status {
				t.Errorf("expected %d, got %d (%v)", tt.status, got, err)
			}
		})
	}
}

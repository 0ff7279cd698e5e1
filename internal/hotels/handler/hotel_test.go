package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelbooking/internal/hotels/service"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockHotelService struct {
	getAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.HotelSummary, int64, error)
	getByIDFunc func(ctx context.Context, id int64) (*model.Hotel, error)
	searchFunc  func(ctx context.Context, name string) ([]*model.HotelSummary, error)
}

func (m *mockHotelService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.HotelSummary, int64, error) {
	return m.getAllFunc(ctx, limit, offset)
}

func (m *mockHotelService) GetByID(ctx context.Context, id int64) (*model.Hotel, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockHotelService) SearchByName(ctx context.Context, name string) ([]*model.HotelSummary, error) {
	return m.searchFunc(ctx, name)
}

var _ service.HotelService = (*mockHotelService)(nil)

func newHotelRouter(svc service.HotelService) *httprouter.Router {
	router := httprouter.New()
	NewHotelHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHotelHandler_GetAll(t *testing.T) {
	var gotLimit int
	router := newHotelRouter(&mockHotelService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.HotelSummary, int64, error) {
			gotLimit = limit
			return []*model.HotelSummary{{ID: 1, Name: "Savoy"}}, 1, nil
		},
	})

	rec := get(router, "/api/v1/hotels?limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotLimit != 3 {
		t.Errorf("expected limit 3, got %d", gotLimit)
	}

	if rec := get(router, "/api/v1/hotels?offset=x"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad offset, got %d", rec.Code)
	}
}

func TestHotelHandler_GetByID(t *testing.T) {
	router := newHotelRouter(&mockHotelService{
		getByIDFunc: func(ctx context.Context, id int64) (*model.Hotel, error) {
			if id == 1 {
				return &model.Hotel{ID: 1, Name: "Savoy"}, nil
			}
			return nil, apperrors.NotFoundWithID("Hotel", "2")
		},
	})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "found", path: "/api/v1/hotels/id/1", status: http.StatusOK},
		{name: "missing", path: "/api/v1/hotels/id/2", status: http.StatusNotFound},
		{name: "non-numeric", path: "/api/v1/hotels/id/abc", status: http.StatusBadRequest},
		{name: "negative", path: "/api/v1/hotels/id/-1", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := get(router, tt.path); rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestHotelHandler_Search(t *testing.T) {
	router := newHotelRouter(&mockHotelService{
		searchFunc: func(ctx context.Context, name string) ([]*model.HotelSummary, error) {
			switch name {
			case "":
				return nil, apperrors.InvalidInput("Hotel name cannot be empty")
			case "inn":
				return []*model.HotelSummary{{ID: 2, Name: "Premier Inn"}}, nil
			}
			return nil, errors.New("unexpected")
		},
	})

	rec := get(router, "/api/v1/hotels/search?name=inn")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data []model.HotelSummary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "Premier Inn" {
		t.Errorf("unexpected body %+v", resp.Data)
	}

	if rec := get(router, "/api/v1/hotels/search"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", rec.Code)
	}
	if rec := get(router, "/api/v1/hotels/search?name=boom"); rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for unexpected error, got %d", rec.Code)
	}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		readyStatus int
	}{
		{name: "store up", readyStatus: http.StatusOK},
		{name: "store down", pingErr: errors.New("connection refused"), readyStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(fakePinger{err: tt.pingErr}, logger.Discard()).RegisterRoutes(router)

			if rec := get(router, "/health"); rec.Code != http.StatusOK {
				t.Errorf("liveness should not depend on the store, got %d", rec.Code)
			}
			if rec := get(router, "/ready"); rec.Code != tt.readyStatus {
				t.Errorf("expected readiness %d, got %d", tt.readyStatus, rec.Code)
			}
		})
	}
}

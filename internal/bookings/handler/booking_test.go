package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/internal/bookings/service"
	"hotelbooking/internal/bookings/validator"
	apperrors "hotelbooking/pkg/errors"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc         func(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time, guests int) service.Result
	availableFunc      func(ctx context.Context, checkIn, checkOut time.Time, guests int, hotelID int64) ([]*model.AvailableRoom, error)
	getByReferenceFunc func(ctx context.Context, reference string) (*model.BookingDetails, error)
	getAllFunc         func(ctx context.Context, limit int, offset int64) ([]*model.BookingDetails, int64, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time, guests int) service.Result {
	return m.createFunc(ctx, hotelID, roomID, checkIn, checkOut, guests)
}

func (m *mockBookingService) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, guests int, hotelID int64) ([]*model.AvailableRoom, error) {
	return m.availableFunc(ctx, checkIn, checkOut, guests, hotelID)
}

func (m *mockBookingService) GetByReference(ctx context.Context, reference string) (*model.BookingDetails, error) {
	return m.getByReferenceFunc(ctx, reference)
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func newRouter(svc service.BookingService) *httprouter.Router {
	log := logger.Discard()
	v := validator.NewBookingValidator(log)
	router := httprouter.New()
	NewBookingHandler(svc, v, log).RegisterRoutes(router)
	NewRoomHandler(svc, v, log).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"hotel_id":1,"room_id":2,"check_in_date":"2024-06-01","check_out_date":"2024-06-03","number_of_guests":2}`

func TestCreate_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		result         service.Result
		expectStatus   int
		expectContains string
	}{
		{
			name:           "success",
			body:           validBody,
			result:         service.Success(&model.Booking{Reference: "20240601120000-001"}),
			expectStatus:   http.StatusCreated,
			expectContains: `"booking_reference":"20240601120000-001"`,
		},
		{
			name:           "unavailable",
			body:           validBody,
			result:         service.Unavailable("The selected room is not available for 2 occupants between 01/06/2024 and 03/06/2024"),
			expectStatus:   http.StatusConflict,
			expectContains: "not available for 2 occupants",
		},
		{
			name:         "invalid argument",
			body:         validBody,
			result:       service.Failure(bookingserrors.InvalidArgument("too many guests")),
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "not found",
			body:         validBody,
			result:       service.Failure(bookingserrors.NotFound("hotel 1 not found")),
			expectStatus: http.StatusNotFound,
		},
		{
			name:           "storage error hides detail",
			body:           validBody,
			result:         service.Failure(bookingserrors.Storage("failed to insert", context.DeadlineExceeded)),
			expectStatus:   http.StatusInternalServerError,
			expectContains: "Internal server error",
		},
		{
			name:         "cancelled",
			body:         validBody,
			result:       service.Cancelled(context.Canceled),
			expectStatus: apperrors.StatusClientClosedRequest,
		},
		{
			name:         "malformed json",
			body:         `{"hotel_id":`,
			expectStatus: http.StatusBadRequest,
		},
		{
			name:           "validation failure",
			body:           `{"hotel_id":1,"room_id":2,"check_in_date":"soon","check_out_date":"2024-06-03","number_of_guests":2}`,
			expectStatus:   http.StatusUnprocessableEntity,
			expectContains: "CheckInDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &mockBookingService{
				createFunc: func(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time, guests int) service.Result {
					called = true
					return tt.result
				},
			}

			rec := serve(newRouter(svc), http.MethodPost, "/api/v1/bookings", tt.body)
			if rec.Code != tt.expectStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectStatus, rec.Code, rec.Body.String())
			}
			if tt.expectContains != "" && !strings.Contains(rec.Body.String(), tt.expectContains) {
				t.Errorf("expected body to contain %q, got %s", tt.expectContains, rec.Body.String())
			}
			if tt.result.Outcome == 0 && called {
				t.Error("service should not be called for rejected requests")
			}
		})
	}
}

func TestCreate_PassesParsedRequest(t *testing.T) {
	var gotHotel, gotRoom int64
	var gotIn, gotOut time.Time
	var gotGuests int
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time, guests int) service.Result {
			gotHotel, gotRoom, gotIn, gotOut, gotGuests = hotelID, roomID, checkIn, checkOut, guests
			return service.Success(&model.Booking{Reference: "20240601120000-001"})
		},
	}

	body := `{"hotel_id":3,"room_id":7,"check_in_date":"01/06/2024","check_out_date":"2024-06-03T00:00:00Z","number_of_guests":1}`
	rec := serve(newRouter(svc), http.MethodPost, "/api/v1/bookings", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotHotel != 3 || gotRoom != 7 || gotGuests != 1 {
		t.Errorf("unexpected ids/guests: %d %d %d", gotHotel, gotRoom, gotGuests)
	}
	if !gotIn.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) || !gotOut.Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected dates: %v %v", gotIn, gotOut)
	}
}

func TestGetByReference(t *testing.T) {
	svc := &mockBookingService{
		getByReferenceFunc: func(ctx context.Context, reference string) (*model.BookingDetails, error) {
			if reference == "20240601120000-001" {
				return &model.BookingDetails{Reference: reference, HotelName: "Savoy"}, nil
			}
			return nil, bookingserrors.NotFound("booking %s not found", reference)
		},
	}
	router := newRouter(svc)

	rec := serve(router, http.MethodGet, "/api/v1/bookings/reference/20240601120000-001", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data model.BookingDetails `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Data.HotelName != "Savoy" {
		t.Errorf("unexpected body %+v", resp.Data)
	}

	rec = serve(router, http.MethodGet, "/api/v1/bookings/reference/20240601120000-002", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetAll_QueryParameters(t *testing.T) {
	var receivedLimit int
	var receivedOffset int64
	total := int64(5)
	svc := &mockBookingService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
			receivedLimit, receivedOffset = limit, offset
			return []*model.BookingDetails{}, total, nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		name         string
		query        string
		expectStatus int
		expectLimit  int
		expectOffset int64
	}{
		{name: "defaults", query: "", expectStatus: http.StatusOK, expectLimit: 10, expectOffset: 0},
		{name: "explicit", query: "?limit=5&offset=2", expectStatus: http.StatusOK, expectLimit: 5, expectOffset: 2},
		{name: "clamped", query: "?limit=5000&offset=-3", expectStatus: http.StatusOK, expectLimit: 100, expectOffset: 0},
		{name: "non-numeric limit", query: "?limit=abc", expectStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, "/api/v1/bookings"+tt.query, "")
			if rec.Code != tt.expectStatus {
				t.Fatalf("expected %d, got %d", tt.expectStatus, rec.Code)
			}
			if tt.expectStatus != http.StatusOK {
				return
			}
			if receivedLimit != tt.expectLimit || receivedOffset != tt.expectOffset {
				t.Errorf("expected limit=%d offset=%d, got %d %d", tt.expectLimit, tt.expectOffset, receivedLimit, receivedOffset)
			}
			var resp httputil.PaginatedResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.TotalCount != total {
				t.Errorf("expected total %d, got %d", total, resp.TotalCount)
			}
		})
	}

	total = 0
	rec := serve(router, http.MethodGet, "/api/v1/bookings", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 when there are no bookings, got %d", rec.Code)
	}
}

func TestAvailable(t *testing.T) {
	var gotGuests int
	var gotHotel int64
	svc := &mockBookingService{
		availableFunc: func(ctx context.Context, checkIn, checkOut time.Time, guests int, hotelID int64) ([]*model.AvailableRoom, error) {
			gotGuests, gotHotel = guests, hotelID
			if !checkOut.After(checkIn) {
				return nil, bookingserrors.InvalidArgument("check-out must be after check-in")
			}
			return []*model.AvailableRoom{{RoomID: 4, HotelID: 1, RoomType: "Double", Capacity: 2}}, nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		name         string
		query        string
		expectStatus int
	}{
		{name: "all hotels", query: "?check_in=2024-06-01&check_out=2024-06-03&guests=2", expectStatus: http.StatusOK},
		{name: "one hotel", query: "?check_in=2024-06-01&check_out=2024-06-03&guests=2&hotel_id=1", expectStatus: http.StatusOK},
		{name: "reversed dates", query: "?check_in=2024-06-03&check_out=2024-06-01&guests=2", expectStatus: http.StatusBadRequest},
		{name: "missing guests", query: "?check_in=2024-06-01&check_out=2024-06-03", expectStatus: http.StatusUnprocessableEntity},
		{name: "bad guests", query: "?check_in=2024-06-01&check_out=2024-06-03&guests=two", expectStatus: http.StatusBadRequest},
		{name: "bad hotel", query: "?check_in=2024-06-01&check_out=2024-06-03&guests=1&hotel_id=x", expectStatus: http.StatusBadRequest},
		{name: "bad date", query: "?check_in=June&check_out=2024-06-03&guests=1", expectStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, "/api/v1/rooms/available"+tt.query, "")
			if rec.Code != tt.expectStatus {
				t.Errorf("expected %d, got %d: %s", tt.expectStatus, rec.Code, rec.Body.String())
			}
		})
	}

	serve(router, http.MethodGet, "/api/v1/rooms/available?check_in=2024-06-01&check_out=2024-06-03&guests=3&hotel_id=9", "")
	if gotGuests != 3 || gotHotel != 9 {
		t.Errorf("expected guests=3 hotel=9, got %d %d", gotGuests, gotHotel)
	}
}

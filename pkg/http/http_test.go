package http

import (
	"encoding/json"
	"errors"
	apperrors "hotelbooking/pkg/errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	expected := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "iso", input: "2024-06-03", want: expected},
		{name: "british", input: "03/06/2024", want: expected},
		{name: "rfc3339 utc", input: "2024-06-03T00:00:00Z", want: expected},
		{name: "rfc3339 offset converted to utc", input: "2024-06-03T02:00:00+02:00", want: expected},
		{name: "rfc3339 time of day dropped", input: "2024-06-03T18:45:00Z", want: expected},
		{name: "rfc3339 offset crossing midnight", input: "2024-06-04T01:00:00+03:00", want: expected},
		{name: "surrounding whitespace", input: " 2024-06-03 ", want: expected},
		{name: "american order rejected", input: "06/31/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got.Location() != time.UTC {
				t.Errorf("expected UTC location, got %v", got.Location())
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC))
	if got != "05/01/2024" {
		t.Errorf("expected 05/01/2024, got %s", got)
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{name: "defaults", query: "", wantLimit: 10, wantOffset: 0},
		{name: "explicit", query: "?limit=5&offset=20", wantLimit: 5, wantOffset: 20},
		{name: "negative offset clamps", query: "?offset=-4", wantLimit: 10, wantOffset: 0},
		{name: "limit above max clamps", query: "?limit=100000", wantLimit: 100, wantOffset: 0},
		{name: "bad limit", query: "?limit=abc", wantErr: true},
		{name: "bad offset", query: "?offset=xyz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("expected limit=%d offset=%d, got limit=%d offset=%d", tt.wantLimit, tt.wantOffset, limit, offset)
			}
		})
	}
}

func TestExtractInt64(t *testing.T) {
	if v, err := ExtractInt64("room_id", "42"); err != nil || v != 42 {
		t.Errorf("expected 42, got %d (%v)", v, err)
	}
	for _, bad := range []string{"", "0", "-1", "x"} {
		if _, err := ExtractInt64("room_id", bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestWriteError_UsesAppErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "conflict", err: apperrors.Conflict("room taken"), wantStatus: http.StatusConflict, wantError: "room taken"},
		{name: "cancelled", err: apperrors.Cancelled("Booking creation", nil), wantStatus: apperrors.StatusClientClosedRequest, wantError: "Booking creation was cancelled"},
		{name: "internal hides cause", err: apperrors.Internal("db exploded", errors.New("secret")), wantStatus: http.StatusInternalServerError, wantError: "Internal server error"},
		{name: "plain error", err: errors.New("whatever"), wantStatus: http.StatusInternalServerError, wantError: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteError(w, tt.err); err != nil {
				t.Fatalf("unexpected write error: %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if resp.Error != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, resp.Error)
			}
		})
	}
}

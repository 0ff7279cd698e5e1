package service

import (
	"errors"
	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/pkg/model"
	"testing"
)

func TestResult_Err(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name     string
		result   Result
		expected bookingserrors.Kind
		str      string
	}{
		{
			name:   "success",
			result: Success(&model.Booking{Reference: "20240601120000-001"}),
			str:    "Success(20240601120000-001)",
		},
		{
			name:     "unavailable",
			result:   Unavailable("room taken"),
			expected: bookingserrors.KindRoomNotAvailable,
			str:      "Unavailable(room taken)",
		},
		{
			name:     "failure",
			result:   Failure(bookingserrors.Storage("failed to insert", cause)),
			expected: bookingserrors.KindStorage,
			str:      "Failure(StorageError: failed to insert: connection reset)",
		},
		{
			name:     "cancelled",
			result:   Cancelled(cause),
			expected: bookingserrors.KindCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Err()
			if tt.expected == 0 {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				if !tt.result.IsSuccess() {
					t.Error("expected IsSuccess")
				}
			} else if err == nil || err.Kind != tt.expected {
				t.Fatalf("expected kind %s, got %v", tt.expected, err)
			}
			if tt.str != "" && tt.result.String() != tt.str {
				t.Errorf("String() = %q, expected %q", tt.result.String(), tt.str)
			}
		})
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeCancelled.String() != "Cancelled" {
		t.Errorf("unexpected %q", OutcomeCancelled.String())
	}
	if Outcome(42).String() != "Outcome(42)" {
		t.Errorf("unexpected %q", Outcome(42).String())
	}
}

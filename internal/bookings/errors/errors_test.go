package errors

import (
	"context"
	"errors"
	apperrors "hotelbooking/pkg/errors"
	"net/http"
	"testing"
)

func TestBookingError_AppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *BookingError
		wantStatus int
		wantCode   string
	}{
		{name: "invalid argument", err: InvalidArgument("guests must be positive"), wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
		{name: "not found", err: NotFound("hotel %d not found", 7), wantStatus: http.StatusNotFound, wantCode: apperrors.CodeNotFound},
		{name: "room not available", err: RoomNotAvailable("taken"), wantStatus: http.StatusConflict, wantCode: apperrors.CodeConflict},
		{name: "cancelled", err: Cancelled(context.Canceled), wantStatus: apperrors.StatusClientClosedRequest, wantCode: apperrors.CodeCancelled},
		{name: "storage", err: Storage("insert failed", errors.New("disk full")), wantStatus: http.StatusInternalServerError, wantCode: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := tt.err.AppError()
			if appErr.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, appErr.StatusCode())
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestBookingError_Unwrap(t *testing.T) {
	if !errors.Is(RoomNotAvailable("taken"), ErrRoomNotAvailable) {
		t.Error("expected RoomNotAvailable to wrap ErrRoomNotAvailable")
	}
	if !errors.Is(Cancelled(context.DeadlineExceeded), context.DeadlineExceeded) {
		t.Error("expected Cancelled to wrap the context error")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), NotFound("room 3 not found"))
	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("expected NotFound, got %s", got)
	}
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Errorf("expected zero kind, got %s", got)
	}
	if KindStorage.String() != "StorageError" {
		t.Errorf("unexpected kind name %q", KindStorage.String())
	}
}

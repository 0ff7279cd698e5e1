package errors

import (
	"errors"
	"fmt"
	apperrors "hotelbooking/pkg/errors"
	"net/http"
)

var (
	// ErrRoomNotAvailable aborts a booking transaction when the room is taken
	// for the stay.
	ErrRoomNotAvailable = errors.New("room not available for the requested stay")

	ErrInvalidReference = errors.New("invalid booking reference format")
)

type Kind int

const (
	KindInvalidArgument Kind = iota + 1
	KindNotFound
	KindRoomNotAvailable
	KindStorage
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindNotFound:
		return "NotFound"
	case KindRoomNotAvailable:
		return "RoomNotAvailable"
	case KindStorage:
		return "StorageError"
	case KindCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// BookingError is the failure half of a booking outcome.
type BookingError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

// AppError converts the failure into the shape the HTTP layer writes.
func (e *BookingError) AppError() *apperrors.AppError {
	switch e.Kind {
	case KindInvalidArgument:
		return apperrors.InvalidInput(e.Message)
	case KindNotFound:
		return apperrors.New(apperrors.CodeNotFound, e.Message, http.StatusNotFound)
	case KindRoomNotAvailable:
		return apperrors.Conflict(e.Message)
	case KindCancelled:
		return apperrors.Cancelled("Booking", e.Err)
	}
	return apperrors.Internal(e.Message, e.Err)
}

func InvalidArgument(format string, args ...any) *BookingError {
	return &BookingError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *BookingError {
	return &BookingError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func RoomNotAvailable(reason string) *BookingError {
	return &BookingError{Kind: KindRoomNotAvailable, Message: reason, Err: ErrRoomNotAvailable}
}

func Storage(message string, err error) *BookingError {
	return &BookingError{Kind: KindStorage, Message: message, Err: err}
}

func Cancelled(err error) *BookingError {
	return &BookingError{Kind: KindCancelled, Message: "booking request was cancelled", Err: err}
}

// KindOf returns the kind of a *BookingError in err's chain, or 0.
func KindOf(err error) Kind {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

package service

import (
	"fmt"
	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/pkg/model"
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeUnavailable
	OutcomeFailure
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeUnavailable:
		return "Unavailable"
	case OutcomeFailure:
		return "Failure"
	case OutcomeCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Confirmation is what a caller gets back for a committed booking.
type Confirmation struct {
	Reference string
	Booking   *model.Booking
}

// Result is the outcome of CreateBooking. Exactly one of Confirmation,
// Reason or Error is meaningful, selected by Outcome.
type Result struct {
	Outcome      Outcome
	Confirmation *Confirmation
	Reason       string
	Error        *bookingserrors.BookingError
}

func Success(booking *model.Booking) Result {
	return Result{
		Outcome:      OutcomeSuccess,
		Confirmation: &Confirmation{Reference: booking.Reference, Booking: booking},
	}
}

func Unavailable(reason string) Result {
	return Result{Outcome: OutcomeUnavailable, Reason: reason}
}

func Failure(err *bookingserrors.BookingError) Result {
	return Result{Outcome: OutcomeFailure, Error: err}
}

func Cancelled(cause error) Result {
	return Result{Outcome: OutcomeCancelled, Error: bookingserrors.Cancelled(cause)}
}

func (r Result) IsSuccess() bool {
	return r.Outcome == OutcomeSuccess
}

// Err returns nil on success. Otherwise it returns a *BookingError whose Kind
// matches the outcome, so every failure can be reported the same way.
func (r Result) Err() *bookingserrors.BookingError {
	switch r.Outcome {
	case OutcomeSuccess:
		return nil
	case OutcomeUnavailable:
		return bookingserrors.RoomNotAvailable(r.Reason)
	}
	return r.Error
}

func (r Result) String() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("Success(%s)", r.Confirmation.Reference)
	case OutcomeUnavailable:
		return fmt.Sprintf("Unavailable(%s)", r.Reason)
	}
	if r.Error != nil {
		return fmt.Sprintf("%s(%s)", r.Outcome, r.Error.Error())
	}
	return r.Outcome.String()
}

package service

import (
	"context"
	"errors"
	"fmt"
	"hotelbooking/internal/bookings/availability"
	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/internal/bookings/events"
	"hotelbooking/internal/bookings/reference"
	"hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/model"
	"regexp"
	"sync"
	"time"
)

var referencePattern = regexp.MustCompile(`^\d{14}-\d{3,}$`)

type BookingService interface {
	CreateBooking(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time, numberOfGuests int) Result
	FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, numberOfGuests int, hotelID int64) ([]*model.AvailableRoom, error)
	GetByReference(ctx context.Context, reference string) (*model.BookingDetails, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.BookingDetails, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	locks     repository.RoomLockRepository
	refs      *reference.Generator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	locks repository.RoomLockRepository,
	refs *reference.Generator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		locks:     locks,
		refs:      refs,
		publisher: publisher,
		cfg:       cfg,
	}
}

// CreateBooking reserves roomID in hotelID for [checkIn, checkOut). The room
// is locked for the duration of a store transaction that re-reads its
// bookings, so two requests for the same stay cannot both succeed.
func (s *bookingService) CreateBooking(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time, numberOfGuests int) Result {
	if err := ctx.Err(); err != nil {
		return Cancelled(err)
	}

	checkIn, checkOut = calendarDate(checkIn), calendarDate(checkOut)
	if argErr := validateStay(checkIn, checkOut, numberOfGuests); argErr != nil {
		return Failure(argErr)
	}
	if hotelID <= 0 {
		return Failure(bookingserrors.InvalidArgument("hotel id must be positive, got %d", hotelID))
	}
	if roomID <= 0 {
		return Failure(bookingserrors.InvalidArgument("room id must be positive, got %d", roomID))
	}

	hotel, err := s.repo.LoadHotelWithRooms(ctx, hotelID)
	if err != nil {
		return s.failed("load hotel", err, hotelID, roomID)
	}
	room := hotel.Room(roomID)
	if room == nil {
		return Failure(bookingserrors.NotFound("room %d not found in hotel %d", roomID, hotelID))
	}
	if numberOfGuests > room.Capacity() {
		s.cfg.Log.Warn("Booking rejected: capacity exceeded",
			"room_id", roomID,
			"guests", numberOfGuests,
			"capacity", room.Capacity(),
		)
		return Failure(bookingserrors.InvalidArgument(
			"room %d (%s) holds at most %d guests, requested %d",
			roomID, room.RoomTypeName(), room.Capacity(), numberOfGuests,
		))
	}

	release, err := s.locks.LockRoom(ctx, roomID)
	if err != nil {
		return s.failed("lock room", err, hotelID, roomID)
	}
	defer release()

	if err := ctx.Err(); err != nil {
		return Cancelled(err)
	}

	var booking *model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.LoadRoomWithBookings(txCtx, roomID)
		if err != nil {
			return err
		}
		if !availability.IsAvailable(current, current.Bookings, checkIn, checkOut, numberOfGuests) {
			return bookingserrors.ErrRoomNotAvailable
		}
		if err := txCtx.Err(); err != nil {
			return err
		}

		booking = &model.Booking{
			HotelID:        hotelID,
			RoomID:         roomID,
			Reference:      s.refs.Next(),
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			NumberOfGuests: numberOfGuests,
		}
		return s.repo.InsertBooking(txCtx, booking)
	})

	switch {
	case err == nil:
	case errors.Is(err, bookingserrors.ErrRoomNotAvailable), errors.Is(err, store.ErrBookingConflict):
		reason := unavailableReason(numberOfGuests, checkIn, checkOut)
		s.cfg.Log.Warn("Booking rejected: room not available",
			"hotel_id", hotelID,
			"room_id", roomID,
			"check_in", checkIn,
			"check_out", checkOut,
		)
		return Unavailable(reason)
	default:
		return s.failed("create booking", err, hotelID, roomID)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"reference", booking.Reference,
		"hotel_id", hotelID,
		"room_id", roomID,
		"check_in", checkIn,
		"check_out", checkOut,
	)

	if err := s.publisher.BookingCreated(context.WithoutCancel(ctx), booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "reference", booking.Reference, "error", err)
	}

	return Success(booking)
}

// failed classifies a store error into the matching non-success result.
func (s *bookingService) failed(op string, err error, hotelID, roomID int64) Result {
	switch {
	case apperrors.IsContextError(err):
		s.cfg.Log.Warn("Booking cancelled", "op", op, "hotel_id", hotelID, "room_id", roomID, "error", err)
		return Cancelled(err)
	case errors.Is(err, store.ErrNotFound):
		if op == "load hotel" {
			return Failure(bookingserrors.NotFound("hotel %d not found", hotelID))
		}
		return Failure(bookingserrors.NotFound("room %d not found in hotel %d", roomID, hotelID))
	}
	s.cfg.Log.Error("Booking storage failure", "op", op, "hotel_id", hotelID, "room_id", roomID, "error", err)
	return Failure(bookingserrors.Storage(fmt.Sprintf("failed to %s", op), err))
}

func unavailableReason(numberOfGuests int, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("The selected room is not available for %d occupants between %s and %s",
		numberOfGuests, httputil.FormatDate(checkIn), httputil.FormatDate(checkOut))
}

// calendarDate drops the time of day; stays are whole UTC days.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateStay(checkIn, checkOut time.Time, numberOfGuests int) *bookingserrors.BookingError {
	if numberOfGuests <= 0 {
		return bookingserrors.InvalidArgument("number of guests must be positive, got %d", numberOfGuests)
	}
	if checkOut.Equal(checkIn) {
		return bookingserrors.InvalidArgument("check-in date and check-out date cannot be the same")
	}
	if !checkOut.After(checkIn) {
		return bookingserrors.InvalidArgument("check-out %s must be after check-in %s",
			httputil.FormatDate(checkOut), httputil.FormatDate(checkIn))
	}
	return nil
}

// FindAvailableRooms lists rooms that can take the stay, across all hotels
// when hotelID is 0. It never writes.
func (s *bookingService) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, numberOfGuests int, hotelID int64) ([]*model.AvailableRoom, error) {
	if err := ctx.Err(); err != nil {
		return nil, bookingserrors.Cancelled(err)
	}
	checkIn, checkOut = calendarDate(checkIn), calendarDate(checkOut)
	if argErr := validateStay(checkIn, checkOut, numberOfGuests); argErr != nil {
		return nil, argErr
	}
	if hotelID < 0 {
		return nil, bookingserrors.InvalidArgument("hotel id must be positive, got %d", hotelID)
	}

	rooms, err := s.repo.ListRoomsWithBookings(ctx, hotelID)
	if err != nil {
		return nil, s.readError("list rooms", err, func() *bookingserrors.BookingError {
			return bookingserrors.NotFound("hotel %d not found", hotelID)
		})
	}

	available := availability.FindAvailableRooms(rooms, numberOfGuests, checkIn, checkOut)
	result := make([]*model.AvailableRoom, 0, len(available))
	for _, r := range available {
		result = append(result, &model.AvailableRoom{
			RoomID:   r.ID,
			HotelID:  r.HotelID,
			RoomType: r.RoomTypeName(),
			Capacity: r.Capacity(),
		})
	}

	s.cfg.Log.Debug("Availability search completed",
		"hotel_id", hotelID,
		"guests", numberOfGuests,
		"rooms", len(rooms),
		"available", len(result),
	)
	return result, nil
}

func (s *bookingService) GetByReference(ctx context.Context, ref string) (*model.BookingDetails, error) {
	if ref == "" {
		return nil, bookingserrors.InvalidArgument("booking reference cannot be empty")
	}
	if !referencePattern.MatchString(ref) {
		return nil, &bookingserrors.BookingError{
			Kind:    bookingserrors.KindInvalidArgument,
			Message: fmt.Sprintf("booking reference %q is not in YYYYMMDDHHmmss-NNN form", ref),
			Err:     bookingserrors.ErrInvalidReference,
		}
	}

	booking, err := s.repo.FindBookingByReference(ctx, ref)
	if err != nil {
		return nil, s.readError("find booking", err, func() *bookingserrors.BookingError {
			return bookingserrors.NotFound("booking %s not found", ref)
		})
	}

	details, err := s.describe(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountBookings(ctx)
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAllBookings(ctx, limit, offset)
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, s.readError("count bookings", errCount, nil)
	}
	if errFind != nil {
		return nil, 0, s.readError("list bookings", errFind, nil)
	}

	details, err := s.describe(ctx, bookings)
	if err != nil {
		return nil, 0, err
	}
	return details, count, nil
}

// describe resolves hotel and room type names, loading each hotel once.
func (s *bookingService) describe(ctx context.Context, bookings []*model.Booking) ([]*model.BookingDetails, error) {
	hotels := make(map[int64]*model.Hotel)
	details := make([]*model.BookingDetails, 0, len(bookings))

	for _, b := range bookings {
		hotel, ok := hotels[b.HotelID]
		if !ok {
			var err error
			hotel, err = s.repo.LoadHotelWithRooms(ctx, b.HotelID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, s.readError("load hotel", err, nil)
			}
			if hotel == nil {
				hotel = &model.Hotel{ID: b.HotelID}
			}
			hotels[b.HotelID] = hotel
		}

		details = append(details, &model.BookingDetails{
			Reference:      b.Reference,
			HotelID:        b.HotelID,
			HotelName:      hotel.Name,
			RoomID:         b.RoomID,
			RoomType:       hotel.Room(b.RoomID).RoomTypeName(),
			CheckInDate:    httputil.FormatDate(b.CheckIn),
			CheckOutDate:   httputil.FormatDate(b.CheckOut),
			NumberOfGuests: b.NumberOfGuests,
		})
	}
	return details, nil
}

func (s *bookingService) readError(op string, err error, notFound func() *bookingserrors.BookingError) *bookingserrors.BookingError {
	switch {
	case apperrors.IsContextError(err):
		return bookingserrors.Cancelled(err)
	case notFound != nil && errors.Is(err, store.ErrNotFound):
		return notFound()
	}
	s.cfg.Log.Error("Booking read failed", "op", op, "error", err)
	return bookingserrors.Storage(fmt.Sprintf("failed to %s", op), err)
}

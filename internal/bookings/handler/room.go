package handler

import (
	"net/http"
	"strconv"

	"hotelbooking/internal/bookings/service"
	"hotelbooking/internal/bookings/validator"
	apperrors "hotelbooking/pkg/errors"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// RoomHandler serves the read-only availability search. It shares the
// booking service and error mapping with BookingHandler.
type RoomHandler struct {
	*BookingHandler
}

func NewRoomHandler(service service.BookingService, validator *validator.BookingValidator, log *logger.Logger) *RoomHandler {
	return &RoomHandler{BookingHandler: NewBookingHandler(service, validator, log)}
}

func (h *RoomHandler) Available(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	q := model.AvailabilityQuery{
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
	}

	if s := query.Get("guests"); s != "" {
		guests, err := strconv.Atoi(s)
		if err != nil {
			h.writeError(w, "Available", apperrors.InvalidInput("invalid guests parameter: "+s))
			return
		}
		q.NumberOfGuests = guests
	}
	if s := query.Get("hotel_id"); s != "" {
		hotelID, err := httputil.ExtractInt64("hotel_id", s)
		if err != nil {
			h.writeError(w, "Available", err)
			return
		}
		q.HotelID = hotelID
	}

	stay, err := h.validator.ValidateAvailability(&q)
	if err != nil {
		h.writeError(w, "Available", err)
		return
	}

	rooms, err := h.service.FindAvailableRooms(r.Context(), stay.CheckIn, stay.CheckOut, q.NumberOfGuests, q.HotelID)
	if err != nil {
		h.writeError(w, "Available", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "Available", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms/available", h.Available)
}

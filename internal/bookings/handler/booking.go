package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/internal/bookings/events"
	"hotelbooking/internal/bookings/service"
	"hotelbooking/internal/bookings/validator"
	apperrors "hotelbooking/pkg/errors"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/middleware"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const bookingCreatedMessage = "Booking created successfully"

type BookingHandler struct {
	service   service.BookingService
	validator *validator.BookingValidator
	log       *logger.Logger
}

func NewBookingHandler(service service.BookingService, validator *validator.BookingValidator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:   service,
		validator: validator,
		log:       log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	stay, err := h.validator.ValidateBooking(&req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	ctx := events.WithCorrelationID(r.Context(), middleware.RequestIDFromContext(r.Context()))
	result := h.service.CreateBooking(ctx, req.HotelID, req.RoomID, stay.CheckIn, stay.CheckOut, req.NumberOfGuests)
	if !result.IsSuccess() {
		h.writeError(w, "Create", result.Err())
		return
	}

	if err := httputil.WriteCreated(w, model.BookingCreatedResponse{
		Reference: result.Confirmation.Reference,
		Message:   bookingCreatedMessage,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByReference(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	details, err := h.service.GetByReference(r.Context(), ps.ByName("reference"))
	if err != nil {
		h.writeError(w, "GetByReference", err)
		return
	}

	if err := httputil.WriteSuccess(w, details); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByReference", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}
	if total == 0 {
		h.writeError(w, "GetAll", apperrors.NotFound("Bookings"))
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

// writeError maps booking failures and validation errors onto AppErrors;
// anything else is written as-is.
func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	var bookingErr *bookingserrors.BookingError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &bookingErr):
		err = bookingErr.AppError()
	case errors.As(err, &validationErrs):
		err = apperrors.Validation("Request validation failed", validationErrs.Details())
	}

	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/reference/:reference", h.GetByReference)
}

package validator

import (
	"errors"
	"fmt"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"strings"
	"time"

	httputil "hotelbooking/pkg/http"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into the map carried by a validation AppError.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// Stay is a request's parsed date range. Ordering is checked by the service.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("stay_date", validateStayDate); err != nil {
		log.Fatal("Failed to register 'stay_date' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateStayDate(fl validator.FieldLevel) bool {
	_, err := httputil.ParseDate(fl.Field().String())
	return err == nil
}

func (v *BookingValidator) ValidateBooking(req *model.BookingRequest) (Stay, error) {
	if err := v.check(req); err != nil {
		return Stay{}, err
	}
	return parseStay(req.CheckInDate, req.CheckOutDate)
}

func (v *BookingValidator) ValidateAvailability(query *model.AvailabilityQuery) (Stay, error) {
	if err := v.check(query); err != nil {
		return Stay{}, err
	}
	return parseStay(query.CheckIn, query.CheckOut)
}

func (v *BookingValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func parseStay(checkIn, checkOut string) (Stay, error) {
	in, err := httputil.ParseDate(checkIn)
	if err != nil {
		return Stay{}, ValidationErrors{{Field: "CheckIn", Message: err.Error()}}
	}
	out, err := httputil.ParseDate(checkOut)
	if err != nil {
		return Stay{}, ValidationErrors{{Field: "CheckOut", Message: err.Error()}}
	}
	return Stay{CheckIn: in, CheckOut: out}, nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "stay_date":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD, dd/MM/yyyy or RFC3339 form", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

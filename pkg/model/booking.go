package model

import (
	"time"
)

type Booking struct {
	ID             int64     `json:"id" bson:"_id"`
	HotelID        int64     `json:"hotel_id" bson:"hotel_id"`
	RoomID         int64     `json:"room_id" bson:"room_id"`
	Reference      string    `json:"reference" bson:"reference"`
	CheckIn        time.Time `json:"check_in" bson:"check_in"`
	CheckOut       time.Time `json:"check_out" bson:"check_out"`
	NumberOfGuests int       `json:"number_of_guests" bson:"number_of_guests"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// BookingRequest is the wire shape of a create call. Dates stay strings until
// the handler parses them so that several input formats can be accepted.
type BookingRequest struct {
	HotelID        int64  `json:"hotel_id" validate:"required,min=1"`
	RoomID         int64  `json:"room_id" validate:"required,min=1"`
	CheckInDate    string `json:"check_in_date" validate:"required,stay_date"`
	CheckOutDate   string `json:"check_out_date" validate:"required,stay_date"`
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1,max=20"`
}

type BookingDetails struct {
	Reference      string `json:"booking_reference"`
	HotelID        int64  `json:"hotel_id"`
	HotelName      string `json:"hotel_name"`
	RoomID         int64  `json:"room_id"`
	RoomType       string `json:"room_type"`
	CheckInDate    string `json:"check_in_date"`
	CheckOutDate   string `json:"check_out_date"`
	NumberOfGuests int    `json:"number_of_guests"`
}

type BookingCreatedResponse struct {
	Reference string `json:"booking_reference"`
	Message   string `json:"message"`
}

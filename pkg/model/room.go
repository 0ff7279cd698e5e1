package model

const (
	RoomTypeSingle int64 = 1
	RoomTypeDouble int64 = 2
	RoomTypeDeluxe int64 = 3
)

type RoomType struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Capacity int    `json:"capacity" bson:"capacity"`
}

type Room struct {
	ID         int64      `json:"id" bson:"_id"`
	HotelID    int64      `json:"hotel_id" bson:"hotel_id"`
	RoomTypeID int64      `json:"room_type_id" bson:"room_type_id"`
	RoomType   *RoomType  `json:"room_type,omitempty" bson:"-"`
	Bookings   []*Booking `json:"-" bson:"-"`
}

// Capacity is zero when the room type has not been loaded.
func (r *Room) Capacity() int {
	if r == nil || r.RoomType == nil {
		return 0
	}
	return r.RoomType.Capacity
}

func (r *Room) RoomTypeName() string {
	if r == nil || r.RoomType == nil {
		return ""
	}
	return r.RoomType.Name
}

type AvailableRoom struct {
	RoomID   int64  `json:"room_id"`
	HotelID  int64  `json:"hotel_id"`
	RoomType string `json:"room_type"`
	Capacity int    `json:"capacity"`
}

type AvailabilityQuery struct {
	CheckIn        string `json:"check_in" validate:"required,stay_date"`
	CheckOut       string `json:"check_out" validate:"required,stay_date"`
	NumberOfGuests int    `json:"guests" validate:"required,min=1,max=20"`
	HotelID        int64  `json:"hotel_id" validate:"omitempty,min=1"`
}

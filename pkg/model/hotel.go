package model

type Hotel struct {
	ID    int64   `json:"id" bson:"_id"`
	Name  string  `json:"name" bson:"name"`
	Rooms []*Room `json:"rooms,omitempty" bson:"-"`
}

// Room returns the hotel's room with the given id, or nil when the room
// belongs to another hotel or does not exist.
func (h *Hotel) Room(roomID int64) *Room {
	for _, r := range h.Rooms {
		if r.ID == roomID {
			return r
		}
	}
	return nil
}

type HotelSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

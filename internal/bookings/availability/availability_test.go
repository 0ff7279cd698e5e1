package availability

import (
	"hotelbooking/pkg/model"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayN(n int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func roomWithCapacity(capacity int, bookings ...*model.Booking) *model.Room {
	return &model.Room{
		ID:         1,
		HotelID:    1,
		RoomTypeID: model.RoomTypeDouble,
		RoomType:   &model.RoomType{ID: model.RoomTypeDouble, Name: "Double", Capacity: capacity},
		Bookings:   bookings,
	}
}

func stay(in, out string) *model.Booking {
	return &model.Booking{RoomID: 1, CheckIn: date(in), CheckOut: date(out), NumberOfGuests: 1}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                 string
		aIn, aOut, bIn, bOut string
		want                 bool
	}{
		{name: "identical", aIn: "2024-01-01", aOut: "2024-01-05", bIn: "2024-01-01", bOut: "2024-01-05", want: true},
		{name: "b starts inside a", aIn: "2024-01-01", aOut: "2024-01-05", bIn: "2024-01-03", bOut: "2024-01-08", want: true},
		{name: "b ends inside a", aIn: "2024-01-05", aOut: "2024-01-10", bIn: "2024-01-01", bOut: "2024-01-06", want: true},
		{name: "b inside a", aIn: "2024-01-01", aOut: "2024-01-10", bIn: "2024-01-03", bOut: "2024-01-04", want: true},
		{name: "a inside b", aIn: "2024-01-03", aOut: "2024-01-04", bIn: "2024-01-01", bOut: "2024-01-10", want: true},
		{name: "b starts on a checkout", aIn: "2024-01-01", aOut: "2024-01-05", bIn: "2024-01-05", bOut: "2024-01-08", want: false},
		{name: "b ends on a checkin", aIn: "2024-01-05", aOut: "2024-01-08", bIn: "2024-01-01", bOut: "2024-01-05", want: false},
		{name: "disjoint", aIn: "2024-01-01", aOut: "2024-01-02", bIn: "2024-02-01", bOut: "2024-02-02", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aIn), date(tt.aOut), date(tt.bIn), date(tt.bOut))
			if got != tt.want {
				t.Errorf("Overlaps() = %v, expected %v", got, tt.want)
			}
			if sym := Overlaps(date(tt.bIn), date(tt.bOut), date(tt.aIn), date(tt.aOut)); sym != got {
				t.Errorf("Overlaps is not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestOverlaps_ExhaustiveSweep(t *testing.T) {
	const days = 8
	for a := 0; a < days; a++ {
		for b := a + 1; b <= days; b++ {
			for c := 0; c < days; c++ {
				for d := c + 1; d <= days; d++ {
					want := a < d && c < b
					if got := Overlaps(dayN(a), dayN(b), dayN(c), dayN(d)); got != want {
						t.Fatalf("Overlaps([%d,%d), [%d,%d)) = %v, expected %v", a, b, c, d, got, want)
					}
					room := roomWithCapacity(2)
					existing := []*model.Booking{{CheckIn: dayN(a), CheckOut: dayN(b)}}
					if got := IsAvailable(room, existing, dayN(c), dayN(d), 1); got != !want {
						t.Fatalf("IsAvailable with [%d,%d) booked, request [%d,%d) = %v, expected %v", a, b, c, d, got, !want)
					}
				}
			}
		}
	}
}

func TestIsAvailable(t *testing.T) {
	existing := []*model.Booking{stay("2024-01-01", "2024-01-05")}

	tests := []struct {
		name     string
		capacity int
		guests   int
		in, out  string
		want     bool
	}{
		{name: "same-day turnover", capacity: 2, guests: 2, in: "2024-01-05", out: "2024-01-08", want: true},
		{name: "overlapping stay", capacity: 2, guests: 1, in: "2024-01-04", out: "2024-01-06", want: false},
		{name: "capacity boundary accepts", capacity: 2, guests: 2, in: "2024-02-01", out: "2024-02-03", want: true},
		{name: "capacity boundary rejects", capacity: 2, guests: 3, in: "2024-02-01", out: "2024-02-03", want: false},
		{name: "capacity rejects even when free", capacity: 1, guests: 2, in: "2024-03-01", out: "2024-03-02", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := roomWithCapacity(tt.capacity)
			if got := IsAvailable(room, existing, date(tt.in), date(tt.out), tt.guests); got != tt.want {
				t.Errorf("IsAvailable() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestIsAvailable_RoomTypeNotLoaded(t *testing.T) {
	room := &model.Room{ID: 1}
	if IsAvailable(room, nil, date("2024-01-01"), date("2024-01-02"), 1) {
		t.Error("expected a room without a loaded type to be unavailable")
	}
}

func TestFirstConflict(t *testing.T) {
	first := stay("2024-01-01", "2024-01-05")
	second := stay("2024-01-10", "2024-01-12")
	existing := []*model.Booking{first, second}

	if got := FirstConflict(existing, date("2024-01-11"), date("2024-01-13")); got != second {
		t.Errorf("expected second booking, got %+v", got)
	}
	if got := FirstConflict(existing, date("2024-01-05"), date("2024-01-10")); got != nil {
		t.Errorf("expected no conflict between stays, got %+v", got)
	}
}

func TestFindAvailableRooms(t *testing.T) {
	free := roomWithCapacity(2)
	free.ID = 1
	booked := roomWithCapacity(2, stay("2024-06-01", "2024-06-03"))
	booked.ID = 2
	small := roomWithCapacity(1)
	small.ID = 3
	alsoFree := roomWithCapacity(4)
	alsoFree.ID = 4
	rooms := []*model.Room{free, booked, small, alsoFree}

	got := FindAvailableRooms(rooms, 2, date("2024-06-02"), date("2024-06-04"))
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("expected rooms [1 4] in input order, got %v", ids(got))
	}

	again := FindAvailableRooms(rooms, 2, date("2024-06-02"), date("2024-06-04"))
	if len(again) != len(got) {
		t.Fatalf("expected idempotent result, got %v then %v", ids(got), ids(again))
	}
	for i := range got {
		if got[i].ID != again[i].ID {
			t.Errorf("expected idempotent result, got %v then %v", ids(got), ids(again))
		}
	}

	if empty := FindAvailableRooms(nil, 1, date("2024-06-02"), date("2024-06-04")); len(empty) != 0 {
		t.Errorf("expected no rooms, got %v", ids(empty))
	}
}

func ids(rooms []*model.Room) []int64 {
	out := make([]int64, len(rooms))
	for i, r := range rooms {
		out[i] = r.ID
	}
	return out
}

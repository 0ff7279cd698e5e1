// Package memory is an in-process Entity Store. It backs the tests and the
// "memory" driver, and emulates the exclusion constraint the SQL driver has.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
	"slices"
	"strings"
	"sync"
	"time"
)

type Store struct {
	mu            sync.RWMutex
	roomTypes     map[int64]*model.RoomType
	hotels        map[int64]*model.Hotel
	rooms         map[int64]*model.Room
	bookings      map[int64][]*model.Booking
	references    map[string]*model.Booking
	nextHotelID   int64
	nextRoomID    int64
	nextBookingID int64

	locks *store.RoomLocks
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		roomTypes:  make(map[int64]*model.RoomType),
		hotels:     make(map[int64]*model.Hotel),
		rooms:      make(map[int64]*model.Room),
		bookings:   make(map[int64][]*model.Booking),
		references: make(map[string]*model.Booking),
		locks:      store.NewRoomLocks(),
	}
}

type txKey struct{}

type tx struct {
	mu      sync.Mutex
	pending []*model.Booking
}

func txFromContext(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

func (s *Store) LoadRoomWithBookings(ctx context.Context, roomID int64) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", roomID, store.ErrNotFound)
	}
	out := s.cloneRoom(room)
	if t := txFromContext(ctx); t != nil {
		t.mu.Lock()
		for _, b := range t.pending {
			if b.RoomID == roomID {
				c := *b
				out.Bookings = append(out.Bookings, &c)
			}
		}
		t.mu.Unlock()
	}
	return out, nil
}

func (s *Store) LoadHotelWithRooms(ctx context.Context, hotelID int64) (*model.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	hotel, ok := s.hotels[hotelID]
	if !ok {
		return nil, fmt.Errorf("hotel %d: %w", hotelID, store.ErrNotFound)
	}
	out := &model.Hotel{ID: hotel.ID, Name: hotel.Name}
	for _, id := range s.sortedRoomIDs(hotelID) {
		r := s.cloneRoom(s.rooms[id])
		r.Bookings = nil
		out.Rooms = append(out.Rooms, r)
	}
	return out, nil
}

// InsertBooking assigns the booking's id and creation time. Outside a
// transaction the booking is committed immediately.
func (s *Store) InsertBooking(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := txFromContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[booking.RoomID]; !ok {
		return fmt.Errorf("room %d: %w", booking.RoomID, store.ErrNotFound)
	}
	if err := s.checkConflict(booking, s.bookings[booking.RoomID]); err != nil {
		return err
	}

	s.nextBookingID++
	booking.ID = s.nextBookingID
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if t == nil {
		s.commit(booking)
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := s.checkConflict(booking, t.pending); err != nil {
		return err
	}
	c := *booking
	t.pending = append(t.pending, &c)
	return nil
}

// ExecuteTransaction buffers inserts made by fn and applies them atomically
// once fn returns nil. A nested call joins the outer transaction.
func (s *Store) ExecuteTransaction(ctx context.Context, fn store.TransactionFunc) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	t := &tx{}
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range t.pending {
		if err := s.checkConflict(b, s.bookings[b.RoomID]); err != nil {
			return err
		}
	}
	for _, b := range t.pending {
		s.commit(b)
	}
	t.pending = nil
	return nil
}

// checkConflict stands in for a unique reference index and a per-room
// exclusion constraint. Caller holds s.mu.
func (s *Store) checkConflict(booking *model.Booking, existing []*model.Booking) error {
	if _, ok := s.references[booking.Reference]; ok {
		return fmt.Errorf("reference %s: %w", booking.Reference, store.ErrBookingConflict)
	}
	for _, b := range existing {
		if b.Reference == booking.Reference {
			return fmt.Errorf("reference %s: %w", booking.Reference, store.ErrBookingConflict)
		}
		if b.RoomID == booking.RoomID && b.CheckIn.Before(booking.CheckOut) && booking.CheckIn.Before(b.CheckOut) {
			return fmt.Errorf("room %d: %w", booking.RoomID, store.ErrBookingConflict)
		}
	}
	return nil
}

func (s *Store) commit(booking *model.Booking) {
	c := *booking
	s.bookings[c.RoomID] = append(s.bookings[c.RoomID], &c)
	s.references[c.Reference] = &c
}

func (s *Store) ListRoomsWithBookings(ctx context.Context, hotelID int64) ([]*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if hotelID != 0 {
		if _, ok := s.hotels[hotelID]; !ok {
			return nil, fmt.Errorf("hotel %d: %w", hotelID, store.ErrNotFound)
		}
	}

	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, id := range s.sortedRoomIDs(hotelID) {
		rooms = append(rooms, s.cloneRoom(s.rooms[id]))
	}
	return rooms, nil
}

func (s *Store) FindBookingByReference(ctx context.Context, reference string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.references[reference]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", reference, store.ErrNotFound)
	}
	c := *b
	return &c, nil
}

// FindAllBookings orders by id, which is creation order.
func (s *Store) FindAllBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*model.Booking, 0, len(s.references))
	for _, b := range s.references {
		c := *b
		all = append(all, &c)
	}
	slices.SortFunc(all, func(a, b *model.Booking) int { return cmp.Compare(a.ID, b.ID) })
	return page(all, limit, offset), nil
}

func (s *Store) CountBookings(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.references)), nil
}

func (s *Store) SearchHotelsByName(ctx context.Context, name string) ([]*model.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := sanitizer.NormalizeNameForComparison(name)
	var hotels []*model.Hotel
	for _, h := range s.sortedHotels() {
		if strings.Contains(sanitizer.NormalizeNameForComparison(h.Name), needle) {
			hotels = append(hotels, &model.Hotel{ID: h.ID, Name: h.Name})
		}
	}
	return hotels, nil
}

func (s *Store) FindAllHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*model.Hotel, 0, len(s.hotels))
	for _, h := range s.sortedHotels() {
		all = append(all, &model.Hotel{ID: h.ID, Name: h.Name})
	}
	return page(all, limit, offset), nil
}

func (s *Store) CountHotels(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.hotels)), nil
}

func (s *Store) ListRoomTypes(ctx context.Context) ([]*model.RoomType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]*model.RoomType, 0, len(s.roomTypes))
	for _, rt := range s.roomTypes {
		c := *rt
		types = append(types, &c)
	}
	slices.SortFunc(types, func(a, b *model.RoomType) int { return cmp.Compare(a.ID, b.ID) })
	return types, nil
}

func (s *Store) SeedReferenceData(ctx context.Context, roomTypes []*model.RoomType, hotels []*model.Hotel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.hotels) > 0 {
		return store.ErrAlreadySeeded
	}

	names := make(map[string]struct{}, len(hotels))
	for _, h := range hotels {
		if _, dup := names[h.Name]; dup {
			return fmt.Errorf("duplicate hotel name %q", h.Name)
		}
		names[h.Name] = struct{}{}
	}

	known := make(map[int64]struct{}, len(s.roomTypes)+len(roomTypes))
	for id := range s.roomTypes {
		known[id] = struct{}{}
	}
	for _, rt := range roomTypes {
		known[rt.ID] = struct{}{}
	}
	for _, h := range hotels {
		for _, r := range h.Rooms {
			if _, ok := known[r.RoomTypeID]; !ok {
				return fmt.Errorf("room type %d: %w", r.RoomTypeID, store.ErrNotFound)
			}
		}
	}

	for _, rt := range roomTypes {
		c := *rt
		s.roomTypes[rt.ID] = &c
	}

	for _, h := range hotels {
		s.nextHotelID++
		h.ID = s.nextHotelID
		s.hotels[h.ID] = &model.Hotel{ID: h.ID, Name: h.Name}
		for _, r := range h.Rooms {
			s.nextRoomID++
			r.ID = s.nextRoomID
			r.HotelID = h.ID
			s.rooms[r.ID] = &model.Room{ID: r.ID, HotelID: h.ID, RoomTypeID: r.RoomTypeID}
		}
	}
	return nil
}

func (s *Store) ClearTransactionalData(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hotels = make(map[int64]*model.Hotel)
	s.rooms = make(map[int64]*model.Room)
	s.bookings = make(map[int64][]*model.Booking)
	s.references = make(map[string]*model.Booking)
	return nil
}

// LockRoom waits without limit; callers bound it through ctx.
func (s *Store) LockRoom(ctx context.Context, roomID int64) (func(), error) {
	return s.locks.Acquire(ctx, roomID, 0)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(context.Context) error {
	return nil
}

// cloneRoom copies a room with its type and committed bookings. Caller holds s.mu.
func (s *Store) cloneRoom(room *model.Room) *model.Room {
	out := &model.Room{ID: room.ID, HotelID: room.HotelID, RoomTypeID: room.RoomTypeID}
	if rt, ok := s.roomTypes[room.RoomTypeID]; ok {
		c := *rt
		out.RoomType = &c
	}
	for _, b := range s.bookings[room.ID] {
		c := *b
		out.Bookings = append(out.Bookings, &c)
	}
	return out
}

func (s *Store) sortedRoomIDs(hotelID int64) []int64 {
	ids := make([]int64, 0, len(s.rooms))
	for id, r := range s.rooms {
		if hotelID == 0 || r.HotelID == hotelID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *Store) sortedHotels() []*model.Hotel {
	hotels := make([]*model.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		hotels = append(hotels, h)
	}
	slices.SortFunc(hotels, func(a, b *model.Hotel) int { return cmp.Compare(a.ID, b.ID) })
	return hotels
}

func page[T any](all []T, limit int, offset int64) []T {
	offset = max(0, offset)
	if offset >= int64(len(all)) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && int(offset)+limit < end {
		end = int(offset) + limit
	}
	return all[offset:end]
}

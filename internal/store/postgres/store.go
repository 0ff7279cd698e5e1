// Package postgres is the PostgreSQL Entity Store. The bookings table carries
// an exclusion constraint over (room_id, [check_in, check_out)), so overlapping
// bookings are rejected by the database itself.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/db/postgres"
	"hotelbooking/pkg/model"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	codeForeignKeyViolation = "23503"

	constraintHotelName = "hotels_name_key"
)

type Options struct {
	LockWaitTimeout time.Duration
}

type Store struct {
	db    *postgres.DB
	opts  Options
	locks *store.RoomLocks
}

var _ store.Store = (*Store)(nil)

func New(db *postgres.DB, opts Options) *Store {
	return &Store{db: db, opts: opts, locks: store.NewRoomLocks()}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type txQuerier struct {
	tx pgx.Tx
}

func (q txQuerier) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := q.tx.Exec(ctx, sql, args...)
	return err
}

func (q txQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.tx.QueryRow(ctx, sql, args...)
}

func (q txQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.tx.Query(ctx, sql, args...)
}

type txKey struct{}

// q returns the transaction carried by ctx, or the pool.
func (s *Store) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return txQuerier{tx: tx}
	}
	return s.db
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(pgx.Tx)
	return ok
}

func (s *Store) ExecuteTransaction(ctx context.Context, fn store.TransactionFunc) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translate(err, "commit transaction")
	}
	return nil
}

const roomColumns = `r.id, r.hotel_id, r.room_type_id, t.name, t.capacity`

func scanRoom(row pgx.Row) (*model.Room, error) {
	room := &model.Room{RoomType: &model.RoomType{}}
	if err := row.Scan(&room.ID, &room.HotelID, &room.RoomTypeID, &room.RoomType.Name, &room.RoomType.Capacity); err != nil {
		return nil, err
	}
	room.RoomType.ID = room.RoomTypeID
	return room, nil
}

const bookingColumns = `id, hotel_id, room_id, reference, check_in, check_out, number_of_guests, created_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(&b.ID, &b.HotelID, &b.RoomID, &b.Reference, &b.CheckIn, &b.CheckOut, &b.NumberOfGuests, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.CheckIn = b.CheckIn.UTC()
	b.CheckOut = b.CheckOut.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

// LoadRoomWithBookings locks the room for the rest of the transaction when
// called inside one, so the bookings read stay current until commit.
func (s *Store) LoadRoomWithBookings(ctx context.Context, roomID int64) (*model.Room, error) {
	q := s.q(ctx)
	if inTx(ctx) {
		if err := s.lockRoomInTx(ctx, q, roomID); err != nil {
			return nil, err
		}
	}
	room, err := scanRoom(q.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms r JOIN room_types t ON t.id = r.room_type_id WHERE r.id = $1`, roomID))
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("room %d: %w", roomID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE room_id = $1 ORDER BY check_in`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		room.Bookings = append(room.Bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return room, nil
}

func (s *Store) LoadHotelWithRooms(ctx context.Context, hotelID int64) (*model.Hotel, error) {
	q := s.q(ctx)
	hotel := &model.Hotel{}
	err := q.QueryRow(ctx, `SELECT id, name FROM hotels WHERE id = $1`, hotelID).Scan(&hotel.ID, &hotel.Name)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("hotel %d: %w", hotelID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}

	rooms, err := s.findRooms(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	hotel.Rooms = rooms
	return hotel, nil
}

func (s *Store) InsertBooking(ctx context.Context, booking *model.Booking) error {
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	err := s.q(ctx).QueryRow(ctx,
		`INSERT INTO bookings (hotel_id, room_id, reference, check_in, check_out, number_of_guests, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		booking.HotelID, booking.RoomID, booking.Reference, booking.CheckIn, booking.CheckOut, booking.NumberOfGuests, booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		return translate(err, "create booking")
	}
	return nil
}

func (s *Store) ListRoomsWithBookings(ctx context.Context, hotelID int64) ([]*model.Room, error) {
	q := s.q(ctx)
	if hotelID != 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM hotels WHERE id = $1)`, hotelID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to find hotel: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("hotel %d: %w", hotelID, store.ErrNotFound)
		}
	}

	rooms, err := s.findRooms(ctx, q, hotelID)
	if err != nil || len(rooms) == 0 {
		return rooms, err
	}

	ids := make([]int64, len(rooms))
	byID := make(map[int64]*model.Room, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
		byID[r.ID] = r
	}

	rows, err := q.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE room_id = ANY($1) ORDER BY room_id, check_in`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if r, ok := byID[b.RoomID]; ok {
			r.Bookings = append(r.Bookings, b)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return rooms, nil
}

func (s *Store) FindBookingByReference(ctx context.Context, reference string) (*model.Booking, error) {
	b, err := scanBooking(s.q(ctx).QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE reference = $1`, reference))
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, fmt.Errorf("booking %s: %w", reference, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return b, nil
}

func (s *Store) FindAllBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	rows, err := s.q(ctx).Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (s *Store) CountBookings(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q(ctx).QueryRow(ctx, `SELECT count(*) FROM bookings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (s *Store) SearchHotelsByName(ctx context.Context, name string) ([]*model.Hotel, error) {
	return s.queryHotels(ctx,
		`SELECT id, name FROM hotels WHERE name ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`, escapeLike(name))
}

func (s *Store) FindAllHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	return s.queryHotels(ctx, `SELECT id, name FROM hotels ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

func (s *Store) CountHotels(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q(ctx).QueryRow(ctx, `SELECT count(*) FROM hotels`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}
	return n, nil
}

func (s *Store) ListRoomTypes(ctx context.Context) ([]*model.RoomType, error) {
	rows, err := s.q(ctx).Query(ctx, `SELECT id, name, capacity FROM room_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find room types: %w", err)
	}
	defer rows.Close()

	types := []*model.RoomType{}
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan room type: %w", err)
		}
		types = append(types, &rt)
	}
	return types, rows.Err()
}

func (s *Store) SeedReferenceData(ctx context.Context, roomTypes []*model.RoomType, hotels []*model.Hotel) error {
	return s.ExecuteTransaction(ctx, func(ctx context.Context) error {
		q := s.q(ctx)

		// Serialises concurrent seeders on the hotels table.
		if err := q.Exec(ctx, `LOCK TABLE hotels IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("failed to lock hotels: %w", err)
		}

		var existing int64
		if err := q.QueryRow(ctx, `SELECT count(*) FROM hotels`).Scan(&existing); err != nil {
			return fmt.Errorf("failed to count hotels: %w", err)
		}
		if existing > 0 {
			return store.ErrAlreadySeeded
		}

		for _, rt := range roomTypes {
			err := q.Exec(ctx,
				`INSERT INTO room_types (id, name, capacity) VALUES ($1, $2, $3)
				 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, capacity = EXCLUDED.capacity`,
				rt.ID, rt.Name, rt.Capacity)
			if err != nil {
				return fmt.Errorf("failed to upsert room type %s: %w", rt.Name, err)
			}
		}

		for _, h := range hotels {
			if err := q.QueryRow(ctx, `INSERT INTO hotels (name) VALUES ($1) RETURNING id`, h.Name).Scan(&h.ID); err != nil {
				return translate(err, "create hotel "+h.Name)
			}
			for _, r := range h.Rooms {
				r.HotelID = h.ID
				err := q.QueryRow(ctx,
					`INSERT INTO rooms (hotel_id, room_type_id) VALUES ($1, $2) RETURNING id`,
					r.HotelID, r.RoomTypeID).Scan(&r.ID)
				if err != nil {
					return translate(err, "create room")
				}
			}
		}
		return nil
	})
}

func (s *Store) ClearTransactionalData(ctx context.Context) error {
	return s.ExecuteTransaction(ctx, func(ctx context.Context) error {
		q := s.q(ctx)
		for _, table := range []string{"bookings", "rooms", "hotels"} {
			if err := q.Exec(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close is a no-op; the pool belongs to pkg/client.
func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) findRooms(ctx context.Context, q querier, hotelID int64) ([]*model.Room, error) {
	sql := `SELECT ` + roomColumns + ` FROM rooms r JOIN room_types t ON t.id = r.room_type_id`
	var args []any
	if hotelID != 0 {
		sql += ` WHERE r.hotel_id = $1`
		args = append(args, hotelID)
	}
	sql += ` ORDER BY r.id`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer rows.Close()

	rooms := []*model.Room{}
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (s *Store) queryHotels(ctx context.Context, sql string, args ...any) ([]*model.Hotel, error) {
	rows, err := s.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer rows.Close()

	hotels := []*model.Hotel{}
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, &h)
	}
	return hotels, rows.Err()
}

// translate maps constraint violations onto store errors. Only the stay
// exclusion constraint means a booking conflict; a duplicate hotel name means
// another seeder got there first.
func translate(err error, op string) error {
	switch {
	case postgres.HasCode(err, postgres.CodeExclusionViolation):
		return fmt.Errorf("%s: %w", op, store.ErrBookingConflict)
	case postgres.HasCode(err, postgres.CodeUniqueViolation) && postgres.ConstraintName(err) == constraintHotelName:
		return fmt.Errorf("%s: %w", op, store.ErrAlreadySeeded)
	case postgres.HasCode(err, codeForeignKeyViolation):
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

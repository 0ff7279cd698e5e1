// Package mongo is the MongoDB Entity Store. Bookings are inserted inside a
// multi-document transaction that also bumps the room's booking_seq, so two
// concurrent writers on one room cannot both commit.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"hotelbooking/internal/store"
	mongotx "hotelbooking/pkg/db/mongo"
	"hotelbooking/pkg/model"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	HotelsCollection    = "Hotels"
	RoomsCollection     = "Rooms"
	RoomTypesCollection = "Room_types"
	BookingsCollection  = "Bookings"
	RoomLocksCollection = "Room_locks"
	CountersCollection  = "Counters"
)

type Options struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	LockTTL         time.Duration
	LockWaitTimeout time.Duration
}

type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	hotels    *mongo.Collection
	rooms     *mongo.Collection
	roomTypes *mongo.Collection
	bookings  *mongo.Collection
	locks     *mongo.Collection
	counters  *mongo.Collection
	txManager mongotx.TransactionManager
	opts      Options
}

var _ store.Store = (*Store)(nil)

func New(client *mongo.Client, databaseName string, opts Options) *Store {
	db := client.Database(databaseName)
	return &Store{
		client:    client,
		db:        db,
		hotels:    db.Collection(HotelsCollection),
		rooms:     db.Collection(RoomsCollection),
		roomTypes: db.Collection(RoomTypesCollection),
		bookings:  db.Collection(BookingsCollection),
		locks:     db.Collection(RoomLocksCollection),
		counters:  db.Collection(CountersCollection),
		txManager: mongotx.NewTransactionManager(client),
		opts:      opts,
	}
}

// withTimeout leaves a session context untouched; wrapping it would detach
// the calls from the running transaction.
func (s *Store) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if mongotx.InSession(ctx) {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (s *Store) LoadRoomWithBookings(ctx context.Context, roomID int64) (*model.Room, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	var room model.Room
	if err := s.rooms.FindOne(ctx, bson.M{"_id": roomID}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("room %d: %w", roomID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	roomType, err := s.findRoomType(ctx, room.RoomTypeID)
	if err != nil {
		return nil, err
	}
	room.RoomType = roomType

	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cursor, err := s.bookings.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &room.Bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return &room, nil
}

func (s *Store) LoadHotelWithRooms(ctx context.Context, hotelID int64) (*model.Hotel, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	var hotel model.Hotel
	if err := s.hotels.FindOne(ctx, bson.M{"_id": hotelID}).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("hotel %d: %w", hotelID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}

	rooms, err := s.findRooms(ctx, bson.M{"hotel_id": hotelID})
	if err != nil {
		return nil, err
	}
	hotel.Rooms = rooms
	return &hotel, nil
}

func (s *Store) InsertBooking(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := s.withTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	overlapping, err := s.bookings.CountDocuments(ctx, bson.M{
		"room_id":   booking.RoomID,
		"check_in":  bson.M{"$lt": booking.CheckOut},
		"check_out": bson.M{"$gt": booking.CheckIn},
	})
	if err != nil {
		return fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	if overlapping > 0 {
		return fmt.Errorf("room %d: %w", booking.RoomID, store.ErrBookingConflict)
	}

	id, err := s.nextSequence(ctx, BookingsCollection)
	if err != nil {
		return err
	}
	booking.ID = id
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := s.bookings.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("reference %s: %w", booking.Reference, store.ErrBookingConflict)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	res, err := s.rooms.UpdateOne(ctx, bson.M{"_id": booking.RoomID}, bson.M{"$inc": bson.M{"booking_seq": 1}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrBookingConflict
		}
		return fmt.Errorf("failed to bump room booking sequence: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("room %d: %w", booking.RoomID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListRoomsWithBookings(ctx context.Context, hotelID int64) ([]*model.Room, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if hotelID != 0 {
		n, err := s.hotels.CountDocuments(ctx, bson.M{"_id": hotelID})
		if err != nil {
			return nil, fmt.Errorf("failed to find hotel: %w", err)
		}
		if n == 0 {
			return nil, fmt.Errorf("hotel %d: %w", hotelID, store.ErrNotFound)
		}
		filter["hotel_id"] = hotelID
	}

	rooms, err := s.findRooms(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return rooms, nil
	}

	roomIDs := make([]int64, len(rooms))
	byID := make(map[int64]*model.Room, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
		byID[r.ID] = r
	}

	opts := options.Find().SetSort(bson.D{{Key: "room_id", Value: 1}, {Key: "check_in", Value: 1}})
	cursor, err := s.bookings.Find(ctx, bson.M{"room_id": bson.M{"$in": roomIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var b model.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		if r, ok := byID[b.RoomID]; ok {
			r.Bookings = append(r.Bookings, &b)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return rooms, nil
}

func (s *Store) FindBookingByReference(ctx context.Context, reference string) (*model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	var booking model.Booking
	if err := s.bookings.FindOne(ctx, bson.M{"reference": reference}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", reference, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (s *Store) FindAllBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := s.bookings.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (s *Store) CountBookings(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	count, err := s.bookings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (s *Store) SearchHotelsByName(ctx context.Context, name string) ([]*model.Hotel, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}}
	return s.findHotels(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (s *Store) FindAllHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)
	return s.findHotels(ctx, bson.M{}, opts)
}

func (s *Store) CountHotels(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	count, err := s.hotels.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}
	return count, nil
}

func (s *Store) ListRoomTypes(ctx context.Context) ([]*model.RoomType, error) {
	ctx, cancel := s.withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	cursor, err := s.roomTypes.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find room types: %w", err)
	}
	defer cursor.Close(ctx)

	types := []*model.RoomType{}
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode room types: %w", err)
	}
	return types, nil
}

func (s *Store) SeedReferenceData(ctx context.Context, roomTypes []*model.RoomType, hotels []*model.Hotel) error {
	return s.ExecuteTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.hotels.CountDocuments(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("failed to count hotels: %w", err)
		}
		if existing > 0 {
			return store.ErrAlreadySeeded
		}

		for _, rt := range roomTypes {
			_, err := s.roomTypes.ReplaceOne(ctx, bson.M{"_id": rt.ID}, rt, options.Replace().SetUpsert(true))
			if err != nil {
				return fmt.Errorf("failed to upsert room type %s: %w", rt.Name, err)
			}
		}

		for _, h := range hotels {
			id, err := s.nextSequence(ctx, HotelsCollection)
			if err != nil {
				return err
			}
			h.ID = id
			if _, err := s.hotels.InsertOne(ctx, h); err != nil {
				return fmt.Errorf("failed to create hotel %s: %w", h.Name, err)
			}

			if len(h.Rooms) == 0 {
				continue
			}
			docs := make([]any, 0, len(h.Rooms))
			for _, r := range h.Rooms {
				roomID, err := s.nextSequence(ctx, RoomsCollection)
				if err != nil {
					return err
				}
				r.ID = roomID
				r.HotelID = h.ID
				docs = append(docs, bson.M{
					"_id":          r.ID,
					"hotel_id":     r.HotelID,
					"room_type_id": r.RoomTypeID,
					"booking_seq":  int64(0),
				})
			}
			if _, err := s.rooms.InsertMany(ctx, docs); err != nil {
				return fmt.Errorf("failed to create rooms for %s: %w", h.Name, err)
			}
		}
		return nil
	})
}

func (s *Store) ClearTransactionalData(ctx context.Context) error {
	return s.ExecuteTransaction(ctx, func(ctx context.Context) error {
		for _, coll := range []*mongo.Collection{s.bookings, s.rooms, s.hotels} {
			if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
				return fmt.Errorf("failed to clear %s: %w", coll.Name(), err)
			}
		}
		return nil
	})
}

func (s *Store) ExecuteTransaction(ctx context.Context, fn store.TransactionFunc) error {
	if mongotx.InSession(ctx) {
		return fn(ctx)
	}
	return s.txManager.ExecuteTransaction(ctx, mongotx.TransactionFunc(fn))
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close is a no-op; the client belongs to pkg/client.
func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) findRoomType(ctx context.Context, id int64) (*model.RoomType, error) {
	var rt model.RoomType
	if err := s.roomTypes.FindOne(ctx, bson.M{"_id": id}).Decode(&rt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("room type %d: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find room type: %w", err)
	}
	return &rt, nil
}

func (s *Store) findRooms(ctx context.Context, filter bson.M) ([]*model.Room, error) {
	cursor, err := s.rooms.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []*model.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	types, err := s.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.RoomType, len(types))
	for _, rt := range types {
		byID[rt.ID] = rt
	}
	for _, r := range rooms {
		r.RoomType = byID[r.RoomTypeID]
	}
	return rooms, nil
}

func (s *Store) findHotels(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Hotel, error) {
	cursor, err := s.hotels.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*model.Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

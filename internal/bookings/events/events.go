// Package events announces committed bookings to other services.
package events

import (
	"context"
	"fmt"
	"hotelbooking/pkg/kafka"
	kafka_config "hotelbooking/pkg/kafka/config"
	kafka_middleware "hotelbooking/pkg/kafka/middleware"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"strconv"
	"time"
)

const (
	EventBookingCreated = "booking.created"
	Source              = "bookings-service"
	SchemaVersion       = "1"
)

type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	Close() error
}

type BookingCreatedEvent struct {
	BookingID      int64     `json:"booking_id"`
	Reference      string    `json:"booking_reference"`
	HotelID        int64     `json:"hotel_id"`
	RoomID         int64     `json:"room_id"`
	CheckIn        time.Time `json:"check_in"`
	CheckOut       time.Time `json:"check_out"`
	NumberOfGuests int       `json:"number_of_guests"`
	CreatedAt      time.Time `json:"created_at"`
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer messagePublisher
}

// NewKafkaPublisher publishes to the bookings topic, keyed by room so that
// every event for a room lands on one partition in commit order.
func NewKafkaPublisher(cfg *kafka_config.Config, log *logger.Logger) (Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	producer, err := kafka.NewProducer(cfg, cfg.BookingsTopic, cfg.BookingsDLQTopic, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create bookings producer: %w", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(log))
	return &kafkaPublisher{producer: producer}, nil
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	msg, err := NewBookingCreatedMessage(booking, correlationID(ctx))
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

func NewBookingCreatedMessage(booking *model.Booking, correlationID string) (kafka.Message, error) {
	return kafka.NewMessage().
		WithKey(strconv.FormatInt(booking.RoomID, 10)).
		WithValue(BookingCreatedEvent{
			BookingID:      booking.ID,
			Reference:      booking.Reference,
			HotelID:        booking.HotelID,
			RoomID:         booking.RoomID,
			CheckIn:        booking.CheckIn,
			CheckOut:       booking.CheckOut,
			NumberOfGuests: booking.NumberOfGuests,
			CreatedAt:      booking.CreatedAt,
		}).
		WithEventID("").
		WithEventType(EventBookingCreated).
		WithSource(Source).
		WithSchemaVersion(SchemaVersion).
		WithCorrelationID(correlationID).
		Build()
}

type correlationKey struct{}

// WithCorrelationID tags ctx so published events can be traced to a request.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func correlationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingCreated(context.Context, *model.Booking) error { return nil }

func (noopPublisher) Close() error { return nil }

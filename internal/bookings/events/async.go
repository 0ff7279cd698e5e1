package events

import (
	"context"
	"sync"
	"time"

	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
)

// asyncPublisher hands each event to a goroutine so a slow or unreachable
// broker never delays the booking response. Delivery is best effort.
type asyncPublisher struct {
	next    Publisher
	timeout time.Duration
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewAsyncPublisher wraps next so BookingCreated returns at once. Each
// delivery gets its own deadline of timeout; Close waits for in-flight
// deliveries before closing next.
func NewAsyncPublisher(next Publisher, timeout time.Duration, log *logger.Logger) Publisher {
	return &asyncPublisher{next: next, timeout: timeout, log: log}
}

func (p *asyncPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	snapshot := *booking
	// Keep request values such as the correlation id but not its cancellation.
	detached := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		sendCtx, cancel := context.WithTimeout(detached, p.timeout)
		defer cancel()
		if err := p.next.BookingCreated(sendCtx, &snapshot); err != nil {
			p.log.Error("Failed to publish booking event",
				"booking_reference", snapshot.Reference,
				"error", err,
			)
		}
	}()
	return nil
}

func (p *asyncPublisher) Close() error {
	p.wg.Wait()
	return p.next.Close()
}

// Package notify turns booking events into ready-to-send ticket files.
package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/ticket"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	kafkaGo "github.com/segmentio/kafka-go"
)

type BookingReader interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type Renderer interface {
	Render(b domain.Booking, issuedAt time.Time) ([]byte, error)
}

// Outbox writes one voucher per booking event into dir.
type Outbox struct {
	bookings BookingReader
	renderer Renderer
	dir      string
	now      func() time.Time
	log      logger.Logger
}

func NewOutbox(bookings BookingReader, renderer Renderer, dir string, log logger.Logger) *Outbox {
	return &Outbox{bookings: bookings, renderer: renderer, dir: dir, now: time.Now, log: log}
}

// HandleMessage decodes a kafka message and sends it. Undecodable messages
// are logged and dropped.
func (o *Outbox) HandleMessage(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.DecodeBookingEvent(msg.Value)
	if err != nil {
		o.log.Warn("skipping message", "key", string(msg.Key), "offset", msg.Offset, "error", err)
		return nil
	}
	_, err = o.Send(ctx, event)
	return err
}

// Send renders the booking named by event and returns the written path.
// Events of other types are ignored.
func (o *Outbox) Send(ctx context.Context, event kafka.BookingEvent) (string, error) {
	if event.Type != kafka.EventBookingCreated {
		return "", nil
	}

	b, err := o.bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		return "", fmt.Errorf("load booking %s: %w", event.BookingID, err)
	}
	pdf, err := o.renderer.Render(*b, o.now())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return "", fmt.Errorf("create outbox dir: %w", err)
	}
	path := filepath.Join(o.dir, ticket.Filename(b.ID))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write ticket %s: %w", b.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write ticket %s: %w", b.ID, err)
	}

	o.log.Info("ticket written", "booking_id", b.ID, "flight_number", b.Flight.FlightNumber, "path", path)
	return path, nil
}

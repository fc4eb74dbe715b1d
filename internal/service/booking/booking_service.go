package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/pricing"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/Domenick1991/flightbooking/pkg/metrics"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Book(ctx context.Context, flightID string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Ticket(ctx context.Context, id string) ([]byte, error)
}

// Pricer records a booking attempt and returns the price to charge.
type Pricer interface {
	Touch(ctx context.Context, f domain.Flight) (pricing.Quote, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TicketRenderer interface {
	Render(b domain.Booking, issuedAt time.Time) ([]byte, error)
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	pricer             Pricer
	renderer           TicketRenderer
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
	log                logger.Logger
	metrics            *metrics.Metrics
}

type BookingServiceOption func(*BookingService)

// WithProducer publishes booking events to the given topics.
func WithProducer(producer Producer, bookingTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
		s.notificationsTopic = notificationsTopic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	pricer Pricer,
	renderer TicketRenderer,
	log logger.Logger,
	m *metrics.Metrics,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		flights:  flights,
		pricer:   pricer,
		renderer: renderer,
		now:      time.Now,
		log:      log,
		metrics:  m,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book charges the throttle price for a flight and records the booking.
func (s *BookingService) Book(ctx context.Context, flightID string) (*domain.Booking, error) {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return nil, domain.InvalidRequest("Flight ID is required")
	}

	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricer.Touch(ctx, *flight)
	if err != nil {
		return nil, err
	}

	snapshot := *flight
	snapshot.Price = quote.Price
	booking := &domain.Booking{
		ID:        uuid.NewString(),
		Flight:    snapshot,
		Price:     quote.Price,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking for flight %s: %w", flightID, err)
	}

	if err := s.flights.UpdatePrice(ctx, flight.ID, quote.Price); err != nil {
		return nil, fmt.Errorf("update price of flight %s: %w", flightID, err)
	}
	s.metrics.Bookings.Inc()
	s.log.Info("booking created", "booking_id", booking.ID, "flight_number", flight.FlightNumber, "price", booking.Price, "surcharged", quote.Surcharged)

	if err := s.publish(ctx, booking, quote.Surcharged); err != nil {
		s.log.Warn("failed to publish booking event", "booking_id", booking.ID, "error", err)
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.InvalidRequest("Booking ID is required")
	}
	return s.bookings.GetByID(ctx, id)
}

// Ticket renders the PDF voucher of a stored booking.
func (s *BookingService) Ticket(ctx context.Context, id string) ([]byte, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(*b, s.now())
}

func (s *BookingService) publish(ctx context.Context, b *domain.Booking, surcharged bool) error {
	if s.producer == nil {
		return nil
	}
	event := kafka.BookingEvent{
		Type:         kafka.EventBookingCreated,
		BookingID:    b.ID,
		FlightID:     b.Flight.ID,
		FlightNumber: b.Flight.FlightNumber,
		Price:        b.Price,
		Surcharged:   surcharged,
		CreatedAt:    b.CreatedAt,
	}
	if s.bookingTopic != "" {
		if err := s.producer.Publish(ctx, s.bookingTopic, b.ID, event); err != nil {
			return err
		}
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, b.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)

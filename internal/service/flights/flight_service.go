package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/pricing"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/Domenick1991/flightbooking/pkg/metrics"
)

const syntheticBase = 2000

type FlightUseCase interface {
	Search(ctx context.Context, from, to string) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
}

// Pricer quotes a flight for search results.
type Pricer interface {
	Quote(ctx context.Context, f domain.Flight) (pricing.Quote, error)
}

// RouteEnricher looks up live flights for a route. Only used for logging.
type RouteEnricher interface {
	LookupFlights(ctx context.Context, from, to string) (int, error)
}

type FlightService struct {
	flights   repository.FlightRepository
	airports  repository.AirportRepository
	pricer    Pricer
	generator *Generator
	enricher  RouteEnricher
	minOffers int
	log       logger.Logger
	metrics   *metrics.Metrics
}

func NewFlightService(
	flights repository.FlightRepository,
	airports repository.AirportRepository,
	pricer Pricer,
	generator *Generator,
	enricher RouteEnricher,
	minOffers int,
	log logger.Logger,
	m *metrics.Metrics,
) *FlightService {
	return &FlightService{
		flights:   flights,
		airports:  airports,
		pricer:    pricer,
		generator: generator,
		enricher:  enricher,
		minOffers: minOffers,
		log:       log,
		metrics:   m,
	}
}

// Search returns minOffers flights on the route, generating and storing the
// shortfall first. Prices are throttle quotes and are not persisted.
func (s *FlightService) Search(ctx context.Context, from, to string) ([]domain.Flight, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return nil, domain.InvalidRequest("Origin and destination are required")
	}

	for _, code := range []string{from, to} {
		if _, err := s.airports.GetByCode(ctx, code); err != nil {
			if errors.Is(err, domain.ErrInvalidRequest) || errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUnknownAirport
			}
			return nil, fmt.Errorf("resolve airport %s: %w", code, err)
		}
	}
	s.metrics.Searches.Inc()

	if s.enricher != nil {
		n, err := s.enricher.LookupFlights(ctx, from, to)
		if err != nil {
			s.metrics.EnrichmentFailures.WithLabelValues("search").Inc()
			s.log.Warn("enrichment flight lookup failed", "from", from, "to", to, "error", err)
		} else {
			s.log.Debug("enrichment flight lookup", "from", from, "to", to, "flights", n)
		}
	}

	found, err := s.flights.FindByRoute(ctx, from, to, s.minOffers)
	if err != nil {
		return nil, fmt.Errorf("find flights %s-%s: %w", from, to, err)
	}

	if short := s.minOffers - len(found); short > 0 {
		extra := s.generator.Generate(from, to, syntheticBase+len(found), short)
		if err := s.flights.InsertMany(ctx, extra); err != nil {
			return nil, fmt.Errorf("store generated flights %s-%s: %w", from, to, err)
		}
		s.metrics.FlightsSynthesized.Add(float64(len(extra)))
		s.log.Info("supplemented route", "from", from, "to", to, "generated", len(extra))

		found, err = s.flights.FindByRoute(ctx, from, to, s.minOffers)
		if err != nil {
			return nil, fmt.Errorf("find flights %s-%s: %w", from, to, err)
		}
	}

	for i := range found {
		q, err := s.pricer.Quote(ctx, found[i])
		if err != nil {
			return nil, err
		}
		found[i].Price = q.Price
	}
	return found, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

var _ FlightUseCase = (*FlightService)(nil)

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/enrichment"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/pricing"
	"github.com/Domenick1991/flightbooking/internal/seed"
	"github.com/Domenick1991/flightbooking/internal/service/airports"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/ticket"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/Domenick1991/flightbooking/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const metricsNamespace = "flightbooking"

// App holds the wired services shared by the API server and the worker.
type App struct {
	Config   *config.Config
	Log      logger.Logger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Stores   *Stores
	Redis    *redis.Client
	Producer *kafka.Producer
	Throttle *pricing.Throttle
	Renderer *ticket.Renderer
	Airports *airports.AirportService
	Flights  *flights.FlightService
	Bookings *booking.BookingService
	Seeder   *seed.Seeder
}

func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(metricsNamespace, registry)

	a := &App{Config: cfg, Log: log, Metrics: m, Registry: registry}

	if cfg.Redis.Enabled() {
		a.Redis = cache.NewRedisClient(cfg.Redis)
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable", "addr", cfg.Redis.Addr, "error", err)
		}
	}

	stores, err := OpenStores(ctx, cfg, a.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Stores = stores

	a.Throttle = pricing.NewThrottle(stores.Attempts, pricing.Config{
		RecentWindow:     cfg.Pricing.RecentWindow(),
		Retention:        cfg.Pricing.Retention(),
		Threshold:        cfg.Pricing.AttemptThreshold,
		SurchargePercent: cfg.Pricing.SurchargePercent,
		CountSearches:    cfg.Pricing.CountSearchAttempts,
	}, log.With("component", "pricing"), m)
	a.Renderer = ticket.NewRenderer()

	var suggestCache airports.SuggestionCache
	if a.Redis != nil {
		suggestCache = cache.NewRedisCache(a.Redis, time.Duration(cfg.Catalog.SuggestCacheTTLSeconds)*time.Second)
	}

	var enricher interface {
		airports.Enricher
		flights.RouteEnricher
	} = enrichment.Noop{}
	if cfg.Enrichment.Enabled() {
		enricher = enrichment.NewClient(cfg.Enrichment)
	}

	generator := flights.NewGenerator(flights.NewRand(uint64(time.Now().UnixNano())), cfg.Catalog.PriceMin, cfg.Catalog.PriceMax)

	a.Airports = airports.NewAirportService(stores.Airports, suggestCache, enricher, cfg.Catalog.SuggestLimit, log.With("component", "airports"), m)
	a.Flights = flights.NewFlightService(stores.Flights, stores.Airports, a.Throttle, generator, enricher, cfg.Catalog.MinRouteOffers, log.With("component", "flights"), m)

	var bookingOpts []booking.BookingServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		a.Producer = kafka.NewProducer(cfg.Kafka.Brokers, log.With("component", "kafka"))
		bookingOpts = append(bookingOpts, booking.WithProducer(a.Producer, cfg.Kafka.BookingTopic, cfg.Kafka.NotificationsTopic))
	}
	a.Bookings = booking.NewBookingService(stores.Bookings, stores.Flights, a.Throttle, a.Renderer, log.With("component", "booking"), m, bookingOpts...)

	a.Seeder = seed.NewSeeder(stores.Airports, stores.Flights, generator, seed.DefaultData(), log.With("component", "seed"))
	return a, nil
}

// Seed loads reference data when the catalog is configured to do so.
func (a *App) Seed(ctx context.Context) error {
	if !a.Config.Catalog.SeedOnStart {
		return nil
	}
	if err := a.Seeder.Setup(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.Producer != nil {
		_ = a.Producer.Close()
	}
	if a.Stores != nil {
		a.Stores.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

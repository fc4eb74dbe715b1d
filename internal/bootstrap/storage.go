package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/pricing"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Stores are the repositories of the selected backend.
type Stores struct {
	Airports repository.AirportRepository
	Flights  repository.FlightRepository
	Bookings repository.BookingRepository
	Attempts pricing.AttemptStore

	closers []func()
}

func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStores connects to the configured document store. rdb may be nil
// unless the attempt log lives in Redis.
func OpenStores(ctx context.Context, cfg *config.Config, rdb *redis.Client) (*Stores, error) {
	s := &Stores{}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		if err := repository.Migrate(ctx, pool); err != nil {
			s.Close()
			return nil, err
		}
		s.Airports = repository.NewAirportRepository(pool)
		s.Flights = repository.NewFlightRepository(pool)
		s.Bookings = repository.NewBookingRepository(pool)
		s.Attempts = repository.NewAttemptRepository(pool)

	case config.StorageMongo:
		client, err := repository.NewMongoClient(ctx, cfg.Mongo.URI, cfg.Mongo.Username, cfg.Mongo.Password)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.Mongo.Database)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			s.Close()
			return nil, err
		}
		s.Airports = repository.NewMongoAirportRepository(db)
		s.Flights = repository.NewMongoFlightRepository(db)
		s.Bookings = repository.NewMongoBookingRepository(db)
		s.Attempts = repository.NewMongoAttemptRepository(db)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Pricing.AttemptStore == config.AttemptStoreRedis {
		if rdb == nil {
			s.Close()
			return nil, fmt.Errorf("attempt store is redis but no redis client was given")
		}
		s.Attempts = repository.NewRedisAttemptRepository(rdb, cfg.Pricing.Retention())
	}
	return s, nil
}

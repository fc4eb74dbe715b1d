package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS airports (
		iata_code CHAR(3) PRIMARY KEY,
		city TEXT NOT NULL,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		id TEXT PRIMARY KEY,
		flight_number TEXT NOT NULL,
		airline TEXT NOT NULL,
		from_airport CHAR(3) NOT NULL,
		to_airport CHAR(3) NOT NULL,
		price BIGINT NOT NULL,
		original_price BIGINT NOT NULL,
		time_of_day TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS flights_route_idx ON flights (from_airport, to_airport, flight_number)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		flight JSONB NOT NULL,
		price BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_created_idx ON bookings (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS price_attempts (
		flight_id TEXT NOT NULL,
		attempted_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS price_attempts_flight_idx ON price_attempts (flight_id, attempted_at)`,
}

// Migrate creates the tables used by the postgres repositories.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

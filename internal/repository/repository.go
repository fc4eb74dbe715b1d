package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type AirportRepository interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, airports []domain.Airport) error
	GetByCode(ctx context.Context, code string) (*domain.Airport, error)
	// Search matches query case-insensitively as a substring of the city,
	// IATA code or name.
	Search(ctx context.Context, query string, limit int) ([]domain.Airport, error)
}

type FlightRepository interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, flights []domain.Flight) error
	// FindByRoute returns at most limit flights ordered by flight number.
	FindByRoute(ctx context.Context, from, to string, limit int) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	UpdatePrice(ctx context.Context, id string, price int64) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// List returns every booking, newest first.
	List(ctx context.Context) ([]domain.Booking, error)
}

package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM airports`).Scan(&n)
	return n, err
}

func (r *PGAirportRepository) InsertMany(ctx context.Context, airports []domain.Airport) error {
	batch := &pgx.Batch{}
	for _, a := range airports {
		batch.Queue(`INSERT INTO airports (iata_code, city, name) VALUES ($1, $2, $3) ON CONFLICT (iata_code) DO NOTHING`, a.IATACode, a.City, a.Name)
	}
	return r.db.SendBatch(ctx, batch).Close()
}

func (r *PGAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `SELECT iata_code, city, name FROM airports WHERE iata_code=$1`, code).Scan(&a.IATACode, &a.City, &a.Name)
	if err != nil {
		return nil, notFound(err, domain.ErrUnknownAirport)
	}
	return &a, nil
}

func (r *PGAirportRepository) Search(ctx context.Context, query string, limit int) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT iata_code, city, name FROM airports
		WHERE strpos(lower(city), lower($1)) > 0
		   OR strpos(lower(iata_code), lower($1)) > 0
		   OR strpos(lower(name), lower($1)) > 0
		ORDER BY iata_code
		LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.IATACode, &a.City, &a.Name); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

var _ AirportRepository = (*PGAirportRepository)(nil)

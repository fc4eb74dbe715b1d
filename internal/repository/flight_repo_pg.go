package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `id, flight_number, airline, from_airport, to_airport, price, original_price, time_of_day`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM flights`).Scan(&n)
	return n, err
}

func (r *PGFlightRepository) InsertMany(ctx context.Context, flights []domain.Flight) error {
	rows := make([][]any, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []any{f.ID, f.FlightNumber, f.Airline, f.From, f.To, f.Price, f.OriginalPrice, string(f.Time)})
	}
	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"flights"},
		[]string{"id", "flight_number", "airline", "from_airport", "to_airport", "price", "original_price", "time_of_day"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func (r *PGFlightRepository) FindByRoute(ctx context.Context, from, to string, limit int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE from_airport=$1 AND to_airport=$2 ORDER BY flight_number, id LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, domain.ErrFlightNotFound)
	}
	return f, nil
}

func (r *PGFlightRepository) UpdatePrice(ctx context.Context, id string, price int64) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET price=$1, updated_at=now() WHERE id=$2`, price, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	var tod string
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.From, &f.To, &f.Price, &f.OriginalPrice, &tod); err != nil {
		return nil, err
	}
	f.Time = domain.TimeOfDay(tod)
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)

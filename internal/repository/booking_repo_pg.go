package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listBookingsSQL = `SELECT id, flight, price, created_at FROM bookings ORDER BY created_at DESC`

// PGBookingRepository keeps the flight snapshot as a JSONB document.
type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	snapshot, err := json.Marshal(booking.Flight)
	if err != nil {
		return fmt.Errorf("encode flight snapshot: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO bookings (id, flight, price, created_at) VALUES ($1, $2, $3, $4)`,
		booking.ID, string(snapshot), booking.Price, booking.CreatedAt)
	return err
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT id, flight, price, created_at FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingMissing)
	}
	return b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, listBookingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var snapshot []byte
	if err := row.Scan(&b.ID, &snapshot, &b.Price, &b.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &b.Flight); err != nil {
		return nil, fmt.Errorf("decode flight snapshot: %w", err)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)

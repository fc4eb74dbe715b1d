package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/pricing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sweepAttemptsSQL reports only flights with no rows left at or after the cutoff.
const sweepAttemptsSQL = `
	WITH removed AS (
		DELETE FROM price_attempts WHERE attempted_at < $1 RETURNING flight_id
	)
	SELECT count(DISTINCT flight_id) FROM removed
	WHERE flight_id NOT IN (SELECT flight_id FROM price_attempts WHERE attempted_at >= $1)
`

// PGAttemptRepository stores one row per attempt.
type PGAttemptRepository struct {
	db *pgxpool.Pool
}

func NewAttemptRepository(db *pgxpool.Pool) *PGAttemptRepository {
	return &PGAttemptRepository{db: db}
}

func (r *PGAttemptRepository) Load(ctx context.Context, flightID string) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT attempted_at FROM price_attempts WHERE flight_id=$1 ORDER BY attempted_at`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		attempts = append(attempts, at.UTC())
	}
	return attempts, rows.Err()
}

func (r *PGAttemptRepository) Save(ctx context.Context, flightID string, attempts []time.Time) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM price_attempts WHERE flight_id=$1`, flightID); err != nil {
		return err
	}
	if len(attempts) > 0 {
		rows := make([][]any, 0, len(attempts))
		for _, at := range attempts {
			rows = append(rows, []any{flightID, at})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"price_attempts"}, []string{"flight_id", "attempted_at"}, pgx.CopyFromRows(rows)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// SweepBefore counts a flight as deleted when all of its rows went.
func (r *PGAttemptRepository) SweepBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.QueryRow(ctx, sweepAttemptsSQL, cutoff).Scan(&deleted)
	return deleted, err
}

var _ pricing.AttemptStore = (*PGAttemptRepository)(nil)

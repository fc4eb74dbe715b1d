package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/Domenick1991/flightbooking/pkg/metrics"
)

// AttemptStore persists the per-flight attempt log.
type AttemptStore interface {
	// Load returns the attempts recorded for a flight, oldest first, or nil
	// when there is no record.
	Load(ctx context.Context, flightID string) ([]time.Time, error)
	// Save replaces the log for a flight. An empty log deletes the record.
	Save(ctx context.Context, flightID string, attempts []time.Time) error
	// SweepBefore drops every attempt older than cutoff and deletes records
	// left empty. It returns the number of records deleted.
	SweepBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	RecentWindow     time.Duration
	Retention        time.Duration
	Threshold        int
	SurchargePercent int64
	// CountSearches makes search quotes append to the attempt log too.
	CountSearches bool
}

func DefaultConfig() Config {
	return Config{
		RecentWindow:     5 * time.Minute,
		Retention:        10 * time.Minute,
		Threshold:        3,
		SurchargePercent: 10,
	}
}

// Quote is the price decided for one touch of a flight.
type Quote struct {
	Price          int64
	Surcharged     bool
	RecentAttempts int
}

// Throttle surcharges flights that see repeated activity inside the recent
// window. It never rejects a call, it only re-prices.
type Throttle struct {
	store   AttemptStore
	cfg     Config
	now     func() time.Time
	log     logger.Logger
	metrics *metrics.Metrics
}

type Option func(*Throttle)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Throttle) {
		t.now = now
	}
}

func NewThrottle(store AttemptStore, cfg Config, log logger.Logger, m *metrics.Metrics, opts ...Option) *Throttle {
	t := &Throttle{
		store:   store,
		cfg:     cfg,
		now:     time.Now,
		log:     log,
		metrics: m,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SurchargedPrice is original raised by percent, rounded half up.
func SurchargedPrice(original, percent int64) int64 {
	return (original*(100+percent) + 50) / 100
}

// Touch records a booking attempt and prices it. The attempt being made
// counts towards the threshold.
func (t *Throttle) Touch(ctx context.Context, f domain.Flight) (Quote, error) {
	return t.evaluate(ctx, f, "booking", true)
}

// Quote prices a flight for search results from prior attempts only. The
// search itself is appended afterwards when CountSearches is set.
func (t *Throttle) Quote(ctx context.Context, f domain.Flight) (Quote, error) {
	return t.evaluate(ctx, f, "search", false)
}

// Sweep discards attempts older than the retention window for all flights.
func (t *Throttle) Sweep(ctx context.Context) (int64, error) {
	deleted, err := t.store.SweepBefore(ctx, t.now().Add(-t.cfg.Retention))
	if err != nil {
		return 0, fmt.Errorf("sweep attempts: %w", err)
	}
	return deleted, nil
}

func (t *Throttle) evaluate(ctx context.Context, f domain.Flight, path string, booking bool) (Quote, error) {
	now := t.now()

	loaded, err := t.store.Load(ctx, f.ID)
	if err != nil {
		return Quote{}, fmt.Errorf("load attempts for flight %s: %w", f.ID, err)
	}

	attempts := loaded
	if booking {
		attempts = append(attempts, now)
	}

	q := Quote{Price: f.OriginalPrice, RecentAttempts: countSince(attempts, now, t.cfg.RecentWindow)}
	if q.RecentAttempts >= t.cfg.Threshold {
		q.Price = SurchargedPrice(f.OriginalPrice, t.cfg.SurchargePercent)
		q.Surcharged = true
		t.metrics.SurchargesApplied.WithLabelValues(path).Inc()
		t.log.Info("surcharge applied", "flight_id", f.ID, "flight_number", f.FlightNumber, "path", path, "price", q.Price, "recent_attempts", q.RecentAttempts)
	}

	if !booking && t.cfg.CountSearches {
		attempts = append(attempts, now)
	}
	if len(attempts) == 0 {
		return q, nil
	}

	kept := keepSince(attempts, now, t.cfg.Retention)
	if err := t.store.Save(ctx, f.ID, kept); err != nil {
		return Quote{}, fmt.Errorf("save attempts for flight %s: %w", f.ID, err)
	}
	if len(kept) == 0 {
		t.log.Debug("cleared attempts", "flight_id", f.ID, "flight_number", f.FlightNumber)
	}
	return q, nil
}

func countSince(attempts []time.Time, now time.Time, window time.Duration) int {
	n := 0
	for _, a := range attempts {
		if now.Sub(a) < window {
			n++
		}
	}
	return n
}

func keepSince(attempts []time.Time, now time.Time, window time.Duration) []time.Time {
	kept := make([]time.Time, 0, len(attempts))
	for _, a := range attempts {
		if now.Sub(a) < window {
			kept = append(kept, a)
		}
	}
	return kept
}

package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/Domenick1991/flightbooking/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string][]time.Time
	saves   int
	loadErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string][]time.Time{}}
}

func (s *memoryStore) Load(_ context.Context, flightID string) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]time.Time(nil), s.records[flightID]...), nil
}

func (s *memoryStore) Save(_ context.Context, flightID string, attempts []time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if len(attempts) == 0 {
		delete(s.records, flightID)
		return nil
	}
	s.records[flightID] = append([]time.Time(nil), attempts...)
	return nil
}

func (s *memoryStore) SweepBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, attempts := range s.records {
		kept := attempts[:0]
		for _, a := range attempts {
			if !a.Before(cutoff) {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			delete(s.records, id)
			deleted++
			continue
		}
		s.records[id] = kept
	}
	return deleted, nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time           { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestThrottle(store AttemptStore, cfg Config) (*Throttle, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	return NewThrottle(store, cfg, logger.NewNop(), metrics.NewNop(), WithClock(clock.Now)), clock
}

var testFlight = domain.Flight{ID: "f-1", FlightNumber: "FL1000", OriginalPrice: 2345, Price: 2345}

func TestSurchargedPrice(t *testing.T) {
	assert.EqualValues(t, 2200, SurchargedPrice(2000, 10))
	assert.EqualValues(t, 2580, SurchargedPrice(2345, 10)) // 2579.5 rounds up
	assert.EqualValues(t, 3300, SurchargedPrice(3000, 10))
	assert.EqualValues(t, 2001, SurchargedPrice(2001, 0))
}

func TestThrottle_ThirdBookingIsSurcharged(t *testing.T) {
	ctx := context.Background()
	throttle, clock := newTestThrottle(newMemoryStore(), DefaultConfig())

	first, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	assert.EqualValues(t, 2345, first.Price)
	assert.False(t, first.Surcharged)

	clock.Advance(time.Minute)
	second, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	assert.EqualValues(t, 2345, second.Price)

	clock.Advance(time.Minute)
	third, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	assert.True(t, third.Surcharged)
	assert.Equal(t, 3, third.RecentAttempts)
	assert.EqualValues(t, 2580, third.Price)

	clock.Advance(time.Minute)
	fourth, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	assert.EqualValues(t, 2580, fourth.Price)
}

func TestThrottle_ResetsAfterRetention(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	throttle, clock := newTestThrottle(store, DefaultConfig())

	for i := 0; i < 3; i++ {
		_, err := throttle.Touch(ctx, testFlight)
		require.NoError(t, err)
	}

	clock.Advance(10*time.Minute + time.Second)
	q, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	assert.False(t, q.Surcharged)
	assert.EqualValues(t, testFlight.OriginalPrice, q.Price)
	assert.Len(t, store.records[testFlight.ID], 1)
}

func TestThrottle_RecentWindowSlides(t *testing.T) {
	ctx := context.Background()
	throttle, clock := newTestThrottle(newMemoryStore(), DefaultConfig())

	_, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	_, err = throttle.Touch(ctx, testFlight)
	require.NoError(t, err)

	// the first two fall out of the 5 minute window but stay retained
	clock.Advance(6 * time.Minute)
	q, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	assert.False(t, q.Surcharged)
	assert.Equal(t, 1, q.RecentAttempts)
}

func TestThrottle_SearchReadsPriorAttemptsOnly(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	throttle, clock := newTestThrottle(store, DefaultConfig())

	q, err := throttle.Quote(ctx, testFlight)
	require.NoError(t, err)
	assert.EqualValues(t, testFlight.OriginalPrice, q.Price)
	assert.Zero(t, store.saves, "a search without history must not write")

	for i := 0; i < 3; i++ {
		_, err := throttle.Touch(ctx, testFlight)
		require.NoError(t, err)
	}
	q, err = throttle.Quote(ctx, testFlight)
	require.NoError(t, err)
	assert.True(t, q.Surcharged)
	assert.Len(t, store.records[testFlight.ID], 3)

	// searches alone never push a flight over the threshold
	clock.Advance(11 * time.Minute)
	for i := 0; i < 5; i++ {
		q, err = throttle.Quote(ctx, testFlight)
		require.NoError(t, err)
		assert.False(t, q.Surcharged)
	}
	_, ok := store.records[testFlight.ID]
	assert.False(t, ok, "expired record is garbage collected")
}

func TestThrottle_CountSearches(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	cfg := DefaultConfig()
	cfg.CountSearches = true
	throttle, _ := newTestThrottle(store, cfg)

	var quotes []Quote
	for i := 0; i < 4; i++ {
		q, err := throttle.Quote(ctx, testFlight)
		require.NoError(t, err)
		quotes = append(quotes, q)
	}

	// each search sees only the searches before it
	assert.False(t, quotes[0].Surcharged)
	assert.False(t, quotes[2].Surcharged)
	assert.True(t, quotes[3].Surcharged)
	assert.Len(t, store.records[testFlight.ID], 4)

	booked, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	assert.True(t, booked.Surcharged)
}

func TestThrottle_PriceIsAlwaysBaseOrSurcharged(t *testing.T) {
	ctx := context.Background()
	throttle, clock := newTestThrottle(newMemoryStore(), DefaultConfig())
	surcharged := SurchargedPrice(testFlight.OriginalPrice, 10)

	steps := []time.Duration{0, 30 * time.Second, 4 * time.Minute, 7 * time.Minute, time.Second, 12 * time.Minute, 0, 0}
	for i, step := range steps {
		clock.Advance(step)
		var (
			q   Quote
			err error
		)
		if i%3 == 0 {
			q, err = throttle.Quote(ctx, testFlight)
		} else {
			q, err = throttle.Touch(ctx, testFlight)
		}
		require.NoError(t, err)
		assert.Contains(t, []int64{testFlight.OriginalPrice, surcharged}, q.Price)
	}
}

func TestThrottle_Sweep(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	throttle, clock := newTestThrottle(store, DefaultConfig())

	_, err := throttle.Touch(ctx, testFlight)
	require.NoError(t, err)
	clock.Advance(8 * time.Minute)
	other := domain.Flight{ID: "f-2", OriginalPrice: 2100}
	_, err = throttle.Touch(ctx, other)
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)
	deleted, err := throttle.Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.NotContains(t, store.records, testFlight.ID)
	assert.Contains(t, store.records, other.ID)
}

func TestThrottle_StoreError(t *testing.T) {
	store := newMemoryStore()
	store.loadErr = errors.New("connection reset")
	throttle, _ := newTestThrottle(store, DefaultConfig())

	_, err := throttle.Touch(context.Background(), testFlight)
	assert.ErrorIs(t, err, store.loadErr)
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("flightbooking", reg)

	m.Bookings.Inc()
	m.SurchargesApplied.WithLabelValues("booking").Inc()
	m.SurchargesApplied.WithLabelValues("booking").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Bookings))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SurchargesApplied.WithLabelValues("booking")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "flightbooking_bookings_total")
	assert.Contains(t, names, "flightbooking_surcharges_applied_total")
}

func TestNewNop_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop()
		NewNop()
	})
}

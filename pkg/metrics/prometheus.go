package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Searches           prometheus.Counter
	FlightsSynthesized prometheus.Counter
	Bookings           prometheus.Counter
	SurchargesApplied  *prometheus.CounterVec
	EnrichmentFailures *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics registers the service metrics on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Searches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_searches_total",
			Help:      "The total number of route searches served",
		}),
		FlightsSynthesized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_synthesized_total",
			Help:      "The total number of flights generated to fill sparse routes",
		}),
		Bookings: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "The total number of bookings created",
		}),
		SurchargesApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "surcharges_applied_total",
			Help:      "The total number of surcharged quotes, by path",
		}, []string{"path"}),
		EnrichmentFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_failures_total",
			Help:      "The total number of failed calls to the enrichment service",
		}, []string{"operation"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// NewNop returns metrics registered on a throwaway registry.
func NewNop() *Metrics {
	return NewMetrics("test", prometheus.NewRegistry())
}

package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/Domenick1991/flightbooking/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAirports struct{}

func (stubAirports) Suggest(context.Context, string) ([]domain.Suggestion, error) {
	return []domain.Suggestion{{PlaceID: "DEL", PlaceName: "Delhi", IATACode: "DEL"}}, nil
}

type stubFlights struct{}

func (stubFlights) Search(context.Context, string, string) ([]domain.Flight, error) {
	return nil, domain.ErrUnknownAirport
}

func (stubFlights) GetByID(context.Context, string) (*domain.Flight, error) {
	return nil, domain.ErrFlightNotFound
}

type stubBookings struct{}

func (stubBookings) Book(context.Context, string) (*domain.Booking, error) {
	return nil, domain.ErrFlightNotFound
}

func (stubBookings) List(context.Context) ([]domain.Booking, error) { return nil, nil }

func (stubBookings) GetByID(context.Context, string) (*domain.Booking, error) {
	return nil, domain.ErrBookingMissing
}

func (stubBookings) Ticket(context.Context, string) ([]byte, error) {
	return nil, domain.ErrBookingMissing
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, specFile), []byte(`{"openapi":"3.0.0"}`), 0o644))

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics("test", registry)
	log := logger.NewNop()

	cfg := config.Default().HTTP
	cfg.SwaggerDir = dir
	return NewHandler(cfg, RouterDeps{
		Flights:  api.NewFlightHandler(stubFlights{}, stubAirports{}, log),
		Bookings: api.NewBookingHandler(stubBookings{}, log),
		Metrics:  m,
		Gatherer: registry,
		Log:      log,
	})
}

func TestNewHandler_Routes(t *testing.T) {
	h := newTestHandler(t)

	testCases := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "Flight booking API is running"},
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/api/flights/suggest?query=del", http.StatusOK, `"iataCode":"DEL"`},
		{"/api/flights/search?from=DEL&to=XXX", http.StatusBadRequest, "Invalid origin or destination airport code"},
		{"/api/bookings/nope", http.StatusNotFound, "Booking not found"},
		{"/swagger/openapi.json", http.StatusOK, `"openapi"`},
	}

	for _, tc := range testCases {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.body, tc.path)
	}
}

func TestNewHandler_MetricsRecordRequests(t *testing.T) {
	h := newTestHandler(t)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `test_http_request_duration_seconds_count{route="/health",status="200"} 1`))
}

func TestNewHandler_CORS(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

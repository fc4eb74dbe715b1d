package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFlightRouter(f *MockFlightUseCase, a *MockAirportUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewFlightHandler(f, a, logger.NewNop()).Register(r.Group("/api"))
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestFlightHandler_suggest(t *testing.T) {
	mockAirports := &MockAirportUseCase{}
	router := newFlightRouter(&MockFlightUseCase{}, mockAirports)

	mockAirports.On("Suggest", mock.Anything, "del").Return([]domain.Suggestion{
		{PlaceID: "DEL", PlaceName: "Delhi", IATACode: "DEL"},
	}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/suggest?query=del", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Suggestions fetched", body["message"])
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, map[string]interface{}{"placeId": "DEL", "placeName": "Delhi", "iataCode": "DEL"}, data[0])
}

func TestFlightHandler_suggest_MissingQuery(t *testing.T) {
	mockAirports := &MockAirportUseCase{}
	router := newFlightRouter(&MockFlightUseCase{}, mockAirports)

	mockAirports.On("Suggest", mock.Anything, "").Return(nil, domain.InvalidRequest("Query is required")).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/suggest", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Query is required","data":null}`, w.Body.String())
}

func TestFlightHandler_search(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	router := newFlightRouter(mockFlights, &MockAirportUseCase{})

	mockFlights.On("Search", mock.Anything, "DEL", "BOM").Return([]domain.Flight{
		{ID: "f-1", FlightNumber: "FL1000", Airline: "IndiGo", From: "DEL", To: "BOM", Price: 2750, OriginalPrice: 2500, Time: domain.TimeMorning},
	}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/search?from=DEL&to=BOM", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Flights fetched","data":[
		{"id":"f-1","flightNumber":"FL1000","airline":"IndiGo","from":"DEL","to":"BOM","price":2750,"originalPrice":2500,"time":"morning"}
	]}`, w.Body.String())
}

func TestFlightHandler_search_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unknown airport", domain.ErrUnknownAirport, http.StatusBadRequest, "Invalid origin or destination airport code"},
		{"missing params", domain.InvalidRequest("Origin and destination are required"), http.StatusBadRequest, "Origin and destination are required"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "Failed to fetch flights"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockFlights := &MockFlightUseCase{}
			router := newFlightRouter(mockFlights, &MockAirportUseCase{})
			mockFlights.On("Search", mock.Anything, "DEL", "XXX").Return(nil, tc.err).Once()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/search?from=DEL&to=XXX", nil))

			assert.Equal(t, tc.status, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
			assert.Nil(t, body["data"])
		})
	}
}

func TestFlightHandler_get(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	router := newFlightRouter(mockFlights, &MockAirportUseCase{})

	mockFlights.On("GetByID", mock.Anything, "f-1").Return(&domain.Flight{ID: "f-1", FlightNumber: "FL1000", Price: 2500, OriginalPrice: 2500}, nil).Once()
	mockFlights.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrFlightNotFound).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/f-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FL1000", decodeEnvelope(t, w)["data"].(map[string]interface{})["flightNumber"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Flight not found","data":null}`, w.Body.String())
}

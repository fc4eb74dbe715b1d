package api

import (
	"github.com/Domenick1991/flightbooking/internal/service/airports"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	flights  flights.FlightUseCase
	airports airports.AirportUseCase
	log      logger.Logger
}

func NewFlightHandler(flightService flights.FlightUseCase, airportService airports.AirportUseCase, log logger.Logger) *FlightHandler {
	return &FlightHandler{flights: flightService, airports: airportService, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights/suggest", h.suggest)
	router.GET("/flights/search", h.search)
	router.GET("/flights/:id", h.get)
}

func (h *FlightHandler) suggest(c *gin.Context) {
	suggestions, err := h.airports.Suggest(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch suggestions")
		return
	}
	respondOK(c, "Suggestions fetched", suggestions)
}

func (h *FlightHandler) search(c *gin.Context) {
	found, err := h.flights.Search(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch flights")
		return
	}
	respondOK(c, "Flights fetched", found)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.flights.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch flight")
		return
	}
	respondOK(c, "Flight fetched", flight)
}

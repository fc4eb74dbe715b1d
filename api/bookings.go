package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/ticket"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	log     logger.Logger
}

type bookRequest struct {
	FlightID string `json:"flightId"`
}

func NewBookingHandler(service booking.BookingUseCase, log logger.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/flights/book", h.book)
	router.GET("/bookings", h.list)
	router.GET("/bookings/:id", h.get)
	router.GET("/ticket", h.ticket)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Flight ID is required")
		return
	}

	b, err := h.service.Book(c.Request.Context(), req.FlightID)
	if err != nil {
		respondError(c, h.log, err, "Failed to book flight")
		return
	}
	respondOK(c, "Flight booked successfully", b)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	respondOK(c, "Bookings fetched", bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch booking")
		return
	}
	respondOK(c, "Booking fetched", b)
}

func (h *BookingHandler) ticket(c *gin.Context) {
	id := strings.TrimSpace(c.Query("bookingId"))
	pdf, err := h.service.Ticket(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "Failed to generate ticket")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ticket.Filename(id)+`"`)
	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

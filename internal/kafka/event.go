package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

const EventBookingCreated = "booking_created"

// BookingEvent announces a booking to the worker. Key is the booking id.
type BookingEvent struct {
	Type         string    `json:"type"`
	BookingID    string    `json:"bookingId"`
	FlightID     string    `json:"flightId"`
	FlightNumber string    `json:"flightNumber"`
	Price        int64     `json:"price"`
	Surcharged   bool      `json:"surcharged"`
	CreatedAt    time.Time `json:"createdAt"`
}

func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var e BookingEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if e.BookingID == "" {
		return BookingEvent{}, fmt.Errorf("decode booking event: missing booking id")
	}
	return e, nil
}

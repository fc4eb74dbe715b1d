package domain

import "time"

// Booking is an append-only ledger entry. Flight is the flight as booked.
type Booking struct {
	ID        string    `json:"id" bson:"_id"`
	Flight    Flight    `json:"flight" bson:"flight"`
	Price     int64     `json:"price" bson:"price"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

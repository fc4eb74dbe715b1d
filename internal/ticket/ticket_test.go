package ticket

import (
	"bytes"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() domain.Booking {
	return domain.Booking{
		ID: "6a1f0c2e-booking",
		Flight: domain.Flight{
			ID:            "flight-1",
			FlightNumber:  "FL1003",
			Airline:       "SpiceJet",
			From:          "DEL",
			To:            "BOM",
			Price:         2750,
			OriginalPrice: 2500,
			Time:          domain.TimeEvening,
		},
		Price:     2750,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(WithCompression(false))

	out, err := r.Render(testBooking(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	for _, want := range []string{
		"Flight Ticket Voucher",
		"Passenger Name: Traveler",
		"Booking ID: 6a1f0c2e-booking",
		"Airline: SpiceJet",
		"Flight Number: FL1003",
		"From: DEL",
		"To: BOM",
		"Date: 14 Mar 2026",
		"Time: evening",
		"Price: INR 2,750",
		"Issued on: 15 Mar 2026",
	} {
		assert.Contains(t, string(out), want)
	}
}

func TestRenderer_CompressedIsStillPDF(t *testing.T) {
	out, err := NewRenderer().Render(testBooking(), time.Now())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.NotContains(t, string(out), "Passenger Name: Traveler")
}

func TestFormatPrice(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "INR 2,345", r.FormatPrice(2345))
	assert.Equal(t, "INR 999", r.FormatPrice(999))
	assert.Equal(t, "INR 1,234,567", r.FormatPrice(1234567))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "ticket-abc.pdf", Filename("abc"))
}

// Package ticket renders bookings into printable PDF vouchers.
package ticket

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "02 Jan 2006"

type Renderer struct {
	compress bool
	printer  *message.Printer
}

type Option func(*Renderer)

// WithCompression toggles stream compression. Uncompressed output keeps the
// text searchable in the raw bytes.
func WithCompression(on bool) Option {
	return func(r *Renderer) {
		r.compress = on
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{compress: true, printer: message.NewPrinter(language.English)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Filename is the attachment name for a booking's voucher.
func Filename(bookingID string) string {
	return fmt.Sprintf("ticket-%s.pdf", bookingID)
}

// FormatPrice groups digits the way the voucher prints them, e.g. "INR 2,345".
func (r *Renderer) FormatPrice(price int64) string {
	return r.printer.Sprintf("INR %d", price)
}

// Render draws the voucher for b. issuedAt is printed as the issue date.
func (r *Renderer) Render(b domain.Booking, issuedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(issuedAt)
	pdf.SetTitle(fmt.Sprintf("Flight Ticket %s", b.ID), false)
	pdf.SetAuthor("flightbooking", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Flight Ticket Voucher", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "----------------------------------------", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	lines := []string{
		"Passenger Name: Traveler",
		"Booking ID: " + b.ID,
		"Airline: " + b.Flight.Airline,
		"Flight Number: " + b.Flight.FlightNumber,
		"From: " + b.Flight.From,
		"To: " + b.Flight.To,
		"Date: " + b.CreatedAt.Format(dateLayout),
		"Time: " + string(b.Flight.Time),
		"Price: " + r.FormatPrice(b.Price),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.CellFormat(0, 7, "Thank you for booking with us!", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Issued on: "+issuedAt.Format(dateLayout), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket %s: %w", b.ID, err)
	}
	return buf.Bytes(), nil
}

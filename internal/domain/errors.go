package domain

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
)

// Error is a domain failure with a message safe to show to API callers.
// It unwraps to its kind so callers can match with errors.Is.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func InvalidRequest(message string) error {
	return &Error{kind: ErrInvalidRequest, message: message}
}

func NotFound(message string) error {
	return &Error{kind: ErrNotFound, message: message}
}

var (
	ErrUnknownAirport = InvalidRequest("Invalid origin or destination airport code")
	ErrFlightNotFound = NotFound("Flight not found")
	ErrBookingMissing = NotFound("Booking not found")
)

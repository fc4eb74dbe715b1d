// Package client is a Go client for the flight booking API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// ErrInsufficientFunds is returned by BookWithWallet when the flight costs
// more than the wallet holds.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	var out []domain.Suggestion
	err := c.do(ctx, http.MethodGet, "/api/flights/suggest?"+url.Values{"query": {query}}.Encode(), nil, &out)
	return out, err
}

// Search returns offers on a route. A non-empty timeOfDay keeps only flights
// departing in that part of the day.
func (c *Client) Search(ctx context.Context, from, to string, timeOfDay domain.TimeOfDay) ([]domain.Flight, error) {
	var found []domain.Flight
	if err := c.do(ctx, http.MethodGet, "/api/flights/search?"+url.Values{"from": {from}, "to": {to}}.Encode(), nil, &found); err != nil {
		return nil, err
	}
	if timeOfDay == "" {
		return found, nil
	}
	filtered := found[:0]
	for _, f := range found {
		if f.Time == timeOfDay {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

func (c *Client) Flight(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	if err := c.do(ctx, http.MethodGet, "/api/flights/"+url.PathEscape(id), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) Book(ctx context.Context, flightID string) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.do(ctx, http.MethodPost, "/api/flights/book", map[string]string{"flightId": flightID}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// BookWithWallet refuses to book when the flight's current price exceeds
// wallet. It returns the booking and the remaining balance.
func (c *Client) BookWithWallet(ctx context.Context, flightID string, wallet int64) (*domain.Booking, int64, error) {
	f, err := c.Flight(ctx, flightID)
	if err != nil {
		return nil, wallet, err
	}
	if wallet < f.Price {
		return nil, wallet, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, f.Price, wallet)
	}
	b, err := c.Book(ctx, flightID)
	if err != nil {
		return nil, wallet, err
	}
	return b, wallet - b.Price, nil
}

func (c *Client) Bookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := c.do(ctx, http.MethodGet, "/api/bookings", nil, &out)
	return out, err
}

// Ticket downloads the PDF voucher of a booking.
func (c *Client) Ticket(ctx context.Context, bookingID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ticket?"+url.Values{"bookingId": {bookingID}}.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download ticket: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, decodeFailure(res)
	}
	return io.ReadAll(res.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decodeFailure(res)
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return &APIError{Status: res.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func decodeFailure(res *http.Response) error {
	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil || env.Message == "" {
		return &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	}
	return &APIError{Status: res.StatusCode, Message: env.Message}
}

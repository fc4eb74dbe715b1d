// Package enrichment talks to the optional AviationStack API. Every call is
// best-effort: callers log and drop its errors.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
)

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

func NewClient(cfg config.EnrichmentConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

type airportsResponse struct {
	Data []struct {
		IATACode string `json:"iata_code"`
		City     string `json:"city"`
	} `json:"data"`
}

type flightsResponse struct {
	Data []json.RawMessage `json:"data"`
}

// SuggestAirports returns airports matching query that have both an IATA
// code and a city.
func (c *Client) SuggestAirports(ctx context.Context, query string) ([]domain.Suggestion, error) {
	var resp airportsResponse
	if err := c.get(ctx, "/airports", url.Values{"search": {query}}, &resp); err != nil {
		return nil, err
	}

	suggestions := make([]domain.Suggestion, 0, len(resp.Data))
	for _, a := range resp.Data {
		if a.IATACode == "" || a.City == "" {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{PlaceID: a.IATACode, PlaceName: a.City, IATACode: a.IATACode})
	}
	return suggestions, nil
}

// LookupFlights reports how many live flights the service knows on a route.
func (c *Client) LookupFlights(ctx context.Context, from, to string) (int, error) {
	var resp flightsResponse
	if err := c.get(ctx, "/flights", url.Values{"dep_iata": {from}, "arr_iata": {to}}, &resp); err != nil {
		return 0, err
	}
	return len(resp.Data), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params.Set("access_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", path, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Noop is used when no API key is configured.
type Noop struct{}

func (Noop) SuggestAirports(context.Context, string) ([]domain.Suggestion, error) { return nil, nil }

func (Noop) LookupFlights(context.Context, string, string) (int, error) { return 0, nil }

package geocoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// Client resolves place text against a Nominatim-compatible endpoint. Every
// call is bounded by the configured timeout and never retried: a slow
// geocoder degrades the search, it must not tax it.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

// New creates a geocoding client. baseURL points at the search endpoint,
// e.g. "https://nominatim.openstreetmap.org/search".
func New(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		timeout:   timeout,
		http:      &http.Client{},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve returns the first match for the place text, (nil, nil) when there
// is none, and *domain.UpstreamError on transport failure or timeout.
func (c *Client) Resolve(ctx context.Context, place string) (*port.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", place)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "geocode", Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "geocode", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{Op: "geocode", Err: errStatus(resp.StatusCode)}
	}

	var results []nominatimResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &domain.UpstreamError{Op: "geocode", Err: err}
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		// malformed coordinates count as no result
		return nil, nil
	}
	return &port.Place{
		Point:       domain.Point{Lat: lat, Lng: lng},
		DisplayName: results[0].DisplayName,
	}, nil
}

type errStatus int

func (e errStatus) Error() string { return "unexpected status " + strconv.Itoa(int(e)) }

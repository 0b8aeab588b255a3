package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

// NominatimGeocoder resolves free-text place names via the OpenStreetMap
// Nominatim search API. Consecutive lookups are spaced by minInterval as a
// courtesy to the public service.
type NominatimGeocoder struct {
	baseURL     string
	userAgent   string
	minInterval time.Duration
	httpClient  *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

var _ ports.Geocoder = (*NominatimGeocoder)(nil)

// NewNominatimGeocoder builds a geocoder; httpClient may be nil.
func NewNominatimGeocoder(baseURL, userAgent string, minInterval time.Duration, httpClient *http.Client) *NominatimGeocoder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &NominatimGeocoder{
		baseURL:     baseURL,
		userAgent:   userAgent,
		minInterval: minInterval,
		httpClient:  httpClient,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup returns the best single match for the query, or (nil, nil) when
// the service finds nothing. The display name is the uppercased query, not
// Nominatim's verbose display_name.
func (g *NominatimGeocoder) Lookup(ctx context.Context, query string) (*domain.Place, error) {
	if err := g.waitTurn(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %s", resp.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon: %w", err)
	}

	return &domain.Place{
		Name: strings.ToUpper(strings.TrimSpace(query)),
		Lat:  lat,
		Lng:  lng,
	}, nil
}

// waitTurn enforces the minimum spacing between consecutive lookups.
func (g *NominatimGeocoder) waitTurn(ctx context.Context) error {
	g.mu.Lock()
	wait := g.minInterval - time.Since(g.lastCall)
	if wait < 0 {
		wait = 0
	}
	g.lastCall = time.Now().Add(wait)
	g.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

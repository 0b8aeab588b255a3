package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLookupResolvesPlace(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if got := r.URL.Query().Get("q"); got != "Paris, France" {
			t.Errorf("unexpected query: %q", got)
		}
		_, _ = w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522"}]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "test-agent", 0, server.Client())

	place, err := g.Lookup(context.Background(), "Paris, France")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if place == nil {
		t.Fatalf("expected a place")
	}
	if place.Name != "PARIS, FRANCE" {
		t.Fatalf("display name must be the uppercased query, got %q", place.Name)
	}
	if place.Lat != 48.8566 || place.Lng != 2.3522 {
		t.Fatalf("unexpected coordinates: %v, %v", place.Lat, place.Lng)
	}
	if gotUA != "test-agent" {
		t.Fatalf("user agent not sent, got %q", gotUA)
	}
}

func TestLookupNotFoundIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "test-agent", 0, server.Client())

	place, err := g.Lookup(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("not-found must not error: %v", err)
	}
	if place != nil {
		t.Fatalf("expected nil place, got %+v", place)
	}
}

func TestLookupEnforcesSpacing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"1.0","lon":"2.0"}]`))
	}))
	defer server.Close()

	interval := 100 * time.Millisecond
	g := NewNominatimGeocoder(server.URL, "test-agent", interval, server.Client())

	start := time.Now()
	if _, err := g.Lookup(context.Background(), "first"); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if _, err := g.Lookup(context.Background(), "second"); err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	if elapsed := time.Since(start); elapsed < interval {
		t.Fatalf("consecutive lookups must be spaced by %v, took %v", interval, elapsed)
	}
}

func TestLookupRespectsContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"1.0","lon":"2.0"}]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "test-agent", time.Minute, server.Client())

	if _, err := g.Lookup(context.Background(), "first"); err != nil {
		t.Fatalf("first lookup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := g.Lookup(ctx, "second"); err == nil {
		t.Fatalf("expected context error while waiting for the spacing interval")
	}
}

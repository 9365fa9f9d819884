package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"googlemaps.github.io/maps"
)

// fakeMapsAPI serves canned Google-style JSON for the three endpoints the
// client uses.
func fakeMapsAPI(t *testing.T, autocompleteBody, detailsBody, geocodeBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/maps/api/place/autocomplete/json":
			_, _ = w.Write([]byte(autocompleteBody))
		case "/maps/api/place/details/json":
			_, _ = w.Write([]byte(detailsBody))
		case "/maps/api/geocode/json":
			_, _ = w.Write([]byte(geocodeBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient("test-key", maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestAutocomplete(t *testing.T) {
	srv := fakeMapsAPI(t,
		`{"status":"OK","predictions":[{"place_id":"p1","description":"123 Main St"},{"place_id":"p2","description":"123 Maine Ave"}]}`,
		`{}`, `{}`)
	defer srv.Close()

	c := newTestClient(t, srv)
	preds, err := c.Autocomplete(context.Background(), "123 Main")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(preds))
	}
	if preds[0].PlaceID != "p1" || preds[0].Description != "123 Main St" {
		t.Errorf("unexpected first prediction: %+v", preds[0])
	}
}

func TestAutocomplete_APIError(t *testing.T) {
	srv := fakeMapsAPI(t,
		`{"status":"REQUEST_DENIED","error_message":"bad key","predictions":[]}`,
		`{}`, `{}`)
	defer srv.Close()

	c := newTestClient(t, srv)
	if _, err := c.Autocomplete(context.Background(), "123 Main"); err == nil {
		t.Fatal("expected error for REQUEST_DENIED status")
	}
}

func TestResolveDetails(t *testing.T) {
	srv := fakeMapsAPI(t, `{}`,
		`{"status":"OK","result":{"formatted_address":"123 Main St, City","geometry":{"location":{"lat":1.0,"lng":2.0}}}}`,
		`{}`)
	defer srv.Close()

	c := newTestClient(t, srv)
	loc, err := c.ResolveDetails(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ResolveDetails: %v", err)
	}
	if loc.Address != "123 Main St, City" || loc.Latitude != 1.0 || loc.Longitude != 2.0 {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestReverseGeocode(t *testing.T) {
	srv := fakeMapsAPI(t, `{}`, `{}`,
		`{"status":"OK","results":[{"formatted_address":"X"}]}`)
	defer srv.Close()

	c := newTestClient(t, srv)
	addr, err := c.ReverseGeocode(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if addr != "X" {
		t.Errorf("expected address X, got %q", addr)
	}
}

func TestReverseGeocode_ZeroResults(t *testing.T) {
	srv := fakeMapsAPI(t, `{}`, `{}`,
		`{"status":"ZERO_RESULTS","results":[]}`)
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.ReverseGeocode(context.Background(), 0, 0)
	if err == nil {
		t.Fatal("expected error for zero results")
	}
}

// README: Google Maps Platform client for autocomplete, place details, and reverse geocoding.
package geo

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"pulse/internal/types"
)

// Prediction is one autocomplete suggestion. Ephemeral; lifetime bounded to a
// single search session.
type Prediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// ErrNoAddress is returned by ReverseGeocode when the API has no result for
// the coordinate (e.g. open ocean).
var ErrNoAddress = errors.New("no address for coordinate")

// Client wraps the Google Maps API. All three operations are a single
// request/response with no retry; callers decide whether a failure is
// silent-degrade (autocomplete) or user-visible (details, reverse geocode).
type Client struct {
	maps *maps.Client
}

// NewClient creates a Client with the given API key. Extra options (base URL,
// HTTP client) are mainly for tests.
func NewClient(apiKey string, extra ...maps.ClientOption) (*Client, error) {
	opts := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, extra...)
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Client{maps: c}, nil
}

// Autocomplete returns place predictions for a free-text query. A zero-result
// response is not an error.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Prediction, error) {
	resp, err := c.maps.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{Input: query})
	if err != nil {
		return nil, fmt.Errorf("places autocomplete: %w", err)
	}
	out := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, Prediction{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out, nil
}

// ResolveDetails looks up the formatted address and coordinates for a place ID.
func (c *Client) ResolveDetails(ctx context.Context, placeID string) (types.Location, error) {
	res, err := c.maps.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: placeID})
	if err != nil {
		return types.Location{}, fmt.Errorf("place details: %w", err)
	}
	return types.Location{
		Address:   res.FormattedAddress,
		Latitude:  res.Geometry.Location.Lat,
		Longitude: res.Geometry.Location.Lng,
	}, nil
}

// ReverseGeocode converts a coordinate into the first formatted address the
// API returns.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	results, err := c.maps.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	if len(results) == 0 {
		return "", ErrNoAddress
	}
	return results[0].FormattedAddress, nil
}

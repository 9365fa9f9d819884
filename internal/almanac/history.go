// README: Nearby landmarks via the Wikipedia geosearch API, with optional images.
package almanac

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultWikiURL = "https://en.wikipedia.org/w/api.php"

	userAgent = "PulseBot/1.0"

	defaultLandmarkRadiusM = 10000
	maxLandmarks           = 10
)

type Landmark struct {
	PageID    int64   `json:"page_id"`
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	DistanceM float64 `json:"distance_m"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// HistoryClient finds landmarks around a point and decorates them with stock
// images. The image API is optional: without a key, ImageFor always errors and
// landmarks simply ship without pictures.
type HistoryClient struct {
	httpClient *http.Client
	wikiURL    string
	imageURL   string
	imageKey   string
}

func NewHistoryClient(wikiURL, imageURL, imageKey string) *HistoryClient {
	if wikiURL == "" {
		wikiURL = DefaultWikiURL
	}
	return &HistoryClient{
		httpClient: http.DefaultClient,
		wikiURL:    wikiURL,
		imageURL:   imageURL,
		imageKey:   imageKey,
	}
}

func (c *HistoryClient) NearbyLandmarks(ctx context.Context, lat, lng float64, radiusM, limit int) ([]Landmark, error) {
	if radiusM <= 0 {
		radiusM = defaultLandmarkRadiusM
	}
	if limit <= 0 || limit > maxLandmarks {
		limit = maxLandmarks
	}

	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "geosearch")
	q.Set("gscoord", formatCoord(lat)+"|"+formatCoord(lng))
	q.Set("gsradius", strconv.Itoa(radiusM))
	q.Set("gslimit", strconv.Itoa(limit))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.wikiURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia: status %d", resp.StatusCode)
	}

	var body struct {
		Query struct {
			Geosearch []struct {
				PageID int64   `json:"pageid"`
				Title  string  `json:"title"`
				Lat    float64 `json:"lat"`
				Lon    float64 `json:"lon"`
				Dist   float64 `json:"dist"`
			} `json:"geosearch"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]Landmark, 0, len(body.Query.Geosearch))
	for _, g := range body.Query.Geosearch {
		out = append(out, Landmark{
			PageID:    g.PageID,
			Title:     g.Title,
			Latitude:  g.Lat,
			Longitude: g.Lon,
			DistanceM: g.Dist,
		})
	}
	return out, nil
}

// ImageFor returns a small photo URL matching the query.
func (c *HistoryClient) ImageFor(ctx context.Context, query string) (string, error) {
	if c.imageURL == "" || c.imageKey == "" {
		return "", fmt.Errorf("image api not configured")
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.imageURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+c.imageKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image api: status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			URLs struct {
				Small string `json:"small"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Results) == 0 {
		return "", fmt.Errorf("image api: no results for %q", query)
	}
	return body.Results[0].URLs.Small, nil
}

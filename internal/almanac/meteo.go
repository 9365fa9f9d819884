// README: Open-Meteo clients for current weather and air quality.
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
	DefaultWeatherURL    = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
)

type Weather struct {
	TemperatureF float64 `json:"temperature_f"`
	Code         int     `json:"code"`
}

type AirQuality struct {
	USAQI int `json:"us_aqi"`
}

// MeteoClient talks to the two Open-Meteo endpoints. Both are keyless.
type MeteoClient struct {
	httpClient *http.Client
	weatherURL string
	airURL     string
}

func NewMeteoClient(weatherURL, airURL string) *MeteoClient {
	if weatherURL == "" {
		weatherURL = DefaultWeatherURL
	}
	if airURL == "" {
		airURL = DefaultAirQualityURL
	}
	return &MeteoClient{
		httpClient: http.DefaultClient,
		weatherURL: weatherURL,
		airURL:     airURL,
	}
}

func (c *MeteoClient) CurrentWeather(ctx context.Context, lat, lng float64) (*Weather, error) {
	q := url.Values{}
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lng))
	q.Set("current_weather", "true")
	q.Set("temperature_unit", "fahrenheit")

	var body struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := c.getJSON(ctx, c.weatherURL, q, &body); err != nil {
		return nil, err
	}
	return &Weather{
		TemperatureF: body.CurrentWeather.Temperature,
		Code:         body.CurrentWeather.WeatherCode,
	}, nil
}

func (c *MeteoClient) CurrentAirQuality(ctx context.Context, lat, lng float64) (*AirQuality, error) {
	q := url.Values{}
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lng))
	q.Set("current", "us_aqi")

	var body struct {
		Current struct {
			USAQI int `json:"us_aqi"`
		} `json:"current"`
	}
	if err := c.getJSON(ctx, c.airURL, q, &body); err != nil {
		return nil, err
	}
	return &AirQuality{USAQI: body.Current.USAQI}, nil
}

func (c *MeteoClient) getJSON(ctx context.Context, base string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open-meteo: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

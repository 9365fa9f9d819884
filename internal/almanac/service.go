// README: Almanac service; assembles the location snapshot shown on the home screen.
package almanac

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Snapshot is everything the home screen shows for a location. Weather and air
// quality are best-effort: a nil half means that upstream was unavailable.
type Snapshot struct {
	Weather   *Weather    `json:"weather,omitempty"`
	Air       *AirQuality `json:"air,omitempty"`
	Landmarks []Landmark  `json:"landmarks"`
}

type Service struct {
	meteo   *MeteoClient
	history *HistoryClient
}

func NewService(meteo *MeteoClient, history *HistoryClient) *Service {
	return &Service{meteo: meteo, history: history}
}

// Snapshot fetches weather and air quality concurrently, then landmarks. Each
// upstream failure is logged and leaves its slice of the snapshot empty rather
// than failing the whole call.
func (s *Service) Snapshot(ctx context.Context, lat, lng float64) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.meteo.CurrentWeather(gctx, lat, lng)
		if err != nil {
			log.Printf("almanac: weather: %v", err)
			return nil
		}
		snap.Weather = w
		return nil
	})
	g.Go(func() error {
		a, err := s.meteo.CurrentAirQuality(gctx, lat, lng)
		if err != nil {
			log.Printf("almanac: air quality: %v", err)
			return nil
		}
		snap.Air = a
		return nil
	})
	_ = g.Wait()

	landmarks, err := s.history.NearbyLandmarks(ctx, lat, lng, 0, 0)
	if err != nil {
		log.Printf("almanac: landmarks: %v", err)
		landmarks = nil
	}
	for i := range landmarks {
		url, err := s.history.ImageFor(ctx, landmarks[i].Title)
		if err != nil {
			continue
		}
		landmarks[i].ImageURL = url
	}
	snap.Landmarks = landmarks
	return snap, nil
}

package pulse

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			lat1:      37.7749, lng1: -122.4194,
			lat2:      37.7749, lng2: -122.4194,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "SF Ferry Building to Golden Gate Bridge (~10km)",
			lat1:      37.7955, lng1: -122.3937,
			lat2:      37.8199, lng2: -122.4783,
			wantKm:    8.0,
			tolerance: 1.0,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			lat1:      40.7128, lng1: -74.0060,
			lat2:      34.0522, lng2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(37.0, -122.0, 38.0, -121.0)
	d2 := haversineKm(38.0, -121.0, 37.0, -122.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	lat, lng, radius := 37.7749, -122.4194, 5.0
	minLat, maxLat, minLng, maxLng := boundingBox(lat, lng, radius)

	// Points just inside the radius along each axis must fall inside the box.
	dLat := radius / 111.0 * 0.99
	if lat+dLat > maxLat || lat-dLat < minLat {
		t.Errorf("box too narrow in latitude: [%f, %f]", minLat, maxLat)
	}
	dLng := radius / (111.0 * math.Cos(lat*math.Pi/180)) * 0.99
	if lng+dLng > maxLng || lng-dLng < minLng {
		t.Errorf("box too narrow in longitude: [%f, %f]", minLng, maxLng)
	}
}

func TestBoundingBox_NearPoleWidensToFullLongitude(t *testing.T) {
	_, _, minLng, maxLng := boundingBox(89.9, 10, 5)
	if minLng != -180 || maxLng != 180 {
		t.Errorf("expected full longitude range near the pole, got [%f, %f]", minLng, maxLng)
	}
}

func TestSortByDistance(t *testing.T) {
	items := []Nearby{
		{DistanceKm: 5.0},
		{DistanceKm: 1.0},
		{DistanceKm: 3.0},
	}
	sortByDistance(items, func(n Nearby) float64 { return n.DistanceKm })
	if items[0].DistanceKm != 1.0 || items[1].DistanceKm != 3.0 || items[2].DistanceKm != 5.0 {
		t.Errorf("unexpected order: %v", items)
	}
}

func TestSortByDistance_Empty(t *testing.T) {
	var items []Nearby
	sortByDistance(items, func(n Nearby) float64 { return n.DistanceKm })
}

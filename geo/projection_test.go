package geo

import (
	"math"
	"testing"
)

func TestProjectToWGS84KnownPoints(t *testing.T) {
	tests := []struct {
		name   string
		grid   Grid
		x, y   float64
		minLat float64
		maxLat float64
		minLon float64
		maxLon float64
	}{
		{
			// Central Helsinki in KKJ zone 3 coordinates.
			name: "helsinki kkj",
			grid: KKJ,
			x:    3385600, y: 6675300,
			minLat: 60.1, maxLat: 60.3,
			minLon: 24.8, maxLon: 25.1,
		},
		{
			// Central Stockholm in RT90 2.5 gon V coordinates.
			name: "stockholm rt90",
			grid: RT90,
			x:    1628294, y: 6580994,
			minLat: 59.2, maxLat: 59.4,
			minLon: 17.9, maxLon: 18.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := ProjectToWGS84(tt.grid, tt.x, tt.y)
			if lat < tt.minLat || lat > tt.maxLat {
				t.Errorf("latitude %f outside [%f, %f]", lat, tt.minLat, tt.maxLat)
			}
			if lon < tt.minLon || lon > tt.maxLon {
				t.Errorf("longitude %f outside [%f, %f]", lon, tt.minLon, tt.maxLon)
			}
		})
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		grid     Grid
		lat, lon float64
	}{
		{name: "kkj helsinki", grid: KKJ, lat: 60.1699, lon: 24.9384},
		{name: "kkj oulu", grid: KKJ, lat: 65.0121, lon: 25.4651},
		{name: "kkj rovaniemi", grid: KKJ, lat: 66.5039, lon: 25.7294},
		{name: "rt90 stockholm", grid: RT90, lat: 59.3293, lon: 18.0686},
		{name: "rt90 gothenburg", grid: RT90, lat: 57.7089, lon: 11.9746},
	}

	const tolerance = 1e-5 // degrees, roughly one meter

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ProjectFromWGS84(tt.grid, tt.lat, tt.lon)
			lat, lon := ProjectToWGS84(tt.grid, x, y)
			if math.Abs(lat-tt.lat) > tolerance {
				t.Errorf("latitude round trip drifted: want %f, got %f", tt.lat, lat)
			}
			if math.Abs(lon-tt.lon) > tolerance {
				t.Errorf("longitude round trip drifted: want %f, got %f", tt.lon, lon)
			}
		})
	}
}

func TestGridRoundTrip(t *testing.T) {
	// Starting from grid coordinates and going out through WGS84 and back
	// must also reproduce the original pair, within a meter.
	x0, y0 := 3385600.0, 6675300.0
	lat, lon := ProjectToWGS84(KKJ, x0, y0)
	x, y := ProjectFromWGS84(KKJ, lat, lon)
	if math.Abs(x-x0) > 1.0 || math.Abs(y-y0) > 1.0 {
		t.Errorf("grid round trip drifted: want (%f, %f), got (%f, %f)", x0, y0, x, y)
	}
}

package providers

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

const hereFixture = `{
	"routes": [
		{
			"sections": [
				{
					"type": "pedestrian",
					"departure": {"time": "2025-07-15T12:00:00+03:00", "place": {"name": "Kamppi", "location": {"lat": 60.1686, "lng": 24.9316}}},
					"arrival": {"time": "2025-07-15T12:07:00+03:00", "place": {"name": "Kamppi station", "id": "415712984", "location": {"lat": 60.1699, "lng": 24.9311}}},
					"travelSummary": {"duration": 420, "length": 400}
				},
				{
					"type": "transit",
					"transport": {"mode": "cityTrain", "shortName": "P", "name": "Ring rail line", "agency": "VR"},
					"departure": {"time": "2025-07-15T12:10:00+03:00", "place": {"name": "Helsinki", "location": {"lat": 60.1719, "lng": 24.9414}}},
					"arrival": {"place": {"name": "Pasila", "location": {"lat": 60.1988, "lng": 24.9336}}},
					"polyline": "xyz789",
					"travelSummary": {"duration": 300, "length": 3400}
				}
			]
		}
	]
}`

func TestHereAdapt(t *testing.T) {
	a := NewHereAdapter()
	resp, err := a.Adapt(json.RawMessage(hereFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Plan.Itineraries) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(resp.Plan.Itineraries))
	}
	it := resp.Plan.Itineraries[0]
	if len(it.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(it.Legs))
	}

	walk, rail := it.Legs[0], it.Legs[1]
	if walk.Mode != "WALK" {
		t.Errorf("pedestrian section should map to WALK, got %s", walk.Mode)
	}
	expectedStart := time.Date(2025, time.July, 15, 9, 0, 0, 0, time.UTC).UnixMilli()
	if walk.StartTime != expectedStart {
		t.Errorf("offset timestamp off: expected %d, got %d", expectedStart, walk.StartTime)
	}

	if rail.Mode != "RAIL" {
		t.Errorf("cityTrain should map to RAIL, got %s", rail.Mode)
	}
	// The transit section has no arrival timestamp: end derives from the
	// travel summary duration.
	if rail.EndTime != rail.StartTime+300*1000 {
		t.Errorf("expected derived end time, got start=%d end=%d", rail.StartTime, rail.EndTime)
	}
	if rail.RouteShortName != "P" || rail.AgencyID != "VR" {
		t.Errorf("transport references lost: %+v", rail)
	}
	if rail.LegGeometry != "xyz789" {
		t.Errorf("polyline lost: %q", rail.LegGeometry)
	}

	if it.StartTime != walk.StartTime || it.EndTime != rail.EndTime {
		t.Error("itinerary bounds must come from the first and last leg")
	}
}

func TestHereAdaptEmbeddedError(t *testing.T) {
	a := NewHereAdapter()
	_, err := a.Adapt(json.RawMessage(`{"title": "Unauthorized", "status": 401}`))
	var ue *UpstreamPayloadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamPayloadError, got %v", err)
	}
	if ue.Message != "Unauthorized" {
		t.Errorf("embedded message lost: %q", ue.Message)
	}
}

func TestHereAdaptMissingRoutes(t *testing.T) {
	a := NewHereAdapter()
	if _, err := a.Adapt(json.RawMessage(`{"notices": []}`)); err == nil {
		t.Error("expected error for missing routes array")
	}
}

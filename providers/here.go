package providers

import (
	"encoding/json"
	"fmt"

	"github.com/urbanreach/routing-gateway/trip"
	"github.com/urbanreach/routing-gateway/utils"
)

// hereResponse mirrors the HERE v8 routing payload: routes composed of
// sections, with RFC3339 timestamps carrying a UTC offset and lowercase
// transport modes.
type hereResponse struct {
	Title  string      `json:"title"`  // set on error payloads
	Status int         `json:"status"` // set on error payloads
	Routes []hereRoute `json:"routes"`
}

type hereRoute struct {
	Sections []hereSection `json:"sections"`
}

type hereSection struct {
	Type          string          `json:"type"`
	Departure     herePlaceTime   `json:"departure"`
	Arrival       herePlaceTime   `json:"arrival"`
	Transport     hereTransport   `json:"transport"`
	Polyline      string          `json:"polyline"`
	TravelSummary hereTravelStats `json:"travelSummary"`
}

type herePlaceTime struct {
	Time  string    `json:"time"`
	Place herePlace `json:"place"`
}

type herePlace struct {
	Name     string       `json:"name"`
	ID       string       `json:"id"`
	Location hereLocation `json:"location"`
}

type hereLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type hereTransport struct {
	Mode      string `json:"mode"`
	ShortName string `json:"shortName"`
	Name      string `json:"name"`
	Agency    string `json:"agency"`
}

type hereTravelStats struct {
	Duration int     `json:"duration"` // seconds
	Length   float64 `json:"length"`   // meters
}

// hereModes maps HERE transport modes onto the canonical vocabulary.
var hereModes = map[string]string{
	"pedestrian":     trip.ModeWalk,
	"bus":            trip.ModeBus,
	"busRapid":       trip.ModeBus,
	"lightRail":      trip.ModeTram,
	"cityTrain":      trip.ModeRail,
	"regionalTrain":  trip.ModeRail,
	"intercityTrain": trip.ModeRail,
	"highSpeedTrain": trip.ModeRail,
	"subway":         trip.ModeSubway,
	"ferry":          trip.ModeFerry,
	"car":            trip.ModeCar,
	"privateBike":    trip.ModeBicycle,
}

// HereAdapter normalizes HERE v8 routing responses.
type HereAdapter struct{}

func NewHereAdapter() *HereAdapter { return &HereAdapter{} }

func (a *HereAdapter) Provider() ID { return Here }

func (a *HereAdapter) Adapt(raw json.RawMessage) (*trip.PlanResponse, error) {
	var resp hereResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding here payload: %w", err)
	}
	if resp.Title != "" && resp.Status >= 400 {
		return nil, &UpstreamPayloadError{Provider: Here, Message: resp.Title}
	}
	if resp.Routes == nil {
		return nil, fmt.Errorf("here payload is missing the routes array")
	}

	itineraries := make([]trip.Itinerary, 0, len(resp.Routes))
	for _, route := range resp.Routes {
		itinerary, err := a.adaptRoute(route)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, itinerary)
	}
	return &trip.PlanResponse{Plan: trip.Plan{Itineraries: itineraries}}, nil
}

func (a *HereAdapter) adaptRoute(route hereRoute) (trip.Itinerary, error) {
	legs := make([]trip.Leg, 0, len(route.Sections))
	for _, s := range route.Sections {
		leg, err := a.adaptSection(s)
		if err != nil {
			return trip.Itinerary{}, err
		}
		legs = append(legs, leg)
	}

	itinerary := trip.Itinerary{Legs: legs}
	if len(legs) > 0 {
		itinerary.StartTime = legs[0].StartTime
		itinerary.EndTime = legs[len(legs)-1].EndTime
	}
	return itinerary, nil
}

func (a *HereAdapter) adaptSection(s hereSection) (trip.Leg, error) {
	leg := trip.Leg{
		Mode:           hereMode(s),
		From:           herePoint(s.Departure.Place),
		To:             herePoint(s.Arrival.Place),
		RouteShortName: s.Transport.ShortName,
		RouteLongName:  s.Transport.Name,
		AgencyID:       s.Transport.Agency,
		LegGeometry:    s.Polyline,
		Distance:       s.TravelSummary.Length,
	}

	if s.Departure.Time != "" {
		start, err := utils.EpochMSFromISO8601(s.Departure.Time)
		if err != nil {
			return trip.Leg{}, err
		}
		leg.StartTime = start
	}
	if s.Arrival.Time != "" {
		end, err := utils.EpochMSFromISO8601(s.Arrival.Time)
		if err != nil {
			return trip.Leg{}, err
		}
		leg.EndTime = end
	} else if s.TravelSummary.Duration > 0 {
		// Sections without an arrival timestamp report a travel duration.
		leg.EndTime = leg.StartTime + int64(s.TravelSummary.Duration)*1000
	}
	return leg, nil
}

func herePoint(p herePlace) trip.Point {
	return trip.Point{
		Name:   p.Name,
		StopID: p.ID,
		Lat:    p.Location.Lat,
		Lon:    p.Location.Lng,
	}
}

func hereMode(s hereSection) string {
	mode := s.Transport.Mode
	if mode == "" {
		mode = s.Type
	}
	if canonical, ok := hereModes[mode]; ok {
		return canonical
	}
	return trip.NormalizeMode(mode)
}

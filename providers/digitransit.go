package providers

import (
	"encoding/json"
	"fmt"

	"github.com/urbanreach/routing-gateway/trip"
)

// digitransitResponse mirrors the OTP-style plan payload served by the
// Digitransit routing API. Times are epoch milliseconds and positions are
// already WGS84.
type digitransitResponse struct {
	Error *digitransitError `json:"error"`
	Plan  *digitransitPlan  `json:"plan"`
}

type digitransitError struct {
	ID  int    `json:"id"`
	Msg string `json:"msg"`
}

type digitransitPlan struct {
	From        *digitransitPlace      `json:"from"`
	To          *digitransitPlace      `json:"to"`
	Itineraries []digitransitItinerary `json:"itineraries"`
}

type digitransitItinerary struct {
	StartTime int64            `json:"startTime"`
	EndTime   int64            `json:"endTime"`
	Legs      []digitransitLeg `json:"legs"`
}

type digitransitLeg struct {
	StartTime      int64            `json:"startTime"`
	EndTime        int64            `json:"endTime"`
	Mode           string           `json:"mode"`
	Distance       float64          `json:"distance"`
	Route          string           `json:"route"`
	RouteShortName string           `json:"routeShortName"`
	RouteLongName  string           `json:"routeLongName"`
	AgencyID       string           `json:"agencyId"`
	From           digitransitPlace `json:"from"`
	To             digitransitPlace `json:"to"`
	LegGeometry    *digitransitGeom `json:"legGeometry"`
}

type digitransitGeom struct {
	Points string `json:"points"`
	Length int    `json:"length"`
}

type digitransitPlace struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	StopID    string  `json:"stopId"`
	StopCode  string  `json:"stopCode"`
	Arrival   int64   `json:"arrival"`
	Departure int64   `json:"departure"`
}

// DigitransitAdapter normalizes Digitransit plan responses.
type DigitransitAdapter struct{}

func NewDigitransitAdapter() *DigitransitAdapter { return &DigitransitAdapter{} }

func (a *DigitransitAdapter) Provider() ID { return Digitransit }

func (a *DigitransitAdapter) Adapt(raw json.RawMessage) (*trip.PlanResponse, error) {
	var resp digitransitResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding digitransit payload: %w", err)
	}
	if resp.Error != nil {
		return nil, &UpstreamPayloadError{Provider: Digitransit, Message: resp.Error.Msg}
	}
	if resp.Plan == nil || resp.Plan.Itineraries == nil {
		return nil, fmt.Errorf("digitransit payload is missing plan.itineraries")
	}

	itineraries := make([]trip.Itinerary, 0, len(resp.Plan.Itineraries))
	for _, it := range resp.Plan.Itineraries {
		legs := make([]trip.Leg, 0, len(it.Legs))
		for _, l := range it.Legs {
			legs = append(legs, a.adaptLeg(l))
		}
		itineraries = append(itineraries, trip.Itinerary{
			StartTime: it.StartTime,
			EndTime:   it.EndTime,
			Legs:      legs,
		})
	}

	plan := trip.Plan{Itineraries: itineraries}
	if resp.Plan.From != nil {
		plan.From = digitransitPoint(*resp.Plan.From)
	}
	if resp.Plan.To != nil {
		plan.To = digitransitPoint(*resp.Plan.To)
	}
	return &trip.PlanResponse{Plan: plan}, nil
}

func (a *DigitransitAdapter) adaptLeg(l digitransitLeg) trip.Leg {
	leg := trip.Leg{
		StartTime:      l.StartTime,
		EndTime:        l.EndTime,
		Mode:           trip.NormalizeMode(l.Mode),
		From:           *digitransitPoint(l.From),
		To:             *digitransitPoint(l.To),
		Route:          l.Route,
		RouteShortName: l.RouteShortName,
		RouteLongName:  l.RouteLongName,
		AgencyID:       l.AgencyID,
		Distance:       l.Distance,
	}
	// End time derived from distance is not possible here; Digitransit
	// always reports both ends, but a zero end falls back to the start so
	// downstream ordering checks stay sane.
	if leg.EndTime == 0 {
		leg.EndTime = leg.StartTime
	}
	if l.LegGeometry != nil {
		leg.LegGeometry = l.LegGeometry.Points
	}
	return leg
}

func digitransitPoint(p digitransitPlace) *trip.Point {
	return &trip.Point{
		Name:      p.Name,
		StopID:    p.StopID,
		StopCode:  p.StopCode,
		Lat:       p.Lat,
		Lon:       p.Lon,
		Arrival:   p.Arrival,
		Departure: p.Departure,
	}
}

package providers

import (
	"encoding/json"
	"fmt"

	"github.com/urbanreach/routing-gateway/trip"
)

// hslResponse mirrors the HSL variant of the OTP plan schema: routes and
// stops are nested objects rather than flat strings, and legs may report a
// duration instead of an explicit end time.
type hslResponse struct {
	Error *hslError `json:"error"`
	Plan  *hslPlan  `json:"plan"`
}

type hslError struct {
	Message string `json:"message"`
}

type hslPlan struct {
	Itineraries []hslItinerary `json:"itineraries"`
}

type hslItinerary struct {
	StartTime int64    `json:"startTime"`
	EndTime   int64    `json:"endTime"`
	Duration  int64    `json:"duration"` // seconds
	Legs      []hslLeg `json:"legs"`
}

type hslLeg struct {
	StartTime   int64     `json:"startTime"`
	EndTime     int64     `json:"endTime"`
	Duration    int64     `json:"duration"` // seconds
	Mode        string    `json:"mode"`
	Distance    float64   `json:"distance"`
	Route       *hslRoute `json:"route"`
	Agency      *hslRef   `json:"agency"`
	From        hslPlace  `json:"from"`
	To          hslPlace  `json:"to"`
	LegGeometry *hslGeom  `json:"legGeometry"`
}

type hslRoute struct {
	GtfsID    string `json:"gtfsId"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

type hslRef struct {
	GtfsID string `json:"gtfsId"`
}

type hslGeom struct {
	Points string `json:"points"`
}

type hslPlace struct {
	Name      string   `json:"name"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Stop      *hslStop `json:"stop"`
	Arrival   int64    `json:"arrivalTime"`
	Departure int64    `json:"departureTime"`
}

type hslStop struct {
	GtfsID string `json:"gtfsId"`
	Code   string `json:"code"`
}

// HSLAdapter normalizes HSL plan responses.
type HSLAdapter struct{}

func NewHSLAdapter() *HSLAdapter { return &HSLAdapter{} }

func (a *HSLAdapter) Provider() ID { return HSL }

func (a *HSLAdapter) Adapt(raw json.RawMessage) (*trip.PlanResponse, error) {
	var resp hslResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding hsl payload: %w", err)
	}
	if resp.Error != nil {
		return nil, &UpstreamPayloadError{Provider: HSL, Message: resp.Error.Message}
	}
	if resp.Plan == nil || resp.Plan.Itineraries == nil {
		return nil, fmt.Errorf("hsl payload is missing plan.itineraries")
	}

	itineraries := make([]trip.Itinerary, 0, len(resp.Plan.Itineraries))
	for _, it := range resp.Plan.Itineraries {
		legs := make([]trip.Leg, 0, len(it.Legs))
		for _, l := range it.Legs {
			legs = append(legs, a.adaptLeg(l))
		}
		end := it.EndTime
		if end == 0 && it.Duration > 0 {
			end = it.StartTime + it.Duration*1000
		}
		itineraries = append(itineraries, trip.Itinerary{
			StartTime: it.StartTime,
			EndTime:   end,
			Legs:      legs,
		})
	}
	return &trip.PlanResponse{Plan: trip.Plan{Itineraries: itineraries}}, nil
}

func (a *HSLAdapter) adaptLeg(l hslLeg) trip.Leg {
	leg := trip.Leg{
		StartTime: l.StartTime,
		EndTime:   l.EndTime,
		Mode:      trip.NormalizeMode(l.Mode),
		From:      hslPoint(l.From),
		To:        hslPoint(l.To),
		Distance:  l.Distance,
	}
	// HSL legs sometimes carry only a start and a duration.
	if leg.EndTime == 0 && l.Duration > 0 {
		leg.EndTime = leg.StartTime + l.Duration*1000
	}
	if l.Route != nil {
		leg.Route = l.Route.GtfsID
		leg.RouteShortName = l.Route.ShortName
		leg.RouteLongName = l.Route.LongName
	}
	if l.Agency != nil {
		leg.AgencyID = l.Agency.GtfsID
	}
	if l.LegGeometry != nil {
		leg.LegGeometry = l.LegGeometry.Points
	}
	return leg
}

func hslPoint(p hslPlace) trip.Point {
	pt := trip.Point{
		Name:      p.Name,
		Lat:       p.Lat,
		Lon:       p.Lon,
		Arrival:   p.Arrival,
		Departure: p.Departure,
	}
	if p.Stop != nil {
		pt.StopID = p.Stop.GtfsID
		pt.StopCode = p.Stop.Code
	}
	return pt
}

package providers

import (
	"encoding/json"
	"fmt"

	"github.com/urbanreach/routing-gateway/geo"
	"github.com/urbanreach/routing-gateway/trip"
	"github.com/urbanreach/routing-gateway/utils"
)

// matkaResponse mirrors the legacy journey planner payload: a nested array
// of route options. Coordinates are KKJ zone 3 easting/northing and times
// are "YYYYMMDD HHMM" Finnish wall-clock strings without timezone, so every
// position and timestamp needs conversion.
type matkaResponse [][]matkaRoute

type matkaRoute struct {
	Length   float64    `json:"length"`   // meters
	Duration float64    `json:"duration"` // seconds
	Legs     []matkaLeg `json:"legs"`
}

type matkaLeg struct {
	Length   float64    `json:"length"`
	Duration float64    `json:"duration"`
	Type     string     `json:"type"` // "walk" or a numeric transit type code
	Code     string     `json:"code"` // line code, transit legs only
	Locs     []matkaLoc `json:"locs"`
}

type matkaLoc struct {
	Coord     matkaCoord `json:"coord"`
	ArrTime   string     `json:"arrTime"`
	DepTime   string     `json:"depTime"`
	Name      string     `json:"name"`
	ShortCode string     `json:"shortCode"`
}

type matkaCoord struct {
	X float64 `json:"x"` // KKJ easting
	Y float64 `json:"y"` // KKJ northing
}

// matkaModes maps the journey planner's numeric transit type codes onto the
// canonical vocabulary. Codes without an entry pass through uppercased.
var matkaModes = map[string]string{
	"walk": trip.ModeWalk,
	"1":    trip.ModeBus,
	"2":    trip.ModeTram,
	"3":    trip.ModeBus,
	"4":    trip.ModeBus,
	"5":    trip.ModeBus,
	"6":    trip.ModeSubway,
	"7":    trip.ModeFerry,
	"8":    trip.ModeBus,
	"12":   trip.ModeRail,
}

// MatkaAdapter normalizes legacy journey planner responses.
type MatkaAdapter struct{}

func NewMatkaAdapter() *MatkaAdapter { return &MatkaAdapter{} }

func (a *MatkaAdapter) Provider() ID { return Matka }

func (a *MatkaAdapter) Adapt(raw json.RawMessage) (*trip.PlanResponse, error) {
	var routes matkaResponse
	if err := json.Unmarshal(raw, &routes); err != nil {
		// The planner reports errors as an object instead of the route
		// array.
		var embedded struct {
			Error *struct {
				Msg string `json:"msg"`
			} `json:"error"`
		}
		if jsonErr := json.Unmarshal(raw, &embedded); jsonErr == nil && embedded.Error != nil {
			return nil, &UpstreamPayloadError{Provider: Matka, Message: embedded.Error.Msg}
		}
		return nil, fmt.Errorf("decoding matka payload: %w", err)
	}
	if routes == nil {
		return nil, fmt.Errorf("matka payload is missing the route array")
	}

	itineraries := make([]trip.Itinerary, 0, len(routes))
	for _, group := range routes {
		for _, route := range group {
			itinerary, err := a.adaptRoute(route)
			if err != nil {
				return nil, err
			}
			itineraries = append(itineraries, itinerary)
		}
	}
	return &trip.PlanResponse{Plan: trip.Plan{Itineraries: itineraries}}, nil
}

func (a *MatkaAdapter) adaptRoute(route matkaRoute) (trip.Itinerary, error) {
	legs := make([]trip.Leg, 0, len(route.Legs))
	for _, l := range route.Legs {
		leg, err := a.adaptLeg(l)
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

func (a *MatkaAdapter) adaptLeg(l matkaLeg) (trip.Leg, error) {
	if len(l.Locs) == 0 {
		return trip.Leg{}, fmt.Errorf("matka leg has no locations")
	}
	first, last := l.Locs[0], l.Locs[len(l.Locs)-1]

	from, err := matkaPoint(first)
	if err != nil {
		return trip.Leg{}, err
	}
	to, err := matkaPoint(last)
	if err != nil {
		return trip.Leg{}, err
	}

	leg := trip.Leg{
		Mode:     matkaMode(l.Type),
		Route:    l.Code,
		From:     from,
		To:       to,
		Distance: l.Length,
	}

	if first.DepTime != "" {
		start, err := utils.FinlandLocalToEpochMS(first.DepTime)
		if err != nil {
			return trip.Leg{}, err
		}
		leg.StartTime = start
	}
	if last.ArrTime != "" {
		end, err := utils.FinlandLocalToEpochMS(last.ArrTime)
		if err != nil {
			return trip.Leg{}, err
		}
		leg.EndTime = end
	} else if l.Duration > 0 {
		// Legs without a terminal arrival time only carry a duration.
		leg.EndTime = leg.StartTime + int64(l.Duration*1000)
	}
	return leg, nil
}

func matkaPoint(loc matkaLoc) (trip.Point, error) {
	lat, lon := geo.ProjectToWGS84(geo.KKJ, loc.Coord.X, loc.Coord.Y)
	pt := trip.Point{
		Name:     loc.Name,
		StopCode: loc.ShortCode,
		Lat:      lat,
		Lon:      lon,
	}
	if loc.ArrTime != "" {
		arr, err := utils.FinlandLocalToEpochMS(loc.ArrTime)
		if err != nil {
			return trip.Point{}, err
		}
		pt.Arrival = arr
	}
	if loc.DepTime != "" {
		dep, err := utils.FinlandLocalToEpochMS(loc.DepTime)
		if err != nil {
			return trip.Point{}, err
		}
		pt.Departure = dep
	}
	return pt, nil
}

func matkaMode(code string) string {
	if mode, ok := matkaModes[code]; ok {
		return mode
	}
	return trip.NormalizeMode(code)
}

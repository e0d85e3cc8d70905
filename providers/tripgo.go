package providers

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/urbanreach/routing-gateway/trip"
)

// tripgoResponse mirrors the TripGo routing payload: ranked trip groups
// whose segments reference shared segment templates by hash code. Times are
// epoch seconds.
type tripgoResponse struct {
	Error            string           `json:"error"`
	UserError        bool             `json:"usererror"`
	Groups           []tripgoGroup    `json:"groups"`
	SegmentTemplates []tripgoTemplate `json:"segmentTemplates"`
}

type tripgoGroup struct {
	Trips []tripgoTrip `json:"trips"`
}

type tripgoTrip struct {
	Depart   int64           `json:"depart"`
	Arrive   int64           `json:"arrive"`
	Segments []tripgoSegment `json:"segments"`
}

type tripgoSegment struct {
	TemplateHashCode int64  `json:"segmentTemplateHashCode"`
	StartTime        int64  `json:"startTime"`
	EndTime          int64  `json:"endTime"`
	ServiceNumber    string `json:"serviceNumber"`
	ServiceName      string `json:"serviceName"`
	ServiceOperator  string `json:"serviceOperator"`
}

type tripgoTemplate struct {
	HashCode int64          `json:"hashCode"`
	From     tripgoLocation `json:"from"`
	To       tripgoLocation `json:"to"`
	ModeInfo tripgoModeInfo `json:"modeInfo"`
	Metres   float64        `json:"metres"`
	Streets  []tripgoStreet `json:"streets"`
}

type tripgoLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type tripgoModeInfo struct {
	LocalIcon string `json:"localIcon"`
	Alt       string `json:"alt"`
}

type tripgoStreet struct {
	EncodedWaypoints string `json:"encodedWaypoints"`
}

// tripgoModes maps TripGo mode icons onto the canonical vocabulary.
var tripgoModes = map[string]string{
	"walk":    trip.ModeWalk,
	"bus":     trip.ModeBus,
	"tram":    trip.ModeTram,
	"train":   trip.ModeRail,
	"subway":  trip.ModeSubway,
	"metro":   trip.ModeSubway,
	"ferry":   trip.ModeFerry,
	"car":     trip.ModeCar,
	"bicycle": trip.ModeBicycle,
}

// TripGoAdapter normalizes TripGo routing responses. Each ranked trip is
// resolved independently against the shared segment templates, so the trips
// are adapted concurrently and joined before returning; if any single trip
// fails to resolve, the whole adaptation fails.
type TripGoAdapter struct{}

func NewTripGoAdapter() *TripGoAdapter { return &TripGoAdapter{} }

func (a *TripGoAdapter) Provider() ID { return TripGo }

func (a *TripGoAdapter) Adapt(raw json.RawMessage) (*trip.PlanResponse, error) {
	var resp tripgoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding tripgo payload: %w", err)
	}
	if resp.Error != "" {
		return nil, &UpstreamPayloadError{Provider: TripGo, Message: resp.Error}
	}
	if resp.Groups == nil {
		return nil, fmt.Errorf("tripgo payload is missing the groups array")
	}

	templates := make(map[int64]tripgoTemplate, len(resp.SegmentTemplates))
	for _, tpl := range resp.SegmentTemplates {
		templates[tpl.HashCode] = tpl
	}

	// Flatten the groups, preserving the upstream ranking order.
	var trips []tripgoTrip
	for _, g := range resp.Groups {
		trips = append(trips, g.Trips...)
	}

	itineraries := make([]trip.Itinerary, len(trips))
	errs := make([]error, len(trips))
	var wg sync.WaitGroup
	for i := range trips {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			itineraries[i], errs[i] = a.adaptTrip(trips[i], templates)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &trip.PlanResponse{Plan: trip.Plan{Itineraries: itineraries}}, nil
}

func (a *TripGoAdapter) adaptTrip(t tripgoTrip, templates map[int64]tripgoTemplate) (trip.Itinerary, error) {
	legs := make([]trip.Leg, 0, len(t.Segments))
	for _, seg := range t.Segments {
		tpl, ok := templates[seg.TemplateHashCode]
		if !ok {
			return trip.Itinerary{}, fmt.Errorf("tripgo segment references unknown template %d", seg.TemplateHashCode)
		}
		legs = append(legs, tripgoLeg(seg, tpl))
	}
	return trip.Itinerary{
		StartTime: t.Depart * 1000,
		EndTime:   t.Arrive * 1000,
		Legs:      legs,
	}, nil
}

func tripgoLeg(seg tripgoSegment, tpl tripgoTemplate) trip.Leg {
	leg := trip.Leg{
		StartTime:      seg.StartTime * 1000,
		EndTime:        seg.EndTime * 1000,
		Mode:           tripgoMode(tpl.ModeInfo),
		From:           trip.Point{Name: tpl.From.Address, Lat: tpl.From.Lat, Lon: tpl.From.Lng},
		To:             trip.Point{Name: tpl.To.Address, Lat: tpl.To.Lat, Lon: tpl.To.Lng},
		RouteShortName: seg.ServiceNumber,
		RouteLongName:  seg.ServiceName,
		AgencyID:       seg.ServiceOperator,
		Distance:       tpl.Metres,
	}
	if len(tpl.Streets) > 0 {
		leg.LegGeometry = tpl.Streets[0].EncodedWaypoints
	}
	return leg
}

func tripgoMode(info tripgoModeInfo) string {
	if mode, ok := tripgoModes[info.LocalIcon]; ok {
		return mode
	}
	if info.Alt != "" {
		return trip.NormalizeMode(info.Alt)
	}
	return trip.NormalizeMode(info.LocalIcon)
}

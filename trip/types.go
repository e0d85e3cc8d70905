package trip

// Format selects the dispatcher output representation.
type Format string

const (
	// FormatNormalized returns the canonical plan schema.
	FormatNormalized Format = "normalized"
	// FormatOriginal returns the raw upstream payload verbatim.
	FormatOriginal Format = "original"
)

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Request is a validated trip-planning request. Immutable once built by the
// request package; LeaveAt and ArriveBy are mutually exclusive.
type Request struct {
	From     Coordinate
	To       Coordinate
	LeaveAt  *int64 // epoch ms
	ArriveBy *int64 // epoch ms
	Provider string // empty selects the configured default provider
	Modes    []string
	Format   Format
}

// Point is one end of a leg. Arrival and Departure are set only when the
// point is a transit stop and the provider reported stop-level times.
type Point struct {
	Name      string  `json:"name,omitempty"`
	StopID    string  `json:"stopId,omitempty"`
	StopCode  string  `json:"stopCode,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Arrival   int64   `json:"arrival,omitempty"`
	Departure int64   `json:"departure,omitempty"`
}

// Leg is one uninterrupted segment of an itinerary using a single mode.
type Leg struct {
	StartTime      int64   `json:"startTime"`
	EndTime        int64   `json:"endTime"`
	Mode           string  `json:"mode"`
	From           Point   `json:"from"`
	To             Point   `json:"to"`
	RouteShortName string  `json:"routeShortName,omitempty"`
	RouteLongName  string  `json:"routeLongName,omitempty"`
	Route          string  `json:"route,omitempty"`
	AgencyID       string  `json:"agencyId,omitempty"`
	LegGeometry    string  `json:"legGeometry,omitempty"` // encoded polyline
	Distance       float64 `json:"distance,omitempty"`    // meters
}

// Itinerary is one complete trip plan from origin to destination. Legs keep
// the order the upstream provider gave them; adapters never re-sort, and
// temporal contiguity between consecutive legs is not enforced.
type Itinerary struct {
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`
	Legs      []Leg `json:"legs"`
}

// Plan groups the itineraries of one response.
type Plan struct {
	From        *Point      `json:"from,omitempty"`
	To          *Point      `json:"to,omitempty"`
	Itineraries []Itinerary `json:"itineraries"`
}

// PlanResponse is the canonical wire shape: {"plan":{"itineraries":[...]}}.
type PlanResponse struct {
	Plan Plan `json:"plan"`
}

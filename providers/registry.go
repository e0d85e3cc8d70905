package providers

import (
	"encoding/json"
	"fmt"

	"github.com/urbanreach/routing-gateway/trip"
)

// ID identifies a supported upstream routing provider.
type ID string

const (
	Digitransit ID = "digitransit"
	HSL         ID = "hsl"
	Matka       ID = "matka"
	TripGo      ID = "tripgo"
	Here        ID = "here"
)

// Adapter maps one provider's raw payload into the canonical plan schema.
// Adapt must be free of hidden state: running it twice on the same payload
// yields identical output.
type Adapter interface {
	Provider() ID
	Adapt(raw json.RawMessage) (*trip.PlanResponse, error)
}

// UpstreamPayloadError marks a payload that was delivered successfully but
// carries the provider's own embedded error. The dispatcher reports it as an
// upstream failure rather than an adapter failure.
type UpstreamPayloadError struct {
	Provider ID
	Message  string
}

func (e *UpstreamPayloadError) Error() string {
	return fmt.Sprintf("%s reported an error: %s", e.Provider, e.Message)
}

// Registry is the immutable provider table.
type Registry struct {
	adapters map[ID]Adapter
}

// NewRegistry builds the registry with every supported adapter.
func NewRegistry() *Registry {
	r := &Registry{adapters: map[ID]Adapter{}}
	for _, a := range []Adapter{
		NewDigitransitAdapter(),
		NewHSLAdapter(),
		NewMatkaAdapter(),
		NewTripGoAdapter(),
		NewHereAdapter(),
	} {
		r.adapters[a.Provider()] = a
	}
	return r
}

// Lookup returns the adapter registered for the provider.
func (r *Registry) Lookup(id ID) (Adapter, bool) {
	a, ok := r.adapters[id]
	return a, ok
}

// Known reports whether the name identifies a supported provider.
func (r *Registry) Known(name string) bool {
	_, ok := r.adapters[ID(name)]
	return ok
}

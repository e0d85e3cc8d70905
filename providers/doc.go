// Package providers contains the response adapters for the supported
// upstream routing providers.
//
// Each adapter is a pure mapping from one provider's raw itinerary schema to
// the canonical plan schema in package trip. Adapters tolerate missing
// optional upstream fields, convert non-WGS84 coordinate systems, map the
// provider's mode taxonomy onto the canonical vocabulary, derive end times
// from durations where the provider reports none, and keep itineraries in
// upstream order.
//
// The Registry binds each provider identifier to its adapter and target-name
// builder; it is built once and never mutated.
package providers

// Package request validates and defaults the incoming trip-planning request.
//
// The transport layer may deliver every field as a string, so validation
// coerces coordinates and epoch timestamps before handing a typed
// trip.Request to the dispatcher. Failures enumerate every offending field
// in a single ValidationError.
package request

// Package trip defines the canonical trip-planning data model shared by the
// request validator, the dispatcher, and the provider response adapters.
//
// All positions are WGS84 and all timestamps are epoch milliseconds. Provider
// adapters are responsible for converting into this representation; nothing
// downstream of the adapters should ever see a provider-native coordinate
// system or wall-clock time.
package trip

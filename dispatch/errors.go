package dispatch

import "fmt"

// NoCoverageError means the input was valid but the origin lies outside
// every configured region of a partitioned provider. Terminal, not retried.
type NoCoverageError struct {
	Provider string
	Lat      float64
	Lon      float64
}

func (e *NoCoverageError) Error() string {
	return fmt.Sprintf("no %s coverage for origin %.5f,%.5f", e.Provider, e.Lat, e.Lon)
}

// UpstreamError means the transport invocation failed or the upstream
// payload carried an embedded error. Terminal per request; the upstream
// wording is passed through so callers and logs keep the detail.
type UpstreamError struct {
	Provider string
	Message  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream failure: %s", e.Provider, e.Message)
}

// AdapterError means the upstream returned a payload the adapter could not
// interpret. It indicates schema drift in the provider contract rather than
// a transient failure, which is why it is kept apart from UpstreamError.
type AdapterError struct {
	Provider string
	Err      error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s response could not be adapted: %v", e.Provider, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

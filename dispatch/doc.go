// Package dispatch is the entry point of the routing delegation layer.
//
// The Dispatcher takes a validated trip request, resolves the upstream
// provider and its geographic region, invokes the upstream transport exactly
// once, and runs the matching response adapter (or returns the raw payload
// in original-format mode). Every failure is recovered at this boundary and
// surfaced as one of the typed errors in this package; nothing crashes the
// process and nothing is retried.
package dispatch

// Package server exposes the routing gateway over HTTP: the plan endpoint,
// health, and Prometheus metrics. Normalized plans are cached briefly so
// identical requests do not re-invoke the upstream provider.
package server

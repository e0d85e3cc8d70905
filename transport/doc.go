// Package transport is the upstream invocation capability injected into the
// dispatcher. The dispatcher only depends on the Invoke signature, so tests
// substitute a double and deployments can swap HTTP for an inter-service
// invoker.
package transport

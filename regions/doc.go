// Package regions decides which geographically scoped sub-instance of a
// partitioned upstream provider should serve a request, based on the trip
// origin.
package regions

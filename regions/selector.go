package regions

// Region is one geographically scoped variant of a partitioned provider,
// bound to a bounding box and the suffix appended to the provider's base
// target name.
type Region struct {
	Name   string
	Suffix string
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Contains reports whether the point lies inside the bounding box,
// boundaries included.
func (r Region) Contains(lat, lon float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lon >= r.MinLon && lon <= r.MaxLon
}

// Selector holds the ordered region lists of the partitioned providers.
// Providers without an entry are unpartitioned and always select the zero
// Region. The lists are copied at construction and never mutated.
type Selector struct {
	byProvider map[string][]Region
}

// NewSelector builds a Selector from per-provider region lists. Order is
// significant: Select returns the first matching box.
func NewSelector(byProvider map[string][]Region) *Selector {
	copied := make(map[string][]Region, len(byProvider))
	for name, list := range byProvider {
		if len(list) == 0 {
			continue
		}
		copied[name] = append([]Region(nil), list...)
	}
	return &Selector{byProvider: copied}
}

// Select returns the region serving the given origin. For unpartitioned
// providers it returns the zero Region (empty suffix) and true. For
// partitioned providers it tests the origin against each box in declaration
// order and returns the first match; boxes may overlap, first match wins.
// When no box contains the origin, ok is false and the caller must treat
// the request as out of coverage.
func (s *Selector) Select(provider string, lat, lon float64) (Region, bool) {
	list, partitioned := s.byProvider[provider]
	if !partitioned {
		return Region{}, true
	}
	for _, r := range list {
		if r.Contains(lat, lon) {
			return r, true
		}
	}
	return Region{}, false
}

// Partitioned reports whether the provider has a region table.
func (s *Selector) Partitioned(provider string) bool {
	_, ok := s.byProvider[provider]
	return ok
}

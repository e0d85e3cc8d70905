package trip

import "strings"

// Canonical travel mode vocabulary.
const (
	ModeWalk    = "WALK"
	ModeBus     = "BUS"
	ModeTram    = "TRAM"
	ModeRail    = "RAIL"
	ModeSubway  = "SUBWAY"
	ModeFerry   = "FERRY"
	ModeCar     = "CAR"
	ModeBicycle = "BICYCLE"
)

// synonyms folds common provider spellings onto the canonical vocabulary.
var synonyms = map[string]string{
	"TRAIN":       ModeRail,
	"METRO":       ModeSubway,
	"UNDERGROUND": ModeSubway,
	"LIGHT_RAIL":  ModeTram,
	"LIGHTRAIL":   ModeTram,
	"BOAT":        ModeFerry,
	"CYCLE":       ModeBicycle,
	"BIKE":        ModeBicycle,
	"FOOT":        ModeWalk,
}

// NormalizeMode maps a provider-native mode string onto the canonical
// vocabulary. Unknown modes pass through uppercased rather than being
// dropped, so provider-specific modes survive normalization.
func NormalizeMode(raw string) string {
	m := strings.ToUpper(strings.TrimSpace(raw))
	if canonical, ok := synonyms[m]; ok {
		return canonical
	}
	return m
}

// DefaultModes is the mode filter applied when a request does not name one:
// all public transit modes plus walking.
func DefaultModes() []string {
	return []string{ModeWalk, ModeBus, ModeTram, ModeRail, ModeSubway, ModeFerry}
}

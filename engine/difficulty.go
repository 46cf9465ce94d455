package engine

import (
	"sort"
	"strings"
	"time"
)

// Profile bundles the per-difficulty search parameters.
type Profile struct {
	Name          string
	MaxDepth      int
	Radius        int // Chebyshev candidate-generation radius
	MaxCandidates int
	Noise         int // score perturbation half-width, 0 disables
	TimeBudget    time.Duration
}

const DefaultDifficulty = "standard"

var profiles = map[string]Profile{
	"easy": {
		Name:          "easy",
		MaxDepth:      2,
		Radius:        2,
		MaxCandidates: 15,
		Noise:         40,
		TimeBudget:    750 * time.Millisecond,
	},
	"standard": {
		Name:          "standard",
		MaxDepth:      4,
		Radius:        2,
		MaxCandidates: 25,
		Noise:         0,
		TimeBudget:    1500 * time.Millisecond,
	},
	"challenge": {
		Name:          "challenge",
		MaxDepth:      6,
		Radius:        1,
		MaxCandidates: 30,
		Noise:         0,
		TimeBudget:    3 * time.Second,
	},
}

// ProfileFor resolves a difficulty name; unknown or empty names fall back
// to the standard profile.
func ProfileFor(name string) Profile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return profiles[DefaultDifficulty]
}

// ProfileNames lists the known difficulties in stable order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

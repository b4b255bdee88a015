package score

import "strings"

// Ladder order as published by the provider. Apex tiers carry no division
// and compare by tier alone.
var tierOrder = map[string]int{
	"IRON":        0,
	"BRONZE":      1,
	"SILVER":      2,
	"GOLD":        3,
	"PLATINUM":    4,
	"EMERALD":     5,
	"DIAMOND":     6,
	"MASTER":      7,
	"GRANDMASTER": 8,
	"CHALLENGER":  9,
}

var divisionOrder = map[string]int{
	"IV":  0,
	"III": 1,
	"II":  2,
	"I":   3,
}

// Rank is one observed (tier, division) pair.
type Rank struct {
	Tier     string
	Division string
}

func (r Rank) tierIndex() (int, bool) {
	idx, ok := tierOrder[strings.ToUpper(strings.TrimSpace(r.Tier))]
	return idx, ok
}

func (r Rank) divisionIndex() int {
	idx, ok := divisionOrder[strings.ToUpper(strings.TrimSpace(r.Division))]
	if !ok {
		return 0
	}
	return idx
}

// IsHigher reports whether next is strictly above current under the ladder
// order. An unset or unknown current always loses; an unknown next never
// wins. This is the only gate for peak-rank updates.
func IsHigher(next, current Rank) bool {
	nextTier, ok := next.tierIndex()
	if !ok {
		return false
	}
	currentTier, ok := current.tierIndex()
	if !ok {
		return true
	}
	if nextTier != currentTier {
		return nextTier > currentTier
	}
	return next.divisionIndex() > current.divisionIndex()
}

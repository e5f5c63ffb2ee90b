package regrid

import (
	"maps"
	"slices"

	"github.com/agnivade/levenshtein"
)

// closestName returns the name of names with the smallest
// edit distance to name, or "" if no name is close enough.
// Ties are broken by sort order.
func closestName[V any](name string, names map[string]V) string {
	var (
		best     string
		bestDist = max(1, len(name)/3) + 1
	)
	for _, candidate := range slices.Sorted(maps.Keys(names)) {
		if candidate == name {
			continue
		}
		if dist := levenshtein.ComputeDistance(name, candidate); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

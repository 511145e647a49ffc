// Package suggest ranks known names by edit distance for "did you mean"
// hints in error messages.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Limit is the maximum number of suggestions returned by Closest.
const Limit = 3

// Closest returns up to Limit candidates close to name, nearest first. Case
// is ignored when measuring distance. A candidate qualifies when it is within
// a third of the longer name's length, but never less than two edits.
func Closest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	needle := strings.ToLower(name)
	var hits []scored
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if d <= threshold(needle, c) {
			hits = append(hits, scored{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})
	if len(hits) > Limit {
		hits = hits[:Limit]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func threshold(a, b string) int {
	return max(2, max(len(a), len(b))/3)
}

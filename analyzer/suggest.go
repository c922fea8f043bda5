package analyzer

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// nearestThreshold is the maximum edit distance §4.4 allows before a
// candidate is no longer considered a typo of the requested name.
const nearestThreshold = 3

// Suggest returns the best near-match for name among candidates, or ""
// if none is close enough — exported so the late verifier (C7) can reuse
// the same near-match search for its own "did you mean" diagnostics
// (§4.7: "using the same near-match search as the analyzer").
func Suggest(name string, candidates []string) string {
	return nearest(name, candidates)
}

// nearest returns the best near-match for name among candidates within
// nearestThreshold edit distance, breaking ties on the lexicographically
// smallest candidate so diagnostics stay deterministic (§4.4).
func nearest(name string, candidates []string) string {
	best := ""
	bestDist := nearestThreshold + 1
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	for _, c := range sorted {
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist > nearestThreshold {
		return ""
	}
	return best
}

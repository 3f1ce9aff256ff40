package match

import "github.com/agnivade/levenshtein"

// Similarity returns a normalized edit-distance ratio in [0,1]:
// 1 - distance/maxLen. Identical strings are 1; two empty strings are
// also 1, and a single empty string is 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

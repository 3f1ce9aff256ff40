package match

import (
	"fmt"

	"github.com/phyllis-tools/cardmerge/internal/names"
)

// NamesMatch is the standalone name-identity diagnostic: it reports
// whether two free-text names plausibly belong to the same person,
// with its own 0-100 confidence and reasons. Both the last-name check
// (exact, phonetic, or >0.85 similarity) and the first-name check
// (exact, nickname, phonetic with >0.5 similarity, or single-letter
// initial) must succeed; canonical equality short-circuits to 100.
// Used for diagnostics and previews, not by the pairwise scorer.
func NamesMatch(name1, name2 string) (bool, int, []string) {
	if name1 == "" || name2 == "" {
		return false, 0, nil
	}

	p1 := names.Parse(name1)
	p2 := names.Parse(name2)

	if p1.Canonical != "" && p1.Canonical == p2.Canonical {
		return true, 100, []string{"Exact name match (canonical form)"}
	}

	var reasons []string
	confidence := 0

	lastMatch := false
	if p1.Last != "" && p2.Last != "" {
		switch {
		case p1.Last == p2.Last:
			lastMatch = true
			confidence += 40
			reasons = append(reasons, "Last name exact match")
		case names.Soundex(p1.Last) == names.Soundex(p2.Last):
			lastMatch = true
			confidence += 30
			reasons = append(reasons, fmt.Sprintf("Last name phonetic match (%s ~ %s)", p1.Last, p2.Last))
		case Similarity(p1.Last, p2.Last) > 0.85:
			lastMatch = true
			confidence += 25
			reasons = append(reasons, fmt.Sprintf("Last name similar (%s ~ %s)", p1.Last, p2.Last))
		}
	}

	firstMatch := false
	if p1.First != "" && p2.First != "" {
		switch {
		case p1.First == p2.First:
			firstMatch = true
			confidence += 40
			reasons = append(reasons, "First name exact match")
		case names.CanonicalFirst(p1.First) == names.CanonicalFirst(p2.First):
			firstMatch = true
			confidence += 35
			reasons = append(reasons, fmt.Sprintf("Nickname match (%s = %s)", p1.First, p2.First))
		case names.Soundex(p1.First) == names.Soundex(p2.First) && Similarity(p1.First, p2.First) > 0.5:
			firstMatch = true
			confidence += 25
			reasons = append(reasons, fmt.Sprintf("First name phonetic match (%s ~ %s)", p1.First, p2.First))
		case len(p1.First) == 1 && p2.First[0] == p1.First[0]:
			firstMatch = true
			confidence += 20
			reasons = append(reasons, fmt.Sprintf("Initial match (%s. = %s)", p1.First, p2.First))
		case len(p2.First) == 1 && p1.First[0] == p2.First[0]:
			firstMatch = true
			confidence += 20
			reasons = append(reasons, fmt.Sprintf("Initial match (%s. = %s)", p2.First, p1.First))
		}
	}

	// High whole-string similarity adds a small bonus.
	if sim := Similarity(p1.Canonical, p2.Canonical); sim > 0.9 {
		confidence += 10
		reasons = append(reasons, fmt.Sprintf("High overall similarity (%d%%)", int(sim*100)))
	}

	if confidence > 100 {
		confidence = 100
	}
	return firstMatch && lastMatch, confidence, reasons
}

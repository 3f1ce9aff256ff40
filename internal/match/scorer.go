// Package match scores how likely two contact records refer to the
// same person. Scores are integers in [0,100] with human-readable
// reasons: evidence accumulates from email, phone, name, and
// organization rules, strongest rule per category only.
package match

import (
	"fmt"
	"strings"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/names"
	"github.com/phyllis-tools/cardmerge/internal/normalize"
)

// ConfidenceFloor is the minimum score for a pair to qualify as a
// match candidate inside clustering.
const ConfidenceFloor = 50

// Score computes the confidence that a and b are the same person,
// along with the contributing factors in evaluation order. Incomparable
// or empty records score 0 with no reasons; the result is capped at
// 100.
func Score(a, b *contact.Contact) (int, []string) {
	if a == nil || b == nil {
		return 0, nil
	}

	score := 0
	var factors []string

	// Email: any normalized overlap is the strongest single signal.
	if shared := sharedEmail(a, b); shared != "" {
		score += 50
		factors = append(factors, "Email match: "+shared)
	}

	// Phone: first qualifying pair wins; exact-10 and trailing-7 carry
	// the same weight here, distinguished only by the reason text.
	if reason := firstPhoneMatch(a, b); reason != "" {
		score += 40
		factors = append(factors, reason)
	}

	// Name.
	pa, pb := a.ParsedName(), b.ParsedName()
	cfa := names.CanonicalFirst(pa.First)
	cfb := names.CanonicalFirst(pb.First)

	switch {
	case pa.Canonical != "" && pa.Canonical == pb.Canonical:
		score += 50
		factors = append(factors, "Exact name match")
	case pa.Last == pb.Last && cfa != "" && cfa == cfb:
		score += 45
		factors = append(factors, fmt.Sprintf("Nickname match (%s/%s -> %s)", pa.First, pb.First, cfa))
	case pa.Last != "" && pb.Last != "" && names.Soundex(pa.Last) == names.Soundex(pb.Last) &&
		(pa.First == pb.First || (cfa != "" && cfa == cfb)):
		score += 35
		factors = append(factors, fmt.Sprintf("Phonetic last name match (%s ~ %s)", pa.Last, pb.Last))
	case pa.Canonical != "" && pb.Canonical != "":
		if sim := Similarity(pa.Canonical, pb.Canonical); sim > 0.8 {
			score += int(sim * 30)
			factors = append(factors, fmt.Sprintf("Name %d%% similar", int(sim*100)))
		}
	}

	// Organization bonus.
	if a.Org != "" && b.Org != "" {
		org1 := normalizeOrg(a.Org)
		org2 := normalizeOrg(b.Org)
		if org1 == org2 {
			score += 10
			factors = append(factors, "Same organization: "+a.Org)
		} else if Similarity(org1, org2) > 0.8 {
			score += 5
			factors = append(factors, "Similar organization")
		}
	}

	if score > 100 {
		score = 100
	}
	return score, factors
}

func sharedEmail(a, b *contact.Contact) string {
	bEmails := b.NormalizedEmails()
	for _, ea := range a.NormalizedEmails() {
		if ea == "" {
			continue
		}
		for _, eb := range bEmails {
			if ea == eb {
				return ea
			}
		}
	}
	return ""
}

func firstPhoneMatch(a, b *contact.Contact) string {
	for _, pa := range a.NormalizedPhones() {
		for _, pb := range b.NormalizedPhones() {
			if ok, _, reason := normalize.PhonesMatch(pa, pb); ok {
				return reason
			}
		}
	}
	return ""
}

func normalizeOrg(org string) string {
	return strings.ToLower(strings.TrimSpace(org))
}

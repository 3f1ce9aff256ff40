package merge

import (
	"fmt"
	"strings"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/match"
	"github.com/phyllis-tools/cardmerge/internal/names"
	"github.com/phyllis-tools/cardmerge/internal/normalize"
)

// DetectWarnings checks a duplicate group for signs the members may be
// different people. Diagnostic only; a warned group can still be
// merged. Returns (hasWarnings, messages), one message per triggered
// condition. Groups of fewer than two records never warn.
func DetectWarnings(records []*contact.Contact) (bool, []string) {
	if len(records) < 2 {
		return false, nil
	}

	var warnings []string

	if msg := conflictingOrgs(records); msg != "" {
		warnings = append(warnings, msg)
	}
	if msg := conflictingWorkDomains(records); msg != "" {
		warnings = append(warnings, msg)
	}
	if msg := scatteredAreaCodes(records); msg != "" {
		warnings = append(warnings, msg)
	}
	if !anyEmailOverlap(records) && !anyPhoneOverlap(records) {
		warnings = append(warnings, "Name-only match: No email or phone number overlap")
	}
	if msg := dissimilarNames(records); msg != "" {
		warnings = append(warnings, msg)
	}

	return len(warnings) > 0, warnings
}

// conflictingOrgs clusters the distinct organization strings into
// similarity groups (>0.8 ratio joins a group); more than one group
// means the records disagree about where this person works.
func conflictingOrgs(records []*contact.Contact) string {
	seen := make(map[string]bool)
	var groups [][]string

	for _, rec := range records {
		if rec.Org == "" {
			continue
		}
		org := strings.ToLower(strings.TrimSpace(rec.Org))
		if seen[org] {
			continue
		}
		seen[org] = true

		matched := false
		for i, group := range groups {
			if match.Similarity(org, group[0]) > 0.8 {
				groups[i] = append(group, org)
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, []string{org})
		}
	}

	if len(groups) <= 1 {
		return ""
	}
	heads := make([]string, 0, 3)
	for _, g := range groups {
		heads = append(heads, g[0])
		if len(heads) == 3 {
			break
		}
	}
	return "Different organizations: " + strings.Join(heads, ", ")
}

// conflictingWorkDomains flags more than one distinct non-generic
// email domain: free-mail providers vary harmlessly, work domains
// should not.
func conflictingWorkDomains(records []*contact.Contact) string {
	domains := make(map[string]bool)
	total := 0
	for _, rec := range records {
		for _, email := range rec.Emails {
			total++
			d := normalize.EmailDomain(email)
			if d != "" && !normalize.IsGenericDomain(d) {
				domains[d] = true
			}
		}
	}
	if total <= 1 || len(domains) <= 1 {
		return ""
	}
	list := make([]string, 0, 3)
	for d := range domains {
		list = append(list, d)
		if len(list) == 3 {
			break
		}
	}
	return "Different work email domains: " + strings.Join(list, ", ")
}

// scatteredAreaCodes flags more than two distinct phone area codes.
func scatteredAreaCodes(records []*contact.Contact) string {
	codes := make(map[string]bool)
	total := 0
	for _, rec := range records {
		for _, norm := range rec.NormalizedPhones() {
			total++
			if ac := normalize.AreaCode(norm); ac != "" {
				codes[ac] = true
			}
		}
	}
	if total <= 1 || len(codes) <= 2 {
		return ""
	}
	return fmt.Sprintf("Multiple area codes: %d different locations", len(codes))
}

func anyEmailOverlap(records []*contact.Contact) bool {
	for i := range records {
		for j := i + 1; j < len(records); j++ {
			ej := records[j].NormalizedEmails()
			for _, e := range records[i].NormalizedEmails() {
				if e == "" {
					continue
				}
				for _, f := range ej {
					if e == f {
						return true
					}
				}
			}
		}
	}
	return false
}

func anyPhoneOverlap(records []*contact.Contact) bool {
	for i := range records {
		for j := i + 1; j < len(records); j++ {
			pj := records[j].NormalizedPhones()
			for _, p := range records[i].NormalizedPhones() {
				for _, q := range pj {
					if ok, _, _ := normalize.PhonesMatch(p, q); ok {
						return true
					}
				}
			}
		}
	}
	return false
}

// dissimilarNames flags any member pair whose canonical names diverge
// below 0.6 similarity.
func dissimilarNames(records []*contact.Contact) string {
	for i := range records {
		if records[i].DisplayName == "" {
			continue
		}
		ci := names.Parse(records[i].DisplayName).Canonical
		for j := i + 1; j < len(records); j++ {
			if records[j].DisplayName == "" {
				continue
			}
			cj := names.Parse(records[j].DisplayName).Canonical
			if match.Similarity(ci, cj) < 0.6 {
				return fmt.Sprintf("Names quite different: '%s' vs '%s'",
					records[i].DisplayName, records[j].DisplayName)
			}
		}
	}
	return ""
}

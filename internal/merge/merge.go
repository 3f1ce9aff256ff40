// Package merge consolidates a group of duplicate records into one and
// flags groups whose membership looks risky before a human approves
// them.
package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/names"
	"github.com/phyllis-tools/cardmerge/internal/normalize"
)

// Merge combines records into a single consolidated contact.
// Multi-valued fields are unioned (case-insensitive dedup for emails,
// normalized-form dedup for phones, exact dedup otherwise) preserving
// first-seen original formatting. Single-valued fields take the first
// non-empty value in iteration order. The display name is the one with
// the most words, ties broken by raw length, run through the
// duplicate-word cleanup. Provenance is the sorted comma-joined set of
// distinct sources. Merging zero records is an error.
func Merge(records []*contact.Contact) (*contact.Contact, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("cannot merge zero records")
	}

	merged := &contact.Contact{}

	// Most complete display name wins.
	bestName := ""
	for _, rec := range records {
		if rec.DisplayName == "" {
			continue
		}
		cur := len(strings.Fields(rec.DisplayName))
		best := len(strings.Fields(bestName))
		if cur > best || (cur == best && len(rec.DisplayName) > len(bestName)) {
			bestName = rec.DisplayName
		}
	}
	if bestName == "" {
		bestName = records[0].DisplayName
	}
	merged.SetDisplayName(names.FormatDisplay(bestName))
	merged.NameParts = append([]string(nil), records[0].NameParts...)

	sources := make(map[string]bool)
	seenPhones := make(map[string]bool)

	for _, rec := range records {
		if rec.Source != "" {
			sources[rec.Source] = true
		}

		if merged.Org == "" {
			merged.Org = rec.Org
		}
		if merged.Title == "" {
			merged.Title = rec.Title
		}
		if merged.Birthday == "" {
			merged.Birthday = rec.Birthday
		}
		if merged.URL == "" {
			merged.URL = rec.URL
		}

		for _, email := range rec.Emails {
			merged.AddEmail(email)
		}
		// Phones dedup on normalized form but keep the original
		// formatted string.
		for _, phone := range rec.Phones {
			norm := normalize.Phone(phone)
			if norm == "" || seenPhones[norm] {
				continue
			}
			seenPhones[norm] = true
			merged.AddPhone(phone)
		}
		for _, addr := range rec.Addresses {
			merged.AddAddress(addr)
		}
		for _, note := range rec.Notes {
			merged.AddNote(note)
		}
	}

	if len(sources) > 0 {
		sorted := make([]string, 0, len(sources))
		for s := range sources {
			sorted = append(sorted, s)
		}
		sort.Strings(sorted)
		merged.Source = strings.Join(sorted, ", ")
	}

	return merged, nil
}

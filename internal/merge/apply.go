package merge

import (
	"fmt"
	"sort"

	"github.com/phyllis-tools/cardmerge/internal/contact"
)

// Apply consolidates the approved groups within the full record pool:
// each group of indices collapses to its merged record (placed at the
// position of its first member) and all other records pass through
// untouched. Groups must be disjoint and indices in range.
func Apply(records []*contact.Contact, groups [][]int) ([]*contact.Contact, error) {
	replaced := make(map[int]*contact.Contact)
	consumed := make(map[int]bool)

	for _, indices := range groups {
		if len(indices) < 2 {
			return nil, fmt.Errorf("cannot apply a group with %d members", len(indices))
		}
		members := make([]*contact.Contact, 0, len(indices))
		ordered := append([]int(nil), indices...)
		sort.Ints(ordered)
		for _, idx := range ordered {
			if idx < 0 || idx >= len(records) {
				return nil, fmt.Errorf("group index %d out of range (pool size %d)", idx, len(records))
			}
			if consumed[idx] {
				return nil, fmt.Errorf("record %d appears in more than one approved group", idx)
			}
			consumed[idx] = true
			members = append(members, records[idx])
		}

		merged, err := Merge(members)
		if err != nil {
			return nil, err
		}
		replaced[ordered[0]] = merged
	}

	out := make([]*contact.Contact, 0, len(records))
	for i, rec := range records {
		if merged, ok := replaced[i]; ok {
			out = append(out, merged)
			continue
		}
		if consumed[i] {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

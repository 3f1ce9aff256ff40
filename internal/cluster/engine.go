// Package cluster finds groups of likely-duplicate contacts without
// evaluating the full O(n²) pair space. Records are indexed into
// inverted "buckets" keyed on normalized fields; only pairs co-located
// in at least one bucket are scored; pairs at or above the confidence
// floor become edges of an undirected match graph whose connected
// components are the duplicate groups.
package cluster

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/phyllis-tools/cardmerge/internal/contact"
	"github.com/phyllis-tools/cardmerge/internal/match"
	"github.com/phyllis-tools/cardmerge/internal/names"
)

// Config controls clustering behavior.
type Config struct {
	// ConfidenceFloor is the minimum pairwise score for a candidate
	// pair to become a graph edge. Default: 50. Range: 1-100.
	ConfidenceFloor int

	// NameBucketCap is the maximum bucket size for name-text buckets
	// (last name, canonical name, nickname-resolved name). Buckets
	// larger than this are skipped during candidate generation to
	// bound fan-out on extremely common names, at the cost of possibly
	// missing matches there. Default: 100.
	NameBucketCap int

	// PhoneticBucketCap is the same cap for Soundex buckets, which fan
	// out faster than text buckets. Default: 50.
	PhoneticBucketCap int

	// Progress, when set, receives coarse checkpoints as
	// (percentComplete 0-100, phase message). Called at phase
	// boundaries and every progressEvery scored pairs; never called
	// concurrently.
	Progress func(pct int, msg string)
}

// DefaultConfig returns the clustering defaults. Email and phone
// buckets are never capped: exact identity evidence is reliable no
// matter how many records share it.
func DefaultConfig() Config {
	return Config{
		ConfidenceFloor:   match.ConfidenceFloor,
		NameBucketCap:     100,
		PhoneticBucketCap: 50,
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.ConfidenceFloor < 1 || c.ConfidenceFloor > 100 {
		return fmt.Errorf("confidence_floor must be between 1 and 100 (got %d)", c.ConfidenceFloor)
	}
	if c.NameBucketCap < 2 {
		return fmt.Errorf("name_bucket_cap must be at least 2 (got %d)", c.NameBucketCap)
	}
	if c.PhoneticBucketCap < 2 {
		return fmt.Errorf("phonetic_bucket_cap must be at least 2 (got %d)", c.PhoneticBucketCap)
	}
	return nil
}

// Group is one connected component of the match graph: the indices of
// its member records (into the input slice), the mean of the edge
// confidences discovered while traversing it, and the deduplicated
// match factors from all contributing edges.
type Group struct {
	Indices      []int
	Confidence   int
	MatchFactors []string
}

// progressEvery is how many scored pairs elapse between progress
// checkpoints, which also bounds cancellation latency.
const progressEvery = 1000

// pair is an unordered candidate, stored with lo < hi.
type pair struct{ lo, hi int }

// edge records one scored adjacency.
type edge struct {
	to         int
	confidence int
	factors    []string
}

// Cluster runs the full pipeline over records and returns duplicate
// groups sorted by confidence descending (stable, so ties keep
// discovery order). The record pool must not be mutated while
// clustering runs. An empty pool is an error; a pool with no
// duplicates returns an empty slice.
//
// Cancellation is cooperative: ctx is checked between phases and every
// progressEvery scored pairs.
func Cluster(ctx context.Context, records []*contact.Contact, cfg Config) ([]Group, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("cannot cluster an empty record pool")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cluster config: %w", err)
	}

	cfg.report(0, "Building search indices...")
	idx := buildIndex(records)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg.report(20, "Finding candidate pairs...")
	candidates := idx.candidatePairs(cfg)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg.report(40, fmt.Sprintf("Evaluating %d candidate pairs...", len(candidates)))
	graph, err := scorePairs(ctx, records, candidates, cfg)
	if err != nil {
		return nil, err
	}

	cfg.report(80, "Building duplicate groups...")
	groups := connectedComponents(len(records), graph)

	// Stable sort keeps discovery order among equal confidences.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Confidence > groups[j].Confidence
	})

	cfg.report(100, fmt.Sprintf("Found %d duplicate groups", len(groups)))
	return groups, nil
}

func (c Config) report(pct int, msg string) {
	if c.Progress != nil {
		c.Progress(pct, msg)
	}
}

// index holds the inverted buckets over normalized fields.
type index struct {
	email     map[string][]int // normalized email
	phone     map[string][]int // last-7 and last-10 digit keys
	lastName  map[string][]int // lowercase last name
	phonetic  map[string][]int // soundex(last) and soundex pair "first_last"
	canonical map[string][]int // "first_last"
	nickname  map[string][]int // "canonicalFirst_last"
}

func buildIndex(records []*contact.Contact) *index {
	idx := &index{
		email:     make(map[string][]int),
		phone:     make(map[string][]int),
		lastName:  make(map[string][]int),
		phonetic:  make(map[string][]int),
		canonical: make(map[string][]int),
		nickname:  make(map[string][]int),
	}

	for i, rec := range records {
		for _, email := range rec.NormalizedEmails() {
			if email != "" {
				idx.email[email] = append(idx.email[email], i)
			}
		}

		for _, phone := range rec.NormalizedPhones() {
			if len(phone) >= 7 {
				key := phone[len(phone)-7:]
				idx.phone[key] = append(idx.phone[key], i)
			}
			if len(phone) >= 10 {
				key := phone[len(phone)-10:]
				idx.phone[key] = append(idx.phone[key], i)
			}
		}

		parsed := rec.ParsedName()
		if parsed.Last != "" {
			idx.lastName[parsed.Last] = append(idx.lastName[parsed.Last], i)
			if sx := names.Soundex(parsed.Last); sx != "" {
				idx.phonetic[sx] = append(idx.phonetic[sx], i)
			}
		}
		if parsed.First != "" && parsed.Last != "" {
			key := parsed.First + "_" + parsed.Last
			idx.canonical[key] = append(idx.canonical[key], i)

			nickKey := names.CanonicalFirst(parsed.First) + "_" + parsed.Last
			idx.nickname[nickKey] = append(idx.nickname[nickKey], i)

			firstSx := names.Soundex(parsed.First)
			lastSx := names.Soundex(parsed.Last)
			if firstSx != "" && lastSx != "" {
				pairKey := firstSx + "_" + lastSx
				idx.phonetic[pairKey] = append(idx.phonetic[pairKey], i)
			}
		}
	}
	return idx
}

// candidatePairs emits every unordered pair co-located in a qualifying
// bucket, deduplicated across buckets. Email and phone buckets are
// uncapped; name-text and phonetic buckets are capped per Config.
// candidatePairs returns the deduplicated candidate set ordered by
// (lo, hi). Scoring and traversal follow this order, so results are
// identical across runs on the same pool.
func (idx *index) candidatePairs(cfg Config) []pair {
	candidates := make(map[pair]struct{})

	collect := func(buckets map[string][]int, maxSize int) {
		for _, members := range buckets {
			if len(members) < 2 || len(members) > maxSize {
				continue
			}
			for i := 0; i < len(members); i++ {
				for j := i + 1; j < len(members); j++ {
					lo, hi := members[i], members[j]
					if lo > hi {
						lo, hi = hi, lo
					}
					if lo != hi {
						candidates[pair{lo, hi}] = struct{}{}
					}
				}
			}
		}
	}

	collect(idx.email, math.MaxInt)
	collect(idx.phone, math.MaxInt)
	collect(idx.canonical, cfg.NameBucketCap)
	collect(idx.nickname, cfg.NameBucketCap)
	collect(idx.phonetic, cfg.PhoneticBucketCap)
	collect(idx.lastName, cfg.NameBucketCap)

	ordered := make([]pair, 0, len(candidates))
	for p := range candidates {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].lo != ordered[j].lo {
			return ordered[i].lo < ordered[j].lo
		}
		return ordered[i].hi < ordered[j].hi
	})
	return ordered
}

// scorePairs evaluates every candidate and keeps qualifying edges on
// both endpoints.
func scorePairs(ctx context.Context, records []*contact.Contact, candidates []pair, cfg Config) (map[int][]edge, error) {
	graph := make(map[int][]edge)
	total := len(candidates)
	done := 0

	for _, p := range candidates {
		confidence, factors := match.Score(records[p.lo], records[p.hi])
		if confidence >= cfg.ConfidenceFloor {
			graph[p.lo] = append(graph[p.lo], edge{to: p.hi, confidence: confidence, factors: factors})
			graph[p.hi] = append(graph[p.hi], edge{to: p.lo, confidence: confidence, factors: factors})
		}

		done++
		if done%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cfg.report(40+40*done/total, fmt.Sprintf("Evaluated %d of %d pairs...", done, total))
		}
	}
	return graph, nil
}

// connectedComponents extracts duplicate groups by breadth-first
// traversal over the edge graph. A group's confidence is the mean of
// edge confidences seen while traversing it (defensively 50 if none
// were recorded); its factors are the deduplicated union across edges.
func connectedComponents(n int, graph map[int][]edge) []Group {
	var groups []Group
	visited := make(map[int]bool, len(graph))

	for start := 0; start < n; start++ {
		if visited[start] || len(graph[start]) == 0 {
			continue
		}

		var members []int
		var confidences []int
		factorSet := make(map[string]bool)
		var factors []string

		queue := []int{start}
		visited[start] = true

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			members = append(members, current)

			for _, e := range graph[current] {
				if visited[e.to] {
					continue
				}
				visited[e.to] = true
				queue = append(queue, e.to)
				confidences = append(confidences, e.confidence)
				for _, f := range e.factors {
					if !factorSet[f] {
						factorSet[f] = true
						factors = append(factors, f)
					}
				}
			}
		}

		if len(members) < 2 {
			continue
		}

		confidence := 50
		if len(confidences) > 0 {
			sum := 0
			for _, c := range confidences {
				sum += c
			}
			confidence = sum / len(confidences)
		}

		groups = append(groups, Group{
			Indices:      members,
			Confidence:   confidence,
			MatchFactors: factors,
		})
	}
	return groups
}

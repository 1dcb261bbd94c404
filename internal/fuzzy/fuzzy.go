// Package fuzzy wraps approximate string matching for reconciling
// study designations with archive collection names.
package fuzzy

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match ranks candidates by edit-distance similarity to query and
// returns the matching candidate strings best-first. Candidates that
// do not clear the library's match threshold are omitted; ordering
// and tie-breaking follow the library's rank sort. Pure, no I/O.
func Match(query string, candidates []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(query, candidates)
	sort.Sort(ranks)

	matches := make([]string, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, r.Target)
	}

	return matches
}

package router

import (
	"sort"

	"github.com/cj2a7t/radix-router/pattern"
	"github.com/cj2a7t/radix-router/route"
)

// candidate is one (compiled path pattern, Route) pairing stored in an
// index list. seq records global insertion order and is the
// stable tie-breaker when priorities are equal.
type candidate struct {
	compiled *route.Compiled
	pattern  *pattern.Pattern
	seq      uint64
}

func (c *candidate) priority() int { return c.compiled.Route.Priority }

// candidateList is kept sorted by descending priority, ties broken by
// ascending seq, exactly as §4.4 requires.
type candidateList []*candidate

func sortCandidates(list candidateList) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority() != list[j].priority() {
			return list[i].priority() > list[j].priority()
		}
		return list[i].seq < list[j].seq
	})
}

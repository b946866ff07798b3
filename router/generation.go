package router

import (
	"github.com/cj2a7t/radix-router/pathtree"
	"github.com/cj2a7t/radix-router/pattern"
)

// generation is one immutable snapshot of the two-tier path index:
// an exact-match map plus a radix tree keyed by static prefix. A
// generation is built in full from the router's current route set
// every time it changes and then published to readers; it is never
// mutated after that, mirroring the reference implementation's
// rebuild-then-swap matcher generations (§10.4).
type generation struct {
	exact map[string]candidateList
	tree  *pathtree.Tree
}

// buildGeneration rebuilds the entire index from entries, the
// router's canonical route set in insertion order.
func buildGeneration(entries []*routeEntry, ignoreTrailingSlash bool) *generation {
	exactBuild := make(map[string]candidateList)
	treeBuild := make(map[string]candidateList)

	for _, e := range entries {
		for _, p := range e.compiled.Patterns {
			c := &candidate{compiled: e.compiled, pattern: p, seq: e.seq}
			if p.Kind == pattern.Literal {
				key := p.Raw
				if ignoreTrailingSlash {
					key = trimTrailingSlash(key)
				}
				exactBuild[key] = append(exactBuild[key], c)
				continue
			}
			treeBuild[p.StaticPrefix] = append(treeBuild[p.StaticPrefix], c)
		}
	}

	g := &generation{exact: make(map[string]candidateList, len(exactBuild)), tree: &pathtree.Tree{}}
	for k, list := range exactBuild {
		sortCandidates(list)
		g.exact[k] = list
	}
	for k, list := range treeBuild {
		sortCandidates(list)
		g.tree.Insert(k, list)
	}
	return g
}

// forEachCandidate visits every candidate reachable for path, exact
// matches first, then the radix-tree leaf keyed path+"/" (if any),
// then radix-tree leaves from longest static prefix to shortest,
// stopping as soon as fn reports it found an accepted match.
func (g *generation) forEachCandidate(path string, fn func(*candidate) (accepted bool)) {
	if list, ok := g.exact[path]; ok {
		for _, c := range list {
			if fn(c) {
				return
			}
		}
	}

	// A request "/prefix" can match "/prefix/*name" with an empty
	// remainder. That pattern's leaf is keyed "/prefix/", which is not a
	// prefix of the request, so the walk below never reaches it; it is
	// visited here, as the deepest leaf.
	if value, ok := g.tree.Get(path + "/"); ok {
		for _, c := range value.(candidateList) {
			if fn(c) {
				return
			}
		}
	}

	stopped := false
	g.tree.WalkPrefixes(path, func(_ string, value any) {
		if stopped {
			return
		}
		for _, c := range value.(candidateList) {
			if fn(c) {
				stopped = true
				return
			}
		}
	})
}

func trimTrailingSlash(path string) string {
	if len(path) > 1 && path[len(path)-1] == '/' {
		return path[:len(path)-1]
	}
	return path
}

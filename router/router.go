// Package router implements the query-time orchestrator: given a
// request path and match options, it consults the two-tier path
// index, walks candidates in priority order, evaluates the remaining
// predicates, and returns the first route that accepts.
//
// Grounded on the reference implementation's routing package:
// newMatcher's rebuild-the-whole-index-on-change approach, matchLeaf's
// ordered predicate checks, and feedMatchers' channel-fed generation
// publishing (§10.4), generalized from an HTTP-handler-dispatch
// router to this engine's path/method/host/address/vars/filter
// predicate set.
package router

import (
	"sync"

	"github.com/dimfeld/httppath"
	"github.com/sirupsen/logrus"

	"github.com/cj2a7t/radix-router/netutil"
	"github.com/cj2a7t/radix-router/route"
)

// routeEntry pairs a compiled route with its global insertion
// sequence, the stable tie-breaker used when two candidates share a
// priority.
type routeEntry struct {
	compiled *route.Compiled
	seq      uint64
}

// Router holds a route set and serves concurrent MatchRoute queries
// against a copy-on-write index generation.
type Router struct {
	cfg *config

	mu      sync.Mutex // serializes AddRoute/DeleteRoute; never held during a query
	routes  []*routeEntry
	nextSeq uint64

	genIn  chan<- *generation
	genOut <-chan *generation
}

// New builds a Router from an initial route set. It is all-or-
// nothing: if any route fails to compile, no Router is built and the
// first encountered *route.BuildError is returned.
func New(routes []*route.Route, opts ...Option) (*Router, error) {
	cfg := newConfig(opts)

	entries := make([]*routeEntry, 0, len(routes))
	for i, r := range routes {
		compiled, err := route.Compile(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &routeEntry{compiled: compiled, seq: uint64(i)})
	}

	gen := buildGeneration(entries, cfg.ignoreTrailingSlash)
	in, out := feedGenerations(gen)

	cfg.metrics.IncBuilds()
	cfg.logger.WithField("routes", len(entries)).Debug("router: built initial index generation")

	return &Router{
		cfg:     cfg,
		routes:  entries,
		nextSeq: uint64(len(entries)),
		genIn:   in,
		genOut:  out,
	}, nil
}

// feedGenerations starts the single publisher goroutine that keeps
// every reader's snapshot fetch an O(1), allocation-free channel
// receive, following the reference implementation's feedMatchers: an
// unbuffered "in" channel accepts new generations from the writer
// side, while the "out" channel is kept perpetually ready to hand out
// whatever the current generation is.
func feedGenerations(initial *generation) (chan<- *generation, <-chan *generation) {
	in := make(chan *generation)
	out := make(chan *generation)

	go func() {
		current := initial
		for {
			select {
			case current = <-in:
			case out <- current:
			}
		}
	}()

	return in, out
}

// AddRoute compiles and inserts r, rebuilding and publishing a new
// index generation. The prior generation remains valid for any query
// already in flight.
func (rt *Router) AddRoute(r *route.Route) error {
	compiled, err := route.Compile(r)
	if err != nil {
		rt.cfg.logger.WithFields(logrus.Fields{"route_id": r.ID, "reason": err.Error()}).Warn("router: route rejected")
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	seq := rt.nextSeq
	rt.nextSeq++
	rt.routes = append(rt.routes, &routeEntry{compiled: compiled, seq: seq})

	gen := buildGeneration(rt.routes, rt.cfg.ignoreTrailingSlash)
	rt.genIn <- gen

	rt.cfg.metrics.IncBuilds()
	rt.cfg.logger.WithField("route_id", r.ID).Debug("router: route added, index generation published")
	return nil
}

// DeleteRoute removes every route with the given id. A missing id is
// not an error; deleting twice is idempotent.
func (rt *Router) DeleteRoute(id string) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	kept := make([]*routeEntry, 0, len(rt.routes))
	removed := false
	for _, e := range rt.routes {
		if e.compiled.Route.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}

	if !removed {
		return nil
	}

	rt.routes = kept
	gen := buildGeneration(rt.routes, rt.cfg.ignoreTrailingSlash)
	rt.genIn <- gen

	rt.cfg.metrics.IncBuilds()
	rt.cfg.logger.WithField("route_id", id).Debug("router: route deleted, index generation published")
	return nil
}

// MatchRoute classifies path against the current index generation.
// The returned bool is false, with a nil error, on a plain no-match;
// a non-nil error only ever signals an internal invariant violation.
func (rt *Router) MatchRoute(path string, opts *route.MatchOpts) (*route.MatchResult, bool, error) {
	if opts == nil {
		opts = &route.MatchOpts{}
	}

	gen := <-rt.genOut
	if gen == nil {
		return nil, false, route.NewSystemError("index generation channel yielded no generation")
	}

	cleaned := httppath.Clean(path)
	if rt.cfg.ignoreTrailingSlash {
		cleaned = trimTrailingSlash(cleaned)
	}

	remoteAddr, remoteAddrOK := netutil.RemoteAddr(opts.XForwardedFor, opts.RemoteAddr)

	var result *route.MatchResult
	gen.forEachCandidate(cleaned, func(c *candidate) bool {
		res, ok := matchCandidate(c, cleaned, opts, remoteAddr, remoteAddrOK)
		if !ok {
			return false
		}
		result = res
		return true
	})

	if result == nil {
		rt.cfg.metrics.IncRejections()
		return nil, false, nil
	}

	rt.cfg.metrics.IncMatches()
	return result, true, nil
}

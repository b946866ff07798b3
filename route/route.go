// Package route defines the Route data model — the immutable
// declarations a Router is built from — and compiles each one's
// path/host/address predicates ahead of insertion into the index.
//
// Grounded on the reference implementation's eskip.Route (the parsed,
// in-memory route shape feeding its routing tree) and its Methods
// predicate's method-validation approach, generalized from the
// reference's textual-DSL-and-regex-matcher fields (HostRegexps,
// PathRegexps, a single Method string) to the Go-value predicates
// this engine's components compile: path patterns, host and address
// matchers, and variable expressions.
package route

import (
	"errors"

	"github.com/cj2a7t/radix-router/addrmatch"
	"github.com/cj2a7t/radix-router/hostmatch"
	"github.com/cj2a7t/radix-router/pattern"
	"github.com/cj2a7t/radix-router/varexpr"
)

// MatchOpts carries the per-query request attributes the Matcher
// evaluates a candidate against, plus a destination for captured
// path parameters.
//
// RemoteAddr and XForwardedFor together determine the address used
// against a route's address patterns: the first hop of
// XForwardedFor, when present and parseable, takes precedence over
// RemoteAddr, mirroring proxy deployment conventions (§4.2, §10.3).
type MatchOpts struct {
	Method        string
	Host          string
	RemoteAddr    string
	XForwardedFor string
	Vars          map[string]string
}

// FilterFunc is an opaque, caller-supplied predicate evaluated last
// in the matching pipeline. Implementations must be safe to call
// concurrently from many goroutines and must be total and
// side-effect free; the engine treats them as synchronous.
type FilterFunc func(vars map[string]string, opts *MatchOpts) bool

// Route is an immutable route declaration. Once passed to a Router
// it is never mutated; a Route with N path patterns behaves as N
// single-pattern routes sharing every other attribute.
type Route struct {
	ID          string
	Paths       []string
	Methods     Method // zero value means "all methods accepted"
	Hosts       []string
	RemoteAddrs []string
	Vars        []*varexpr.Spec
	Filter      FilterFunc
	Priority    int
	Metadata    interface{}
}

// Compiled is the validated, predicate-compiled form of a Route,
// produced once at insertion and shared by reference across every
// subsequent query.
type Compiled struct {
	Route    *Route
	Patterns []*pattern.Pattern
	Hosts    *hostmatch.Matcher // nil means "any host"
	Addrs    *addrmatch.Matcher // nil means "any address"
	Vars     []*varexpr.Expr
}

// Compile validates r and compiles its path, host, and address
// predicates. It is all-or-nothing: any failure leaves no partial
// state behind for the caller to accidentally index.
func Compile(r *Route) (*Compiled, error) {
	if len(r.Paths) == 0 {
		return nil, wrapBuildError(r.ID, InvalidPathPattern, errors.New("route must declare at least one path pattern"))
	}

	patterns := make([]*pattern.Pattern, 0, len(r.Paths))
	for _, p := range r.Paths {
		cp, err := pattern.Compile(p)
		if err != nil {
			return nil, wrapBuildError(r.ID, InvalidPathPattern, err)
		}
		patterns = append(patterns, cp)
	}

	var hosts *hostmatch.Matcher
	if len(r.Hosts) > 0 {
		m, err := hostmatch.Compile(r.Hosts)
		if err != nil {
			return nil, wrapBuildError(r.ID, InvalidHostPattern, err)
		}
		hosts = m
	}

	var addrs *addrmatch.Matcher
	if len(r.RemoteAddrs) > 0 {
		m, err := addrmatch.Compile(r.RemoteAddrs)
		if err != nil {
			return nil, wrapBuildError(r.ID, InvalidAddressPattern, err)
		}
		addrs = m
	}

	vars, err := varexpr.BuildAll(r.Vars)
	if err != nil {
		return nil, wrapBuildError(r.ID, InvalidRegex, err)
	}

	return &Compiled{Route: r, Patterns: patterns, Hosts: hosts, Addrs: addrs, Vars: vars}, nil
}

// MatchResult is returned on a successful query: the matched Route's
// metadata together with every path parameter captured along the way.
type MatchResult struct {
	Metadata interface{}
	Captures map[string]string
}

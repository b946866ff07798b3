package router

import (
	"net/netip"

	"github.com/cj2a7t/radix-router/pattern"
	"github.com/cj2a7t/radix-router/route"
	"github.com/cj2a7t/radix-router/varexpr"
)

// matchCandidate runs a single candidate through the predicate
// pipeline described by §4.5's state machine: PathOK -> MethodOK ->
// HostOK -> AddrOK -> VarsOK -> FilterOK -> Accepted. Any failed
// transition rejects the candidate without side effects. remoteAddr
// and remoteAddrOK are the address resolved once per query via
// netutil.RemoteAddr, not recomputed per candidate.
func matchCandidate(c *candidate, path string, opts *route.MatchOpts, remoteAddr netip.Addr, remoteAddrOK bool) (*route.MatchResult, bool) {
	var captures map[string]string

	if c.pattern.Kind != pattern.Literal {
		caps, ok := c.pattern.Match(path)
		if !ok {
			return nil, false
		}
		captures = caps
	}

	r := c.compiled.Route

	if r.Methods != 0 {
		if opts.Method == "" || !r.Methods.Has(opts.Method) {
			return nil, false
		}
	}

	if c.compiled.Hosts != nil {
		if opts.Host == "" || !c.compiled.Hosts.Match(opts.Host) {
			return nil, false
		}
	}

	if c.compiled.Addrs != nil {
		if !remoteAddrOK || !c.compiled.Addrs.MatchAddr(remoteAddr) {
			return nil, false
		}
	}

	if len(c.compiled.Vars) > 0 {
		if !varexpr.EvalAll(c.compiled.Vars, opts.Vars) {
			return nil, false
		}
	}

	if r.Filter != nil {
		if !r.Filter(opts.Vars, opts) {
			return nil, false
		}
	}

	if captures == nil {
		captures = map[string]string{}
	}
	return &route.MatchResult{Metadata: r.Metadata, Captures: captures}, true
}

// Package addrmatch compiles and evaluates remote-address patterns:
// literal IPv4/IPv6 addresses or CIDR ranges ("addr/prefixlen").
// Matching is bitwise over the canonical numeric form and address
// families never cross: an IPv4 pattern cannot match an IPv6 request
// address and vice versa. Multiple patterns on a route combine by
// logical OR.
//
// Grounded on this project's reference implementation's CIDR-based
// source-address predicate and its net helper package's
// ParseIPCIDRs, both of which accumulate parsed entries into a
// go4.org/netipx.IPSetBuilder. Unlike the reference's ParseIPCIDRs,
// which builds a best-effort set and reports only the last parse
// error while still returning whatever it could build, Compile here
// is all-or-nothing: any malformed pattern aborts the build, since a
// route with a partially-compiled address predicate must never be
// installed.
package addrmatch

import (
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// Matcher evaluates a remote address against a compiled set of
// address patterns combined by OR.
type Matcher struct {
	set *netipx.IPSet
}

// Error reports a malformed address pattern.
type Error struct {
	Pattern string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid address pattern %q: %s", e.Pattern, e.Reason)
}

// Compile builds a Matcher over one or more literal-address or CIDR
// patterns. It returns an error if patterns is empty or any entry is
// malformed.
func Compile(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, &Error{Reason: "address pattern list must not be empty"}
	}

	var b netipx.IPSetBuilder
	for _, p := range patterns {
		if p == "" {
			return nil, &Error{Pattern: p, Reason: "address pattern must not be empty"}
		}

		if strings.Contains(p, "/") {
			pfx, err := netip.ParsePrefix(p)
			if err != nil {
				return nil, &Error{Pattern: p, Reason: err.Error()}
			}
			b.AddPrefix(pfx.Masked())
			continue
		}

		addr, err := netip.ParseAddr(p)
		if err != nil {
			return nil, &Error{Pattern: p, Reason: err.Error()}
		}
		b.Add(addr)
	}

	set, err := b.IPSet()
	if err != nil {
		return nil, &Error{Reason: err.Error()}
	}
	return &Matcher{set: set}, nil
}

// Match reports whether requestAddr satisfies any of the compiled
// patterns. An unparseable requestAddr never matches. A zone id on an
// IPv6 address (e.g. "fe80::1%eth0") is interface-scoping information
// only; it is stripped before the address is checked against the
// numeric ranges compiled by Compile, which never carry a zone.
func (m *Matcher) Match(requestAddr string) bool {
	addr, err := netip.ParseAddr(requestAddr)
	if err != nil {
		return false
	}
	return m.MatchAddr(addr)
}

// MatchAddr reports whether addr satisfies any of the compiled
// patterns, for callers that already hold a parsed netip.Addr (for
// instance one produced by netutil.RemoteAddr) and want to avoid
// re-parsing it. Any zone id on addr is ignored, for the same reason
// as in Match.
func (m *Matcher) MatchAddr(addr netip.Addr) bool {
	if addr.Zone() != "" {
		addr = addr.WithZone("")
	}
	return m.set.Contains(addr)
}

// Package hostmatch compiles and evaluates Host header patterns:
// fully literal hostnames, case-insensitive, or a leading wildcard of
// the form "*.suffix" matching one or more labels ahead of the
// suffix. Multiple patterns on a route combine by logical OR.
//
// Grounded on this project's reference implementation's host-matching
// predicate (an exact, case-sensitive-on-the-wire string compare over
// request.Host), generalized here to also compile the "*.suffix" form
// and to fold case and strip ports the way the reference's own net
// helpers do ahead of comparison.
package hostmatch

import (
	"fmt"
	"strings"

	"github.com/cj2a7t/radix-router/netutil"
)

type patternKind int

const (
	kindLiteral patternKind = iota
	kindWildcard
)

type compiledHost struct {
	kind  patternKind
	value string // literal: the full host; wildcard: the suffix after "*."
}

// Matcher evaluates a request host against a compiled set of host
// patterns combined by OR.
type Matcher struct {
	hosts []compiledHost
}

// Error reports a malformed host pattern.
type Error struct {
	Pattern string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid host pattern %q: %s", e.Pattern, e.Reason)
}

// Compile builds a Matcher over one or more host patterns. It returns
// an error if patterns is empty or any entry is malformed.
func Compile(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, &Error{Reason: "host pattern list must not be empty"}
	}

	hosts := make([]compiledHost, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			return nil, &Error{Pattern: p, Reason: "host pattern must not be empty"}
		}

		if strings.HasPrefix(p, "*.") {
			suffix := p[2:]
			if suffix == "" {
				return nil, &Error{Pattern: p, Reason: "wildcard suffix must not be empty"}
			}
			if strings.Contains(suffix, "*") {
				return nil, &Error{Pattern: p, Reason: "wildcard is only legal in the leading position"}
			}
			hosts = append(hosts, compiledHost{kind: kindWildcard, value: netutil.NormalizeHost(suffix)})
			continue
		}

		if strings.Contains(p, "*") {
			return nil, &Error{Pattern: p, Reason: "wildcard is only legal in the leading position"}
		}

		hosts = append(hosts, compiledHost{kind: kindLiteral, value: netutil.NormalizeHost(p)})
	}

	return &Matcher{hosts: hosts}, nil
}

// Match reports whether requestHost satisfies any of the compiled
// patterns. requestHost may carry a port and mixed case; both are
// normalized before comparison.
func (m *Matcher) Match(requestHost string) bool {
	if requestHost == "" {
		return false
	}
	h := netutil.NormalizeHost(requestHost)

	for _, c := range m.hosts {
		switch c.kind {
		case kindLiteral:
			if h == c.value {
				return true
			}
		case kindWildcard:
			if matchesWildcardSuffix(h, c.value) {
				return true
			}
		}
	}
	return false
}

// matchesWildcardSuffix reports whether host matches "*.suffix": host
// must end with "." + suffix and have at least one non-empty label
// before it.
func matchesWildcardSuffix(host, suffix string) bool {
	dotSuffix := "." + suffix
	if !strings.HasSuffix(host, dotSuffix) {
		return false
	}
	return len(host) > len(dotSuffix)
}

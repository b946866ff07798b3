// Package netutil provides small helpers for extracting and comparing
// network addresses and hostnames from requests, adapted from this
// project's reference implementation's own net helper package.
package netutil

import (
	"net"
	"net/netip"
	"strings"
)

// StripPort removes a trailing ":port" from address, if present,
// returning address unchanged if it has none.
func StripPort(address string) string {
	if h, _, err := net.SplitHostPort(address); err == nil {
		return h
	}
	return address
}

// RemoteAddr extracts the client address to match against address
// patterns. When the X-Forwarded-For header carries one or more hops,
// the first one is used, mirroring how the request reached the edge
// before any proxying; otherwise the transport-level remote address is
// used. The bool result is false when no usable address could be
// parsed.
func RemoteAddr(xForwardedFor, transportRemoteAddr string) (netip.Addr, bool) {
	if xForwardedFor != "" {
		first, _, _ := strings.Cut(xForwardedFor, ",")
		if addr, err := netip.ParseAddr(StripPort(strings.TrimSpace(first))); err == nil {
			return addr, true
		}
	}

	addr, err := netip.ParseAddr(StripPort(transportRemoteAddr))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

// NormalizeHost removes a trailing ":port" from a Host header value
// and folds it to lower case using ASCII-only case folding, never
// Unicode normalization, per the matching engine's host comparison
// rule.
func NormalizeHost(host string) string {
	return asciiLower(StripPort(host))
}

func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

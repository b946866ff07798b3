// Package pattern compiles route path strings into one of three shapes
// (literal, parameterized, or prefix-wildcard) and matches request
// paths against the compiled form, capturing named segments and
// catch-alls along the way.
//
// The compiler is a straightforward left-to-right scanner, grounded on
// the same static-prefix/wildcard-token split this project's reference
// path-matching code performs ahead of indexing a route into its
// lookup tree, generalized here into an explicit, reusable compiled
// value instead of being inlined into the indexing step.
package pattern

import (
	"fmt"
	"strings"
)

// Kind identifies the shape a compiled Pattern takes.
type Kind int

const (
	Literal Kind = iota
	Parameterized
	PrefixWildcard
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Parameterized:
		return "parameterized"
	case PrefixWildcard:
		return "prefix-wildcard"
	default:
		return "unknown"
	}
}

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokParam
	tokCatchAll
)

// Token is one element of a compiled Parameterized or PrefixWildcard
// pattern: either a literal run of characters, a single-segment
// capture (":name"), or a terminal catch-all ("*name", name possibly
// empty).
type Token struct {
	kind tokenKind
	text string
}

// Pattern is the compiled form of a route path string.
type Pattern struct {
	Kind         Kind
	Raw          string
	StaticPrefix string
	Tokens       []Token
}

// Error reports a malformed path pattern; Reason distinguishes the
// specific rule that was violated so callers can classify it without
// string matching.
type Error struct {
	Pattern string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid path pattern %q: %s", e.Pattern, e.Reason)
}

func invalid(raw, reason string, args ...any) *Error {
	return &Error{Pattern: raw, Reason: fmt.Sprintf(reason, args...)}
}

func isIdentByte(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

// Compile parses a route path string into its compiled form.
func Compile(raw string) (*Pattern, error) {
	if raw == "" {
		return nil, invalid(raw, "pattern must not be empty")
	}
	if raw[0] != '/' {
		return nil, invalid(raw, "pattern must start with /")
	}

	var (
		tokens            []Token
		lit               strings.Builder
		names             = map[string]struct{}{}
		hasCatchAll       bool
		anonymousCatchAll bool
	)

	flushLiteral := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{kind: tokLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	n := len(raw)
	i := 0
	atBoundary := true // raw[0] == '/', so position 0 is always a segment boundary

	for i < n {
		c := raw[i]

		if atBoundary && (c == ':' || c == '*') {
			isCatchAll := c == '*'
			i++
			start := i
			for i < n && isIdentByte(raw[i]) {
				i++
			}
			name := raw[start:i]

			if isCatchAll {
				if i != n {
					return nil, invalid(raw, "wildcard must be the final segment")
				}
				if name == "" {
					anonymousCatchAll = true
				} else if _, dup := names[name]; dup {
					return nil, invalid(raw, "duplicate capture name %q", name)
				} else {
					names[name] = struct{}{}
				}
				flushLiteral()
				tokens = append(tokens, Token{kind: tokCatchAll, text: name})
				hasCatchAll = true
				break
			}

			if name == "" {
				return nil, invalid(raw, "empty parameter name after ':'")
			}
			if _, dup := names[name]; dup {
				return nil, invalid(raw, "duplicate capture name %q", name)
			}
			names[name] = struct{}{}
			flushLiteral()
			tokens = append(tokens, Token{kind: tokParam, text: name})
			atBoundary = false
			continue
		}

		lit.WriteByte(c)
		atBoundary = c == '/'
		i++
	}
	flushLiteral()

	if len(tokens) == 0 {
		return &Pattern{Kind: Literal, Raw: raw, StaticPrefix: raw}, nil
	}
	if len(tokens) == 1 && tokens[0].kind == tokLiteral {
		return &Pattern{Kind: Literal, Raw: raw, StaticPrefix: raw}, nil
	}

	var prefix strings.Builder
	for _, tok := range tokens {
		if tok.kind != tokLiteral {
			break
		}
		prefix.WriteString(tok.text)
	}

	kind := Parameterized
	if hasCatchAll && anonymousCatchAll {
		kind = PrefixWildcard
	}

	return &Pattern{Kind: kind, Raw: raw, StaticPrefix: prefix.String(), Tokens: tokens}, nil
}

// Names returns the capture identifiers declared by the pattern, in
// the order they appear (the anonymous catch-all, if any, is omitted).
func (p *Pattern) Names() []string {
	var out []string
	for _, tok := range p.Tokens {
		if tok.kind == tokParam || (tok.kind == tokCatchAll && tok.text != "") {
			out = append(out, tok.text)
		}
	}
	return out
}

// Match attempts to match path against the pattern. On success it
// returns the captured name -> value pairs (nil if the pattern has no
// named captures) and true.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	if p.Kind == Literal {
		return nil, path == p.Raw
	}

	if c, ok := matchBareRoot(p, path); ok {
		return c, true
	}

	var captures map[string]string
	rest := path

	for _, tok := range p.Tokens {
		switch tok.kind {
		case tokLiteral:
			if !strings.HasPrefix(rest, tok.text) {
				return nil, false
			}
			rest = rest[len(tok.text):]

		case tokParam:
			end := strings.IndexByte(rest, '/')
			if end == -1 {
				end = len(rest)
			}
			if end == 0 {
				// zero-length segment: no progress, reject per the
				// compiler's segment-boundary contract.
				return nil, false
			}
			if captures == nil {
				captures = make(map[string]string, len(p.Tokens))
			}
			captures[tok.text] = rest[:end]
			rest = rest[end:]

		case tokCatchAll:
			if tok.text != "" {
				if captures == nil {
					captures = make(map[string]string, len(p.Tokens))
				}
				captures[tok.text] = rest
			}
			rest = ""
		}
	}

	return captures, rest == ""
}

// matchBareRoot handles the accepted edge case of a pattern
// "/prefix/*name" matched against the request "/prefix" with no
// trailing slash: the catch-all captures the empty remainder. This is
// narrowly scoped to a single literal token followed directly by the
// terminal catch-all, which is the only shape the spec's open question
// resolves explicitly.
func matchBareRoot(p *Pattern, path string) (map[string]string, bool) {
	if len(p.Tokens) != 2 || p.Tokens[0].kind != tokLiteral || p.Tokens[1].kind != tokCatchAll {
		return nil, false
	}
	prefix := p.Tokens[0].text
	if len(prefix) == 0 || prefix[len(prefix)-1] != '/' {
		return nil, false
	}
	if path != prefix[:len(prefix)-1] {
		return nil, false
	}

	name := p.Tokens[1].text
	if name == "" {
		return nil, true
	}
	return map[string]string{name: ""}, true
}

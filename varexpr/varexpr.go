// Package varexpr implements the small expression language routes use
// to predicate on a string-keyed variable map: equality, inequality,
// ordering, membership, negation, and regular-expression matching.
//
// The operator set mirrors the condition checks this project's
// reference implementation runs per matched route leaf (exact string
// comparison, regexp matching over pre-compiled patterns), but is
// generalized here from HTTP-specific concerns (headers, cookies,
// query params) to an arbitrary name->value map, and modeled as a
// single closed, discriminated Expr type rather than the reference's
// open plugin registry (PredicateSpec.Create/Predicate.Match) — the
// set of operators is fixed and small, so a switch over a tag beats
// runtime dispatch through an interface per operator.
package varexpr

import (
	"regexp"
	"strconv"
)

// Op identifies the kind of comparison an Expr performs.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
	In
	NotIn
	Regex
	Not
)

// Expr is a single variable predicate: a comparison against a named
// variable, or a Not wrapping another Expr.
type Expr struct {
	op      Op
	name    string
	operand string
	set     []string
	rx      *regexp.Regexp
	inner   *Expr
}

func NewEq(name, value string) *Expr { return &Expr{op: Eq, name: name, operand: value} }
func NewNe(name, value string) *Expr { return &Expr{op: Ne, name: name, operand: value} }
func NewLt(name, value string) *Expr { return &Expr{op: Lt, name: name, operand: value} }
func NewLe(name, value string) *Expr { return &Expr{op: Le, name: name, operand: value} }
func NewGt(name, value string) *Expr { return &Expr{op: Gt, name: name, operand: value} }
func NewGe(name, value string) *Expr { return &Expr{op: Ge, name: name, operand: value} }

// NewIn builds a membership predicate; values is copied so later
// mutation by the caller cannot affect the compiled expression.
func NewIn(name string, values []string) *Expr {
	return &Expr{op: In, name: name, set: append([]string(nil), values...)}
}

func NewNotIn(name string, values []string) *Expr {
	return &Expr{op: NotIn, name: name, set: append([]string(nil), values...)}
}

// NewRegex compiles expr and returns an unanchored regex predicate
// over the named variable: it matches if expr is found anywhere in
// the value, not only when it spans the whole string. Compilation
// happens once, here, so the resulting Expr can be evaluated
// concurrently by any number of queries without re-parsing the
// pattern.
func NewRegex(name, expr string) (*Expr, error) {
	rx, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Expr{op: Regex, name: name, rx: rx}, nil
}

// NewNot negates inner.
func NewNot(inner *Expr) *Expr {
	return &Expr{op: Not, inner: inner}
}

// Eval evaluates the expression against vars. A comparison whose
// variable is absent from vars always evaluates to false, including Ne
// and NotIn.
func (e *Expr) Eval(vars map[string]string) bool {
	if e.op == Not {
		return !e.inner.Eval(vars)
	}

	v, ok := vars[e.name]
	if !ok {
		return false
	}

	switch e.op {
	case Eq:
		return v == e.operand
	case Ne:
		return v != e.operand
	case Lt, Le, Gt, Ge:
		return compare(e.op, v, e.operand)
	case In:
		return contains(e.set, v)
	case NotIn:
		return !contains(e.set, v)
	case Regex:
		return e.rx.MatchString(v)
	default:
		return false
	}
}

// EvalAll evaluates a conjunction of expressions; an empty list is
// vacuously true.
func EvalAll(exprs []*Expr, vars map[string]string) bool {
	for _, e := range exprs {
		if !e.Eval(vars) {
			return false
		}
	}
	return true
}

func compare(op Op, a, b string) bool {
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		switch op {
		case Lt:
			return af < bf
		case Le:
			return af <= bf
		case Gt:
			return af > bf
		case Ge:
			return af >= bf
		}
	}

	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

package varexpr

import "fmt"

// Spec is the uncompiled, declarative form of an Expr: a plain Go
// value a Route is built from. Build defers the one fallible step —
// regex compilation — to the point where the owning Route is
// inserted, so that a bad pattern surfaces as a build-time error
// there instead of wherever the Spec happened to be constructed.
type Spec struct {
	op      Op
	name    string
	operand string
	set     []string
	pattern string
	inner   *Spec
}

func EqSpec(name, value string) *Spec { return &Spec{op: Eq, name: name, operand: value} }
func NeSpec(name, value string) *Spec { return &Spec{op: Ne, name: name, operand: value} }
func LtSpec(name, value string) *Spec { return &Spec{op: Lt, name: name, operand: value} }
func LeSpec(name, value string) *Spec { return &Spec{op: Le, name: name, operand: value} }
func GtSpec(name, value string) *Spec { return &Spec{op: Gt, name: name, operand: value} }
func GeSpec(name, value string) *Spec { return &Spec{op: Ge, name: name, operand: value} }

func InSpec(name string, values []string) *Spec {
	return &Spec{op: In, name: name, set: append([]string(nil), values...)}
}

func NotInSpec(name string, values []string) *Spec {
	return &Spec{op: NotIn, name: name, set: append([]string(nil), values...)}
}

// RegexSpec declares an unanchored regex predicate over name.
// Compilation, and therefore validation of pattern, happens later in
// Build, not here.
func RegexSpec(name, pattern string) *Spec {
	return &Spec{op: Regex, name: name, pattern: pattern}
}

// NotSpec negates inner.
func NotSpec(inner *Spec) *Spec {
	return &Spec{op: Not, inner: inner}
}

// Build compiles a single Spec into an Expr, compiling any regex
// pattern it or its descendants carry. This is the only point at
// which building a Spec can fail.
func Build(s *Spec) (*Expr, error) {
	switch s.op {
	case Eq:
		return NewEq(s.name, s.operand), nil
	case Ne:
		return NewNe(s.name, s.operand), nil
	case Lt:
		return NewLt(s.name, s.operand), nil
	case Le:
		return NewLe(s.name, s.operand), nil
	case Gt:
		return NewGt(s.name, s.operand), nil
	case Ge:
		return NewGe(s.name, s.operand), nil
	case In:
		return NewIn(s.name, s.set), nil
	case NotIn:
		return NewNotIn(s.name, s.set), nil
	case Regex:
		return NewRegex(s.name, s.pattern)
	case Not:
		inner, err := Build(s.inner)
		if err != nil {
			return nil, err
		}
		return NewNot(inner), nil
	default:
		return nil, fmt.Errorf("varexpr: unknown operator %d", s.op)
	}
}

// BuildAll compiles every Spec in specs, in order, stopping at the
// first failure.
func BuildAll(specs []*Spec) ([]*Expr, error) {
	exprs := make([]*Expr, 0, len(specs))
	for _, s := range specs {
		e, err := Build(s)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

package route

import (
	"errors"
	"fmt"
)

// Kind classifies a BuildError by which part of a route declaration
// was rejected.
type Kind string

const (
	InvalidPathPattern    Kind = "invalid_path_pattern"
	InvalidHostPattern    Kind = "invalid_host_pattern"
	InvalidAddressPattern Kind = "invalid_address_pattern"
	InvalidRegex          Kind = "invalid_regex"
)

func (k Kind) Error() string { return string(k) }

// BuildError is returned when a Route is rejected at insertion time.
// It wraps the underlying compiler/matcher error so callers can use
// errors.As/errors.Is against both the Kind and the wrapped cause,
// following the reference implementation's invalidDefinitionError +
// WrapInvalidDefinitionReason pattern, generalized from a single flat
// string-coded reason to a small closed Kind enum plus a route id.
type BuildError struct {
	RouteID string
	Kind    Kind
	Err     error
}

func (e *BuildError) Error() string {
	if e.RouteID == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("route %q: %s: %v", e.RouteID, e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Is reports whether target is the same Kind, so callers can write
// errors.Is(err, route.InvalidPathPattern).
func (e *BuildError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

func wrapBuildError(routeID string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &BuildError{RouteID: routeID, Kind: kind, Err: err}
}

// SystemError reports an internal invariant violation discovered at
// query time. It is never returned to signal "no match" — a query
// that simply finds nothing returns an ok=false result, not an error.
type SystemError struct {
	Reason string
}

func (e *SystemError) Error() string {
	return "router: internal invariant violation: " + e.Reason
}

// NewSystemError constructs a SystemError with the given reason.
func NewSystemError(reason string) error {
	return &SystemError{Reason: reason}
}

// IsBuildError reports whether err is, or wraps, a *BuildError.
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}

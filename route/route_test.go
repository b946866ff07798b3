package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj2a7t/radix-router/varexpr"
)

func TestCompileLiteralRoute(t *testing.T) {
	r := &Route{ID: "r1", Paths: []string{"/api/users"}}
	c, err := Compile(r)
	require.NoError(t, err)
	assert.Len(t, c.Patterns, 1)
	assert.Equal(t, "/api/users", c.Patterns[0].Raw)
	assert.Nil(t, c.Hosts)
	assert.Nil(t, c.Addrs)
}

func TestCompileRejectsNoPaths(t *testing.T) {
	_, err := Compile(&Route{ID: "r1"})
	require.Error(t, err)
	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, InvalidPathPattern, be.Kind)
	assert.ErrorIs(t, err, InvalidPathPattern)
}

func TestCompileRejectsBadPathPattern(t *testing.T) {
	_, err := Compile(&Route{ID: "r1", Paths: []string{"no-leading-slash"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, InvalidPathPattern)
}

func TestCompileRejectsBadHostPattern(t *testing.T) {
	_, err := Compile(&Route{ID: "r1", Paths: []string{"/api"}, Hosts: []string{"api.*.example.com"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, InvalidHostPattern)
}

func TestCompileRejectsBadAddressPattern(t *testing.T) {
	_, err := Compile(&Route{ID: "r1", Paths: []string{"/api"}, RemoteAddrs: []string{"not-an-address"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, InvalidAddressPattern)
}

func TestCompileHostsAndAddrs(t *testing.T) {
	r := &Route{
		ID:          "r1",
		Paths:       []string{"/api"},
		Hosts:       []string{"*.example.com"},
		RemoteAddrs: []string{"10.0.0.0/8"},
	}
	c, err := Compile(r)
	require.NoError(t, err)
	require.NotNil(t, c.Hosts)
	require.NotNil(t, c.Addrs)
	assert.True(t, c.Hosts.Match("api.example.com"))
	assert.True(t, c.Addrs.Match("10.1.1.1"))
}

func TestMethodParsing(t *testing.T) {
	m, err := ParseMethods([]string{"get", "POST"})
	require.NoError(t, err)
	assert.True(t, m.Has("GET"))
	assert.True(t, m.Has("post"))
	assert.False(t, m.Has("DELETE"))
}

func TestMethodParsingRejectsUnknown(t *testing.T) {
	_, err := ParseMethods([]string{"BREW"})
	assert.Error(t, err)
}

func TestBuildErrorUnwrap(t *testing.T) {
	_, err := Compile(&Route{ID: "r1", Paths: []string{""}})
	require.Error(t, err)
	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "r1", be.RouteID)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestIsBuildError(t *testing.T) {
	_, err := Compile(&Route{ID: "r1"})
	assert.True(t, IsBuildError(err))
	assert.False(t, IsBuildError(NewSystemError("boom")))
}

func TestCompileRejectsBadRegexInVars(t *testing.T) {
	r := &Route{
		ID:    "r1",
		Paths: []string{"/api"},
		Vars:  []*varexpr.Spec{varexpr.RegexSpec("user_agent", "(unterminated")},
	}
	_, err := Compile(r)
	require.Error(t, err)
	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, InvalidRegex, be.Kind)
	assert.ErrorIs(t, err, InvalidRegex)
}

func TestCompileCompilesVarsOnce(t *testing.T) {
	r := &Route{
		ID:    "r1",
		Paths: []string{"/api"},
		Vars:  []*varexpr.Spec{varexpr.EqSpec("env", "production"), varexpr.RegexSpec("ua", "Chrome")},
	}
	c, err := Compile(r)
	require.NoError(t, err)
	require.Len(t, c.Vars, 2)
	assert.True(t, varexpr.EvalAll(c.Vars, map[string]string{"env": "production", "ua": "Chrome/120"}))
	assert.False(t, varexpr.EvalAll(c.Vars, map[string]string{"env": "staging", "ua": "Chrome/120"}))
}

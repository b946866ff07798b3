package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLiteral(t *testing.T) {
	p, err := Compile("/api/users")
	require.NoError(t, err)
	assert.Equal(t, Literal, p.Kind)
	assert.Equal(t, "/api/users", p.StaticPrefix)

	captures, ok := p.Match("/api/users")
	assert.True(t, ok)
	assert.Nil(t, captures)

	_, ok = p.Match("/api/user")
	assert.False(t, ok)
}

func TestCompileParameterized(t *testing.T) {
	p, err := Compile("/user/:id/post/:pid")
	require.NoError(t, err)
	assert.Equal(t, Parameterized, p.Kind)
	assert.Equal(t, "/user/", p.StaticPrefix)
	assert.Equal(t, []string{"id", "pid"}, p.Names())

	captures, ok := p.Match("/user/123/post/456")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "123", "pid": "456"}, captures)

	_, ok = p.Match("/user/123/post/")
	assert.False(t, ok, "empty segment capture must be rejected")

	_, ok = p.Match("/user/123")
	assert.False(t, ok)
}

func TestCompileNamedCatchAll(t *testing.T) {
	p, err := Compile("/files/*path")
	require.NoError(t, err)
	assert.Equal(t, Parameterized, p.Kind)
	assert.Equal(t, "/files/", p.StaticPrefix)

	captures, ok := p.Match("/files/docs/readme.txt")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"path": "docs/readme.txt"}, captures)

	captures, ok = p.Match("/files/")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"path": ""}, captures)
}

func TestCompileAnonymousPrefixWildcard(t *testing.T) {
	p, err := Compile("/api/*")
	require.NoError(t, err)
	assert.Equal(t, PrefixWildcard, p.Kind)
	assert.Equal(t, "/api/", p.StaticPrefix)

	captures, ok := p.Match("/api/anything/goes")
	require.True(t, ok)
	assert.Nil(t, captures)
}

func TestMatchBareRootAgainstTrailingCatchAll(t *testing.T) {
	p, err := Compile("/prefix/*rest")
	require.NoError(t, err)

	captures, ok := p.Match("/prefix")
	require.True(t, ok, "bare prefix without trailing slash must match the terminal catch-all with an empty remainder")
	assert.Equal(t, map[string]string{"rest": ""}, captures)
}

func TestCompileRejectsMissingLeadingSlash(t *testing.T) {
	_, err := Compile("api/users")
	assert.Error(t, err)
}

func TestCompileRejectsEmptyPattern(t *testing.T) {
	_, err := Compile("")
	assert.Error(t, err)
}

func TestCompileRejectsEmptyParamName(t *testing.T) {
	_, err := Compile("/api/:/users")
	assert.Error(t, err)
}

func TestCompileRejectsDuplicateCaptureName(t *testing.T) {
	_, err := Compile("/user/:id/friend/:id")
	assert.Error(t, err)
}

func TestCompileRejectsWildcardNotTerminal(t *testing.T) {
	_, err := Compile("/files/*path/more")
	assert.Error(t, err)
}

func TestCompileManyCaptureSegments(t *testing.T) {
	raw := "/a/:p1/:p2/:p3/:p4/:p5/:p6/:p7/:p8/:p9/:p10/:p11/:p12/:p13/:p14/:p15/:p16/:p17/:p18/:p19/:p20"
	p, err := Compile(raw)
	require.NoError(t, err)
	assert.Len(t, p.Names(), 20)

	path := "/a/1/2/3/4/5/6/7/8/9/10/11/12/13/14/15/16/17/18/19/20"
	captures, ok := p.Match(path)
	require.True(t, ok)
	assert.Equal(t, "1", captures["p1"])
	assert.Equal(t, "20", captures["p20"])
}

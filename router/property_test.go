package router

import (
	"fmt"
	"testing"

	"github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/cj2a7t/radix-router/route"
)

// fuzz-generated literal segment names, kept ASCII-identifier-safe so
// every generated path is guaranteed to compile.
func randomSegment(f *fuzz.Fuzzer) string {
	var n uint8
	f.Fuzz(&n)
	return fmt.Sprintf("seg%d", n)
}

func randomRoutes(f *fuzz.Fuzzer, n int) []*route.Route {
	routes := make([]*route.Route, 0, n)
	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		path := "/" + randomSegment(f) + "/" + randomSegment(f)
		if seen[path] {
			continue
		}
		seen[path] = true

		var priority int8
		f.Fuzz(&priority)
		routes = append(routes, &route.Route{
			ID:       fmt.Sprintf("r%d", i),
			Paths:    []string{path},
			Priority: int(priority),
			Metadata: path,
		})
	}
	return routes
}

// TestMatchRouteIsDeterministic exercises Testable Property 1: for a
// fixed index and query, MatchRoute returns the same result every
// time, across a fuzz-generated route table.
func TestMatchRouteIsDeterministic(t *testing.T) {
	f := fuzz.NewWithSeed(1)
	routes := randomRoutes(f, 50)

	rt, err := New(routes)
	require.NoError(t, err)

	queries := []string{"/seg1/seg2", "/seg0/seg0", "/segX/segY", "/seg255/seg255"}
	for _, q := range queries {
		first, okFirst, errFirst := rt.MatchRoute(q, nil)
		for i := 0; i < 20; i++ {
			again, okAgain, errAgain := rt.MatchRoute(q, nil)
			require.NoError(t, errAgain)
			require.Equal(t, okFirst, okAgain)
			if okFirst {
				require.Equal(t, first.Metadata, again.Metadata)
			}
		}
		require.NoError(t, errFirst)
	}
}

// TestAddDeleteRoundTripIsStable exercises Testable Property 8: adding
// then deleting a route restores prior matching behavior, across a
// fuzz-generated base route table and a fuzz-generated extra route.
func TestAddDeleteRoundTripIsStable(t *testing.T) {
	f := fuzz.NewWithSeed(7)
	base := randomRoutes(f, 30)

	rt, err := New(base)
	require.NoError(t, err)

	probe := "/seg42/seg42"
	beforeResult, beforeOK, err := rt.MatchRoute(probe, nil)
	require.NoError(t, err)

	extra := &route.Route{ID: "extra-fuzz-route", Paths: []string{"/seg99/seg98"}, Metadata: "extra"}
	require.NoError(t, rt.AddRoute(extra))
	require.NoError(t, rt.DeleteRoute(extra.ID))

	afterResult, afterOK, err := rt.MatchRoute(probe, nil)
	require.NoError(t, err)
	require.Equal(t, beforeOK, afterOK)
	if beforeOK {
		require.Equal(t, beforeResult.Metadata, afterResult.Metadata)
	}
}

// TestCaptureRoundTripAcrossFuzzedParamRoutes exercises Testable
// Property 5: for every accepted parameterized route, the captured
// values reassemble into the request path when substituted back.
func TestCaptureRoundTripAcrossFuzzedParamRoutes(t *testing.T) {
	f := fuzz.NewWithSeed(3)

	for i := 0; i < 25; i++ {
		a := randomSegment(f)
		b := randomSegment(f)

		rt, err := New([]*route.Route{
			{ID: "p", Paths: []string{"/items/:first/:second"}, Metadata: "p"},
		})
		require.NoError(t, err)

		path := "/items/" + a + "/" + b
		res, ok, err := rt.MatchRoute(path, nil)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "/items/"+res.Captures["first"]+"/"+res.Captures["second"], path)
	}
}

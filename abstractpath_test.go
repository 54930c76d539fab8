package hpf

import (
	"testing"

	"github.com/edgejay/go-hpf/neighborhood"
	"github.com/stretchr/testify/require"
)

func TestAbstractPathNextYieldsExcludingStart(t *testing.T) {
	ap := newDirectPath([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, 2)

	var got []Point
	for {
		p, ok := ap.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	require.Equal(t, []Point{{X: 1, Y: 0}, {X: 2, Y: 0}}, got)
	require.Equal(t, 2, ap.Cost())
}

func TestAbstractPathNextPanicsOnUncachedSegment(t *testing.T) {
	pc := &PathCache{} // rematerializeSegment is never reached: panic fires first
	ap := newAbstractPath(pc, 5, []abstractSegment{
		{raw: &PathSegment{From: Point{X: 0, Y: 0}, To: Point{X: 1, Y: 0}, Cost: 5}},
	})

	require.Panics(t, func() { ap.Next() })
}

func TestAbstractPathSafeNextRematerializesStitchEdge(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	pc := New(10, 10, openGrid(10, 10), nb, NewConfig(WithChunkSize(5), WithCachePaths(false)))

	// A cross-chunk stitch edge is always just its two endpoints,
	// reconstructable without ever touching the cost function's logic
	// beyond what rematerializeSegment needs.
	seg := PathSegment{From: Point{X: 4, Y: 0}, To: Point{X: 5, Y: 0}, Cost: 1}
	ap := newAbstractPath(pc, 1, []abstractSegment{{raw: &seg}})

	p, ok := ap.SafeNext(openGrid(10, 10))
	require.True(t, ok)
	require.Equal(t, Point{X: 5, Y: 0}, p)

	_, ok = ap.SafeNext(openGrid(10, 10))
	require.False(t, ok)
}

func TestPathCacheWithoutCachingResolvesViaSafeNext(t *testing.T) {
	nb := neighborhood.FourWay{Width: 20, Height: 20}
	cost := openGrid(20, 20)
	pc := New(20, 20, cost, nb, NewConfig(WithChunkSize(5), WithCachePaths(false), WithAStarFallback(false)))

	ap, ok := pc.FindPath(Point{X: 0, Y: 0}, Point{X: 19, Y: 19}, cost)
	require.True(t, ok)
	require.Equal(t, 38, ap.Cost())

	tiles := drainAll(t, ap, cost)
	require.Len(t, tiles, 38)
	require.Equal(t, Point{X: 19, Y: 19}, tiles[len(tiles)-1])
}

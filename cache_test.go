package hpf

import (
	"testing"

	"github.com/edgejay/go-hpf/neighborhood"
	"github.com/stretchr/testify/require"
)

// openGrid returns a CostFunc for a w x h grid with no obstacles.
func openGrid(w, h uint32) CostFunc {
	return func(p Point) int {
		if p.X >= w || p.Y >= h {
			return -1
		}
		return 1
	}
}

func drainAll(t *testing.T, ap *AbstractPath, cost CostFunc) []Point {
	t.Helper()
	var tiles []Point
	for {
		p, ok := ap.SafeNext(cost)
		if !ok {
			break
		}
		tiles = append(tiles, p)
	}
	return tiles
}

func TestPathCacheFindPathOnOpenGrid(t *testing.T) {
	nb := neighborhood.FourWay{Width: 20, Height: 20}
	cost := openGrid(20, 20)
	cfg := NewConfig(WithChunkSize(5))
	pc := New(20, 20, cost, nb, cfg)

	start := Point{X: 0, Y: 0}
	goal := Point{X: 19, Y: 19}
	ap, ok := pc.FindPath(start, goal, cost)
	require.True(t, ok, "expected a path on an open grid")
	require.Equal(t, 38, ap.Cost(), "Manhattan distance between corners")

	tiles := drainAll(t, ap, cost)
	require.Len(t, tiles, 38)
	require.Equal(t, goal, tiles[len(tiles)-1])
	for _, tl := range tiles {
		require.NotEqual(t, start, tl, "iteration must never yield the start tile")
	}
}

func TestPathCacheFindPathDegenerateWhenStartEqualsGoal(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	cost := openGrid(10, 10)
	pc := New(10, 10, cost, nb, DefaultConfig())

	ap, ok := pc.FindPath(Point{X: 3, Y: 3}, Point{X: 3, Y: 3}, cost)
	require.True(t, ok)
	require.Equal(t, 0, ap.Cost())

	tiles := drainAll(t, ap, cost)
	require.Equal(t, []Point{{X: 3, Y: 3}}, tiles)
}

func TestPathCacheFindPathOutOfBoundsStartPanics(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	cost := openGrid(10, 10)
	pc := New(10, 10, cost, nb, DefaultConfig())

	require.Panics(t, func() {
		pc.FindPath(Point{X: 100, Y: 100}, Point{X: 1, Y: 1}, cost)
	})
}

func TestPathCacheFindPathWalledGoalNotFound(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	walled := Point{X: 5, Y: 5}
	cost := func(p Point) int {
		if p == walled {
			return -1
		}
		return openGrid(10, 10)(p)
	}
	pc := New(10, 10, cost, nb, DefaultConfig())

	_, ok := pc.FindPath(Point{X: 0, Y: 0}, walled, cost)
	require.False(t, ok)
}

func TestPathCacheFindPathAroundAWall(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	cost := func(p Point) int {
		if p.Y == 5 && p.X != 9 {
			return -1
		}
		return openGrid(10, 10)(p)
	}
	cfg := NewConfig(WithChunkSize(5))
	pc := New(10, 10, cost, nb, cfg)

	ap, ok := pc.FindPath(Point{X: 0, Y: 0}, Point{X: 0, Y: 9}, cost)
	require.True(t, ok)
	tiles := drainAll(t, ap, cost)
	for _, tl := range tiles {
		require.False(t, tl.Y == 5 && tl.X != 9, "path must detour around the wall, got tile %v", tl)
	}
	require.Equal(t, Point{X: 0, Y: 9}, tiles[len(tiles)-1])
}

func TestPathCacheFindPathsMultiGoal(t *testing.T) {
	nb := neighborhood.FourWay{Width: 20, Height: 20}
	cost := openGrid(20, 20)
	pc := New(20, 20, cost, nb, NewConfig(WithChunkSize(5)))

	// FindPaths amortizes a single start-side attach node across every
	// goal in the call (spec 4.7 step 3). Goals at (5,0) and (0,5) sit at
	// equal distance from start on opposite sides of the start chunk, so
	// whichever border node nearestNode ties to favors one over the
	// other; that tie-break-dependent cost is expected, not a bug, so
	// this test sticks to goals whose optimal cost does not depend on
	// which border node the shared attach lands on: two inside the start
	// chunk (always resolved via the direct A* fallback) and the open
	// grid's far corner (reachable at the same Manhattan cost regardless
	// of which side the attach path exits through).
	start := Point{X: 0, Y: 0}
	goals := map[Point]struct{}{
		{X: 3, Y: 3}:   {},
		{X: 4, Y: 4}:   {},
		{X: 19, Y: 19}: {},
	}
	results := pc.FindPaths(start, goals, cost)
	require.Len(t, results, 3)
	require.Equal(t, 6, results[Point{X: 3, Y: 3}].Cost())
	require.Equal(t, 8, results[Point{X: 4, Y: 4}].Cost())
	require.Equal(t, 38, results[Point{X: 19, Y: 19}].Cost())
}

func TestPathCacheFindPathsSkipsUnreachableGoal(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	walled := Point{X: 5, Y: 5}
	cost := func(p Point) int {
		if p == walled {
			return -1
		}
		return openGrid(10, 10)(p)
	}
	pc := New(10, 10, cost, nb, DefaultConfig())

	results := pc.FindPaths(Point{X: 0, Y: 0}, map[Point]struct{}{
		{X: 9, Y: 9}: {},
		walled:       {},
	}, cost)
	require.Len(t, results, 1)
	_, ok := results[walled]
	require.False(t, ok)
}

func TestPathCacheFindClosestGoal(t *testing.T) {
	nb := neighborhood.FourWay{Width: 20, Height: 20}
	cost := openGrid(20, 20)
	pc := New(20, 20, cost, nb, NewConfig(WithChunkSize(5)))

	goals := map[Point]struct{}{
		{X: 19, Y: 19}: {},
		{X: 2, Y: 2}:   {},
		{X: 10, Y: 0}:  {},
	}
	g, ap, ok := pc.FindClosestGoal(Point{X: 0, Y: 0}, goals, cost)
	require.True(t, ok)
	require.Equal(t, Point{X: 2, Y: 2}, g)
	require.Equal(t, 4, ap.Cost())
}

func TestPathCacheTilesChangedOpensNewPath(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	sealed := func(p Point) int {
		if p.Y == 5 {
			return -1
		}
		return openGrid(10, 10)(p)
	}
	cfg := NewConfig(WithChunkSize(5))
	pc := New(10, 10, sealed, nb, cfg)

	_, ok := pc.FindPath(Point{X: 0, Y: 0}, Point{X: 0, Y: 9}, sealed)
	require.False(t, ok, "a fully sealed row leaves no path to the far side")

	opened := func(p Point) int {
		if p == (Point{X: 9, Y: 5}) {
			return 1
		}
		return sealed(p)
	}
	pc.TilesChanged([]Point{{X: 9, Y: 5}}, opened)

	ap, ok := pc.FindPath(Point{X: 0, Y: 0}, Point{X: 0, Y: 9}, opened)
	require.True(t, ok, "reopening the gap and reporting it should restore the path")
	tiles := drainAll(t, ap, opened)
	require.Contains(t, tiles, Point{X: 9, Y: 5})
	require.Equal(t, Point{X: 0, Y: 9}, tiles[len(tiles)-1])
}

func TestPathCacheConfigAccessor(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	cfg := NewConfig(WithChunkSize(7))
	pc := New(10, 10, openGrid(10, 10), nb, cfg)
	require.Equal(t, 7, pc.Config().ChunkSize)
}

func TestPathCacheInspectNodesVisitsEveryNode(t *testing.T) {
	nb := neighborhood.FourWay{Width: 10, Height: 10}
	pc := New(10, 10, openGrid(10, 10), nb, NewConfig(WithChunkSize(5)))

	count := 0
	pc.InspectNodes(func(Node) { count++ })
	require.Greater(t, count, 0)
	require.Equal(t, pc.nodes.Len(), count)
}

package hpf

import "github.com/edgejay/go-hpf/internal/search"

// gridSpace adapts a Neighborhood + CostFunc + optional region predicate
// into the generic search.Space[Point] the grid-level A*/Dijkstra kernels
// need. passable, when non-nil, additionally restricts expansion to a
// region — e.g. "inside this chunk's rectangle" for intra-chunk searches.
type gridSpace struct {
	nb       Neighborhood
	cost     CostFunc
	passable func(Point) bool
}

func (g gridSpace) Neighbors(id Point, out []Point) []Point {
	start := len(out)
	out = g.nb.Neighbors(id, g.cost, out)
	if g.passable == nil {
		return out
	}
	write := start
	for _, p := range out[start:] {
		if g.passable(p) {
			out[write] = p
			write++
		}
	}
	return out[:write]
}

func (g gridSpace) Cost(from, to Point) int {
	return g.cost(to)
}

func (g gridSpace) Heuristic(a, b Point) int {
	return g.nb.Heuristic(a, b)
}

// gridAStar runs a single-goal A* restricted to region (nil = whole
// grid).
func gridAStar(nb Neighborhood, cost CostFunc, region func(Point) bool, start, goal Point, sizeHint int) (Path[Point], bool) {
	space := gridSpace{nb: nb, cost: cost, passable: region}
	tiles, total, ok := search.AStar[Point](space, start, goal, sizeHint)
	if !ok {
		return Path[Point]{}, false
	}
	return NewPath(tiles, total), true
}

// gridDijkstra runs a multi-goal uniform-cost search restricted to
// region.
func gridDijkstra(nb Neighborhood, cost CostFunc, region func(Point) bool, start Point, goals map[Point]struct{}, onlyClosest bool, sizeHint int) map[Point]search.Result[Point] {
	space := gridSpace{nb: nb, cost: cost, passable: region}
	return search.Dijkstra[Point](space, start, goals, onlyClosest, sizeHint)
}

func reversedPoints(p []Point) []Point {
	r := make([]Point, len(p))
	for i, v := range p {
		r[len(p)-1-i] = v
	}
	return r
}

package search

import "testing"

// gridSpace is a tiny test double: a rectangular grid of ints with a set
// of blocked cells, addressed by a [2]int id.
type gridSpace struct {
	w, h   int
	blocked map[[2]int]bool
}

func (g *gridSpace) Neighbors(id [2]int, out [][2]int) [][2]int {
	dirs := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for _, d := range dirs {
		n := [2]int{id[0] + d[0], id[1] + d[1]}
		if n[0] < 0 || n[1] < 0 || n[0] >= g.w || n[1] >= g.h {
			continue
		}
		if g.blocked[n] {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (g *gridSpace) Cost(from, to [2]int) int { return 1 }

func (g *gridSpace) Heuristic(a, b [2]int) int {
	dx := a[0] - b[0]
	if dx < 0 {
		dx = -dx
	}
	dy := a[1] - b[1]
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func TestAStarFindsShortestPath(t *testing.T) {
	g := &gridSpace{w: 5, h: 5, blocked: map[[2]int]bool{}}
	path, cost, ok := AStar[[2]int](g, [2]int{0, 0}, [2]int{4, 4}, 0)
	if !ok {
		t.Fatal("expected a path")
	}
	if cost != 8 {
		t.Errorf("cost = %d, want 8", cost)
	}
	if path[0] != ([2]int{0, 0}) || path[len(path)-1] != ([2]int{4, 4}) {
		t.Errorf("path endpoints wrong: %v", path)
	}
	if len(path) != cost+1 {
		t.Errorf("len(path) = %d, want %d", len(path), cost+1)
	}
}

func TestAStarStartEqualsGoal(t *testing.T) {
	g := &gridSpace{w: 3, h: 3, blocked: map[[2]int]bool{}}
	path, cost, ok := AStar[[2]int](g, [2]int{1, 1}, [2]int{1, 1}, 0)
	if !ok || cost != 0 || len(path) != 1 {
		t.Fatalf("degenerate path wrong: path=%v cost=%d ok=%v", path, cost, ok)
	}
}

func TestAStarNoPathWhenWalledOff(t *testing.T) {
	g := &gridSpace{w: 3, h: 3, blocked: map[[2]int]bool{
		{1, 0}: true, {1, 1}: true, {1, 2}: true,
	}}
	_, _, ok := AStar[[2]int](g, [2]int{0, 0}, [2]int{2, 2}, 0)
	if ok {
		t.Fatal("expected no path across a full wall")
	}
}

func TestAStarGoesAroundObstacle(t *testing.T) {
	g := &gridSpace{w: 5, h: 5, blocked: map[[2]int]bool{
		{2, 0}: true, {2, 1}: true, {2, 2}: true, {2, 3}: true,
	}}
	_, cost, ok := AStar[[2]int](g, [2]int{0, 0}, [2]int{4, 0}, 0)
	if !ok {
		t.Fatal("expected a path around the obstacle")
	}
	if cost != 12 {
		t.Errorf("cost = %d, want 12 (must detour around the wall)", cost)
	}
}

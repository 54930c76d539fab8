package neighborhood

// EightWay is an 8-connected (4-way + diagonals) movement model, with the
// Chebyshev (diagonal) distance as its heuristic.
type EightWay struct {
	Width, Height uint32
}

var eightWayOffsets = [8][2]int64{
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

func (e EightWay) Neighbors(p Point, cost func(Point) int, out []Point) []Point {
	for _, d := range eightWayOffsets {
		np, ok := offset(p, d, e.Width, e.Height)
		if !ok {
			continue
		}
		if cost(np) < 0 {
			continue
		}
		out = append(out, np)
	}
	return out
}

func (e EightWay) AllNeighbors(p Point, out []Point) []Point {
	for _, d := range eightWayOffsets {
		if np, ok := offset(p, d, e.Width, e.Height); ok {
			out = append(out, np)
		}
	}
	return out
}

func (e EightWay) Heuristic(a, b Point) int {
	return chebyshev(a, b)
}

func chebyshev(a, b Point) int {
	dx := int(absDiff(a.X, b.X))
	dy := int(absDiff(a.Y, b.Y))
	if dx > dy {
		return dx
	}
	return dy
}

package neighborhood

// FourWay is a 4-connected (up/down/left/right) movement model over a
// width x height grid, with the Manhattan distance as its heuristic.
type FourWay struct {
	Width, Height uint32
}

var fourWayOffsets = [4][2]int64{
	{0, -1}, // North
	{1, 0},  // East
	{0, 1},  // South
	{-1, 0}, // West
}

func (f FourWay) Neighbors(p Point, cost func(Point) int, out []Point) []Point {
	for _, d := range fourWayOffsets {
		np, ok := offset(p, d, f.Width, f.Height)
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

func (f FourWay) AllNeighbors(p Point, out []Point) []Point {
	for _, d := range fourWayOffsets {
		if np, ok := offset(p, d, f.Width, f.Height); ok {
			out = append(out, np)
		}
	}
	return out
}

func (f FourWay) Heuristic(a, b Point) int {
	return manhattan(a, b)
}

func offset(p Point, d [2]int64, width, height uint32) (Point, bool) {
	x := int64(p.X) + d[0]
	y := int64(p.Y) + d[1]
	if x < 0 || y < 0 || x >= int64(width) || y >= int64(height) {
		return Point{}, false
	}
	return Point{X: uint32(x), Y: uint32(y)}, true
}

func manhattan(a, b Point) int {
	return int(absDiff(a.X, b.X)) + int(absDiff(a.Y, b.Y))
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

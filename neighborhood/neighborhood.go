// Package neighborhood supplies the tile-adjacency and heuristic contract
// that the pathfinding engine is polymorphic over. Implementations decide
// which tile offsets count as neighbors and provide an admissible distance
// estimate for A*.
package neighborhood

// Point identifies a single tile by its grid coordinates.
type Point struct {
	X, Y uint32
}

// Neighborhood is the capability set the engine needs from a movement
// model: which tiles are adjacent to a given tile, and how far apart two
// tiles are estimated to be.
type Neighborhood interface {
	// Neighbors appends the in-bounds, passable neighbors of p to out and
	// returns the extended slice.
	Neighbors(p Point, cost func(Point) int, out []Point) []Point

	// AllNeighbors appends every in-bounds neighbor of p to out, including
	// impassable ones. Used by the engine to detect tiles adjacent across
	// a chunk border, where passability is irrelevant to the question
	// "is there a node here to stitch to".
	AllNeighbors(p Point, out []Point) []Point

	// Heuristic returns an admissible (never-overestimating) lower bound
	// on the cost of moving from a to b.
	Heuristic(a, b Point) int
}

// InBounds reports whether p lies within a width x height grid.
func InBounds(p Point, width, height uint32) bool {
	return p.X < width && p.Y < height
}

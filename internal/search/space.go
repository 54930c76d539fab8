// Package search holds the generic A* and Dijkstra kernels shared by the
// tile-level grid search and the abstract node-graph search. Both callers
// adapt their own identifier type (a tile Point or a NodeID) through the
// small Space interface below, so the open-set/closed-set machinery is
// written and tested once.
package search

// Space is the capability a caller must supply to run a search over some
// identifier space ID. Neighbors is expected to already have filtered out
// impassable or out-of-region candidates; the kernels never consult a
// separate passability predicate.
type Space[ID comparable] interface {
	// Neighbors appends the walkable neighbors of id to out and returns
	// the extended slice. Implementations reuse out as scratch space.
	Neighbors(id ID, out []ID) []ID

	// Cost returns the cost of moving from a neighbor pair produced by
	// Neighbors. Always non-negative for pairs Neighbors actually
	// returns.
	Cost(from, to ID) int

	// Heuristic returns an admissible cost estimate between two ids.
	// Only AStar calls it; Dijkstra orders its frontier by path cost
	// alone and never consults Heuristic.
	Heuristic(a, b ID) int
}

// Result is a found path and its total cost.
type Result[ID comparable] struct {
	Path []ID
	Cost int
}

func reconstruct[ID comparable](cameFrom map[ID]ID, start, end ID) []ID {
	path := []ID{end}
	cur := end
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

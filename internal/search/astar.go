package search

// AStar runs a single-goal, heuristic-guided search from start to goal.
// sizeHint presizes the internal open/closed containers; it is purely an
// allocation optimization and may be 0.
//
// Returns the path (including both endpoints), its total cost, and
// whether a path was found. start == goal returns the degenerate
// single-element path at cost 0.
func AStar[ID comparable](space Space[ID], start, goal ID, sizeHint int) ([]ID, int, bool) {
	if start == goal {
		return []ID{start}, 0, true
	}

	open := newOpenSet[ID](sizeHint)
	cameFrom := make(map[ID]ID, sizeHint)
	gScore := make(map[ID]int, sizeHint)
	closed := make(map[ID]bool, sizeHint)

	gScore[start] = 0
	open.push(start, 0, space.Heuristic(start, goal))

	var neighbors []ID
	for open.Len() > 0 {
		cur := open.pop()
		if cur.id == goal {
			return reconstruct(cameFrom, start, goal), cur.g, true
		}
		if closed[cur.id] {
			continue
		}
		closed[cur.id] = true

		neighbors = space.Neighbors(cur.id, neighbors[:0])
		for _, n := range neighbors {
			if closed[n] {
				continue
			}
			step := space.Cost(cur.id, n)
			if step < 0 {
				continue
			}
			newG := cur.g + step
			if g, ok := gScore[n]; ok && newG >= g {
				continue
			}
			gScore[n] = newG
			cameFrom[n] = cur.id
			open.push(n, newG, newG+space.Heuristic(n, goal))
		}
	}

	return nil, 0, false
}

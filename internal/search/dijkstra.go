package search

// Dijkstra runs a uniform-cost, multi-goal search from start. It returns a
// Result for every member of goals that was reached. If onlyClosest is
// true, the search stops as soon as the first goal settles (the returned
// map then has at most one entry).
//
// sizeHint presizes the internal containers and is purely an allocation
// optimization.
func Dijkstra[ID comparable](space Space[ID], start ID, goals map[ID]struct{}, onlyClosest bool, sizeHint int) map[ID]Result[ID] {
	results := make(map[ID]Result[ID], len(goals))
	if len(goals) == 0 {
		return results
	}

	remaining := len(goals)
	if _, ok := goals[start]; ok {
		results[start] = Result[ID]{Path: []ID{start}, Cost: 0}
		remaining--
		if onlyClosest || remaining == 0 {
			return results
		}
	}

	open := newOpenSet[ID](sizeHint)
	cameFrom := make(map[ID]ID, sizeHint)
	gScore := make(map[ID]int, sizeHint)
	closed := make(map[ID]bool, sizeHint)

	gScore[start] = 0
	open.push(start, 0, 0)

	var neighbors []ID
	for open.Len() > 0 && remaining > 0 {
		cur := open.pop()
		if closed[cur.id] {
			continue
		}
		closed[cur.id] = true

		if _, isGoal := goals[cur.id]; isGoal && cur.id != start {
			results[cur.id] = Result[ID]{Path: reconstruct(cameFrom, start, cur.id), Cost: cur.g}
			remaining--
			if onlyClosest {
				break
			}
			if remaining == 0 {
				break
			}
		}

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
			open.push(n, newG, newG)
		}
	}

	return results
}

package hpf

import "log/slog"

// FindPath resolves a single start-to-goal query. It panics if start is
// outside the grid the cache was built for; an out-of-bounds goal, or an
// impassable start or goal, is a query outcome, not a programmer error,
// and returns ok == false instead.
func (pc *PathCache) FindPath(start, goal Point, cost CostFunc) (*AbstractPath, bool) {
	if !pc.inBounds(start) {
		outOfBoundsPanic("start", start, pc.width, pc.height)
	}
	if !pc.inBounds(goal) || cost(start) < 0 || cost(goal) < 0 {
		return nil, false
	}
	if start == goal {
		return newDirectPath([]Point{start, start}, 0), true
	}

	startChunk := pc.chunkAt(start)
	id0, startPath, startCost, ok := startChunk.nearestNode(pc.nodes, cost, pc.nb, start, false)
	if !ok {
		return pc.directFallback(start, goal, cost)
	}

	goalChunk := pc.chunkAt(goal)
	id1, goalPath, goalCost, ok := goalChunk.nearestNode(pc.nodes, cost, pc.nb, goal, true)
	if !ok {
		return pc.directFallback(start, goal, cost)
	}

	nodeSeq, edgeCost, ok := graphAStar(pc.nodes, pc.nb, id0, id1, pc.graphSizeHint(start, goal))
	if !ok {
		return nil, false
	}

	startAttach := resolveAttach{node: id0, path: startPath, cost: startCost}
	goalAttach := resolveAttach{node: id1, path: goalPath, cost: goalCost}
	return pc.resolve(nodeSeq, start, goal, startAttach, goalAttach, edgeCost, cost, nil), true
}

func (pc *PathCache) directFallback(start, goal Point, cost CostFunc) (*AbstractPath, bool) {
	path, ok := gridAStar(pc.nb, cost, nil, start, goal, pc.gridSizeHint(start, goal))
	if !ok {
		return nil, false
	}
	return newDirectPath(path.Items(), path.Cost()), true
}

// snappedGoal is a goal point together with its resolved attach
// information once it has been snapped to a border node.
type snappedGoal struct {
	point  Point
	attach resolveAttach
}

// snapGoals attaches every live goal to its nearest node, grouping the
// results by node id for a multi-goal graph search. Goals whose chunk
// has no border nodes at all (isolated cave) are returned separately so
// the caller can fall back to a direct search for them.
func (pc *PathCache) snapGoals(goals map[Point]struct{}, cost CostFunc) (byNode map[NodeID]snappedGoal, isolated []Point) {
	byNode = make(map[NodeID]snappedGoal, len(goals))
	for g := range goals {
		gc := pc.chunkAt(g)
		id, path, c, ok := gc.nearestNode(pc.nodes, cost, pc.nb, g, true)
		if !ok {
			isolated = append(isolated, g)
			continue
		}
		byNode[id] = snappedGoal{point: g, attach: resolveAttach{node: id, path: path, cost: c}}
	}
	return byNode, isolated
}

// FindPaths resolves one-to-many queries in a single multi-goal graph
// search, amortizing the start-side work across every goal.
func (pc *PathCache) FindPaths(start Point, goals map[Point]struct{}, cost CostFunc) map[Point]*AbstractPath {
	if !pc.inBounds(start) {
		outOfBoundsPanic("start", start, pc.width, pc.height)
	}
	result := make(map[Point]*AbstractPath, len(goals))
	if cost(start) < 0 {
		return result
	}

	live := make(map[Point]struct{}, len(goals))
	for g := range goals {
		if g == start {
			result[g] = newDirectPath([]Point{start, start}, 0)
			continue
		}
		if pc.inBounds(g) && cost(g) >= 0 {
			live[g] = struct{}{}
		}
	}
	if len(live) == 0 {
		return result
	}

	startChunk := pc.chunkAt(start)
	id0, startPath, startCost, ok := startChunk.nearestNode(pc.nodes, cost, pc.nb, start, false)
	if !ok {
		for g := range live {
			if ap, ok := pc.directFallback(start, g, cost); ok {
				result[g] = ap
			}
		}
		return result
	}
	startAttach := resolveAttach{node: id0, path: startPath, cost: startCost}

	byNode, isolated := pc.snapGoals(live, cost)
	for _, g := range isolated {
		if ap, ok := pc.directFallback(start, g, cost); ok {
			result[g] = ap
		}
	}
	if len(byNode) == 0 {
		return result
	}

	nodeGoals := make(map[NodeID]struct{}, len(byNode))
	for id := range byNode {
		nodeGoals[id] = struct{}{}
	}
	graphResults := graphDijkstra(pc.nodes, pc.nb, id0, nodeGoals, false, pc.nodes.Len())

	sc := newShortcutCache()
	for id, r := range graphResults {
		sg := byNode[id]
		result[sg.point] = pc.resolve(r.Path, start, sg.point, startAttach, sg.attach, r.Cost, cost, sc)
	}
	return result
}

// FindClosestGoal resolves a one-to-many query down to the single
// graph-nearest goal. "Nearest" is evaluated at the abstract-graph
// level, matching the hierarchical search's inherent non-optimality.
func (pc *PathCache) FindClosestGoal(start Point, goals map[Point]struct{}, cost CostFunc) (Point, *AbstractPath, bool) {
	if !pc.inBounds(start) {
		outOfBoundsPanic("start", start, pc.width, pc.height)
	}
	if cost(start) < 0 {
		return Point{}, nil, false
	}

	live := make(map[Point]struct{}, len(goals))
	for g := range goals {
		if pc.inBounds(g) && cost(g) >= 0 {
			live[g] = struct{}{}
		}
	}
	if _, ok := live[start]; ok {
		return start, newDirectPath([]Point{start, start}, 0), true
	}
	if len(live) == 0 {
		return Point{}, nil, false
	}

	startChunk := pc.chunkAt(start)
	id0, startPath, startCost, ok := startChunk.nearestNode(pc.nodes, cost, pc.nb, start, false)
	if !ok {
		var best Point
		var bestPath Path[Point]
		found := false
		for g := range live {
			if path, ok := gridAStar(pc.nb, cost, nil, start, g, pc.gridSizeHint(start, g)); ok {
				if !found || path.Cost() < bestPath.Cost() {
					best, bestPath, found = g, path, true
				}
			}
		}
		if !found {
			return Point{}, nil, false
		}
		return best, newDirectPath(bestPath.Items(), bestPath.Cost()), true
	}
	startAttach := resolveAttach{node: id0, path: startPath, cost: startCost}

	byNode, _ := pc.snapGoals(live, cost)
	if len(byNode) == 0 {
		return Point{}, nil, false
	}
	nodeGoals := make(map[NodeID]struct{}, len(byNode))
	for id := range byNode {
		nodeGoals[id] = struct{}{}
	}

	graphResults := graphDijkstra(pc.nodes, pc.nb, id0, nodeGoals, true, pc.nodes.Len())
	for id, r := range graphResults {
		sg := byNode[id]
		ap := pc.resolve(r.Path, start, sg.point, startAttach, sg.attach, r.Cost, cost, nil)
		return sg.point, ap, true
	}
	return Point{}, nil, false
}

// InspectNodes calls fn once for every live abstract-graph node, in
// unspecified order. Intended for debugging and visualization, not for
// use on a hot query path.
func (pc *PathCache) InspectNodes(fn func(Node)) {
	pc.nodes.Each(func(n *Node) { fn(*n) })
}

// TilesChanged tells the cache that the passability or cost of tiles
// changed, and incrementally repairs every chunk whose border or
// interior was affected: border nodes are re-selected on renewed sides,
// intra-chunk edges are recomputed from scratch for every chunk whose
// own tiles changed and extended to newly added border nodes for chunks
// touched only through a shared border, and cross-chunk stitching is
// restored for every node whose edges were invalidated.
func (pc *PathCache) TilesChanged(tiles []Point, cost CostFunc) {
	if len(tiles) == 0 {
		return
	}
	log := pc.cfg.logger()
	threshold := pc.cfg.nodeSpacing()

	dirty := make(map[int]*dirtySides)
	touched := make(map[int]struct{})
	// selfDirty holds chunks whose own tiles are in the changed set, as
	// opposed to chunks only touched because a neighbor's border shifted.
	selfDirty := make(map[int]struct{})

	markSide := func(idx int, c *Chunk, p Point, d Direction) {
		ds, ok := dirty[idx]
		if !ok {
			ds = newDirtySides()
			dirty[idx] = ds
		}
		if c.IsCorner(p) {
			ds.markCorner(d, p)
		} else {
			ds.markInner(d)
		}
		touched[idx] = struct{}{}
	}

	for _, t := range tiles {
		if !pc.inBounds(t) {
			continue
		}
		cx, cy := pc.chunkCoords(t)
		idx := pc.chunkIndex(cx, cy)
		c := pc.chunks[idx]
		touched[idx] = struct{}{}
		selfDirty[idx] = struct{}{}

		for _, d := range directions {
			if !c.Sides[d] || !c.AtSide(t, d) {
				continue
			}
			markSide(idx, c, t, d)

			dx, dy := d.chunkOffset()
			ncx, ncy := cx+dx, cy+dy
			if ncx < 0 || ncx >= pc.numChunksW || ncy < 0 || ncy >= pc.numChunksH {
				continue
			}
			nidx := pc.chunkIndex(ncx, ncy)
			nc := pc.chunks[nidx]
			neighborTile := Point{X: uint32(int(t.X) + dx), Y: uint32(int(t.Y) + dy)}
			markSide(nidx, nc, neighborTile, d.Opposite())
		}
	}

	// Removal: drop border nodes the renewal kind demands be re-placed.
	for idx, ds := range dirty {
		if !ds.any() {
			continue
		}
		c := pc.chunks[idx]
		for _, d := range directions {
			kind := ds.kinds[d]
			if kind.level == renewalNo || !c.Sides[d] {
				continue
			}
			for _, p := range c.borderTiles(d) {
				id, ok := pc.nodes.At(p)
				if !ok {
					continue
				}
				if _, inSet := c.NodeSet[id]; !inSet {
					continue
				}
				if kind.removesPos(p, c.IsCorner(p)) {
					delete(c.NodeSet, id)
					pc.nodes.Remove(id)
				}
			}
		}
	}

	// Regeneration: re-select border nodes on every renewed side, tracking
	// which nodes are genuinely new so mirror-touched chunks can extend to
	// them cheaply instead of rebuilding from scratch.
	newNodes := make(map[int][]NodeID)
	for idx, ds := range dirty {
		if !ds.any() {
			continue
		}
		c := pc.chunks[idx]
		for _, d := range directions {
			if ds.kinds[d].level == renewalNo || !c.Sides[d] {
				continue
			}
			for _, p := range c.calculateSideNodes(d, cost, threshold) {
				if cost(p) < 0 {
					continue
				}
				if id, exists := pc.nodes.At(p); exists {
					c.NodeSet[id] = struct{}{}
					continue
				}
				n := pc.nodes.Add(p, cost(p))
				c.NodeSet[n.ID] = struct{}{}
				newNodes[idx] = append(newNodes[idx], n.ID)
			}
		}
	}

	// Chunks whose own tiles changed need a full rebuild: an interior
	// cost edit can alter the walk between two border nodes that never
	// moved. Chunks touched only because a neighbor's shared border was
	// renewed had no interior change, so their existing intra-chunk
	// edges are still valid; they only need extending to cover whatever
	// border nodes regeneration just added (edges to removed nodes
	// already went with them in NodeList.Remove).
	for idx := range selfDirty {
		c := pc.chunks[idx]
		for id := range c.NodeSet {
			pc.nodes.ClearEdges(id)
		}
	}
	for idx := range selfDirty {
		c := pc.chunks[idx]
		c.rebuildIntraEdges(pc.nodes, cost, pc.nb, pc.cfg)
	}
	for idx := range touched {
		if _, ok := selfDirty[idx]; ok {
			continue
		}
		c := pc.chunks[idx]
		c.addNodes(pc.nodes, cost, pc.nb, pc.cfg, newNodes[idx])
	}

	var changed []NodeID
	for idx := range touched {
		c := pc.chunks[idx]
		for id := range c.NodeSet {
			changed = append(changed, id)
		}
	}
	pc.connectNodes(changed)

	log.Debug("hpf: tiles changed",
		slog.Int("tiles", len(tiles)),
		slog.Int("chunks_touched", len(touched)),
		slog.Int("nodes_total", pc.nodes.Len()))
}

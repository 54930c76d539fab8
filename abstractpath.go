package hpf

// AbstractPath is a lazily-materialized tile sequence: the result of a
// PathCache query. Iteration never yields the start tile, and always
// ends by yielding the goal tile; the only exception is the degenerate
// start == goal path, which yields that single tile once, as the goal.
//
// When the cache was built with CachePaths disabled, some of the edges
// composing the path carry only endpoints and cost, not a tile
// sequence. Rematerializing those needs a cost function, which Next
// does not have, so calling Next on such a path is a programmer error;
// use SafeNext instead.
type AbstractPath struct {
	pc       *PathCache
	cost     int
	segments []abstractSegment
	segIdx   int
	tileIdx  int
}

// abstractSegment is either already resolved into concrete tiles, or
// carries a raw edge payload awaiting lazy rematerialization.
type abstractSegment struct {
	tiles []Point
	raw   *PathSegment
}

func newAbstractPath(pc *PathCache, cost int, segments []abstractSegment) *AbstractPath {
	return &AbstractPath{pc: pc, cost: cost, segments: segments}
}

// newDirectPath wraps a fully concrete tile sequence (items include the
// start tile) as a single-segment AbstractPath, used both for the
// isolated-cave and short-path A* fallbacks.
func newDirectPath(items []Point, cost int) *AbstractPath {
	tiles := items
	if len(tiles) > 0 {
		tiles = tiles[1:]
	}
	return &AbstractPath{cost: cost, segments: []abstractSegment{{tiles: tiles}}}
}

// Cost returns the path's total walk cost.
func (ap *AbstractPath) Cost() int { return ap.cost }

// Next advances the iterator and returns the next tile after start, in
// walk order. ok is false once the goal has already been returned.
// Panics if the next tile lives in an uncached segment — use SafeNext
// in that case.
func (ap *AbstractPath) Next() (Point, bool) {
	return ap.advance(nil)
}

// SafeNext is like Next but rematerializes any uncached segment it
// encounters using cost, which must be consistent with the CostFunc the
// cache was built and queried with.
func (ap *AbstractPath) SafeNext(cost CostFunc) (Point, bool) {
	return ap.advance(cost)
}

func (ap *AbstractPath) advance(cost CostFunc) (Point, bool) {
	for ap.segIdx < len(ap.segments) {
		seg := &ap.segments[ap.segIdx]
		if seg.tiles == nil && seg.raw != nil {
			if cost == nil {
				panic("hpf: AbstractPath.Next called on a path with an uncached segment; use SafeNext(cost) instead")
			}
			full := ap.pc.rematerializeSegment(*seg.raw, cost)
			if len(full) > 0 {
				full = full[1:]
			}
			seg.tiles = full
			seg.raw = nil
		}
		if ap.tileIdx < len(seg.tiles) {
			t := seg.tiles[ap.tileIdx]
			ap.tileIdx++
			return t, true
		}
		ap.segIdx++
		ap.tileIdx = 0
	}
	return Point{}, false
}

// shortcutCache memoizes recomputed start-side attach paths by their
// target node position across the several goal resolutions in one
// FindPaths call. It is only valid when the query's start tile is held
// fixed across all uses, which FindPaths guarantees.
type shortcutCache struct {
	byTarget map[Point]Path[Point]
}

func newShortcutCache() *shortcutCache {
	return &shortcutCache{byTarget: make(map[Point]Path[Point])}
}

func (sc *shortcutCache) lookup(nb Neighborhood, cost CostFunc, region func(Point) bool, from, to Point, sizeHint int) (Path[Point], bool) {
	if sc != nil {
		if p, ok := sc.byTarget[to]; ok {
			return p, true
		}
	}
	path, ok := gridAStar(nb, cost, region, from, to, sizeHint)
	if ok && sc != nil {
		sc.byTarget[to] = path
	}
	return path, ok
}

// resolveAttach describes one snapped endpoint of a query: the node it
// attached to, the raw walk from the query point to that node (already
// in forward order, i.e. from query point to node for the start side,
// and from node to query point for the goal side), and its cost.
type resolveAttach struct {
	node NodeID
	path []Point
	cost int
}

// resolve turns an abstract node sequence plus its two snapped
// endpoints into an AbstractPath, applying the start/goal shortcut
// refinements and the short-path direct-search fallback described by
// the cache's configuration.
func (pc *PathCache) resolve(nodeSeq []NodeID, start, goal Point, startAttach, goalAttach resolveAttach, edgeCost int, cost CostFunc, sc *shortcutCache) *AbstractPath {
	total := startAttach.cost + edgeCost + goalAttach.cost

	if len(nodeSeq) == 1 || (pc.cfg.AStarFallback && total < 2*pc.cfg.ChunkSize) {
		path, ok := gridAStar(pc.nb, cost, nil, start, goal, pc.gridSizeHint(start, goal))
		if !ok {
			invariantViolation("abstract path exists between %v and %v but direct search found none", start, goal)
		}
		return newDirectPath(path.Items(), path.Cost())
	}

	startChunk := pc.chunkAt(start)
	goalChunk := pc.chunkAt(goal)

	j := 0
	for j+1 < len(nodeSeq) {
		n, ok := pc.nodes.Get(nodeSeq[j+1])
		if !ok || !startChunk.Contains(n.Pos) {
			break
		}
		j++
	}
	if j > 0 || pc.cfg.PerfectPaths {
		target, ok := pc.nodes.Get(nodeSeq[j])
		if !ok {
			invariantViolation("dangling node id %v in resolved sequence", nodeSeq[j])
		}
		hint := int(startChunk.Width) * int(startChunk.Height)
		if p, ok := sc.lookup(pc.nb, cost, startChunk.Contains, start, target.Pos, hint); ok {
			startAttach = resolveAttach{node: nodeSeq[j], path: p.Items(), cost: p.Cost()}
		}
	}
	nodeSeq = nodeSeq[j:]

	i := len(nodeSeq) - 1
	for i-1 >= 0 {
		n, ok := pc.nodes.Get(nodeSeq[i-1])
		if !ok || !goalChunk.Contains(n.Pos) {
			break
		}
		i--
	}
	if i < len(nodeSeq)-1 || pc.cfg.PerfectPaths {
		source, ok := pc.nodes.Get(nodeSeq[i])
		if !ok {
			invariantViolation("dangling node id %v in resolved sequence", nodeSeq[i])
		}
		hint := int(goalChunk.Width) * int(goalChunk.Height)
		if p, ok := gridAStar(pc.nb, cost, goalChunk.Contains, source.Pos, goal, hint); ok {
			goalAttach = resolveAttach{node: nodeSeq[i], path: p.Items(), cost: p.Cost()}
		}
	}
	nodeSeq = nodeSeq[:i+1]

	segments := make([]abstractSegment, 0, len(nodeSeq)+1)
	segments = append(segments, abstractSegment{tiles: dropFirst(startAttach.path)})

	pathCost := startAttach.cost
	for k := 0; k+1 < len(nodeSeq); k++ {
		from, ok := pc.nodes.Get(nodeSeq[k])
		if !ok {
			invariantViolation("dangling node id %v in resolved sequence", nodeSeq[k])
		}
		seg, ok := from.Edges[nodeSeq[k+1]]
		if !ok {
			invariantViolation("missing edge %v -> %v in resolved sequence", nodeSeq[k], nodeSeq[k+1])
		}
		pathCost += seg.Cost
		if seg.Cached() {
			segments = append(segments, abstractSegment{tiles: dropFirst(seg.Tiles)})
		} else {
			segCopy := seg
			segments = append(segments, abstractSegment{raw: &segCopy})
		}
	}
	pathCost += goalAttach.cost
	segments = append(segments, abstractSegment{tiles: dropFirst(goalAttach.path)})

	return newAbstractPath(pc, pathCost, segments)
}

func dropFirst(p []Point) []Point {
	if len(p) == 0 {
		return p
	}
	return p[1:]
}

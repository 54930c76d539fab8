package hpf

import (
	"sort"

	"github.com/edgejay/go-hpf/internal/search"
	"golang.org/x/sync/errgroup"
)

// Chunk is a fixed-size square region of the grid: the unit of
// hierarchical summarization. It owns no Nodes directly — NodeList does
// — only the set of ids whose position falls on one of its active
// borders.
type Chunk struct {
	Origin  Point
	Width   uint32
	Height  uint32
	NodeSet map[NodeID]struct{}
	Sides   [4]bool
}

// Contains reports whether p lies within the chunk's rectangle.
func (c *Chunk) Contains(p Point) bool {
	return p.X >= c.Origin.X && p.X < c.Origin.X+c.Width &&
		p.Y >= c.Origin.Y && p.Y < c.Origin.Y+c.Height
}

// AtSide reports whether p lies on the chunk's boundary in direction d.
func (c *Chunk) AtSide(p Point, d Direction) bool {
	if !c.Contains(p) {
		return false
	}
	switch d {
	case North:
		return p.Y == c.Origin.Y
	case South:
		return p.Y == c.Origin.Y+c.Height-1
	case East:
		return p.X == c.Origin.X+c.Width-1
	default: // West
		return p.X == c.Origin.X
	}
}

// IsCorner reports whether p lies on two sides of the chunk at once.
func (c *Chunk) IsCorner(p Point) bool {
	sides := 0
	for _, d := range directions {
		if c.AtSide(p, d) {
			sides++
		}
	}
	return sides >= 2
}

// borderTiles enumerates, in a stable left-to-right/top-to-bottom order,
// every tile along side d of the chunk's rectangle.
func (c *Chunk) borderTiles(d Direction) []Point {
	var tiles []Point
	switch d {
	case North, South:
		y := c.Origin.Y
		if d == South {
			y = c.Origin.Y + c.Height - 1
		}
		for x := c.Origin.X; x < c.Origin.X+c.Width; x++ {
			tiles = append(tiles, Point{X: x, Y: y})
		}
	case East, West:
		x := c.Origin.X
		if d == East {
			x = c.Origin.X + c.Width - 1
		}
		for y := c.Origin.Y; y < c.Origin.Y+c.Height; y++ {
			tiles = append(tiles, Point{X: x, Y: y})
		}
	}
	return tiles
}

// selectBorderNodes picks which tiles along a border run become border
// nodes: both endpoints of every maximal passable run always, plus
// interior tiles spaced so that no two consecutive chosen tiles on the
// same run are farther apart than threshold.
func selectBorderNodes(tiles []Point, cost CostFunc, threshold int) []Point {
	var result []Point
	n := len(tiles)
	i := 0
	for i < n {
		if cost(tiles[i]) < 0 {
			i++
			continue
		}
		start := i
		for i < n && cost(tiles[i]) >= 0 {
			i++
		}
		end := i - 1 // inclusive
		runLen := end - start + 1

		result = append(result, tiles[start])
		if runLen > 1 {
			if runLen-1 > threshold {
				segments := (runLen - 1 + threshold - 1) / threshold
				for k := 1; k < segments; k++ {
					idx := start + (runLen-1)*k/segments
					result = append(result, tiles[idx])
				}
			}
			result = append(result, tiles[end])
		}
	}
	return result
}

// chunkLayout describes one chunk's position and geometry ahead of
// construction, computed once by PathCache so chunk building itself
// stays a pure function of (layout, cost, neighborhood, config).
type chunkLayout struct {
	cx, cy int
	origin Point
	width  uint32
	height uint32
	sides  [4]bool
}

// buildChunk places border nodes for a chunk and seeds its intra-chunk
// edges, into a fresh local NodeList. The caller absorbs that NodeList
// into the shared slab and rewrites NodeSet via the returned remap.
func buildChunk(layout chunkLayout, cost CostFunc, nb Neighborhood, cfg Config) (*Chunk, *NodeList) {
	c := &Chunk{
		Origin:  layout.origin,
		Width:   layout.width,
		Height:  layout.height,
		Sides:   layout.sides,
		NodeSet: make(map[NodeID]struct{}),
	}
	local := NewNodeList()

	threshold := cfg.nodeSpacing()
	candidates := make(map[Point]struct{})
	for _, d := range directions {
		if !c.Sides[d] {
			continue
		}
		for _, p := range selectBorderNodes(c.borderTiles(d), cost, threshold) {
			candidates[p] = struct{}{}
		}
	}

	for p := range candidates {
		if cost(p) < 0 {
			continue
		}
		if _, exists := local.At(p); exists {
			continue
		}
		n := local.Add(p, cost(p))
		c.NodeSet[n.ID] = struct{}{}
	}

	c.rebuildIntraEdges(local, cost, nb, cfg)
	return c, local
}

// remapNodeSet rewrites NodeSet through a NodeList.Absorb remap.
func (c *Chunk) remapNodeSet(remap map[NodeID]NodeID) {
	remapped := make(map[NodeID]struct{}, len(c.NodeSet))
	for id := range c.NodeSet {
		if newID, ok := remap[id]; ok {
			remapped[newID] = struct{}{}
		}
	}
	c.NodeSet = remapped
}

func (c *Chunk) sortedNodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(c.NodeSet))
	for id := range c.NodeSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type intraEdge struct {
	a, b NodeID
	seg  PathSegment
}

// rebuildIntraEdges recomputes every intra-chunk edge among NodeSet from
// scratch via all-pairs grid A*, optionally fanning the pair searches out
// across a worker pool and folding the resulting triples into nl.
func (c *Chunk) rebuildIntraEdges(nl *NodeList, cost CostFunc, nb Neighborhood, cfg Config) {
	for _, edge := range c.computeIntraEdges(nl, cost, nb, cfg) {
		nl.AddEdge(edge.a, edge.b, edge.seg)
	}
}

func (c *Chunk) computeIntraEdges(nl *NodeList, cost CostFunc, nb Neighborhood, cfg Config) []intraEdge {
	ids := c.sortedNodeIDs()
	if len(ids) < 2 {
		return nil
	}

	type pair struct{ a, b NodeID }
	var pairs []pair
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pairs = append(pairs, pair{ids[i], ids[j]})
		}
	}

	space := gridSpace{nb: nb, cost: cost, passable: c.Contains}
	sizeHint := int(c.Width) * int(c.Height)
	results := make([]*intraEdge, len(pairs))

	compute := func(idx int) {
		p := pairs[idx]
		na, _ := nl.Get(p.a)
		nbb, _ := nl.Get(p.b)
		tiles, total, ok := search.AStar[Point](space, na.Pos, nbb.Pos, sizeHint)
		if !ok {
			return
		}
		seg := PathSegment{From: na.Pos, To: nbb.Pos, Cost: total}
		if cfg.CachePaths {
			seg.Tiles = tiles
		}
		results[idx] = &intraEdge{a: p.a, b: p.b, seg: seg}
	}

	if cfg.Parallel && len(pairs) > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.workerLimit())
		for idx := range pairs {
			idx := idx
			g.Go(func() error {
				compute(idx)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for idx := range pairs {
			compute(idx)
		}
	}

	edges := make([]intraEdge, 0, len(pairs))
	for _, r := range results {
		if r != nil {
			edges = append(edges, *r)
		}
	}
	return edges
}

// addNodes extends intra-chunk connectivity to include newly inserted
// nodes, without recomputing edges between nodes that were already
// connected. Used by incremental update for chunks that were not
// themselves dirtied but gained border nodes because a neighbor's side
// was renewed.
func (c *Chunk) addNodes(nl *NodeList, cost CostFunc, nb Neighborhood, cfg Config, newIDs []NodeID) {
	if len(newIDs) == 0 {
		return
	}
	space := gridSpace{nb: nb, cost: cost, passable: c.Contains}
	sizeHint := int(c.Width) * int(c.Height)
	all := c.sortedNodeIDs()

	for _, newID := range newIDs {
		nNew, ok := nl.Get(newID)
		if !ok {
			continue
		}
		for _, other := range all {
			if other == newID {
				continue
			}
			if _, exists := nNew.Edges[other]; exists {
				continue
			}
			nOther, ok := nl.Get(other)
			if !ok {
				continue
			}
			tiles, total, ok := search.AStar[Point](space, nNew.Pos, nOther.Pos, sizeHint)
			if !ok {
				continue
			}
			seg := PathSegment{From: nNew.Pos, To: nOther.Pos, Cost: total}
			if cfg.CachePaths {
				seg.Tiles = tiles
			}
			nl.AddEdge(newID, other, seg)
		}
	}
}

// nearestNode finds the node in NodeSet closest to p by intra-chunk
// Dijkstra. If p already has a node, that node is returned with the
// single-tile attach path [p] at cost 0. If reverse is true, the returned tile path runs from the
// node to p instead of from p to the node — used when snapping a goal,
// whose attach path must be walked in the forward direction at
// resolution time.
func (c *Chunk) nearestNode(nl *NodeList, cost CostFunc, nb Neighborhood, p Point, reverse bool) (NodeID, []Point, int, bool) {
	if id, ok := nl.At(p); ok {
		if _, inSet := c.NodeSet[id]; inSet {
			return id, []Point{p}, 0, true
		}
	}
	if len(c.NodeSet) == 0 {
		return 0, nil, 0, false
	}

	goals := make(map[Point]struct{}, len(c.NodeSet))
	posToID := make(map[Point]NodeID, len(c.NodeSet))
	for id := range c.NodeSet {
		n, ok := nl.Get(id)
		if !ok {
			continue
		}
		goals[n.Pos] = struct{}{}
		posToID[n.Pos] = id
	}

	sizeHint := int(c.Width) * int(c.Height)
	results := gridDijkstra(nb, cost, c.Contains, p, goals, true, sizeHint)
	for endPos, res := range results {
		id := posToID[endPos]
		path := res.Path
		if reverse {
			path = reversedPoints(path)
		}
		return id, path, res.Cost, true
	}
	return 0, nil, 0, false
}

// calculateSideNodes recomputes the candidate border-node positions for
// side d, used by incremental update to regenerate a renewed side.
func (c *Chunk) calculateSideNodes(d Direction, cost CostFunc, threshold int) []Point {
	return selectBorderNodes(c.borderTiles(d), cost, threshold)
}

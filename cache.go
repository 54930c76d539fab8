package hpf

import (
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// PathCache is a precomputed hierarchical summary of a grid's
// connectivity: the abstract graph of border nodes and the chunks that
// own them. It never stores the grid itself — every query and update
// takes a fresh CostFunc.
type PathCache struct {
	width, height          uint32
	numChunksW, numChunksH int
	chunks                 []*Chunk
	nodes                  *NodeList
	nb                     Neighborhood
	cfg                    Config
}

// New builds a PathCache covering a width x height grid, partitioning it
// into ChunkSize x ChunkSize chunks (the last row/column absorbing any
// remainder), placing border nodes in each, and stitching the whole
// abstract graph together.
func New(width, height uint32, cost CostFunc, nb Neighborhood, cfg Config) *PathCache {
	cfg.validate()
	log := cfg.logger()

	chunkSize := uint32(cfg.ChunkSize)
	numChunksW := int((width + chunkSize - 1) / chunkSize)
	numChunksH := int((height + chunkSize - 1) / chunkSize)
	if numChunksW < 1 {
		numChunksW = 1
	}
	if numChunksH < 1 {
		numChunksH = 1
	}

	layouts := make([]chunkLayout, numChunksW*numChunksH)
	for cy := 0; cy < numChunksH; cy++ {
		for cx := 0; cx < numChunksW; cx++ {
			originX := uint32(cx) * chunkSize
			originY := uint32(cy) * chunkSize
			w := chunkSize
			if cx == numChunksW-1 {
				w = width - originX
			}
			h := chunkSize
			if cy == numChunksH-1 {
				h = height - originY
			}
			layouts[cy*numChunksW+cx] = chunkLayout{
				cx: cx, cy: cy,
				origin: Point{X: originX, Y: originY},
				width:  w, height: h,
				sides: [4]bool{
					North: cy > 0,
					South: cy < numChunksH-1,
					East:  cx < numChunksW-1,
					West:  cx > 0,
				},
			}
		}
	}

	type built struct {
		chunk *Chunk
		local *NodeList
	}
	results := make([]built, len(layouts))
	buildOne := func(i int) {
		c, local := buildChunk(layouts[i], cost, nb, cfg)
		results[i] = built{chunk: c, local: local}
	}
	if cfg.Parallel && len(layouts) > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.workerLimit())
		for i := range layouts {
			i := i
			g.Go(func() error { buildOne(i); return nil })
		}
		_ = g.Wait()
	} else {
		for i := range layouts {
			buildOne(i)
		}
	}

	nodes := NewNodeList()
	chunks := make([]*Chunk, len(layouts))
	for i, r := range results {
		remap := nodes.Absorb(r.local)
		r.chunk.remapNodeSet(remap)
		chunks[i] = r.chunk
	}

	pc := &PathCache{
		width: width, height: height,
		numChunksW: numChunksW, numChunksH: numChunksH,
		chunks: chunks, nodes: nodes, nb: nb, cfg: cfg,
	}
	pc.connectNodes(nil)

	log.Debug("hpf: path cache built",
		slog.Int("chunks", len(chunks)),
		slog.Int("nodes", nodes.Len()),
		slog.Uint64("width", uint64(width)),
		slog.Uint64("height", uint64(height)))

	return pc
}

// Config returns a copy of the cache's configuration.
func (pc *PathCache) Config() Config { return pc.cfg }

func (pc *PathCache) chunkIndex(cx, cy int) int { return cy*pc.numChunksW + cx }

func (pc *PathCache) chunkCoords(p Point) (int, int) {
	cx := int(p.X) / pc.cfg.ChunkSize
	cy := int(p.Y) / pc.cfg.ChunkSize
	if cx >= pc.numChunksW {
		cx = pc.numChunksW - 1
	}
	if cy >= pc.numChunksH {
		cy = pc.numChunksH - 1
	}
	return cx, cy
}

func (pc *PathCache) chunkAt(p Point) *Chunk {
	cx, cy := pc.chunkCoords(p)
	return pc.chunks[pc.chunkIndex(cx, cy)]
}

func (pc *PathCache) inBounds(p Point) bool {
	return p.X < pc.width && p.Y < pc.height
}

// gridSizeHint derives an allocation hint for a whole-grid search from
// the ratio of the query's heuristic distance to the grid's diagonal
// extent. It is purely a performance knob.
func (pc *PathCache) gridSizeHint(a, b Point) int {
	maxH := pc.nb.Heuristic(Point{X: 0, Y: 0}, Point{X: pc.width - 1, Y: pc.height - 1})
	total := int(pc.width) * int(pc.height)
	if maxH <= 0 {
		return total
	}
	hint := pc.nb.Heuristic(a, b) * total / maxH
	if hint < 1 {
		hint = 1
	}
	return hint
}

func (pc *PathCache) graphSizeHint(a, b Point) int {
	maxH := pc.nb.Heuristic(Point{X: 0, Y: 0}, Point{X: pc.width - 1, Y: pc.height - 1})
	total := pc.nodes.Len()
	if maxH <= 0 {
		return total
	}
	hint := pc.nb.Heuristic(a, b) * total / maxH
	if hint < 1 {
		hint = 1
	}
	return hint
}

// rematerializeSegment reconstructs the tile sequence of an edge
// segment that was stored without a cached path. Cross-chunk stitch
// edges are always a direct single step; intra-chunk edges are
// rematerialized by re-running a chunk-bounded grid A*.
func (pc *PathCache) rematerializeSegment(seg PathSegment, cost CostFunc) []Point {
	if seg.Cached() {
		return seg.Tiles
	}
	fromChunk := pc.chunkAt(seg.From)
	toChunk := pc.chunkAt(seg.To)
	if fromChunk == toChunk {
		hint := int(fromChunk.Width) * int(fromChunk.Height)
		path, ok := gridAStar(pc.nb, cost, fromChunk.Contains, seg.From, seg.To, hint)
		if !ok {
			invariantViolation("failed to rematerialize intra-chunk segment %v -> %v", seg.From, seg.To)
		}
		return path.Items()
	}
	return []Point{seg.From, seg.To}
}

// connectNodes stitches cross-chunk edges: for every pair of nodes at
// grid-adjacent tile positions in different chunks, adds a unit-length
// edge carrying the target's walk cost. If dirty is nil, every node is
// considered; otherwise only dirty nodes and their neighbors are
// reconsidered, which is sufficient since a new edge always touches at
// least one dirty node.
func (pc *PathCache) connectNodes(dirty []NodeID) {
	var buf [8]Point
	process := func(id NodeID) {
		n, ok := pc.nodes.Get(id)
		if !ok {
			return
		}
		candidates := pc.nb.AllNeighbors(n.Pos, buf[:0])
		for _, cand := range candidates {
			peerID, ok := pc.nodes.At(cand)
			if !ok || peerID == id {
				continue
			}
			if _, exists := n.Edges[peerID]; exists {
				continue
			}
			peer, ok := pc.nodes.Get(peerID)
			if !ok {
				continue
			}
			if pc.chunkAt(n.Pos) == pc.chunkAt(peer.Pos) {
				continue
			}
			seg := PathSegment{From: n.Pos, To: peer.Pos, Cost: peer.WalkCost}
			if pc.cfg.CachePaths {
				seg.Tiles = []Point{n.Pos, peer.Pos}
			}
			pc.nodes.AddEdge(id, peerID, seg)
		}
	}

	if dirty == nil {
		pc.nodes.Each(func(n *Node) { process(n.ID) })
		return
	}

	seen := make(map[NodeID]struct{}, len(dirty)*2)
	queue := make([]NodeID, 0, len(dirty)*2)
	for _, id := range dirty {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		queue = append(queue, id)
	}
	for _, id := range dirty {
		n, ok := pc.nodes.Get(id)
		if !ok {
			continue
		}
		for _, cand := range pc.nb.AllNeighbors(n.Pos, buf[:0]) {
			peerID, ok := pc.nodes.At(cand)
			if !ok {
				continue
			}
			if _, ok := seen[peerID]; ok {
				continue
			}
			seen[peerID] = struct{}{}
			queue = append(queue, peerID)
		}
	}
	for _, id := range queue {
		process(id)
	}
}

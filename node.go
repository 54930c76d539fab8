package hpf

// Node is a vertex of the abstract graph: a point on a chunk border
// selected as a hub, plus its bidirectional edges to other nodes.
type Node struct {
	ID       NodeID
	Pos      Point
	WalkCost int
	Edges    map[NodeID]PathSegment
}

func newNode(id NodeID, pos Point, walkCost int) *Node {
	return &Node{ID: id, Pos: pos, WalkCost: walkCost, Edges: make(map[NodeID]PathSegment)}
}

// NodeList is the single owner of every Node: a slab keyed by NodeID plus
// a reverse index from position to id. Chunks and edges refer to nodes
// only by NodeID; there are no direct cross-object references.
type NodeList struct {
	nodes   map[NodeID]*Node
	byPos   map[Point]NodeID
	nextID  NodeID
}

// NewNodeList creates an empty node slab.
func NewNodeList() *NodeList {
	return &NodeList{
		nodes: make(map[NodeID]*Node),
		byPos: make(map[Point]NodeID),
	}
}

// Len returns the number of live nodes.
func (nl *NodeList) Len() int { return len(nl.nodes) }

// Add creates a node at pos with the given walk cost and inserts it into
// the slab. It panics if a node already exists at pos — callers must
// check At first.
func (nl *NodeList) Add(pos Point, walkCost int) *Node {
	if _, exists := nl.byPos[pos]; exists {
		panic("hpf: node already exists at position")
	}
	nl.nextID++
	id := nl.nextID
	n := newNode(id, pos, walkCost)
	nl.nodes[id] = n
	nl.byPos[pos] = id
	return n
}

// Get returns the node with the given id, if it is still live.
func (nl *NodeList) Get(id NodeID) (*Node, bool) {
	n, ok := nl.nodes[id]
	return n, ok
}

// At returns the id of the node at pos, if any.
func (nl *NodeList) At(pos Point) (NodeID, bool) {
	id, ok := nl.byPos[pos]
	return id, ok
}

// Remove deletes a node and every edge referencing it.
func (nl *NodeList) Remove(id NodeID) {
	n, ok := nl.nodes[id]
	if !ok {
		return
	}
	for otherID := range n.Edges {
		if other, ok := nl.nodes[otherID]; ok {
			delete(other.Edges, id)
		}
	}
	delete(nl.byPos, n.Pos)
	delete(nl.nodes, id)
}

// ClearEdges removes every edge incident to id, without removing the
// node itself.
func (nl *NodeList) ClearEdges(id NodeID) {
	n, ok := nl.nodes[id]
	if !ok {
		return
	}
	for otherID := range n.Edges {
		if other, ok := nl.nodes[otherID]; ok {
			delete(other.Edges, id)
		}
	}
	n.Edges = make(map[NodeID]PathSegment)
}

// AddEdge inserts a bidirectional edge between a and b. seg.From/seg.To
// must be a.Pos/b.Pos respectively; the mirror stored on b is the
// reversed segment. Panics if either node is missing, preserving the
// invariant that every edge key refers to a live node.
func (nl *NodeList) AddEdge(a, b NodeID, seg PathSegment) {
	na, ok := nl.nodes[a]
	if !ok {
		panic("hpf: AddEdge: node a does not exist")
	}
	nb, ok := nl.nodes[b]
	if !ok {
		panic("hpf: AddEdge: node b does not exist")
	}
	na.Edges[b] = seg
	nb.Edges[a] = seg.reversed()
}

// RemoveEdge deletes the edge between a and b in both directions, if it
// exists.
func (nl *NodeList) RemoveEdge(a, b NodeID) {
	if na, ok := nl.nodes[a]; ok {
		delete(na.Edges, b)
	}
	if nb, ok := nl.nodes[b]; ok {
		delete(nb.Edges, a)
	}
}

// Each calls fn once for every live node. Iteration order is
// unspecified.
func (nl *NodeList) Each(fn func(*Node)) {
	for _, n := range nl.nodes {
		fn(n)
	}
}

// Absorb merges other's nodes into nl, renumbering ids as needed to
// avoid collisions, and returns the remap from other's old ids to their
// new ids in nl. Edges between absorbed nodes are rewritten to the new
// ids; edges are not created to nodes outside other (cross-chunk
// stitching is a separate pass, connectNodes).
func (nl *NodeList) Absorb(other *NodeList) map[NodeID]NodeID {
	remap := make(map[NodeID]NodeID, other.Len())
	other.Each(func(n *Node) {
		nl.nextID++
		newID := nl.nextID
		remap[n.ID] = newID
		nl.nodes[newID] = &Node{ID: newID, Pos: n.Pos, WalkCost: n.WalkCost, Edges: make(map[NodeID]PathSegment)}
		nl.byPos[n.Pos] = newID
	})
	other.Each(func(n *Node) {
		newID := remap[n.ID]
		dst := nl.nodes[newID]
		for peer, seg := range n.Edges {
			newPeer, ok := remap[peer]
			if !ok {
				continue
			}
			dst.Edges[newPeer] = seg
		}
	})
	return remap
}

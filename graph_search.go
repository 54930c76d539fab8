package hpf

import "github.com/edgejay/go-hpf/internal/search"

// graphSpace adapts the node graph into search.Space[NodeID]: neighbors
// come straight from a node's stored edges, so no separate passability
// predicate is needed at this level.
type graphSpace struct {
	nodes *NodeList
	nb    Neighborhood
}

func (g graphSpace) Neighbors(id NodeID, out []NodeID) []NodeID {
	n, ok := g.nodes.Get(id)
	if !ok {
		return out
	}
	for peer := range n.Edges {
		out = append(out, peer)
	}
	return out
}

func (g graphSpace) Cost(from, to NodeID) int {
	n, ok := g.nodes.Get(from)
	if !ok {
		return -1
	}
	seg, ok := n.Edges[to]
	if !ok {
		return -1
	}
	return seg.Cost
}

func (g graphSpace) Heuristic(a, b NodeID) int {
	na, ok1 := g.nodes.Get(a)
	nb2, ok2 := g.nodes.Get(b)
	if !ok1 || !ok2 {
		return 0
	}
	return g.nb.Heuristic(na.Pos, nb2.Pos)
}

func graphAStar(nodes *NodeList, nb Neighborhood, start, goal NodeID, sizeHint int) ([]NodeID, int, bool) {
	space := graphSpace{nodes: nodes, nb: nb}
	return search.AStar[NodeID](space, start, goal, sizeHint)
}

func graphDijkstra(nodes *NodeList, nb Neighborhood, start NodeID, goals map[NodeID]struct{}, onlyClosest bool, sizeHint int) map[NodeID]search.Result[NodeID] {
	space := graphSpace{nodes: nodes, nb: nb}
	return search.Dijkstra[NodeID](space, start, goals, onlyClosest, sizeHint)
}

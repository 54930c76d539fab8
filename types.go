// Package hpf is a hierarchical pathfinding library for 2D grid worlds.
// It precomputes an abstract graph summarizing connectivity between
// fixed-size chunks of the grid so that shortest-path queries resolve
// far faster than a whole-grid search, at the cost of slight
// non-optimality at the abstract level.
//
// The grid is never owned by the library: callers supply a cost
// function on every call, and incremental updates are driven by the
// caller reporting which tiles changed.
package hpf

import (
	"fmt"

	"github.com/edgejay/go-hpf/neighborhood"
)

// Point identifies a tile by its grid coordinates.
type Point = neighborhood.Point

// Neighborhood is the movement/heuristic contract the cache is
// polymorphic over. See the neighborhood package for ready-made
// FourWay and EightWay implementations.
type Neighborhood = neighborhood.Neighborhood

// CostFunc returns the cost of walking onto p. A negative value marks p
// impassable. Must be deterministic for the duration of a single call
// into the cache; if it changes between calls, the caller must report
// the affected tiles via TilesChanged.
type CostFunc func(p Point) int

// NodeID is an opaque, stable handle to a Node. It is unique at any
// instant; ids may be reused after their node is removed.
type NodeID uint64

func (id NodeID) String() string {
	return fmt.Sprintf("node#%d", uint64(id))
}

// Path is an ordered, non-empty sequence of T with its total walk cost.
// The single-element path is reserved for the start == goal case.
type Path[T any] struct {
	items []T
	cost  int
}

// NewPath builds a Path from a non-empty item slice and its total cost.
// It panics if items is empty — empty paths are disallowed by the data
// model; start == goal must use the single-element degenerate path
// instead.
func NewPath[T any](items []T, cost int) Path[T] {
	if len(items) == 0 {
		panic("hpf: Path must have at least one element")
	}
	return Path[T]{items: items, cost: cost}
}

// Items returns the path's elements, first to last.
func (p Path[T]) Items() []T { return p.items }

// Cost returns the path's total walk cost.
func (p Path[T]) Cost() int { return p.cost }

// Len returns the number of elements in the path.
func (p Path[T]) Len() int { return len(p.items) }

// First returns the path's first element (its start endpoint).
func (p Path[T]) First() T { return p.items[0] }

// Last returns the path's last element (its goal endpoint).
func (p Path[T]) Last() T { return p.items[len(p.items)-1] }

// PathSegment is a reified edge payload between two nodes. When path
// caching is enabled, Tiles holds the full tile-level walk; otherwise it
// is nil and the segment carries only the endpoints and total cost, to
// be rematerialized on demand via an intra-chunk grid search.
type PathSegment struct {
	From, To Point
	Cost     int
	Tiles    []Point
}

// Cached reports whether this segment carries a materialized tile path.
func (s PathSegment) Cached() bool { return s.Tiles != nil }

// reversed returns a copy of the segment with endpoints and any cached
// tile sequence reversed, for storing the mirror of a bidirectional edge.
func (s PathSegment) reversed() PathSegment {
	r := PathSegment{From: s.To, To: s.From, Cost: s.Cost}
	if s.Tiles != nil {
		r.Tiles = make([]Point, len(s.Tiles))
		for i, t := range s.Tiles {
			r.Tiles[len(s.Tiles)-1-i] = t
		}
	}
	return r
}

package search

import "container/heap"

// entry is one id's position in the open set: its best known g-cost, its
// f-cost (g+h) used for ordering, and a monotonic sequence number used to
// break ties deterministically (oldest-inserted-first).
type entry[ID comparable] struct {
	id    ID
	g     int
	f     int
	seq   int
	index int
}

// openSet is a binary min-heap over f-cost, with a side index so an id's
// entry can be found and updated in place instead of duplicated — mirrors
// the teacher's PriorityQueue, generalized over the identifier type.
type openSet[ID comparable] struct {
	items []*entry[ID]
	index map[ID]*entry[ID]
	next  int
}

func newOpenSet[ID comparable](sizeHint int) *openSet[ID] {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &openSet[ID]{
		items: make([]*entry[ID], 0, sizeHint),
		index: make(map[ID]*entry[ID], sizeHint),
	}
}

func (q *openSet[ID]) Len() int { return len(q.items) }

func (q *openSet[ID]) Less(i, j int) bool {
	if q.items[i].f != q.items[j].f {
		return q.items[i].f < q.items[j].f
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *openSet[ID]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *openSet[ID]) Push(x any) {
	e := x.(*entry[ID])
	e.index = len(q.items)
	q.items = append(q.items, e)
	q.index[e.id] = e
}

func (q *openSet[ID]) Pop() any {
	n := len(q.items)
	e := q.items[n-1]
	q.items = q.items[:n-1]
	delete(q.index, e.id)
	return e
}

// push inserts id with the given g/f cost, or updates its entry in place
// if id is already open and the new cost is an improvement.
func (q *openSet[ID]) push(id ID, g, f int) {
	if e, ok := q.index[id]; ok {
		if g < e.g {
			e.g, e.f = g, f
			heap.Fix(q, e.index)
		}
		return
	}
	q.next++
	heap.Push(q, &entry[ID]{id: id, g: g, f: f, seq: q.next})
}

// pop removes and returns the lowest-f entry. Callers must check Len()
// first.
func (q *openSet[ID]) pop() *entry[ID] {
	return heap.Pop(q).(*entry[ID])
}

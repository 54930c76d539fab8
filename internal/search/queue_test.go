package search

import "testing"

func TestOpenSetOrdersByF(t *testing.T) {
	q := newOpenSet[string](0)
	q.push("c", 0, 30)
	q.push("a", 0, 10)
	q.push("b", 0, 20)

	var order []string
	for q.Len() > 0 {
		order = append(order, q.pop().id)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("pop order = %v, want %v", order, want)
		}
	}
}

func TestOpenSetUpdatesInPlaceOnImprovement(t *testing.T) {
	q := newOpenSet[string](0)
	q.push("x", 10, 10)
	q.push("x", 5, 5) // improvement: should update, not duplicate
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (no duplicate entries)", q.Len())
	}
	e := q.pop()
	if e.g != 5 {
		t.Errorf("g = %d, want 5 (should have kept the better cost)", e.g)
	}
}

func TestOpenSetIgnoresWorseUpdate(t *testing.T) {
	q := newOpenSet[string](0)
	q.push("x", 5, 5)
	q.push("x", 10, 10) // worse: should be ignored
	e := q.pop()
	if e.g != 5 {
		t.Errorf("g = %d, want 5 (worse push must not overwrite)", e.g)
	}
}

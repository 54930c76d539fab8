package hpf

import "fmt"

func outOfBoundsPanic(label string, p Point, width, height uint32) {
	panic(fmt.Sprintf("hpf: %s (%d, %d) is out of bounds for a %dx%d grid", label, p.X, p.Y, width, height))
}

func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("hpf: internal invariant violation: "+format, args...))
}

package terminal

import (
	"cmp"
	"maps"
	"slices"
)

// Point is a 0-indexed screen coordinate
type Point struct {
	X, Y int
}

// Frame maps coordinates to non-default cells
type Frame map[Point]Cell

// Set stores c at p; the default cell removes p instead
func (f Frame) Set(p Point, c Cell) {
	if c.Glyph == "" {
		c.Glyph = " "
	}
	if c.IsDefault() {
		delete(f, p)
		return
	}
	f[p] = c
}

// Clone returns an independent copy
func (f Frame) Clone() Frame {
	if f == nil {
		return Frame{}
	}
	return maps.Clone(f)
}

// Points returns the coordinates in row-major order
func (f Frame) Points() []Point {
	return slices.SortedFunc(maps.Keys(f), comparePoints)
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

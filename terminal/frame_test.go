package terminal

import (
	"slices"
	"testing"
)

func TestFrameSet(t *testing.T) {
	f := Frame{}

	f.Set(Point{1, 1}, Cell{Glyph: "a"})
	f.Set(Point{2, 1}, Cell{Glyph: ""})
	f.Set(Point{3, 1}, Cell{Glyph: "", Style: Style{Bold: true}})

	if len(f) != 2 {
		t.Fatalf("Expected 2 cells, got %d", len(f))
	}
	if c := f[Point{3, 1}]; c.Glyph != " " {
		t.Errorf("Expected empty glyph stored as space, got %q", c.Glyph)
	}

	f.Set(Point{1, 1}, DefaultCell)
	if _, ok := f[Point{1, 1}]; ok {
		t.Error("Expected default cell to delete the entry")
	}
}

func TestFramePointsRowMajor(t *testing.T) {
	f := Frame{}
	for _, p := range []Point{{5, 2}, {0, 1}, {3, 0}, {1, 2}, {9, 0}} {
		f.Set(p, Cell{Glyph: "x"})
	}

	want := []Point{{3, 0}, {9, 0}, {0, 1}, {1, 2}, {5, 2}}
	if got := f.Points(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFrameClone(t *testing.T) {
	var nilFrame Frame
	if c := nilFrame.Clone(); c == nil {
		t.Error("Expected non-nil clone of nil frame")
	}

	f := Frame{}
	f.Set(Point{0, 0}, Cell{Glyph: "a"})
	c := f.Clone()
	c.Set(Point{0, 0}, Cell{Glyph: "b"})

	if f[Point{0, 0}].Glyph != "a" {
		t.Error("Expected clone to be independent")
	}
}

func TestTaskQueue(t *testing.T) {
	var q TaskQueue
	var order []int

	q.Defer(func() { order = append(order, 1) })
	q.Defer(func() {
		order = append(order, 2)
		// queued during a run waits for the next one
		q.Defer(func() { order = append(order, 3) })
	})

	if n := q.RunPending(); n != 2 {
		t.Errorf("Expected 2 tasks run, got %d", n)
	}
	if !slices.Equal(order, []int{1, 2}) {
		t.Errorf("Expected [1 2], got %v", order)
	}
	if q.Len() != 1 {
		t.Errorf("Expected 1 queued task, got %d", q.Len())
	}

	q.RunPending()
	if !slices.Equal(order, []int{1, 2, 3}) {
		t.Errorf("Expected [1 2 3], got %v", order)
	}
	if n := q.RunPending(); n != 0 {
		t.Errorf("Expected empty queue, got %d", n)
	}
}

func TestColor(t *testing.T) {
	if !ColorDefault.IsDefault() || Color(0) != ColorDefault {
		t.Error("Expected zero color to be default")
	}
	if n, ok := PaletteColor(200).Palette(); !ok || n != 200 {
		t.Errorf("Expected palette 200, got %d (ok=%v)", n, ok)
	}
	if n, ok := ColorCyan.Palette(); !ok || n != 6 {
		t.Errorf("Expected cyan at 6, got %d (ok=%v)", n, ok)
	}
	if _, ok := PaletteColor(0).Palette(); !ok {
		t.Error("Expected palette 0 to differ from default")
	}
	if _, _, _, ok := PaletteColor(1).RGB(); ok {
		t.Error("Expected palette color to have no RGB")
	}

	r, g, b, ok := RGBColor(10, 11, 12).RGB()
	if !ok || r != 10 || g != 11 || b != 12 {
		t.Errorf("Expected (10,11,12), got (%d,%d,%d) ok=%v", r, g, b, ok)
	}
	if s := RGBColor(10, 11, 12).String(); s != "#0a0b0c" {
		t.Errorf("Expected #0a0b0c, got %q", s)
	}
}

func TestNearestPalette(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		colors  int
		want    int
	}{
		{0, 0, 0, 256, 0},
		{205, 0, 0, 256, 1},
		{255, 255, 255, 256, 15},
		{255, 255, 255, 8, 7},
		{128, 128, 128, 256, 244},
		{250, 10, 10, 0, 1},
	}

	for _, tt := range tests {
		if got := nearestPalette(tt.r, tt.g, tt.b, tt.colors); got != tt.want {
			t.Errorf("nearestPalette(%d,%d,%d,%d): expected %d, got %d", tt.r, tt.g, tt.b, tt.colors, tt.want, got)
		}
	}
}

func TestCellIsDefault(t *testing.T) {
	if !DefaultCell.IsDefault() || !(Cell{}).IsDefault() {
		t.Error("Expected blank cells to be default")
	}
	if (Cell{Glyph: " ", Style: Style{Bg: ColorRed}}).IsDefault() {
		t.Error("Expected styled space to be non-default")
	}
}

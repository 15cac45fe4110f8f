package terminal

import (
	"bufio"
	"io"

	"github.com/lixenwraith/tinfo/terminfo"
	"github.com/mattn/go-runewidth"
)

// outputBuffer writes capability strings for one terminal through a buffered
// writer, tracking the cursor and the last emitted style so redundant
// movement and attribute codes are skipped
type outputBuffer struct {
	table  *terminfo.Table
	writer *bufio.Writer
	width  int

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	last      Style
	lastValid bool

	rgbFg   []byte
	rgbBg   []byte
	colors  int
	nearest map[Color]int
}

func newOutputBuffer(w io.Writer, t *terminfo.Table) *outputBuffer {
	o := &outputBuffer{
		table:   t,
		writer:  bufio.NewWriterSize(w, 32768),
		nearest: make(map[Color]int),
	}
	o.rgbFg, _ = t.ExtendedString("setrgbf")
	o.rgbBg, _ = t.ExtendedString("setrgbb")
	if n, ok := t.Number(terminfo.MaxColors); ok {
		o.colors = n
	}
	return o
}

// capability expands and writes a string capability; false when the terminal lacks it
func (o *outputBuffer) capability(c terminfo.StringCapability, params ...int) bool {
	seq, ok := o.table.Expand(c, params...)
	if !ok {
		return false
	}
	o.writer.Write(seq)
	return true
}

// move positions the cursor with cursor_address (row, col) unless it is already there
func (o *outputBuffer) move(x, y int) {
	if o.cursorValid && o.cursorX == x && o.cursorY == y {
		return
	}
	if !o.capability(terminfo.CursorAddress, y, x) {
		o.cursorValid = false
		return
	}
	o.cursorX, o.cursorY, o.cursorValid = x, y, true
}

// writeGlyph writes one cluster; only single-width glyphs keep the cursor known
func (o *outputBuffer) writeGlyph(g string) {
	o.writer.WriteString(g)
	if !o.cursorValid {
		return
	}
	if runewidth.StringWidth(g) != 1 {
		o.cursorValid = false
		return
	}
	o.cursorX++
	if o.width > 0 && o.cursorX >= o.width {
		// pending wrap position differs between terminals
		o.cursorValid = false
	}
}

// resetStyle emits exit_attribute_mode
func (o *outputBuffer) resetStyle() {
	o.capability(terminfo.ExitAttributeMode)
	o.last = Style{}
	o.lastValid = true
}

// plainStyle resets attributes only when they may not be plain already
func (o *outputBuffer) plainStyle() {
	if o.lastValid && o.last.Plain() {
		return
	}
	o.resetStyle()
}

// writeStyle emits exit_attribute_mode then every attribute of s, skipping
// the ones the terminal lacks
func (o *outputBuffer) writeStyle(s Style) {
	o.resetStyle()
	o.writeColor(s.Fg, terminfo.SetAForeground, o.rgbFg)
	o.writeColor(s.Bg, terminfo.SetABackground, o.rgbBg)
	if s.Bold {
		o.capability(terminfo.EnterBoldMode)
	}
	if s.Underline {
		o.capability(terminfo.EnterUnderlineMode)
	}
	o.last = s
}

func (o *outputBuffer) writeColor(c Color, indexed terminfo.StringCapability, direct []byte) {
	if n, ok := c.Palette(); ok {
		o.capability(indexed, n)
		return
	}
	r, g, b, ok := c.RGB()
	if !ok {
		return
	}
	if direct != nil {
		o.writer.Write(terminfo.Expand(direct, []int{int(r), int(g), int(b)}))
		return
	}
	n, ok := o.nearest[c]
	if !ok {
		n = nearestPalette(r, g, b, o.colors)
		o.nearest[c] = n
	}
	o.capability(indexed, n)
}

// clearScreen emits clear_screen; cursor and attributes are unknown afterwards
func (o *outputBuffer) clearScreen() {
	o.capability(terminfo.ClearScreen)
	o.invalidate()
}

// image writes an inline image at the cursor; the cursor position is unknown afterwards
func (o *outputBuffer) image(data []byte) {
	writeImage(o.writer, data)
	o.cursorValid = false
}

// raw writes bytes that bypass the capability table
func (o *outputBuffer) raw(b []byte) {
	o.writer.Write(b)
}

// invalidate forgets cursor and style state
func (o *outputBuffer) invalidate() {
	o.cursorValid = false
	o.lastValid = false
}

func (o *outputBuffer) flush() error {
	return o.writer.Flush()
}

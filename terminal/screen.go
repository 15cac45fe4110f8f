package terminal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lixenwraith/tinfo/terminfo"
	"github.com/rivo/uniseg"
)

// Screen is a double-buffered renderer driven by one terminal description.
// Draw calls mutate the pending frame and schedule a single deferred flush;
// the flush writes only the difference against the committed frame.
//
// Screen is not safe for concurrent use. Every method, including the deferred
// flush run by the Scheduler, belongs to the owning goroutine.
type Screen struct {
	table   *terminfo.Table
	out     *outputBuffer
	backend backend
	in      io.Reader
	input   *inputReader
	keys    []keySeq
	log     *slog.Logger
	sched   Scheduler

	committed Frame
	pending   Frame
	image     *inlineImage
	imageMode bool

	// flush scheduling; token invalidates callbacks overtaken by a manual Flush
	scheduled bool
	token     uint64

	mouse        bool
	cursorHidden bool
	started      bool

	startMouse  bool
	startHidden bool
}

type inlineImage struct {
	at   Point
	data []byte
}

// capabilities whose absence degrades output enough to warn about
var requiredCapabilities = []terminfo.StringCapability{
	terminfo.CursorAddress,
	terminfo.ExitAttributeMode,
	terminfo.ClearScreen,
	terminfo.EnterCaMode,
}

// NewScreen creates a screen writing to out and reading events from in.
// in may be nil for an output-only screen. When in is a terminal, Start
// switches it to raw mode.
func NewScreen(t *terminfo.Table, out io.Writer, in io.Reader, opts ...Option) *Screen {
	s := &Screen{
		table:     t,
		out:       newOutputBuffer(out, t),
		in:        in,
		keys:      tableKeys(t),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		sched:     &TaskQueue{},
		committed: Frame{},
		pending:   Frame{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.backend = newBackend(in, out)
	s.out.width, _ = s.Size()

	for _, c := range requiredCapabilities {
		if !t.Has(c) {
			s.log.Warn("terminal lacks capability", "term", t.Name(), "capability", c.String())
		}
	}
	return s
}

// Table returns the terminal description the screen renders with
func (s *Screen) Table() *terminfo.Table { return s.table }

// Tasks returns the scheduler when it is a TaskQueue, nil otherwise
func (s *Screen) Tasks() *TaskQueue {
	q, _ := s.sched.(*TaskQueue)
	return q
}

// Start enters the alternate screen and switches input to raw delivery.
// Every Start must be paired with Stop.
func (s *Screen) Start() error {
	if s.started {
		return nil
	}
	if err := s.backend.MakeRaw(); err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}

	s.out.capability(terminfo.EnterCaMode)
	s.out.capability(terminfo.KeypadXmit)
	s.out.invalidate()
	// the alternate screen starts blank
	s.committed = Frame{}
	s.started = true

	if err := s.out.flush(); err != nil {
		s.started = false
		return errors.Join(fmt.Errorf("enter alternate screen: %w", err), s.backend.Restore())
	}
	if s.startMouse {
		s.SetMouseEnabled(true)
	}
	if s.startHidden {
		s.SetCursorVisible(false)
	}

	if s.in != nil {
		s.input = newInputReader(s.backend.Read, s.keys)
		s.input.start()
	}
	if len(s.pending) > 0 {
		s.requestFlush()
	}
	return nil
}

// Stop reverses Start: mouse reporting off, cursor shown, alternate screen
// left, input reader stopped, terminal mode restored. Any scheduled flush is
// discarded. Every step runs even when an earlier one fails.
func (s *Screen) Stop() error {
	if !s.started {
		return nil
	}
	s.started = false
	s.scheduled = false

	var errs []error
	if s.mouse {
		s.mouse = false
		s.out.raw(seqMouseOff)
	}
	if s.cursorHidden {
		s.cursorHidden = false
		s.showCursor()
	}
	s.out.capability(terminfo.KeypadLocal)
	s.out.capability(terminfo.ExitCaMode)
	if err := s.out.flush(); err != nil {
		errs = append(errs, fmt.Errorf("exit alternate screen: %w", err))
	}
	s.out.invalidate()

	if s.input != nil {
		s.input.stop()
		s.input = nil
	}
	if err := s.backend.Restore(); err != nil {
		errs = append(errs, fmt.Errorf("restore terminal mode: %w", err))
	}
	return errors.Join(errs...)
}

// Started reports whether the screen is between Start and Stop
func (s *Screen) Started() bool { return s.started }

// Events returns the input channel of the running screen; nil before Start
// or when the screen has no input
func (s *Screen) Events() <-chan Event {
	if s.input == nil {
		return nil
	}
	return s.input.events()
}

// Put writes text starting at (x, y), one grapheme cluster per cell at increasing x
func (s *Screen) Put(x, y int, text string, style Style) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		s.SetCell(x, y, Cell{Glyph: gr.Str(), Style: style})
		x++
	}
}

// SetCell stores c in the pending frame; coordinates left of or above the
// origin are ignored
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || y < 0 {
		return
	}
	s.pending.Set(Point{X: x, Y: y}, c)
	s.requestFlush()
}

// Cell returns the pending cell at (x, y)
func (s *Screen) Cell(x, y int) Cell {
	if c, ok := s.pending[Point{X: x, Y: y}]; ok {
		return c
	}
	return DefaultCell
}

// PutImage queues an inline image drawn at (x, y) by the next flush. The
// flush after that clears the screen and redraws every cell.
func (s *Screen) PutImage(x, y int, data []byte) {
	s.image = &inlineImage{at: Point{X: x, Y: y}, data: data}
	s.requestFlush()
}

// Clear empties the pending frame
func (s *Screen) Clear() {
	s.pending = Frame{}
	s.requestFlush()
}

// Sync clears the terminal and redraws the whole pending frame on the next
// flush, for when the terminal no longer matches the committed frame
func (s *Screen) Sync() {
	s.out.clearScreen()
	s.out.width, _ = s.Size()
	s.committed = Frame{}
	s.requestFlush()
}

// Move positions the cursor at (x, y) with cursor_address
func (s *Screen) Move(x, y int) error {
	s.out.move(x, y)
	return s.out.flush()
}

// SetMouseEnabled switches mouse reporting; a repeated request writes nothing
func (s *Screen) SetMouseEnabled(enabled bool) error {
	if s.mouse == enabled {
		return nil
	}
	s.mouse = enabled
	if enabled {
		s.out.raw(seqMouseOn)
	} else {
		s.out.raw(seqMouseOff)
	}
	return s.out.flush()
}

// MouseEnabled reports the last requested mouse reporting state
func (s *Screen) MouseEnabled() bool { return s.mouse }

// SetCursorVisible shows or hides the cursor; a repeated request writes nothing
func (s *Screen) SetCursorVisible(visible bool) error {
	if s.cursorHidden == !visible {
		return nil
	}
	s.cursorHidden = !visible
	if visible {
		s.showCursor()
	} else {
		s.out.capability(terminfo.CursorInvisible)
	}
	return s.out.flush()
}

// CursorVisible reports the last requested cursor visibility
func (s *Screen) CursorVisible() bool { return !s.cursorHidden }

// showCursor prefers cursor_normal, which also undoes cursor_visible's very-visible mode
func (s *Screen) showCursor() {
	if !s.out.capability(terminfo.CursorNormal) {
		s.out.capability(terminfo.CursorVisible)
	}
}

// Size returns the terminal dimensions: the output tty window, else the
// description's columns and lines, else 80x24
func (s *Screen) Size() (int, int) {
	if w, h, ok := s.backend.Size(); ok {
		return w, h
	}
	w, okw := s.table.Number(terminfo.Columns)
	h, okh := s.table.Number(terminfo.Lines)
	if okw && okh && w > 0 && h > 0 {
		return w, h
	}
	return 80, 24
}

// requestFlush schedules one deferred flush per dirty period
func (s *Screen) requestFlush() {
	if s.scheduled {
		return
	}
	s.scheduled = true
	s.token++
	token := s.token
	s.sched.Defer(func() {
		if !s.scheduled || s.token != token {
			return
		}
		if err := s.Flush(); err != nil {
			s.log.Error("deferred flush failed", "error", err)
		}
	})
}

// Flush writes the difference between the pending and committed frames and
// commits the pending frame. A scheduled deferred flush becomes a no-op.
func (s *Screen) Flush() error {
	s.scheduled = false
	o := s.out

	// An inline image leaves the grid state unknown
	if s.imageMode {
		o.clearScreen()
		s.imageMode = false
		s.committed = Frame{}
	}

	// Erase cells that left the frame
	for _, p := range s.committed.Points() {
		if _, ok := s.pending[p]; ok {
			continue
		}
		o.plainStyle()
		o.move(p.X, p.Y)
		o.writeGlyph(" ")
	}

	reset := false
	for _, p := range s.pending.Points() {
		c := s.pending[p]
		if prev, ok := s.committed[p]; ok && prev == c {
			continue
		}
		if !reset {
			o.resetStyle()
			reset = true
		}
		if o.last != c.Style {
			o.writeStyle(c.Style)
		}
		o.move(p.X, p.Y)
		o.writeGlyph(c.Glyph)
	}

	if s.image != nil {
		o.move(s.image.at.X, s.image.at.Y)
		o.image(s.image.data)
		s.image = nil
		s.imageMode = true
	}

	s.committed = s.pending.Clone()
	return o.flush()
}

package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lixenwraith/tinfo/terminfo"
)

// testEntry is a small xterm-like description with 8 colors
func testEntry() *terminfo.Entry {
	return &terminfo.Entry{
		Names:       []string{"test-term"},
		Description: "test terminal",
		Numbers: map[terminfo.NumberCapability]int{
			terminfo.MaxColors: 8,
		},
		Strings: map[terminfo.StringCapability]string{
			terminfo.CursorAddress:      "\x1b[%i%p1%d;%p2%dH",
			terminfo.ExitAttributeMode:  "\x1b[0m",
			terminfo.ClearScreen:        "\x1b[H\x1b[2J",
			terminfo.EnterCaMode:        "\x1b[?1049h",
			terminfo.ExitCaMode:         "\x1b[?1049l",
			terminfo.CursorInvisible:    "\x1b[?25l",
			terminfo.CursorNormal:       "\x1b[?12l\x1b[?25h",
			terminfo.SetAForeground:     "\x1b[3%p1%dm",
			terminfo.SetABackground:     "\x1b[4%p1%dm",
			terminfo.EnterBoldMode:      "\x1b[1m",
			terminfo.EnterUnderlineMode: "\x1b[4m",
			terminfo.KeypadXmit:         "\x1b[?1h\x1b=",
			terminfo.KeypadLocal:        "\x1b[?1l\x1b>",
			terminfo.KeyUp:              "\x1bOA",
			terminfo.KeyDown:            "\x1bOB",
		},
	}
}

func compileTable(t *testing.T, e *terminfo.Entry) *terminfo.Table {
	t.Helper()
	data, err := e.Compile()
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	tbl, err := terminfo.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return tbl
}

func newTestScreen(t *testing.T, opts ...Option) (*Screen, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewScreen(compileTable(t, testEntry()), &out, nil, opts...), &out
}

func TestFlushFirstFrame(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if got, want := out.String(), "\x1b[0m\x1b[1;1HA"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFlushPersistsUntouchedCells(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	s.Flush()
	out.Reset()

	// (0,0) is not re-put and must not be erased
	s.Put(1, 0, "B", Style{})
	s.Flush()

	// cursor already sits at (1,0) after writing A
	if got, want := out.String(), "\x1b[0mB"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if c := s.Cell(0, 0); c.Glyph != "A" {
		t.Errorf("Expected A to persist at (0,0), got %q", c.Glyph)
	}
}

func TestClearErasesOnlyStaleCells(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	s.Flush()
	out.Reset()

	s.Clear()
	s.Flush()

	if got, want := out.String(), "\x1b[1;1H "; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFlushIdempotent(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(2, 1, "hello", Style{Fg: ColorGreen})
	s.Flush()
	out.Reset()

	s.Flush()
	if out.Len() != 0 {
		t.Errorf("Expected no output on second flush, got %q", out.String())
	}
}

func TestFlushStyles(t *testing.T) {
	s, out := newTestScreen(t)

	style := Style{Fg: ColorRed, Bold: true}
	s.Put(0, 0, "XY", style)
	s.Put(0, 1, "Z", Style{Bg: ColorBlue, Underline: true})
	s.Flush()

	want := "\x1b[0m" +
		"\x1b[0m\x1b[31m\x1b[1m\x1b[1;1HXY" +
		"\x1b[0m\x1b[44m\x1b[4m\x1b[2;1HZ"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFlushRedrawsChangedStyle(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	s.Flush()
	out.Reset()

	s.Put(0, 0, "A", Style{Underline: true})
	s.Flush()

	if got, want := out.String(), "\x1b[0m\x1b[0m\x1b[4m\x1b[1;1HA"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEraseResetsStyle(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{Bold: true})
	s.Flush()
	out.Reset()

	s.Clear()
	s.Flush()

	if got, want := out.String(), "\x1b[0m\x1b[1;1H "; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRGBFallsBackToPalette(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "R", Style{Fg: RGBColor(250, 0, 0)})
	s.Flush()

	if !strings.Contains(out.String(), "\x1b[31m") {
		t.Errorf("Expected nearest palette red, got %q", out.String())
	}
}

func TestRGBDirect(t *testing.T) {
	e := testEntry()
	e.ExtendedStrings = map[string]string{
		"setrgbf": "\x1b[38;2;%p1%d;%p2%d;%p3%dm",
		"setrgbb": "\x1b[48;2;%p1%d;%p2%d;%p3%dm",
	}
	var out bytes.Buffer
	s := NewScreen(compileTable(t, e), &out, nil)

	s.Put(0, 0, "R", Style{Fg: RGBColor(250, 0, 0), Bg: RGBColor(1, 2, 3)})
	s.Flush()

	if !strings.Contains(out.String(), "\x1b[38;2;250;0;0m\x1b[48;2;1;2;3m") {
		t.Errorf("Expected direct color sequences, got %q", out.String())
	}
}

func TestWideGlyphInvalidatesCursor(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "界", Style{})
	s.Put(2, 0, "x", Style{})
	s.Flush()

	if got, want := out.String(), "\x1b[0m\x1b[1;1H界\x1b[1;3Hx"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPutGraphemes(t *testing.T) {
	s, _ := newTestScreen(t)

	// e + combining acute is one cell
	s.Put(0, 0, "e\u0301z", Style{})

	if c := s.Cell(0, 0); c.Glyph != "e\u0301" {
		t.Errorf("Expected combined cluster at (0,0), got %q", c.Glyph)
	}
	if c := s.Cell(1, 0); c.Glyph != "z" {
		t.Errorf("Expected z at (1,0), got %q", c.Glyph)
	}
}

func TestPutDefaultCellDeletes(t *testing.T) {
	s, _ := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	s.Put(0, 0, " ", Style{})

	if len(s.pending) != 0 {
		t.Errorf("Expected empty pending frame, got %d cells", len(s.pending))
	}
	if c := s.Cell(0, 0); c != DefaultCell {
		t.Errorf("Expected default cell, got %+v", c)
	}
}

func TestPutNegativeIgnored(t *testing.T) {
	s, _ := newTestScreen(t)

	s.Put(-1, 0, "AB", Style{})

	if len(s.pending) != 1 {
		t.Errorf("Expected 1 cell, got %d", len(s.pending))
	}
	if c := s.Cell(0, 0); c.Glyph != "B" {
		t.Errorf("Expected B at (0,0), got %q", c.Glyph)
	}
}

func TestMouseToggleIdempotent(t *testing.T) {
	s, out := newTestScreen(t)

	s.SetMouseEnabled(true)
	s.SetMouseEnabled(true)
	if got := out.String(); got != "\x1b[?1003h" {
		t.Errorf("Expected one enable sequence, got %q", got)
	}

	out.Reset()
	s.SetMouseEnabled(false)
	s.SetMouseEnabled(false)
	if got := out.String(); got != "\x1b[?1000l" {
		t.Errorf("Expected one disable sequence, got %q", got)
	}
	if s.MouseEnabled() {
		t.Error("Expected mouse disabled")
	}
}

func TestCursorToggleIdempotent(t *testing.T) {
	s, out := newTestScreen(t)

	s.SetCursorVisible(true)
	if out.Len() != 0 {
		t.Errorf("Expected no output for visible cursor, got %q", out.String())
	}

	s.SetCursorVisible(false)
	s.SetCursorVisible(false)
	if got := out.String(); got != "\x1b[?25l" {
		t.Errorf("Expected one hide sequence, got %q", got)
	}

	out.Reset()
	s.SetCursorVisible(true)
	if got := out.String(); got != "\x1b[?12l\x1b[?25h" {
		t.Errorf("Expected cursor_normal, got %q", got)
	}
}

func TestCursorVisibleFallback(t *testing.T) {
	e := testEntry()
	delete(e.Strings, terminfo.CursorNormal)
	e.Strings[terminfo.CursorVisible] = "\x1b[?25h"
	var out bytes.Buffer
	s := NewScreen(compileTable(t, e), &out, nil)

	s.SetCursorVisible(false)
	out.Reset()
	s.SetCursorVisible(true)

	if got := out.String(); got != "\x1b[?25h" {
		t.Errorf("Expected cursor_visible, got %q", got)
	}
}

func TestImageFlush(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	s.PutImage(2, 3, []byte("hi"))
	s.Flush()

	want := "\x1b[0m\x1b[1;1HA\x1b[4;3H\x1b]1337;File=inline=1;height=100%:aGk=\x07"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// The next flush clears and redraws everything
	out.Reset()
	s.Flush()
	want = "\x1b[H\x1b[2J\x1b[0m\x1b[1;1HA"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	out.Reset()
	s.Flush()
	if out.Len() != 0 {
		t.Errorf("Expected image mode to reset, got %q", out.String())
	}
}

func TestFlushCoalesced(t *testing.T) {
	q := &TaskQueue{}
	s, out := newTestScreen(t, WithScheduler(q))

	s.Put(0, 0, "A", Style{})
	s.Put(1, 0, "B", Style{})
	s.Clear()
	s.Put(2, 0, "C", Style{})

	if n := q.Len(); n != 1 {
		t.Fatalf("Expected 1 scheduled flush, got %d", n)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output before the deferred flush, got %q", out.String())
	}

	q.RunPending()
	if got, want := out.String(), "\x1b[0m\x1b[1;3HC"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// A draw after the flush schedules again
	s.Put(3, 0, "D", Style{})
	if n := q.Len(); n != 1 {
		t.Errorf("Expected a new scheduled flush, got %d", n)
	}
}

func TestManualFlushCancelsScheduled(t *testing.T) {
	q := &TaskQueue{}
	s, out := newTestScreen(t, WithScheduler(q))

	s.Put(0, 0, "A", Style{})
	s.Flush()
	out.Reset()

	q.RunPending()
	if out.Len() != 0 {
		t.Errorf("Expected the overtaken callback to write nothing, got %q", out.String())
	}

	// The stale callback must not block new scheduling
	s.Put(1, 0, "B", Style{})
	q.RunPending()
	if got := out.String(); got != "\x1b[0mB" {
		t.Errorf("Expected B to flush, got %q", got)
	}
}

func TestDefaultSchedulerIsTaskQueue(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	q := s.Tasks()
	if q == nil {
		t.Fatal("Expected default TaskQueue")
	}
	if n := q.RunPending(); n != 1 {
		t.Errorf("Expected 1 task, got %d", n)
	}
	if !strings.HasSuffix(out.String(), "A") {
		t.Errorf("Expected A written, got %q", out.String())
	}
}

func TestStartStop(t *testing.T) {
	s, out := newTestScreen(t, WithMouse(true), WithHiddenCursor(true))

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	want := "\x1b[?1049h\x1b[?1h\x1b=\x1b[?1003h\x1b[?25l"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !s.Started() {
		t.Error("Expected started")
	}

	out.Reset()
	if err := s.Start(); err != nil || out.Len() != 0 {
		t.Errorf("Expected second Start to be a no-op, got %q (err=%v)", out.String(), err)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	want = "\x1b[?1000l\x1b[?12l\x1b[?25h\x1b[?1l\x1b>\x1b[?1049l"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	out.Reset()
	if err := s.Stop(); err != nil || out.Len() != 0 {
		t.Errorf("Expected second Stop to be a no-op, got %q (err=%v)", out.String(), err)
	}
}

func TestStopDiscardsScheduledFlush(t *testing.T) {
	s, out := newTestScreen(t)
	s.Start()

	s.Put(0, 0, "A", Style{})
	s.Stop()
	out.Reset()

	s.Tasks().RunPending()
	if out.Len() != 0 {
		t.Errorf("Expected discarded flush, got %q", out.String())
	}
}

func TestSize(t *testing.T) {
	s, _ := newTestScreen(t)
	if w, h := s.Size(); w != 80 || h != 24 {
		t.Errorf("Expected 80x24 default, got %dx%d", w, h)
	}

	e := testEntry()
	e.Numbers[terminfo.Columns] = 100
	e.Numbers[terminfo.Lines] = 30
	s = NewScreen(compileTable(t, e), &bytes.Buffer{}, nil)
	if w, h := s.Size(); w != 100 || h != 30 {
		t.Errorf("Expected 100x30 from description, got %dx%d", w, h)
	}
}

func TestSyncRedraws(t *testing.T) {
	s, out := newTestScreen(t)

	s.Put(0, 0, "A", Style{})
	s.Flush()
	out.Reset()

	s.Sync()
	s.Flush()

	if got, want := out.String(), "\x1b[H\x1b[2J\x1b[0m\x1b[1;1HA"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestMoveSkipsKnownPosition(t *testing.T) {
	s, out := newTestScreen(t)

	s.Move(4, 2)
	s.Move(4, 2)

	if got := out.String(); got != "\x1b[3;5H" {
		t.Errorf("Expected one cursor address, got %q", got)
	}
}

func TestEmergencyReset(t *testing.T) {
	tbl := compileTable(t, testEntry())
	var out bytes.Buffer

	EmergencyReset(&out, tbl)

	want := "\x1b[?1000l\x1b[?12l\x1b[?25h\x1b[?1l\x1b>\x1b[?1049l\x1b[0m\x1b[0m\x1bc"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/tinfo/terminal"
	"github.com/lixenwraith/tinfo/terminfo"
)

func writeEntry(t *testing.T) string {
	t.Helper()
	entry := terminfo.Entry{
		Names:       []string{"clitest", "ct"},
		Description: "cli test terminal",
		Bools: map[terminfo.BoolCapability]bool{
			terminfo.AutoRightMargin: true,
		},
		Numbers: map[terminfo.NumberCapability]int{
			terminfo.Columns: 132,
			terminfo.Lines:   24,
		},
		Strings: map[terminfo.StringCapability]string{
			terminfo.CursorAddress: "\x1b[%i%p1%d;%p2%dH",
		},
		ExtendedStrings: map[string]string{
			"setrgbf": "\x1b[38;2;%p1%d;%p2%d;%p3%dm",
		},
	}
	data, err := entry.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	path := filepath.Join(t.TempDir(), "clitest")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := buildRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDumpFile(t *testing.T) {
	path := writeEntry(t)

	out, err := execute(t, "dump", "--file", path)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}

	for _, want := range []string{
		"name: clitest",
		"aliases: ct",
		"description: cli test terminal",
		"number width: 16 bits",
		"  auto_right_margin\n",
		"  columns = 132\n",
		`  cursor_address = "\x1b[%i%p1%d;%p2%dH"`,
		"extended: decoded",
		`  setrgbf = "\x1b[38;2;%p1%d;%p2%d;%p3%dm"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDumpBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad")
	if err := os.WriteFile(path, []byte("not terminfo"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := execute(t, "dump", "--file", path)
	if err == nil || !strings.Contains(err.Error(), "bad magic") {
		t.Errorf("Expected bad magic error, got %v", err)
	}
}

func TestEval(t *testing.T) {
	path := writeEntry(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "-f", path, "cursor_address", "4", "10"}, "\"\\x1b[5;11H\"\n"},
		{[]string{"eval", "-f", path, "setrgbf", "1", "2", "3"}, "\"\\x1b[38;2;1;2;3m\"\n"},
		{[]string{"eval", "-f", path, "--raw", "cursor_address", "0", "0"}, "\x1b[1;1H"},
	}
	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if out != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.args, tt.want, out)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	path := writeEntry(t)

	for _, args := range [][]string{
		{"eval", "-f", path, "clear_screen"},
		{"eval", "-f", path, "no_such_cap"},
		{"eval", "-f", path, "cursor_address", "x"},
		{"eval", "-f", path},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestDumpByName(t *testing.T) {
	t.Setenv("COLORTERM", "")
	t.Setenv("TERMINFO", t.TempDir())
	t.Setenv("TERMINFO_DIRS", t.TempDir())

	out, err := execute(t, "dump", "--builtin", "--log-level", "error", "vt100")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.Contains(out, "name: vt100") {
		t.Errorf("Expected vt100 description, got:\n%s", out)
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := execute(t, "dump", "--log-level", "loud", "-f", "x"); err == nil {
		t.Error("Expected log level error")
	}
}

func TestViewerDrag(t *testing.T) {
	tbl, err := terminfo.Decode(mustCompile(t))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s := terminal.NewScreen(tbl, &bytes.Buffer{}, nil)
	v := newViewer(s)

	if v.w != 132 || v.h != 24 {
		t.Fatalf("Expected 132x24, got %dx%d", v.w, v.h)
	}
	x, y := v.objX, v.objY
	if c := s.Cell(x, y); c.Glyph != "[" {
		t.Fatalf("Expected object at (%d,%d), got %q", x, y, c.Glyph)
	}

	press := terminal.Event{Type: terminal.EventMouse, MouseBtn: terminal.MouseBtnLeft, MouseAction: terminal.MouseActionPress, MouseX: x + 1, MouseY: y}
	drag := terminal.Event{Type: terminal.EventMouse, MouseBtn: terminal.MouseBtnLeft, MouseAction: terminal.MouseActionDrag, MouseX: 10, MouseY: 5}
	for _, ev := range []terminal.Event{press, drag} {
		if err := v.handle(ev); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	if v.objX != 10 || v.objY != 5 {
		t.Errorf("Expected object dragged to (10,5), got (%d,%d)", v.objX, v.objY)
	}
	if c := s.Cell(10, 5); c.Glyph != "[" {
		t.Errorf("Expected object redrawn at (10,5), got %q", c.Glyph)
	}

	quit := terminal.Event{Type: terminal.EventKey, Key: terminal.KeyCtrlC}
	if err := v.handle(quit); err != terminal.ErrQuit {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func mustCompile(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(writeEntry(t))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return data
}

package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/lixenwraith/tinfo/terminal"
	"github.com/lixenwraith/tinfo/terminfo"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TERM", "vt100")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Term != "vt100" {
		t.Fatalf("Term = %q, want %q", cfg.Term, "vt100")
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Fatalf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelWarn)
	}
	if cfg.Mouse || cfg.HideCursor || cfg.BuiltinFallback || cfg.FrameRate != 0 {
		t.Fatalf("unexpected non-default config: %+v", cfg)
	}
}

func TestLoad_DefaultTermWithoutEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TERM", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Term != defaultTerm {
		t.Fatalf("Term = %q, want %q", cfg.Term, defaultTerm)
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TERM", "vt100")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
term = "  xterm-kitty  "
terminfo_dirs = ["~/.local/share/terminfo", "", "/opt/terminfo"]
builtin_fallback = true
mouse = true
hide_cursor = true
frame_rate = 30
log_level = "debug"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Term != "xterm-kitty" {
		t.Fatalf("Term = %q, want %q", cfg.Term, "xterm-kitty")
	}
	wantDirs := []string{filepath.Join(home, ".local/share/terminfo"), "/opt/terminfo"}
	if !slices.Equal(cfg.TerminfoDirs, wantDirs) {
		t.Fatalf("TerminfoDirs = %v, want %v", cfg.TerminfoDirs, wantDirs)
	}
	if !cfg.BuiltinFallback || !cfg.Mouse || !cfg.HideCursor {
		t.Fatalf("expected booleans set: %+v", cfg)
	}
	if cfg.FrameRate != 30 {
		t.Fatalf("FrameRate = %d, want 30", cfg.FrameRate)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := map[string]string{
		"syntax":    "term = ",
		"level":     `log_level = "loud"`,
		"framerate": "frame_rate = -1",
		"type":      `mouse = "yes"`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("expected parse error, got %v", err)
			}
		})
	}
}

func TestLocator_SearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TERMINFO", "/env/terminfo")
	t.Setenv("TERMINFO_DIRS", "/opt/terminfo")

	cfg := Config{TerminfoDirs: []string{"/cfg/terminfo", "/opt/terminfo"}, BuiltinFallback: true}
	loc := cfg.Locator(nil)

	want := slices.Concat(
		[]string{"/cfg/terminfo", "/opt/terminfo", "/env/terminfo", filepath.Join(home, ".terminfo")},
		terminfo.SystemDirs,
	)
	if !slices.Equal(loc.Dirs, want) {
		t.Fatalf("Dirs = %v, want %v", loc.Dirs, want)
	}
	if !loc.Builtin {
		t.Fatal("expected builtin fallback")
	}
}

func TestLocator_LoadsFromConfiguredDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TERMINFO", "")
	t.Setenv("TERMINFO_DIRS", "")

	dir := t.TempDir()
	entry := terminfo.Entry{
		Names: []string{"cfgterm"},
		Strings: map[terminfo.StringCapability]string{
			terminfo.ClearScreen: "\x1b[2J",
		},
	}
	data, err := entry.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "c"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "c", "cfgterm"), data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Config{TerminfoDirs: []string{dir}}
	tbl, err := cfg.Locator(nil).Load("cfgterm")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if seq, ok := tbl.Sequence(terminfo.ClearScreen); !ok || string(seq) != "\x1b[2J" {
		t.Fatalf("clear_screen = %q (ok=%v)", seq, ok)
	}
}

func TestScreenOptions(t *testing.T) {
	entry := terminfo.Entry{
		Names: []string{"opts"},
		Strings: map[terminfo.StringCapability]string{
			terminfo.EnterCaMode:     "<smcup>",
			terminfo.CursorInvisible: "<civis>",
		},
	}
	data, err := entry.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	tbl, err := terminfo.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var out bytes.Buffer
	cfg := Config{Mouse: true, HideCursor: true}
	s := terminal.NewScreen(tbl, &out, nil, cfg.ScreenOptions(nil)...)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if got, want := out.String(), "<smcup>\x1b[?1003h<civis>"; got != want {
		t.Fatalf("start output = %q, want %q", got, want)
	}
}

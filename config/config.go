package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/tinfo/terminal"
	"github.com/lixenwraith/tinfo/terminfo"
)

// Config holds the terminal selection and screen settings shared by the tools.
type Config struct {
	// Term is the terminal name to look up
	Term string

	// TerminfoDirs are searched before the environment's database roots
	TerminfoDirs []string

	// BuiltinFallback consults the linked-in descriptions when no file is found
	BuiltinFallback bool

	Mouse      bool
	HideCursor bool

	// FrameRate is the tick rate of animated views; zero disables ticks
	FrameRate int

	LogLevel slog.Level
}

const (
	defaultConfigPath = "~/.config/tinfo/config.toml"
	defaultTerm       = "xterm-256color"
	defaultLogLevel   = slog.LevelWarn
)

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Term:     envTerm(),
		LogLevel: defaultLogLevel,
	}
}

// Load parses the TOML file at path (the default location when empty),
// falling back to defaults when it is missing. TERM supplies the terminal
// name when the file sets none.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Term            string   `toml:"term"`
		TerminfoDirs    []string `toml:"terminfo_dirs"`
		BuiltinFallback *bool    `toml:"builtin_fallback"`
		Mouse           *bool    `toml:"mouse"`
		HideCursor      *bool    `toml:"hide_cursor"`
		FrameRate       *int     `toml:"frame_rate"`
		LogLevel        string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if term := strings.TrimSpace(raw.Term); term != "" {
		cfg.Term = term
	}
	for _, d := range raw.TerminfoDirs {
		if strings.TrimSpace(d) == "" {
			continue
		}
		cfg.TerminfoDirs = append(cfg.TerminfoDirs, mustExpand(d))
	}
	if raw.BuiltinFallback != nil {
		cfg.BuiltinFallback = *raw.BuiltinFallback
	}
	if raw.Mouse != nil {
		cfg.Mouse = *raw.Mouse
	}
	if raw.HideCursor != nil {
		cfg.HideCursor = *raw.HideCursor
	}
	if raw.FrameRate != nil {
		if *raw.FrameRate < 0 {
			return Config{}, fmt.Errorf("parse config: frame_rate %d is negative", *raw.FrameRate)
		}
		cfg.FrameRate = *raw.FrameRate
	}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Config{}, fmt.Errorf("parse config: log_level: %w", err)
		}
	}

	return cfg, nil
}

// Locator builds the terminfo lookup: configured directories first, then
// $TERMINFO, ~/.terminfo, $TERMINFO_DIRS and the system roots.
func (c Config) Locator(log *slog.Logger) *terminfo.Locator {
	var dirs []string
	for _, d := range slices.Concat(c.TerminfoDirs, terminfo.SearchDirs(os.Getenv)) {
		if !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return &terminfo.Locator{
		Dirs:    dirs,
		Builtin: c.BuiltinFallback,
		Logger:  log,
	}
}

// ScreenOptions returns the screen settings as terminal options
func (c Config) ScreenOptions(log *slog.Logger) []terminal.Option {
	return []terminal.Option{
		terminal.WithLogger(log),
		terminal.WithMouse(c.Mouse),
		terminal.WithHiddenCursor(c.HideCursor),
	}
}

func envTerm() string {
	if term := strings.TrimSpace(os.Getenv("TERM")); term != "" {
		return term
	}
	return defaultTerm
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

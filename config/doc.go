// Package config loads the tinfo TOML configuration and overlays the
// terminal environment (TERM, TERMINFO, TERMINFO_DIRS, HOME) on it.
//
// Example file:
//
//	term = "xterm-256color"
//	terminfo_dirs = ["~/.local/share/terminfo"]
//	builtin_fallback = true
//	mouse = true
//	hide_cursor = true
//	frame_rate = 30
//	log_level = "debug"
package config

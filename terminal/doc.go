// @focus: #sys { term }
// Package terminal renders styled cells to a terminal through its terminfo
// description and decodes its input.
//
// Features:
//   - Double-buffered Screen: draw calls coalesce into one deferred flush that
//     writes only changed cells
//   - Palette and direct colors, direct colors mapped to the nearest palette
//     entry when the terminal lacks setrgbf/setrgbb
//   - Raw input decoding: terminfo key strings, xterm CSI/SS3 keys, X10 and SGR mouse
//   - Loop: single-goroutine dispatch of input, SIGWINCH resizes and frame ticks
//   - Clean terminal restoration on exit/panic
//
// Every escape sequence except mouse reporting and the inline image wrapper
// comes from the terminfo.Table the Screen was created with.
package terminal

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/tinfo/terminfo"
)

// RestoreOnPanic stops the screen, prints the panic and its stack trace to
// stderr, and exits 1. Defer it on the goroutine that owns the screen:
//
//	defer screen.RestoreOnPanic()
func (s *Screen) RestoreOnPanic() {
	r := recover()
	if r == nil {
		return
	}

	if err := s.Stop(); err != nil {
		EmergencyReset(os.Stdout, s.table)
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// teardown capabilities, in emission order
var resetCapabilities = []terminfo.StringCapability{
	terminfo.CursorNormal,
	terminfo.KeypadLocal,
	terminfo.ExitCaMode,
	terminfo.ExitAttributeMode,
}

// EmergencyReset writes every teardown sequence to w without consulting screen
// state, then forces the controlling terminal back to cooked mode. For crash
// paths where Stop cannot run; t may be nil.
func EmergencyReset(w io.Writer, t *terminfo.Table) {
	w.Write(seqMouseOff)
	if t != nil {
		for _, c := range resetCapabilities {
			if seq, ok := t.Expand(c); ok {
				w.Write(seq)
			}
		}
	}
	w.Write(seqSGR0)
	w.Write(seqRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// escape sequences alone don't restore termios
	resetTerminalMode()
}

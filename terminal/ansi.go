package terminal

import (
	"bufio"
	"encoding/base64"
)

// Sequences with no terminfo capability, emitted verbatim
var (
	seqMouseOn  = []byte("\x1b[?1003h") // any-event tracking
	seqMouseOff = []byte("\x1b[?1000l")
	seqSGR0     = []byte("\x1b[0m")
	seqRIS      = []byte("\x1bc") // Reset to Initial State (emergency)

	// iTerm2 inline image: OSC 1337 ; File=... : <base64> BEL
	seqImageStart = []byte("\x1b]1337;File=inline=1;height=100%:")
	seqImageEnd   = []byte{0x07}
)

// writeImage wraps data in the inline image escape
func writeImage(w *bufio.Writer, data []byte) {
	w.Write(seqImageStart)
	enc := base64.NewEncoder(base64.StdEncoding, w)
	enc.Write(data)
	enc.Close()
	w.Write(seqImageEnd)
}

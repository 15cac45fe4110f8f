//go:build unix

package terminal

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ttyBackend drives a terminal device: raw mode through x/term and
// poll-based reads that observe the stop channel
type ttyBackend struct {
	in      *os.File
	out     io.Writer
	inFd    int
	oldTerm *term.State
	buf     []byte
}

// newBackend picks the tty backend when in is a terminal, the stream backend otherwise
func newBackend(in io.Reader, out io.Writer) backend {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return newStreamBackend(in, out)
	}
	return &ttyBackend{
		in:   f,
		out:  out,
		inFd: int(f.Fd()),
		buf:  make([]byte, 256),
	}
}

func (b *ttyBackend) MakeRaw() error {
	if b.oldTerm != nil {
		return nil
	}
	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.oldTerm = old
	return nil
}

func (b *ttyBackend) Restore() error {
	if b.oldTerm == nil {
		return nil
	}
	err := term.Restore(b.inFd, b.oldTerm)
	b.oldTerm = nil
	return err
}

func (b *ttyBackend) Size() (int, int, bool) {
	if w, h, ok := windowSize(b.out); ok {
		return w, h, true
	}
	return windowSize(b.in)
}

// Read polls with a timeout so a closed stop channel is noticed without a pending byte
func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		// 100ms timeout
		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}
		if n == 0 {
			continue
		}

		rn, err := unix.Read(b.inFd, b.buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}
		if rn == 0 {
			// EOF
			return nil, nil
		}

		ret := make([]byte, rn)
		copy(ret, b.buf[:rn])
		return ret, nil
	}
}

// windowSize reads TIOCGWINSZ when w is a terminal file
func windowSize(w any) (int, int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0, false
	}
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 0, 0, false
	}
	return int(ws.Col), int(ws.Row), true
}

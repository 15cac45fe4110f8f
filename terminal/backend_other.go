//go:build !unix

package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fileBackend handles terminals where poll is unavailable; reads block
type fileBackend struct {
	*streamBackend
	fd      int
	oldTerm *term.State
}

func newBackend(in io.Reader, out io.Writer) backend {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return newStreamBackend(in, out)
	}
	return &fileBackend{streamBackend: newStreamBackend(in, out), fd: int(f.Fd())}
}

func (b *fileBackend) MakeRaw() error {
	if b.oldTerm != nil {
		return nil
	}
	old, err := term.MakeRaw(b.fd)
	if err != nil {
		return err
	}
	b.oldTerm = old
	return nil
}

func (b *fileBackend) Restore() error {
	if b.oldTerm == nil {
		return nil
	}
	err := term.Restore(b.fd, b.oldTerm)
	b.oldTerm = nil
	return err
}

func windowSize(w any) (int, int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0, false
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width == 0 || height == 0 {
		return 0, 0, false
	}
	return width, height, true
}

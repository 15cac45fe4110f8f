package terminal

import (
	"errors"
	"io"
)

// backend abstracts the device behind a Screen's input and output streams
type backend interface {
	// MakeRaw switches input to unbuffered raw delivery; a no-op for non-terminals
	MakeRaw() error

	// Restore undoes MakeRaw. Safe to call multiple times
	Restore() error

	// Size returns the output window size; ok is false when output is not a terminal
	Size() (width, height int, ok bool)

	// Read blocks until input is available, the stop channel is closed, or an error occurs.
	// nil data with a nil error means EOF or stop.
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// streamBackend serves plain readers: no raw mode, and a Read blocked on the
// reader is abandoned on stop rather than interrupted
type streamBackend struct {
	in  io.Reader
	out io.Writer
	buf []byte
}

func newStreamBackend(in io.Reader, out io.Writer) *streamBackend {
	return &streamBackend{in: in, out: out, buf: make([]byte, 256)}
}

func (b *streamBackend) MakeRaw() error { return nil }

func (b *streamBackend) Restore() error { return nil }

func (b *streamBackend) Size() (int, int, bool) {
	return windowSize(b.out)
}

func (b *streamBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		n, err := b.in.Read(b.buf)
		if n > 0 {
			ret := make([]byte, n)
			copy(ret, b.buf[:n])
			return ret, nil
		}
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

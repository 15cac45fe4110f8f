package terminal

import (
	"context"
	"os"
	"os/signal"
)

// resizeWatcher turns window-change signals into resize events. Events are
// coalesced: an unconsumed event is replaced by the newer size.
type resizeWatcher struct {
	size    func() (int, int)
	sigCh   chan os.Signal
	eventCh chan Event
}

func newResizeWatcher(size func() (int, int)) *resizeWatcher {
	return &resizeWatcher{
		size:    size,
		sigCh:   make(chan os.Signal, 1),
		eventCh: make(chan Event, 1),
	}
}

func (r *resizeWatcher) events() <-chan Event {
	return r.eventCh
}

// run listens until ctx is done
func (r *resizeWatcher) run(ctx context.Context) error {
	notifyResize(r.sigCh)
	defer signal.Stop(r.sigCh)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.sigCh:
			r.post()
		}
	}
}

func (r *resizeWatcher) post() {
	w, h := r.size()
	if w <= 0 || h <= 0 {
		return
	}
	ev := Event{Type: EventResize, Width: w, Height: h}
	select {
	case r.eventCh <- ev:
	default:
		// Replace old event
		select {
		case <-r.eventCh:
		default:
		}
		select {
		case r.eventCh <- ev:
		default:
		}
	}
}

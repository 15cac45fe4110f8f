package terminal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrQuit ends Loop.Run without error when returned from a callback
var ErrQuit = errors.New("terminal: quit")

// Loop runs a Screen on a single dispatch goroutine: input events, resize
// events and frame ticks are delivered one at a time, and the screen's
// deferred flushes run after each callback returns.
type Loop struct {
	Screen *Screen

	// FrameRate is the number of OnFrame calls per second; zero disables ticks
	FrameRate int
	OnFrame   func(now time.Time) error
}

// Run starts the screen, dispatches to handle until a callback returns an
// error, ctx is done, or SIGINT, SIGTERM or SIGHUP arrives, then stops the
// screen. Returning ErrQuit is a clean exit.
func (l *Loop) Run(ctx context.Context, handle func(Event) error) (err error) {
	s := l.Screen
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := s.Start(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Stop())
	}()

	g, gctx := errgroup.WithContext(ctx)
	resize := newResizeWatcher(s.Size)

	g.Go(func() error {
		return resize.run(gctx)
	})
	g.Go(func() error {
		defer s.RestoreOnPanic()
		return l.dispatch(gctx, resize.events(), handle)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, ErrQuit) {
		return err
	}
	return nil
}

func (l *Loop) dispatch(ctx context.Context, resizes <-chan Event, handle func(Event) error) error {
	s := l.Screen
	tasks := s.Tasks()
	drain := func() {
		if tasks != nil {
			tasks.RunPending()
		}
	}

	var tick <-chan time.Time
	if l.FrameRate > 0 && l.OnFrame != nil {
		ticker := time.NewTicker(time.Second / time.Duration(l.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	// Anything drawn before Run
	drain()

	events := s.Events()
	for {
		var err error
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev.Type == EventClosed || ev.Type == EventError {
				// reader has exited
				events = nil
			}
			err = handle(ev)
		case ev := <-resizes:
			s.Sync()
			err = handle(ev)
		case now := <-tick:
			err = l.OnFrame(now)
		}
		drain()
		if err != nil {
			return err
		}
	}
}

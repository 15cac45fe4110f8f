package terminal

import "log/slog"

// Option configures a Screen
type Option func(*Screen)

// WithLogger sets the logger for capability warnings and deferred flush failures
func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.log = l
		}
	}
}

// WithScheduler replaces the default TaskQueue that runs deferred flushes
func WithScheduler(sched Scheduler) Option {
	return func(s *Screen) {
		if sched != nil {
			s.sched = sched
		}
	}
}

// WithMouse enables mouse reporting when the screen starts
func WithMouse(enabled bool) Option {
	return func(s *Screen) {
		s.startMouse = enabled
	}
}

// WithHiddenCursor hides the cursor when the screen starts
func WithHiddenCursor(hidden bool) Option {
	return func(s *Screen) {
		s.startHidden = hidden
	}
}

package runner

import (
	"log/slog"
	"time"
)

// DefaultFrameRate is the number of ticks per second when none is configured.
const DefaultFrameRate = 30

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHandler configures how frames are presented.
func WithHandler(handler FrameHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithFrameRate sets the tick frequency in frames per second.
func WithFrameRate(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.Interval = time.Second / time.Duration(fps)
		}
	}
}

// WithInterval sets the time between ticks directly.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.Interval = d
		}
	}
}

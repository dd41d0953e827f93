package runtime

import (
	"log/slog"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/internal/planner"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// ControllerOption defines a functional option for configuring the Controller.
type ControllerOption func(*Controller)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the host clock consulted on every trigger and tick.
func WithClock(clock ports.Clock) ControllerOption {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithPlanner sets the session planner. Use it to inject a seeded random source.
func WithPlanner(p *planner.Planner) ControllerOption {
	return func(c *Controller) {
		if p != nil {
			c.planner = p
		}
	}
}

// WithSink sets the sink that receives every timeline the controller emits.
func WithSink(sink ports.TimelineSink) ControllerOption {
	return func(c *Controller) {
		c.sink = sink
	}
}

func defaults(c *Controller) {
	c.logger = logging.NewNop()
	c.clock = ports.SystemClock{}
	c.planner = planner.New()
}

package logging

import (
	"context"
	"log/slog"

	"github.com/aretw0/reel/pkg/domain"
)

// DebugHooks returns lifecycle hooks that log every animation event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(ctx context.Context, e *domain.AnimationEvent) {
		logger.DebugContext(ctx, string(e.Type),
			"counter", e.CounterID,
			"session", e.SessionID,
			"mode", e.Mode,
			"animated", e.Animated,
			"total", e.TotalDuration,
			"manual", e.Manual,
			"stopped", e.Stopped,
		)
	}
	return domain.LifecycleHooks{
		OnAnimationStart:  log,
		OnAnimationEnd:    log,
		OnAnimationCancel: log,
	}
}

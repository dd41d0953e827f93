package observability

import (
	"context"

	"github.com/aretw0/reel/pkg/domain"
)

// ChainHooks combines hook sets. Each callback runs the non-nil callbacks of every set in order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	pick := func(get func(domain.LifecycleHooks) func(context.Context, *domain.AnimationEvent)) func(context.Context, *domain.AnimationEvent) {
		var fns []func(context.Context, *domain.AnimationEvent)
		for _, s := range sets {
			if fn := get(s); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.AnimationEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnAnimationStart:  pick(func(h domain.LifecycleHooks) func(context.Context, *domain.AnimationEvent) { return h.OnAnimationStart }),
		OnAnimationEnd:    pick(func(h domain.LifecycleHooks) func(context.Context, *domain.AnimationEvent) { return h.OnAnimationEnd }),
		OnAnimationCancel: pick(func(h domain.LifecycleHooks) func(context.Context, *domain.AnimationEvent) { return h.OnAnimationCancel }),
	}
}

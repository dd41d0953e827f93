package ports

import (
	"context"

	"github.com/aretw0/reel/pkg/domain"
)

// TimelineSink receives the timelines emitted by controllers so external renderers
// can pick them up. Implementations keep the latest timeline per counter.
type TimelineSink interface {
	// Publish records and fans out a timeline.
	Publish(ctx context.Context, timeline *domain.Timeline) error

	// Latest returns the most recent timeline for a counter.
	// Returns domain.ErrTimelineNotFound if none was published.
	Latest(ctx context.Context, counterID string) (*domain.Timeline, error)

	// Delete forgets the counter's timeline.
	Delete(ctx context.Context, counterID string) error

	// List returns the counters with a published timeline.
	List(ctx context.Context) ([]string, error)
}

// TimelineSubscriber is implemented by sinks that can stream timelines as they are published.
type TimelineSubscriber interface {
	// Subscribe streams timelines for counterID, or for every counter when counterID is empty.
	// The channel is closed when ctx is done.
	Subscribe(ctx context.Context, counterID string) <-chan *domain.Timeline
}

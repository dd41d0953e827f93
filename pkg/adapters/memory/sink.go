package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/reel/pkg/domain"
)

// subscriberBuffer is the number of timelines queued per subscriber before new ones are dropped.
const subscriberBuffer = 16

// Sink implements ports.TimelineSink in memory and fans timelines out to subscribers.
// Safe for concurrent use.
type Sink struct {
	data map[string]*domain.Timeline
	subs map[int]*subscriber
	next int
	mu   sync.RWMutex
}

type subscriber struct {
	counterID string
	ch        chan *domain.Timeline
}

// NewSink creates a new in-memory sink.
func NewSink() *Sink {
	return &Sink{
		data: make(map[string]*domain.Timeline),
		subs: make(map[int]*subscriber),
	}
}

// Publish stores the timeline as the counter's latest and notifies subscribers.
// Slow subscribers miss timelines rather than block the publisher.
func (s *Sink) Publish(ctx context.Context, timeline *domain.Timeline) error {
	// Copy to ensure isolation, similar to serialization
	stored := clone(timeline)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[timeline.CounterID] = stored

	for _, sub := range s.subs {
		if sub.counterID != "" && sub.counterID != timeline.CounterID {
			continue
		}
		select {
		case sub.ch <- clone(stored):
		default:
		}
	}
	return nil
}

// Latest returns a copy of the counter's most recent timeline.
func (s *Sink) Latest(ctx context.Context, counterID string) (*domain.Timeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tl, ok := s.data[counterID]
	if !ok {
		return nil, domain.ErrTimelineNotFound
	}
	return clone(tl), nil
}

// Delete forgets the counter's timeline.
func (s *Sink) Delete(ctx context.Context, counterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, counterID)
	return nil
}

// List returns the counters with a published timeline, sorted.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Subscribe streams timelines published for counterID, or for every counter when
// counterID is empty. The channel is closed when ctx is done.
func (s *Sink) Subscribe(ctx context.Context, counterID string) <-chan *domain.Timeline {
	sub := &subscriber{counterID: counterID, ch: make(chan *domain.Timeline, subscriberBuffer)}

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = sub
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(sub.ch)
		s.mu.Unlock()
	}()

	return sub.ch
}

func clone(tl *domain.Timeline) *domain.Timeline {
	out := *tl
	out.Slots = make([]domain.TimelineSlot, len(tl.Slots))
	for i, slot := range tl.Slots {
		slot.Tokens = append([]domain.Token(nil), slot.Tokens...)
		out.Slots[i] = slot
	}
	return &out
}

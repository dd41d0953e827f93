package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/reel/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key and channel written by the sink.
const DefaultPrefix = "reel:"

// noExpiry is the index score used when timelines never expire (2100-01-01).
const noExpiry = 4102444800

// Sink implements ports.TimelineSink using Redis.
// The latest timeline of each counter is stored as JSON and published on a per-counter channel.
type Sink struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Sink)

// WithTTL sets the expiration for stored timelines.
func WithTTL(ttl time.Duration) Option {
	return func(s *Sink) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Sink) {
		s.prefix = prefix
	}
}

// New creates a new Redis sink connected to address.
func New(address, password string, db int, opts ...Option) *Sink {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis sink from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Sink {
	sink := &Sink{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(sink)
	}

	return sink
}

func (s *Sink) key(counterID string) string {
	return s.prefix + "timeline:" + counterID
}

func (s *Sink) indexKey() string {
	return s.prefix + "index"
}

func (s *Sink) channel(counterID string) string {
	return s.prefix + "events:" + counterID
}

// Publish stores the timeline as the counter's latest and publishes it on the counter's channel.
func (s *Sink) Publish(ctx context.Context, timeline *domain.Timeline) error {
	data, err := json.Marshal(timeline)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiry
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(timeline.CounterID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: timeline.CounterID})
	pipe.Publish(ctx, s.channel(timeline.CounterID), data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}
	return nil
}

// Latest retrieves the counter's most recent timeline.
func (s *Sink) Latest(ctx context.Context, counterID string) (*domain.Timeline, error) {
	val, err := s.client.Get(ctx, s.key(counterID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTimelineNotFound, counterID)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var timeline domain.Timeline
	if err := json.Unmarshal(val, &timeline); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeline: %w", err)
	}
	return &timeline, nil
}

// Delete removes the counter's timeline.
func (s *Sink) Delete(ctx context.Context, counterID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(counterID))
	pipe.ZRem(ctx, s.indexKey(), counterID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the counters with a live timeline. Expired entries are pruned from the index lazily.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired timelines: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list timelines: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Subscribe streams timelines published for counterID, or for every counter when counterID
// is empty. The subscription is confirmed before Subscribe returns. Undecodable messages
// are skipped. The channel is closed when ctx is done.
func (s *Sink) Subscribe(ctx context.Context, counterID string) <-chan *domain.Timeline {
	var pubsub *backend.PubSub
	if counterID == "" {
		pubsub = s.client.PSubscribe(ctx, s.channel("*"))
	} else {
		pubsub = s.client.Subscribe(ctx, s.channel(counterID))
	}

	out := make(chan *domain.Timeline)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		close(out)
		return out
	}

	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if !strings.HasPrefix(msg.Channel, s.prefix+"events:") {
					continue
				}
				var timeline domain.Timeline
				if err := json.Unmarshal([]byte(msg.Payload), &timeline); err != nil {
					continue
				}
				select {
				case out <- &timeline:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Close closes the redis client.
func (s *Sink) Close() error {
	return s.client.Close()
}

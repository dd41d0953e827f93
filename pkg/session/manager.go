package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager hosts counters and serializes access to each of them.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	countersMu sync.RWMutex
	counters   map[string]*reel.Counter

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker      ports.DistributedLocker // Optional distributed locker
	lockTTL     time.Duration
	sink        ports.TimelineSink
	logger      *slog.Logger
	counterOpts []reel.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSink publishes the timelines of every hosted counter and forgets them on Delete.
func WithSink(sink ports.TimelineSink) Option {
	return func(m *Manager) {
		m.sink = sink
	}
}

// WithCounterOptions applies options to every counter the manager creates.
func WithCounterOptions(opts ...reel.Option) Option {
	return func(m *Manager) {
		m.counterOpts = append(m.counterOpts, opts...)
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		counters: make(map[string]*reel.Counter),
		locks:    make(map[string]*lockEntry),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock executes a function while holding the lock for the counter.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"counter", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Put creates the counter, or reconfigures it when it already exists.
// A new counter is mounted, so a configured start value plays immediately.
func (m *Manager) Put(ctx context.Context, id string, opts domain.Options) (*reel.Counter, error) {
	var counter *reel.Counter
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if existing := m.lookup(id); existing != nil {
			counter = existing
			return existing.Configure(ctx, opts)
		}

		options := append([]reel.Option{reel.WithLogger(m.logger), reel.WithSink(m.sink)}, m.counterOpts...)
		created, err := reel.New(id, opts, options...)
		if err != nil {
			return err
		}
		if err := created.Mount(ctx); err != nil {
			return err
		}

		m.countersMu.Lock()
		m.counters[id] = created
		m.countersMu.Unlock()

		m.logger.DebugContext(ctx, "counter created", "counter", id)
		counter = created
		return nil
	})
	return counter, err
}

// Get returns the counter, or domain.ErrCounterNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*reel.Counter, error) {
	if c := m.lookup(id); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrCounterNotFound, id)
}

// Delete removes the counter and its published timeline.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.countersMu.Lock()
		_, ok := m.counters[id]
		delete(m.counters, id)
		m.countersMu.Unlock()

		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrCounterNotFound, id)
		}
		if m.sink != nil {
			if err := m.sink.Delete(ctx, id); err != nil {
				m.logger.WarnContext(ctx, "failed to delete timeline", "counter", id, "err", err)
			}
		}
		return nil
	})
}

// List returns the hosted counter IDs, sorted.
func (m *Manager) List(ctx context.Context) []string {
	m.countersMu.RLock()
	defer m.countersMu.RUnlock()

	ids := make([]string, 0, len(m.counters))
	for id := range m.counters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Do runs fn against an existing counter under its lock.
func (m *Manager) Do(ctx context.Context, id string, fn func(context.Context, *reel.Counter) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		c := m.lookup(id)
		if c == nil {
			return fmt.Errorf("%w: %s", domain.ErrCounterNotFound, id)
		}
		return fn(ctx, c)
	})
}

// SetValue changes a counter's value.
func (m *Manager) SetValue(ctx context.Context, id string, v any) error {
	return m.Do(ctx, id, func(ctx context.Context, c *reel.Counter) error {
		return c.SetValue(ctx, v)
	})
}

// StartAnimation replays a counter with optional overrides.
func (m *Manager) StartAnimation(ctx context.Context, id string, ov *domain.Overrides) error {
	return m.Do(ctx, id, func(ctx context.Context, c *reel.Counter) error {
		return c.StartAnimation(ctx, ov)
	})
}

// StopAnimation snaps a counter to its target.
func (m *Manager) StopAnimation(ctx context.Context, id string) error {
	return m.Do(ctx, id, func(ctx context.Context, c *reel.Counter) error {
		c.StopAnimation(ctx)
		return nil
	})
}

// TickAll advances every running counter and returns their frames, ordered by ID.
// The tick that completes a session is included; idle counters are skipped.
func (m *Manager) TickAll(ctx context.Context) []domain.Frame {
	var frames []domain.Frame
	for _, id := range m.List(ctx) {
		c := m.lookup(id)
		if c == nil || c.State() == domain.StateIdle {
			continue
		}
		frames = append(frames, c.Tick(ctx))
	}
	return frames
}

func (m *Manager) lookup(id string) *reel.Counter {
	m.countersMu.RLock()
	defer m.countersMu.RUnlock()
	return m.counters[id]
}

package http

import (
	"log/slog"
	"sync"
)

// frameBuffer is the number of frames queued per SSE client before new ones are dropped.
const frameBuffer = 32

// StreamManager fans serialized frames out to SSE clients, keyed by counter ID.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // CounterID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a client for counterID. The returned func unregisters it and closes the channel.
func (sm *StreamManager) Subscribe(counterID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, frameBuffer)
	if _, ok := sm.subscribers[counterID]; !ok {
		sm.subscribers[counterID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[counterID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[counterID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, counterID)
			}
		}
	}
}

// Subscribers reports how many clients follow counterID.
func (sm *StreamManager) Subscribers(counterID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[counterID])
}

// Broadcast sends msg to every client of counterID. Slow clients miss messages.
func (sm *StreamManager) Broadcast(counterID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[counterID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping frame", "counter", counterID)
		}
	}
}

package testutils

import "sync"

// ScriptedSource replays a fixed list of picks, cycling when exhausted.
// Each pick is reduced modulo n.
type ScriptedSource struct {
	mu    sync.Mutex
	picks []int
	next  int
}

// NewScriptedSource creates a source over picks. With no picks it always returns 0.
func NewScriptedSource(picks ...int) *ScriptedSource {
	return &ScriptedSource{picks: picks}
}

// Intn returns the next scripted pick in [0,n).
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.picks) == 0 {
		return 0
	}
	v := s.picks[s.next%len(s.picks)]
	s.next++
	return ((v % n) + n) % n
}

package domain

import "time"

// Mode selects how slot start offsets are staggered.
type Mode string

const (
	ModeSimultaneous       Mode = "simultaneous"
	ModeSequential         Mode = "sequential"
	ModeSequentialByResult Mode = "sequential_by_result"
)

// Direction is the scroll direction passed through to the renderer.
type Direction string

const (
	DirectionTopDown  Direction = "top-down"
	DirectionBottomUp Direction = "bottom-up"
)

// Valid reports whether the direction is a known value.
func (d Direction) Valid() bool {
	return d == DirectionTopDown || d == DirectionBottomUp
}

// SlotPlan is one reel position's animation plan.
type SlotPlan struct {
	Index  int   `json:"index"`
	Start  Token `json:"start"`
	Target Token `json:"target"`

	// Filler is the run the reel scrolls through after Start.
	// Its last entry equals Target unless the run is empty.
	Filler []Token `json:"filler"`

	// Animated is false for static slots, which render Target immediately.
	Animated bool `json:"animated"`

	StartOffset time.Duration `json:"start_offset"`
	Duration    time.Duration `json:"duration"`
}

// End returns the time the slot lands on its target, relative to the session start.
func (s SlotPlan) End() time.Duration {
	return s.StartOffset + s.Duration
}

// Reel returns the full strip: the start token followed by the filler run.
func (s SlotPlan) Reel() []Token {
	out := make([]Token, 0, len(s.Filler)+1)
	out = append(out, s.Start)
	out = append(out, s.Filler...)
	return out
}

// At returns the token shown by the slot after elapsed time since the session started.
func (s SlotPlan) At(elapsed time.Duration) Token {
	if !s.Animated || elapsed >= s.End() {
		return s.Target
	}
	if elapsed < s.StartOffset {
		return s.Start
	}
	if len(s.Filler) == 0 || s.Duration <= 0 {
		return s.Target
	}
	progress := float64(elapsed-s.StartOffset) / float64(s.Duration)
	idx := int(progress * float64(len(s.Filler)))
	if idx >= len(s.Filler) {
		idx = len(s.Filler) - 1
	}
	return s.Filler[idx]
}

// Session is one playback instance. Exactly one may be active per counter.
type Session struct {
	ID        string     `json:"id"`
	CounterID string     `json:"counter_id"`
	Slots     []SlotPlan `json:"slots"`
	Mode      Mode       `json:"mode"`
	Direction Direction  `json:"direction"`

	TotalDuration time.Duration `json:"total_duration"`
	StartedAt     time.Time     `json:"started_at"`

	// Manual is true for replays triggered through StartAnimation.
	Manual bool `json:"manual"`

	// Cancelled is set when a newer session supersedes this one.
	Cancelled bool `json:"cancelled"`

	UseMonospaceWidth bool `json:"use_monospace_width,omitempty"`
}

// Targets returns the tokens the session converges to.
func (s *Session) Targets() []Token {
	out := make([]Token, len(s.Slots))
	for i, slot := range s.Slots {
		out[i] = slot.Target
	}
	return out
}

// Frame returns the tokens shown after elapsed time.
func (s *Session) Frame(elapsed time.Duration) []Token {
	out := make([]Token, len(s.Slots))
	for i, slot := range s.Slots {
		out[i] = slot.At(elapsed)
	}
	return out
}

// Done reports whether elapsed time covers the whole session.
func (s *Session) Done(elapsed time.Duration) bool {
	return elapsed >= s.TotalDuration
}

package domain

import "time"

// TimelineSlot is what a renderer needs to drive one scrolling strip.
type TimelineSlot struct {
	// Tokens is the strip: start token first, target token last.
	// Slots that jump straight to their target carry the target alone.
	Tokens      []Token   `json:"tokens"`
	StartOffset float64   `json:"start_offset"` // seconds
	Duration    float64   `json:"duration"`     // seconds
	Direction   Direction `json:"direction"`
	Animated    bool      `json:"animated"`
}

// Timeline is the finished per-slot schedule emitted to external renderers.
type Timeline struct {
	SessionID         string         `json:"session_id"`
	CounterID         string         `json:"counter_id"`
	Mode              Mode           `json:"mode"`
	Direction         Direction      `json:"direction"`
	TotalDuration     float64        `json:"total_duration"` // seconds
	UseMonospaceWidth bool           `json:"use_monospace_width,omitempty"`
	Slots             []TimelineSlot `json:"slots"`
}

// Timeline converts the session into its renderer-facing form.
func (s *Session) Timeline() *Timeline {
	tl := &Timeline{
		SessionID:         s.ID,
		CounterID:         s.CounterID,
		Mode:              s.Mode,
		Direction:         s.Direction,
		TotalDuration:     s.TotalDuration.Seconds(),
		UseMonospaceWidth: s.UseMonospaceWidth,
		Slots:             make([]TimelineSlot, len(s.Slots)),
	}
	for i, slot := range s.Slots {
		tokens := []Token{slot.Target}
		if slot.Animated && len(slot.Filler) > 0 {
			tokens = slot.Reel()
		}
		tl.Slots[i] = TimelineSlot{
			Tokens:      tokens,
			StartOffset: slot.StartOffset.Seconds(),
			Duration:    slot.Duration.Seconds(),
			Direction:   s.Direction,
			Animated:    slot.Animated,
		}
	}
	return tl
}

// Targets returns the last token of every strip.
func (t *Timeline) Targets() []Token {
	out := make([]Token, len(t.Slots))
	for i, slot := range t.Slots {
		if n := len(slot.Tokens); n > 0 {
			out[i] = slot.Tokens[n-1]
		}
	}
	return out
}

// Seconds converts a float number of seconds into a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Frame is the displayed state of a counter at one tick of the host clock.
type Frame struct {
	CounterID string          `json:"counter_id"`
	SessionID string          `json:"session_id,omitempty"`
	State     ControllerState `json:"state"`
	Tokens    []Token         `json:"tokens"`
	Direction Direction       `json:"direction"`

	// Progress is the elapsed fraction of the session, 1 when idle.
	Progress float64 `json:"progress"`
	Done     bool    `json:"done"`
}

// Text concatenates the displayed textual payloads.
func (f Frame) Text() string {
	return JoinTokens(f.Tokens)
}

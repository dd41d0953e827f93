package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAnimationStart  EventType = "animation_start"
	EventAnimationEnd    EventType = "animation_end"
	EventAnimationCancel EventType = "animation_cancel"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	CounterID string    `json:"counter_id"`
}

// AnimationEvent describes a session lifecycle transition.
type AnimationEvent struct {
	EventBase
	SessionID     string        `json:"session_id"`
	Mode          Mode          `json:"mode"`
	Slots         int           `json:"slots"`
	Animated      int           `json:"animated"`
	TotalDuration time.Duration `json:"total_duration"`
	Manual        bool          `json:"manual,omitempty"`

	// Stopped marks an end forced by StopAnimation rather than elapsed time.
	Stopped bool `json:"stopped,omitempty"`
}

// LifecycleHooks defines callbacks for controller observability.
type LifecycleHooks struct {
	OnAnimationStart  func(context.Context, *AnimationEvent)
	OnAnimationEnd    func(context.Context, *AnimationEvent)
	OnAnimationCancel func(context.Context, *AnimationEvent)
}

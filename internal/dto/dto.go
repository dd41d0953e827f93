// Package dto holds the request and response bodies shared by the HTTP and MCP adapters.
package dto

import (
	"github.com/aretw0/reel"
	"github.com/aretw0/reel/pkg/domain"
)

// PlanRequest asks for a transition plan without creating a counter.
type PlanRequest struct {
	Old     any            `json:"old" mapstructure:"old"`
	New     any            `json:"new" mapstructure:"new"`
	Options map[string]any `json:"options,omitempty" mapstructure:"options"`
	Manual  bool           `json:"manual,omitempty" mapstructure:"manual"`
	// Seed makes filler runs reproducible when non-zero.
	Seed int64 `json:"seed,omitempty" mapstructure:"seed"`
}

// PlanResponse is the planned session in renderer form.
type PlanResponse struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	Timeline *domain.Timeline `json:"timeline"`
}

// ValueRequest carries a new counter value.
type ValueRequest struct {
	Value any `json:"value" mapstructure:"value"`
}

// CounterView is the externally visible state of a counter.
type CounterView struct {
	ID       string                 `json:"id"`
	State    domain.ControllerState `json:"state"`
	Display  string                 `json:"display"`
	Tokens   []domain.Token         `json:"tokens"`
	Value    string                 `json:"value"`
	Pending  bool                   `json:"pending,omitempty"`
	Options  domain.Options         `json:"options"`
	Timeline *domain.Timeline       `json:"timeline,omitempty"`
}

// NewCounterView snapshots c. The timeline is the active or most recent one, if any.
func NewCounterView(c *reel.Counter) CounterView {
	view := CounterView{
		ID:      c.ID(),
		State:   c.State(),
		Display: c.Text(),
		Tokens:  c.Display(),
		Value:   c.Value().String(),
		Pending: c.Pending(),
		Options: c.Options(),
	}
	if tl, err := c.Timeline(); err == nil {
		view.Timeline = tl
	}
	return view
}

// NewPlanResponse converts a planned session.
func NewPlanResponse(s *domain.Session) PlanResponse {
	start := make([]domain.Token, len(s.Slots))
	for i, slot := range s.Slots {
		start[i] = slot.Start
	}
	return PlanResponse{
		From:     domain.JoinTokens(start),
		To:       domain.JoinTokens(s.Targets()),
		Timeline: s.Timeline(),
	}
}

package domain

import "errors"

// ErrPresetNotFound is returned when a preset source has no preset with the given ID.
var ErrPresetNotFound = errors.New("preset not found")

// Preset is a named, reusable set of counter options.
type Preset struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Options     Options  `json:"options" yaml:"options"`

	// Notes is the markdown body of the preset document, if any.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

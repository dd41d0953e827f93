package domain

import "time"

// Defaults applied when an option is left unset.
const (
	DefaultDuration            = 0.7 // seconds
	DefaultDummyCharacterCount = 8
	DefaultDirection           = DirectionTopDown
)

// Options is the declarative configuration of one counter instance.
// Pointer fields distinguish "unset" (use the default) from an explicit zero.
type Options struct {
	// Value is the target value: a number, a string, or a sequence of units.
	Value any `json:"value" yaml:"value" mapstructure:"value"`

	// StartValue seeds the old sequence of the first (or every) animation.
	StartValue any `json:"start_value,omitempty" yaml:"start_value,omitempty" mapstructure:"start_value"`
	// StartValueOnce restricts StartValue to the very first animation.
	StartValueOnce bool `json:"start_value_once,omitempty" yaml:"start_value_once,omitempty" mapstructure:"start_value_once"`

	// Duration is the base duration of a session, in seconds. Zero skips the reel run.
	Duration *float64 `json:"duration,omitempty" yaml:"duration,omitempty" mapstructure:"duration"`

	DummyCharacterCount *int `json:"dummy_character_count,omitempty" yaml:"dummy_character_count,omitempty" mapstructure:"dummy_character_count"`
	// DummyCharacters overrides the default digit pool. Accepts a string, []string or []any.
	DummyCharacters any `json:"dummy_characters,omitempty" yaml:"dummy_characters,omitempty" mapstructure:"dummy_characters"`

	AnimateUnchanged bool `json:"animate_unchanged,omitempty" yaml:"animate_unchanged,omitempty" mapstructure:"animate_unchanged"`

	SequentialAnimationMode  bool `json:"sequential_animation_mode,omitempty" yaml:"sequential_animation_mode,omitempty" mapstructure:"sequential_animation_mode"`
	SequentialSlotResultMode bool `json:"sequential_slot_result_mode,omitempty" yaml:"sequential_slot_result_mode,omitempty" mapstructure:"sequential_slot_result_mode"`

	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty" mapstructure:"direction"`

	AutoAnimationStart *bool `json:"auto_animation_start,omitempty" yaml:"auto_animation_start,omitempty" mapstructure:"auto_animation_start"`

	// UseMonospaceWidth is a renderer hint only; it has no effect on planning.
	UseMonospaceWidth bool `json:"use_monospace_width,omitempty" yaml:"use_monospace_width,omitempty" mapstructure:"use_monospace_width"`
}

// Overrides adjusts a single StartAnimation call without touching the standing options.
type Overrides struct {
	Duration            *float64   `json:"duration,omitempty" mapstructure:"duration"`
	DummyCharacterCount *int       `json:"dummy_character_count,omitempty" mapstructure:"dummy_character_count"`
	Direction           *Direction `json:"direction,omitempty" mapstructure:"direction"`
}

// Ptr returns a pointer to v. Handy for optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// BaseDuration returns the configured duration, or the default.
func (o Options) BaseDuration() time.Duration {
	if o.Duration == nil {
		return Seconds(DefaultDuration)
	}
	return Seconds(*o.Duration)
}

// DummyCount returns the configured filler length, or the default.
func (o Options) DummyCount() int {
	if o.DummyCharacterCount == nil {
		return DefaultDummyCharacterCount
	}
	return *o.DummyCharacterCount
}

// AutoStart reports whether a value change alone triggers a session. Defaults to true.
func (o Options) AutoStart() bool {
	if o.AutoAnimationStart == nil {
		return true
	}
	return *o.AutoAnimationStart
}

// ScrollDirection returns the configured direction, or the default.
func (o Options) ScrollDirection() Direction {
	if o.Direction == "" {
		return DefaultDirection
	}
	return o.Direction
}

// Mode resolves the timing mode. The result mode wins when both flags are set.
func (o Options) Mode() Mode {
	switch {
	case o.SequentialSlotResultMode:
		return ModeSequentialByResult
	case o.SequentialAnimationMode:
		return ModeSequential
	default:
		return ModeSimultaneous
	}
}

// WithOverrides returns a copy of the options with the overrides applied.
func (o Options) WithOverrides(ov *Overrides) Options {
	if ov == nil {
		return o
	}
	next := o
	if ov.Duration != nil {
		next.Duration = Ptr(*ov.Duration)
	}
	if ov.DummyCharacterCount != nil {
		next.DummyCharacterCount = Ptr(*ov.DummyCharacterCount)
	}
	if ov.Direction != nil {
		next.Direction = *ov.Direction
	}
	return next
}

package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidValueShape is returned when a value mixes incompatible token kinds
// or has an unsupported type.
var ErrInvalidValueShape = errors.New("invalid value shape")

// ErrConfigurationOutOfRange is returned when an option is outside its valid range.
var ErrConfigurationOutOfRange = errors.New("configuration out of range")

// ErrCounterNotFound is returned when a counter ID is not registered.
var ErrCounterNotFound = errors.New("counter not found")

// ErrTimelineNotFound is returned when a sink holds no timeline for a counter.
var ErrTimelineNotFound = errors.New("timeline not found")

// ShapeError describes why a value cannot be tokenized.
type ShapeError struct {
	Reason string
	Value  any
}

func (e *ShapeError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", ErrInvalidValueShape, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %T)", ErrInvalidValueShape, e.Reason, e.Value)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidValueShape
}

// RangeError represents a single option outside its valid range.
type RangeError struct {
	Option string
	Reason string
	Value  any
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: option %q %s (got %v)", ErrConfigurationOutOfRange, e.Option, e.Reason, e.Value)
}

func (e *RangeError) Unwrap() error {
	return ErrConfigurationOutOfRange
}

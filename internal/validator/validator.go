// Package validator checks counter options against their allowed ranges.
package validator

import (
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/reel/pkg/domain"
)

// MaxDummyCharacterCount bounds the filler run of a single slot.
const MaxDummyCharacterCount = 1000

// ValidateOptions checks the standing options of a counter.
// Every violation is reported; the result unwraps to domain.ErrConfigurationOutOfRange.
func ValidateOptions(opts domain.Options) error {
	var errs []error

	if opts.Duration != nil {
		errs = append(errs, checkDuration(*opts.Duration))
	}
	if opts.DummyCharacterCount != nil {
		errs = append(errs, checkDummyCount(*opts.DummyCharacterCount))
	}
	if opts.Direction != "" {
		errs = append(errs, checkDirection(opts.Direction))
	}

	return errors.Join(errs...)
}

// ValidateOverrides checks a one-shot override set. A nil set is valid.
func ValidateOverrides(ov *domain.Overrides) error {
	if ov == nil {
		return nil
	}

	var errs []error
	if ov.Duration != nil {
		errs = append(errs, checkDuration(*ov.Duration))
	}
	if ov.DummyCharacterCount != nil {
		errs = append(errs, checkDummyCount(*ov.DummyCharacterCount))
	}
	if ov.Direction != nil {
		errs = append(errs, checkDirection(*ov.Direction))
	}

	return errors.Join(errs...)
}

func checkDuration(d float64) error {
	switch {
	case math.IsNaN(d) || math.IsInf(d, 0):
		return &domain.RangeError{Option: "duration", Reason: "must be a finite number of seconds", Value: d}
	case d < 0:
		// Zero is allowed and means "skip the reel run".
		return &domain.RangeError{Option: "duration", Reason: "must not be negative", Value: d}
	case d > math.MaxInt64/1e9:
		return &domain.RangeError{Option: "duration", Reason: "is too large", Value: d}
	}
	return nil
}

func checkDummyCount(n int) error {
	switch {
	case n < 0:
		return &domain.RangeError{Option: "dummy_character_count", Reason: "must not be negative", Value: n}
	case n > MaxDummyCharacterCount:
		return &domain.RangeError{Option: "dummy_character_count", Reason: fmt.Sprintf("must be at most %d", MaxDummyCharacterCount), Value: n}
	}
	return nil
}

func checkDirection(d domain.Direction) error {
	if !d.Valid() {
		return &domain.RangeError{
			Option: "direction",
			Reason: fmt.Sprintf("must be %q or %q", domain.DirectionTopDown, domain.DirectionBottomUp),
			Value:  d,
		}
	}
	return nil
}

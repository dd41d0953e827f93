package planner

import (
	"time"

	"github.com/aretw0/reel/pkg/domain"
)

// Schedule assigns offsets and durations to the slots in place and returns the session length.
//
// Only animating slots take part; static slots keep a zero offset and duration.
// In the sequential modes n ranks share the window: rank r starts at r*base/(n+1) and runs
// for 2*base/(n+1), so the last rank always lands exactly at base.
// A base of zero (or less) clears every filler run and completes immediately.
func Schedule(slots []domain.SlotPlan, mode domain.Mode, base time.Duration) time.Duration {
	if base <= 0 {
		for i := range slots {
			slots[i].Filler = nil
			slots[i].StartOffset = 0
			slots[i].Duration = 0
		}
		return 0
	}

	ranks, n := rank(slots, mode)

	var total time.Duration
	for i := range slots {
		slot := &slots[i]
		if !slot.Animated {
			slot.StartOffset = 0
			slot.Duration = 0
			continue
		}

		switch mode {
		case domain.ModeSequential, domain.ModeSequentialByResult:
			r := int64(ranks[i])
			window := int64(n + 1)
			start := fraction(base, r, window)
			end := fraction(base, r+2, window)
			slot.StartOffset = start
			slot.Duration = end - start
		default:
			slot.StartOffset = 0
			slot.Duration = base
		}

		total = max(total, slot.End())
	}
	return total
}

// fraction returns base*k/window without overflowing for any valid base.
// Splitting base by window keeps the result exact: k == window yields base.
func fraction(base time.Duration, k, window int64) time.Duration {
	q, rem := int64(base)/window, int64(base)%window
	return time.Duration(q*k + rem*k/window)
}

// rank orders the animating slots. Sequential ranks follow reading order;
// sequential-by-result ranks follow the first appearance of each distinct target.
func rank(slots []domain.SlotPlan, mode domain.Mode) (map[int]int, int) {
	ranks := make(map[int]int, len(slots))

	if mode != domain.ModeSequentialByResult {
		n := 0
		for i, slot := range slots {
			if slot.Animated {
				ranks[i] = n
				n++
			}
		}
		return ranks, n
	}

	var groups []domain.Token
	for i, slot := range slots {
		if !slot.Animated {
			continue
		}
		g := -1
		for j, target := range groups {
			if target.Equal(slot.Target) {
				g = j
				break
			}
		}
		if g < 0 {
			g = len(groups)
			groups = append(groups, slot.Target)
		}
		ranks[i] = g
	}
	return ranks, len(groups)
}

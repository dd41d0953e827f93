package planner

import (
	"testing"
	"time"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func animatedSlots(targets string) []domain.SlotPlan {
	slots := make([]domain.SlotPlan, 0, len(targets))
	for i, r := range targets {
		slots = append(slots, domain.SlotPlan{
			Index:    i,
			Target:   domain.Token{Kind: domain.KindDigit, Text: string(r)},
			Filler:   []domain.Token{domain.Zero()},
			Animated: true,
		})
	}
	return slots
}

func TestSchedule_Simultaneous(t *testing.T) {
	slots := animatedSlots("123")
	total := Schedule(slots, domain.ModeSimultaneous, 700*time.Millisecond)

	assert.Equal(t, 700*time.Millisecond, total)
	for _, s := range slots {
		assert.Zero(t, s.StartOffset)
		assert.Equal(t, 700*time.Millisecond, s.Duration)
	}
}

func TestSchedule_Sequential(t *testing.T) {
	slots := animatedSlots("1234")
	total := Schedule(slots, domain.ModeSequential, time.Second)

	assert.Equal(t, time.Second, total)
	wantOffsets := []time.Duration{0, 200 * time.Millisecond, 400 * time.Millisecond, 600 * time.Millisecond}
	for i, s := range slots {
		assert.Equal(t, wantOffsets[i], s.StartOffset, "slot %d", i)
		assert.Equal(t, 400*time.Millisecond, s.Duration, "slot %d", i)
	}
}

func TestSchedule_SequentialSkipsStaticSlots(t *testing.T) {
	slots := animatedSlots("123")
	slots[1].Animated = false
	slots[1].Filler = nil

	total := Schedule(slots, domain.ModeSequential, 900*time.Millisecond)

	assert.Equal(t, 900*time.Millisecond, total)
	assert.Zero(t, slots[1].StartOffset)
	assert.Zero(t, slots[1].Duration)
	assert.Equal(t, 300*time.Millisecond, slots[2].StartOffset)
}

func TestSchedule_SequentialEndsAtBase(t *testing.T) {
	base := 700 * time.Millisecond
	for n := 1; n <= 40; n++ {
		targets := make([]rune, n)
		for i := range targets {
			targets[i] = rune('0' + i%10)
		}
		slots := animatedSlots(string(targets))
		total := Schedule(slots, domain.ModeSequential, base)

		require.Equal(t, base, total, "n=%d", n)
		for i := 1; i < n; i++ {
			assert.GreaterOrEqual(t, slots[i].StartOffset, slots[i-1].StartOffset)
		}
	}
}

func TestSchedule_SequentialLargeBase(t *testing.T) {
	base := domain.Seconds(1e9)
	for _, mode := range []domain.Mode{domain.ModeSequential, domain.ModeSequentialByResult} {
		slots := animatedSlots("012345678901")
		total := Schedule(slots, mode, base)

		require.Equal(t, base, total, "mode=%s", mode)
		for i, s := range slots {
			assert.GreaterOrEqual(t, s.StartOffset, time.Duration(0), "mode=%s slot %d", mode, i)
			assert.Positive(t, s.Duration, "mode=%s slot %d", mode, i)
			assert.LessOrEqual(t, s.End(), base, "mode=%s slot %d", mode, i)
		}
	}
}

func TestSchedule_SequentialByResult(t *testing.T) {
	slots := animatedSlots("1121")
	total := Schedule(slots, domain.ModeSequentialByResult, 900*time.Millisecond)

	assert.Equal(t, 900*time.Millisecond, total)
	assert.Zero(t, slots[0].StartOffset)
	assert.Zero(t, slots[1].StartOffset)
	assert.Equal(t, 300*time.Millisecond, slots[2].StartOffset)
	assert.Zero(t, slots[3].StartOffset, "repeated targets share their group offset")
	for _, s := range slots {
		assert.Equal(t, 600*time.Millisecond, s.Duration)
	}
}

func TestSchedule_ZeroDurationSkipsReel(t *testing.T) {
	slots := animatedSlots("42")
	total := Schedule(slots, domain.ModeSequential, 0)

	assert.Zero(t, total)
	for _, s := range slots {
		assert.Empty(t, s.Filler)
		assert.Zero(t, s.End())
		assert.Equal(t, s.Target, s.At(0))
	}
}

func TestSchedule_NoSlots(t *testing.T) {
	assert.Zero(t, Schedule(nil, domain.ModeSimultaneous, time.Second))
}

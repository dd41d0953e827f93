package planner_test

import (
	"testing"
	"time"

	"github.com/aretw0/reel/internal/planner"
	"github.com/aretw0/reel/internal/testutils"
	"github.com/aretw0/reel/internal/tokenizer"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(t *testing.T, v any) domain.ValueSequence {
	t.Helper()
	s, err := tokenizer.Tokenize(v)
	require.NoError(t, err)
	return s
}

func newPlanner() *planner.Planner {
	return planner.New(
		planner.WithRandomSource(ports.NewSeededSource(42)),
		planner.WithIDGenerator(func() string { return "session-1" }),
	)
}

func TestPlan_DefaultSession(t *testing.T) {
	p := newPlanner()

	session, err := p.Plan(planner.Request{
		CounterID: "c1",
		Old:       seq(t, 120),
		New:       seq(t, 125),
	})
	require.NoError(t, err)

	assert.Equal(t, "session-1", session.ID)
	assert.Equal(t, "c1", session.CounterID)
	assert.Equal(t, domain.ModeSimultaneous, session.Mode)
	assert.Equal(t, domain.DirectionTopDown, session.Direction)
	assert.Equal(t, 700*time.Millisecond, session.TotalDuration)
	require.Len(t, session.Slots, 3)

	assert.False(t, session.Slots[0].Animated)
	assert.False(t, session.Slots[1].Animated)
	assert.True(t, session.Slots[2].Animated)
	assert.Len(t, session.Slots[2].Filler, domain.DefaultDummyCharacterCount)
}

func TestPlan_StaticSlotsAreIdempotent(t *testing.T) {
	session, err := newPlanner().Plan(planner.Request{Old: seq(t, "hello"), New: seq(t, "hello")})
	require.NoError(t, err)

	for _, slot := range session.Slots {
		assert.False(t, slot.Animated)
		assert.Empty(t, slot.Filler)
		assert.Zero(t, slot.Duration)
		assert.Equal(t, slot.Target, slot.At(0))
	}
	assert.Zero(t, session.TotalDuration)
}

func TestPlan_AnimateUnchanged(t *testing.T) {
	session, err := newPlanner().Plan(planner.Request{
		Old:     seq(t, 7),
		New:     seq(t, 7),
		Options: domain.Options{AnimateUnchanged: true},
	})
	require.NoError(t, err)
	require.Len(t, session.Slots, 1)
	assert.True(t, session.Slots[0].Animated)
	assert.Len(t, session.Slots[0].Filler, domain.DefaultDummyCharacterCount)
}

func TestPlan_FillerTermination(t *testing.T) {
	p := newPlanner()
	pairs := [][2]any{{0, 9}, {99, 100}, {1234, 98}, {"abc", "xyz"}, {-1.5, 2.75}}

	for _, pair := range pairs {
		session, err := p.Plan(planner.Request{Old: seq(t, pair[0]), New: seq(t, pair[1]), Options: domain.Options{DummyCharacterCount: domain.Ptr(5)}})
		require.NoError(t, err)

		for _, slot := range session.Slots {
			if !slot.Animated {
				continue
			}
			require.Len(t, slot.Filler, 5)
			assert.True(t, slot.Filler[len(slot.Filler)-1].Equal(slot.Target), "%v -> %v slot %d", pair[0], pair[1], slot.Index)
		}
	}
}

func TestPlan_ZeroDummyCountJumps(t *testing.T) {
	session, err := newPlanner().Plan(planner.Request{
		Old:     seq(t, 123),
		New:     seq(t, 456),
		Options: domain.Options{DummyCharacterCount: domain.Ptr(0)},
	})
	require.NoError(t, err)
	require.Len(t, session.Slots, 3)

	for _, slot := range session.Slots {
		assert.True(t, slot.Animated)
		assert.Empty(t, slot.Filler)
	}
	assert.Equal(t, "456", domain.JoinTokens(session.Frame(0)))
}

func TestPlan_ManualReplayWithOverrides(t *testing.T) {
	opts := domain.Options{Value: "54321"}.WithOverrides(&domain.Overrides{
		Duration:            domain.Ptr(3.0),
		DummyCharacterCount: domain.Ptr(10),
		Direction:           domain.Ptr(domain.DirectionTopDown),
	})

	session, err := newPlanner().Plan(planner.Request{
		Old:     seq(t, "54321"),
		New:     seq(t, "54321"),
		Options: opts,
		Manual:  true,
	})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, session.TotalDuration.Seconds(), 1e-9)
	assert.True(t, session.Manual)
	assert.Equal(t, domain.DirectionTopDown, session.Direction)

	digits := "54321"
	require.Len(t, session.Slots, 5)
	for i, slot := range session.Slots {
		assert.True(t, slot.Animated)
		require.Len(t, slot.Filler, 10)
		assert.Equal(t, string(digits[i]), slot.Filler[9].Text)
	}
}

func TestPlan_CustomPool(t *testing.T) {
	p := planner.New(planner.WithRandomSource(testutils.NewScriptedSource(2)))

	session, err := p.Plan(planner.Request{
		Old:     seq(t, "a"),
		New:     seq(t, "b"),
		Options: domain.Options{DummyCharacters: "xyz", DummyCharacterCount: domain.Ptr(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, "zzb", domain.JoinTokens(session.Slots[0].Filler))
}

func TestPlan_Sequential(t *testing.T) {
	session, err := newPlanner().Plan(planner.Request{
		Old:     seq(t, 0),
		New:     seq(t, 999),
		Options: domain.Options{SequentialAnimationMode: true, Duration: domain.Ptr(1.0)},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeSequential, session.Mode)
	assert.Equal(t, time.Second, session.TotalDuration)
	assert.Zero(t, session.Slots[0].StartOffset)
	assert.Equal(t, 250*time.Millisecond, session.Slots[1].StartOffset)
	assert.Equal(t, 500*time.Millisecond, session.Slots[2].StartOffset)
}

func TestPlan_Errors(t *testing.T) {
	p := newPlanner()

	_, err := p.Plan(planner.Request{Old: seq(t, 1), New: seq(t, 2), Options: domain.Options{Duration: domain.Ptr(-1.0)}})
	assert.ErrorIs(t, err, domain.ErrConfigurationOutOfRange)

	_, err = p.Plan(planner.Request{Old: seq(t, 1), New: seq(t, 2), Options: domain.Options{DummyCharacters: []any{"a", 2}}})
	assert.ErrorIs(t, err, domain.ErrInvalidValueShape)

	_, err = p.Plan(planner.Request{Old: seq(t, "ab"), New: seq(t, []any{new(int)})})
	assert.ErrorIs(t, err, domain.ErrInvalidValueShape)
}

func TestPlan_EmptyValueCompletesImmediately(t *testing.T) {
	session, err := newPlanner().Plan(planner.Request{Old: seq(t, ""), New: seq(t, "")})
	require.NoError(t, err)
	assert.Empty(t, session.Slots)
	assert.Zero(t, session.TotalDuration)
	assert.True(t, session.Done(0))
}

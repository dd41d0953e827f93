package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTimelineSinkContract runs a suite of tests to verify that a TimelineSink implementation
// adheres to the defined interface contract.
func RunTimelineSinkContract(t *testing.T, sink TimelineSink) {
	ctx := context.Background()
	counterID := "contract-test-counter-" + time.Now().Format("20060102150405")

	timeline := func(id, sessionID string) *domain.Timeline {
		return &domain.Timeline{
			SessionID:     sessionID,
			CounterID:     id,
			Mode:          domain.ModeSimultaneous,
			Direction:     domain.DirectionTopDown,
			TotalDuration: 0.7,
			Slots: []domain.TimelineSlot{
				{
					Tokens: []domain.Token{
						{Kind: domain.KindDigit, Text: "1"},
						{Kind: domain.KindDigit, Text: "9"},
						{Kind: domain.KindDigit, Text: "4"},
					},
					Duration:  0.7,
					Direction: domain.DirectionTopDown,
					Animated:  true,
				},
			},
		}
	}

	t.Run("Publish and Latest", func(t *testing.T) {
		err := sink.Publish(ctx, timeline(counterID, "s1"))
		require.NoError(t, err, "Publish should not return error")

		latest, err := sink.Latest(ctx, counterID)
		require.NoError(t, err, "Latest should not return error")
		assert.Equal(t, "s1", latest.SessionID)
		require.Len(t, latest.Slots, 1)
		assert.Equal(t, "194", domain.JoinTokens(latest.Slots[0].Tokens))
		assert.Equal(t, "4", domain.JoinTokens(latest.Targets()))
	})

	t.Run("Latest Wins", func(t *testing.T) {
		require.NoError(t, sink.Publish(ctx, timeline(counterID, "s1")))
		require.NoError(t, sink.Publish(ctx, timeline(counterID, "s2")))

		latest, err := sink.Latest(ctx, counterID)
		require.NoError(t, err)
		assert.Equal(t, "s2", latest.SessionID)
	})

	t.Run("Latest Non-Existent", func(t *testing.T) {
		_, err := sink.Latest(ctx, "non-existent-"+counterID)
		assert.ErrorIs(t, err, domain.ErrTimelineNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, sink.Publish(ctx, timeline(counterID, "s3")))

		err := sink.Delete(ctx, counterID)
		require.NoError(t, err, "Delete should not return error")

		_, err = sink.Latest(ctx, counterID)
		assert.ErrorIs(t, err, domain.ErrTimelineNotFound, "Latest after Delete should return ErrTimelineNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := counterID + "-1"
		id2 := counterID + "-2"
		_ = sink.Publish(ctx, timeline(id1, "a"))
		_ = sink.Publish(ctx, timeline(id2, "b"))

		defer func() {
			_ = sink.Delete(ctx, id1)
			_ = sink.Delete(ctx, id2)
		}()

		counters, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, counters, id1)
		assert.Contains(t, counters, id2)
	})
}

// RunPresetSourceContract verifies that a PresetSource implementation serves the preset
// with ID known and reports missing presets with domain.ErrPresetNotFound.
func RunPresetSourceContract(t *testing.T, src PresetSource, known string) {
	ctx := context.Background()

	t.Run("Get Known Preset", func(t *testing.T) {
		p, err := src.GetPreset(ctx, known)
		require.NoError(t, err)
		assert.Equal(t, known, p.ID)
	})

	t.Run("Get Missing Preset", func(t *testing.T) {
		_, err := src.GetPreset(ctx, "missing-"+known)
		assert.ErrorIs(t, err, domain.ErrPresetNotFound)
	})

	t.Run("List Presets", func(t *testing.T) {
		ids, err := src.ListPresets(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, known)
		assert.IsNonDecreasing(t, ids)
	})
}

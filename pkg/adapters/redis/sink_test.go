package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/reel/pkg/adapters/redis"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func timeline(counterID, sessionID string) *domain.Timeline {
	return &domain.Timeline{
		SessionID:     sessionID,
		CounterID:     counterID,
		Mode:          domain.ModeSimultaneous,
		Direction:     domain.DirectionTopDown,
		TotalDuration: 0.7,
		Slots: []domain.TimelineSlot{
			{
				Tokens:    []domain.Token{{Kind: domain.KindDigit, Text: "3"}, {Kind: domain.KindDigit, Text: "7"}},
				Duration:  0.7,
				Direction: domain.DirectionTopDown,
				Animated:  true,
			},
		},
	}
}

func TestRedisSink_Contract(t *testing.T) {
	_, client := setup(t)

	ports.RunTimelineSinkContract(t, redis.NewFromClient(client))
}

func TestRedisSink_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	sink := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	// 1. Publish
	require.NoError(t, sink.Publish(ctx, timeline("ttl", "s1")))

	// 2. Listed immediately
	ids, err := sink.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "ttl")

	// 3. Key expiration in miniredis
	mr.FastForward(2 * time.Second)

	_, err = sink.Latest(ctx, "ttl")
	assert.ErrorIs(t, err, domain.ErrTimelineNotFound)

	// 4. The index is pruned against wall time, so wait past the score.
	time.Sleep(1200 * time.Millisecond)

	ids, err = sink.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisSink_Prefix(t *testing.T) {
	mr, client := setup(t)

	sink := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, sink.Publish(ctx, timeline("c1", "s1")))

	assert.True(t, mr.Exists("custom:app:timeline:c1"), "Expected timeline key with custom prefix")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix")

	ids, err := sink.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}

func TestRedisSink_Subscribe(t *testing.T) {
	_, client := setup(t)
	sink := redis.NewFromClient(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	one := sink.Subscribe(ctx, "one")
	all := sink.Subscribe(ctx, "")

	require.NoError(t, sink.Publish(ctx, timeline("two", "s-two")))
	require.NoError(t, sink.Publish(ctx, timeline("one", "s-one")))

	select {
	case tl := <-one:
		assert.Equal(t, "s-one", tl.SessionID)
		assert.Equal(t, "7", domain.JoinTokens(tl.Targets()))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for counter subscription")
	}

	var got []string
	for len(got) < 2 {
		select {
		case tl := <-all:
			got = append(got, tl.CounterID)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for wildcard subscription, got %v", got)
		}
	}
	assert.Equal(t, []string{"two", "one"}, got)

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-one
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

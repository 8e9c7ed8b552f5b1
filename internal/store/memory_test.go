package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-tracker/internal/domain"
)

func TestMemoryAppendAndRead(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	m := &domain.SentMessage{CampaignID: "c1", MessageID: "m1", To: "a@example.com"}
	require.NoError(t, s.AppendMessage(ctx, m))
	assert.NotEmpty(t, m.ID)

	e := &domain.DeliveryEvent{MessageID: "m1", Event: domain.EventOpen, Email: "a@example.com"}
	require.NoError(t, s.AppendEvent(ctx, e))
	assert.NotEmpty(t, e.ID)

	messages, err := s.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].MessageID)

	events, err := s.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventOpen, events[0].Event)
}

func TestMemoryPreservesInsertionOrder(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for _, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, s.AppendMessage(ctx, &domain.SentMessage{MessageID: id}))
	}

	messages, err := s.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "m1", messages[0].MessageID)
	assert.Equal(t, "m3", messages[2].MessageID)
}

func TestMemoryReadsAreCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	require.NoError(t, s.AppendMessage(ctx, &domain.SentMessage{MessageID: "m1", CampaignID: "c1"}))

	messages, err := s.Messages(ctx)
	require.NoError(t, err)
	messages[0].CampaignID = "mutated"

	again, err := s.Messages(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", again[0].CampaignID)
}

func TestMemoryKeepsCallerID(t *testing.T) {
	s := NewMemory()
	m := &domain.SentMessage{ID: "fixed-id", MessageID: "m1"}
	require.NoError(t, s.AppendMessage(context.Background(), m))
	assert.Equal(t, "fixed-id", m.ID)
}

func TestMemoryWatchSignalsOnAppend(t *testing.T) {
	s := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, s.AppendMessage(ctx, &domain.SentMessage{MessageID: "m1"}))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal after append")
	}
}

func TestMemoryWatchCoalesces(t *testing.T) {
	s := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	// A burst with no consumer must not block the appender.
	for i := 0; i < 10; i++ {
		require.NoError(t, s.AppendEvent(ctx, &domain.DeliveryEvent{MessageID: "m1", Event: domain.EventOpen}))
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal after burst")
	}
}

func TestMemoryWatchRemovedOnCancel(t *testing.T) {
	s := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())

	_, err := s.Watch(ctx)
	require.NoError(t, err)
	cancel()

	require.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.watchers) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

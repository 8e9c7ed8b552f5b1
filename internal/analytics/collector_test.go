package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-tracker/internal/domain"
	"github.com/ignite/campaign-tracker/internal/store"
)

func TestCollectorInitialSnapshot(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.AppendMessage(ctx, &domain.SentMessage{
		CampaignID: "c1", MessageID: "m1", To: "a@example.com",
	}))

	c := NewCollector(mem, mem, time.Hour)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.Start(runCtx)

	require.Eventually(t, func() bool {
		return c.Latest().TotalSent == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, c.IsRunning())
	assert.False(t, c.LastComputeTime().IsZero())
}

func TestCollectorRecomputesOnChange(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	// Long ticker interval so only the change notification can drive this.
	c := NewCollector(mem, mem, time.Hour)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.Start(runCtx)

	// Wait for the initial recompute, then a beat for the watch subscription
	// which happens right after it.
	require.Eventually(t, func() bool {
		return !c.LastComputeTime().IsZero()
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, mem.AppendMessage(ctx, &domain.SentMessage{
		CampaignID: "c1", MessageID: "m1", To: "a@example.com",
	}))
	require.NoError(t, mem.AppendEvent(ctx, &domain.DeliveryEvent{
		MessageID: "m1", Event: domain.EventOpen, Email: "a@example.com",
	}))

	require.Eventually(t, func() bool {
		s := c.Latest()
		return s.TotalSent == 1 && s.TotalOpens == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCollectorStopsOnCancel(t *testing.T) {
	mem := store.NewMemory()
	c := NewCollector(mem, nil, time.Hour)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(runCtx)
		close(done)
	}()

	require.Eventually(t, c.IsRunning, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not stop after cancel")
	}
	assert.False(t, c.IsRunning())
}

func TestCollectorNilWatcherTicker(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	c := NewCollector(mem, nil, 20*time.Millisecond)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.Start(runCtx)

	require.Eventually(t, c.IsRunning, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, mem.AppendMessage(ctx, &domain.SentMessage{
		CampaignID: "c1", MessageID: "m1", To: "a@example.com",
	}))

	// No watcher wired: the periodic tick must still pick the change up.
	require.Eventually(t, func() bool {
		return c.Latest().TotalSent == 1
	}, 2*time.Second, 10*time.Millisecond)
}

package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/campaign-tracker/internal/domain"
	"github.com/ignite/campaign-tracker/internal/pkg/logger"
)

// LogReader is the subset of the store the collector needs.
type LogReader interface {
	Messages(ctx context.Context) ([]domain.SentMessage, error)
	Events(ctx context.Context) ([]domain.DeliveryEvent, error)
}

// Watcher delivers a signal after each change to either log. Signals carry no
// payload; the collector always re-reads both logs in full.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Collector keeps a cached GlobalStats snapshot for the live dashboard. It
// recomputes on every change notification and on a periodic safety-net tick,
// so a missed notification only delays the dashboard by one interval.
//
// Both logs are expected to be small enough for full rescans; an incremental
// accumulator is the documented path if that stops being true.
type Collector struct {
	logs     LogReader
	watcher  Watcher // optional
	interval time.Duration

	mu          sync.RWMutex
	latest      domain.GlobalStats
	lastCompute time.Time
	isRunning   bool
}

// NewCollector creates a collector. watcher may be nil, in which case only
// the periodic tick drives recomputation.
func NewCollector(logs LogReader, watcher Watcher, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Collector{logs: logs, watcher: watcher, interval: interval}
}

// Start runs the recompute loop until ctx is cancelled.
func (c *Collector) Start(ctx context.Context) {
	c.mu.Lock()
	c.isRunning = true
	c.mu.Unlock()

	c.recompute(ctx)

	var changes <-chan struct{}
	if c.watcher != nil {
		ch, err := c.watcher.Watch(ctx)
		if err != nil {
			logger.Warn("collector: change watch unavailable, falling back to ticker", "error", err)
		} else {
			changes = ch
		}
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.isRunning = false
			c.mu.Unlock()
			return
		case <-changes:
			c.recompute(ctx)
		case <-ticker.C:
			c.recompute(ctx)
		}
	}
}

func (c *Collector) recompute(ctx context.Context) {
	messages, err := c.logs.Messages(ctx)
	if err != nil {
		logger.Error("collector: read message log", "error", err)
		return
	}
	events, err := c.logs.Events(ctx)
	if err != nil {
		logger.Error("collector: read event log", "error", err)
		return
	}

	stats := Aggregate(messages, events)

	c.mu.Lock()
	c.latest = stats
	c.lastCompute = time.Now().UTC()
	c.mu.Unlock()
}

// Latest returns the most recent snapshot. The zero GlobalStats is returned
// before the first recompute completes.
func (c *Collector) Latest() domain.GlobalStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// LastComputeTime reports when the snapshot was last refreshed.
func (c *Collector) LastComputeTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastCompute
}

// IsRunning reports whether the recompute loop is active.
func (c *Collector) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isRunning
}

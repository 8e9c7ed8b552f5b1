package store

import (
	"context"
	"time"

	"github.com/ignite/campaign-tracker/internal/domain"
	"github.com/ignite/campaign-tracker/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Redis pub/sub channels announcing log changes. Payloads are informational
// only; subscribers re-read the logs in full.
const (
	channelMessages = "campaigns:messages"
	channelEvents   = "campaigns:events"
)

// Notifier wraps a Store and publishes a change notification to Redis after
// each successful append. Publishing is fire-and-forget on a short timeout:
// a Redis outage never fails a send or a webhook ingest, it only delays the
// dashboard until the next safety-net recompute.
type Notifier struct {
	Store
	rdb *redis.Client
}

// NewNotifier wraps inner with Redis change notification.
func NewNotifier(inner Store, rdb *redis.Client) *Notifier {
	return &Notifier{Store: inner, rdb: rdb}
}

func (n *Notifier) AppendMessage(ctx context.Context, m *domain.SentMessage) error {
	if err := n.Store.AppendMessage(ctx, m); err != nil {
		return err
	}
	n.publish(channelMessages, m.ID)
	return nil
}

func (n *Notifier) AppendEvent(ctx context.Context, e *domain.DeliveryEvent) error {
	if err := n.Store.AppendEvent(ctx, e); err != nil {
		return err
	}
	n.publish(channelEvents, e.ID)
	return nil
}

func (n *Notifier) publish(channel, id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.rdb.Publish(ctx, channel, id).Err(); err != nil {
			logger.Warn("store: publish change notification", "channel", channel, "error", err)
		}
	}()
}

// Watch subscribes to both change channels and forwards a coalesced signal
// per received notification. The channel closes when ctx is cancelled.
func (n *Notifier) Watch(ctx context.Context) (<-chan struct{}, error) {
	sub := n.rdb.Subscribe(ctx, channelMessages, channelEvents)
	// Force the subscription to be established before we report success.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer sub.Close()
		defer close(ch)
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}

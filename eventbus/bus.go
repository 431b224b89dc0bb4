package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/mailbox"
	"github.com/hupe1980/agenthub/metrics"
)

// Options configures a Bus.
type Options struct {
	// Logger receives publish outcomes. Defaults to NoOpLogger.
	Logger logging.Logger
	// Metrics records per-subscriber delivery counters. Nil disables recording.
	Metrics *metrics.Metrics
}

// Bus maps agents to the event types they are interested in and delivers
// published events as mailbox messages.
type Bus struct {
	mailbox *mailbox.Store
	logger  logging.Logger
	metrics *metrics.Metrics

	mu            sync.RWMutex
	subscriptions map[string]map[core.EventType]struct{}
}

// NewBus creates an event bus delivering through mb.
func NewBus(mb *mailbox.Store, optFns ...func(o *Options)) *Bus {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Bus{
		mailbox:       mb,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
		subscriptions: make(map[string]map[core.EventType]struct{}),
	}
}

// Subscribe registers the agent's interest in the given event types.
// Idempotent: duplicate subscriptions have no observable effect.
func (b *Bus) Subscribe(agentID string, types ...core.EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subscriptions[agentID]
	if !ok {
		set = make(map[core.EventType]struct{})
		b.subscriptions[agentID] = set
	}
	for _, t := range types {
		set[t] = struct{}{}
	}
	b.logger.Debug("agent subscribed", "agent_id", agentID, "types", len(types))
}

// Unsubscribe removes the agent's interest in the given event types. Unknown
// subscriptions are ignored.
func (b *Bus) Unsubscribe(agentID string, types ...core.EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subscriptions[agentID]
	if !ok {
		return
	}
	for _, t := range types {
		delete(set, t)
	}
	if len(set) == 0 {
		delete(b.subscriptions, agentID)
	}
	b.logger.Debug("agent unsubscribed", "agent_id", agentID, "types", len(types))
}

// Subscribers returns the agents subscribed to the given event type,
// excluding the given publisher.
func (b *Bus) Subscribers(typ core.EventType, excluding string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	subs := make([]string, 0)
	for agentID, set := range b.subscriptions {
		if agentID == excluding {
			continue
		}
		if _, ok := set[typ]; ok {
			subs = append(subs, agentID)
		}
	}
	return subs
}

// Publish delivers the event to every subscriber of its type except the
// publisher, as one derived low-priority status message each. Per-subscriber
// delivery failures are logged and counted but do not abort the batch; the
// call reports false only when every delivery to a non-empty subscriber set
// failed.
func (b *Bus) Publish(ctx context.Context, publisherID string, event core.Event) bool {
	event.PublisherID = publisherID
	if event.ID == "" {
		event.ID = core.NewID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	subscribers := b.Subscribers(event.Type, publisherID)
	b.metrics.RecordFanOut(len(subscribers))

	delivered := 0
	for _, subscriberID := range subscribers {
		msg := core.NewMessage(publisherID, subscriberID, "Event: "+event.Description, core.MessageTypeStatus, core.MessagePriorityLow)
		if len(event.Data) > 0 {
			msg.Attachments = event.Data
		}
		if b.mailbox.Send(ctx, publisherID, subscriberID, msg) {
			delivered++
			b.metrics.RecordDelivery(metrics.KindEvent, true)
		} else {
			b.metrics.RecordDelivery(metrics.KindEvent, false)
			b.logger.Warn("event delivery failed", "event_type", string(event.Type), "subscriber", subscriberID)
		}
	}

	b.logger.Debug("event published", "event_type", string(event.Type), "publisher", publisherID, "subscribers", len(subscribers), "delivered", delivered)
	return len(subscribers) == 0 || delivered > 0
}

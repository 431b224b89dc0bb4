package mailbox

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/metrics"
)

// DefaultQueueCap is the per-agent queue bound applied when no override is
// configured. Insertion past the bound evicts the oldest message.
const DefaultQueueCap = 1000

// Options configures a Store.
type Options struct {
	// QueueCap bounds each per-agent queue. Values < 1 fall back to
	// DefaultQueueCap.
	QueueCap int
	// Logger receives delivery outcomes. Defaults to NoOpLogger.
	Logger logging.Logger
	// Metrics records per-target delivery counters. Nil disables recording.
	Metrics *metrics.Metrics
}

// queue is one agent's bounded FIFO mailbox. All mutations happen under its
// own mutex so concurrent sends to different agents never contend.
type queue struct {
	mu   sync.Mutex
	msgs []core.Message
}

// Store holds every agent's mailbox and the global message index.
type Store struct {
	dir      core.AgentDirectory
	logger   logging.Logger
	metrics  *metrics.Metrics
	queueCap int

	mu     sync.RWMutex
	queues map[string]*queue

	indexMu sync.RWMutex
	index   map[string]core.Message
}

// NewStore creates a mailbox store validating agents against dir.
func NewStore(dir core.AgentDirectory, optFns ...func(o *Options)) *Store {
	opts := Options{QueueCap: DefaultQueueCap, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.QueueCap < 1 {
		opts.QueueCap = DefaultQueueCap
	}
	return &Store{
		dir:      dir,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		queueCap: opts.QueueCap,
		queues:   make(map[string]*queue),
		index:    make(map[string]core.Message),
	}
}

// Send delivers one message from one agent to another. Both agent ids must
// resolve through the directory, except an empty sender id which designates
// the system. On success the message receives a server timestamp (unless the
// caller supplied one), is stored in the global index and appended to the
// recipient's queue, evicting the oldest entry when the queue is full.
//
// Failures are logged and reported as false; they are never raised.
func (s *Store) Send(ctx context.Context, from, to string, msg core.Message) bool {
	if from != "" && !s.agentExists(ctx, from) {
		s.logger.Warn("invalid sender for message", "from", from, "to", to)
		s.metrics.RecordDelivery(metrics.KindMessage, false)
		return false
	}
	if !s.agentExists(ctx, to) {
		s.logger.Warn("invalid recipient for message", "from", from, "to", to)
		s.metrics.RecordDelivery(metrics.KindMessage, false)
		return false
	}

	msg.FromAgentID = from
	msg.ToAgentID = to
	if msg.ID == "" {
		msg.ID = core.NewID()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.indexMu.Lock()
	s.index[msg.ID] = msg
	s.indexMu.Unlock()

	q := s.queueFor(to)
	q.mu.Lock()
	q.msgs = append(q.msgs, msg)
	if len(q.msgs) > s.queueCap {
		evicted := len(q.msgs) - s.queueCap
		q.msgs = append(q.msgs[:0], q.msgs[evicted:]...)
		for i := 0; i < evicted; i++ {
			s.metrics.RecordEviction("mailbox")
		}
	}
	q.mu.Unlock()

	s.metrics.RecordDelivery(metrics.KindMessage, true)
	s.logger.Debug("message sent", "from", from, "to", to, "type", string(msg.Type))
	return true
}

// Broadcast delivers the message to each explicit target, or to all active
// agents except the sender when targets is empty. Delivery is per-target and
// not atomic; the call reports success when at least one target accepted the
// message. Each delivery gets its own message id so index entries never
// collide.
func (s *Store) Broadcast(ctx context.Context, from string, msg core.Message, targets []string) bool {
	if len(targets) == 0 {
		active, err := s.dir.ListActive(ctx)
		if err != nil {
			s.logger.Error("failed to resolve broadcast targets", "from", from, "error", err)
			return false
		}
		for _, a := range active {
			if a.ID != from {
				targets = append(targets, a.ID)
			}
		}
	}

	s.metrics.RecordFanOut(len(targets))

	delivered := 0
	for _, target := range targets {
		tm := msg
		tm.ID = core.NewID()
		if s.Send(ctx, from, target, tm) {
			delivered++
		}
	}

	s.logger.Info("broadcast completed", "from", from, "targets", len(targets), "delivered", delivered)
	return delivered > 0
}

// Messages returns a snapshot of the agent's queue in send order. With
// markRead set, every currently-unread message is flipped to read in place
// under the queue lock and the change is mirrored into the global index. The
// returned snapshot reflects the pre-flip read state, matching what the caller
// is consuming.
func (s *Store) Messages(agentID string, markRead bool) []core.Message {
	q := s.queueFor(agentID)
	q.mu.Lock()
	snapshot := make([]core.Message, len(q.msgs))
	copy(snapshot, q.msgs)
	var flipped []core.Message
	if markRead {
		for i := range q.msgs {
			if !q.msgs[i].Read {
				q.msgs[i].Read = true
				flipped = append(flipped, q.msgs[i])
			}
		}
	}
	q.mu.Unlock()

	if len(flipped) > 0 {
		s.indexMu.Lock()
		for _, m := range flipped {
			s.index[m.ID] = m
		}
		s.indexMu.Unlock()
	}
	return snapshot
}

// Unread returns the agent's not-yet-read messages in send order without
// mutating read state.
func (s *Store) Unread(agentID string) []core.Message {
	q := s.queueFor(agentID)
	q.mu.Lock()
	defer q.mu.Unlock()
	unread := make([]core.Message, 0)
	for _, m := range q.msgs {
		if !m.Read {
			unread = append(unread, m)
		}
	}
	return unread
}

// ByID looks up a message in the global index.
func (s *Store) ByID(messageID string) (core.Message, bool) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	m, ok := s.index[messageID]
	return m, ok
}

// SentBy returns every indexed message authored by the agent. Snapshot over
// the global index; used by communication analytics.
func (s *Store) SentBy(agentID string) []core.Message {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	sent := make([]core.Message, 0)
	for _, m := range s.index {
		if m.FromAgentID == agentID {
			sent = append(sent, m)
		}
	}
	return sent
}

// All returns a snapshot of every indexed message. Used by communication
// pattern analysis; order is unspecified.
func (s *Store) All() []core.Message {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	all := make([]core.Message, 0, len(s.index))
	for _, m := range s.index {
		all = append(all, m)
	}
	return all
}

// queueFor returns the agent's queue, creating it lazily.
func (s *Store) queueFor(agentID string) *queue {
	s.mu.RLock()
	q, ok := s.queues[agentID]
	s.mu.RUnlock()
	if ok {
		return q
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok = s.queues[agentID]; ok {
		return q
	}
	q = &queue{}
	s.queues[agentID] = q
	return q
}

func (s *Store) agentExists(ctx context.Context, agentID string) bool {
	desc, err := s.dir.Resolve(ctx, agentID)
	if err != nil {
		s.logger.Error("agent resolution failed", "agent_id", agentID, "error", err)
		return false
	}
	return desc != nil
}

package knowledge

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/mailbox"
	"github.com/hupe1980/agenthub/metrics"
)

const (
	// DefaultLogCap bounds each publisher's knowledge log.
	DefaultLogCap = 500
	// DefaultQueryLimit truncates query result sets.
	DefaultQueryLimit = 50
)

// Options configures a Store.
type Options struct {
	// LogCap bounds each publisher's append log. Values < 1 fall back to
	// DefaultLogCap.
	LogCap int
	// QueryLimit truncates query results. Values < 1 fall back to
	// DefaultQueryLimit.
	QueryLimit int
	// Logger receives share and query outcomes. Defaults to NoOpLogger.
	Logger logging.Logger
	// Metrics records fan-out delivery counters. Nil disables recording.
	Metrics *metrics.Metrics
}

// Store holds every agent's knowledge log.
type Store struct {
	dir        core.AgentDirectory
	mailbox    *mailbox.Store
	logger     logging.Logger
	metrics    *metrics.Metrics
	logCap     int
	queryLimit int

	mu   sync.RWMutex
	logs map[string][]core.KnowledgeShare
}

// NewStore creates a knowledge store resolving fan-out targets against dir
// and delivering derived messages through mb.
func NewStore(dir core.AgentDirectory, mb *mailbox.Store, optFns ...func(o *Options)) *Store {
	opts := Options{LogCap: DefaultLogCap, QueryLimit: DefaultQueryLimit, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.LogCap < 1 {
		opts.LogCap = DefaultLogCap
	}
	if opts.QueryLimit < 1 {
		opts.QueryLimit = DefaultQueryLimit
	}
	return &Store{
		dir:        dir,
		mailbox:    mb,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		logCap:     opts.LogCap,
		queryLimit: opts.QueryLimit,
		logs:       make(map[string][]core.KnowledgeShare),
	}
}

// Share appends the item to the publisher's bounded log, evicting the oldest
// entry on overflow, and fans out a derived resource message to each target
// (explicit list, or all active agents except the publisher). Per-target
// delivery failures do not abort the batch; the append itself always
// succeeds, so the call reports true even when no derived message could be
// delivered.
func (s *Store) Share(ctx context.Context, from string, item core.KnowledgeShare, targets []string) bool {
	item.FromAgentID = from
	if item.ID == "" {
		item.ID = core.NewID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	log := append(s.logs[from], item)
	if len(log) > s.logCap {
		evicted := len(log) - s.logCap
		log = append(log[:0], log[evicted:]...)
		for i := 0; i < evicted; i++ {
			s.metrics.RecordEviction("knowledge")
		}
	}
	s.logs[from] = log
	s.mu.Unlock()

	if len(targets) == 0 {
		active, err := s.dir.ListActive(ctx)
		if err != nil {
			s.logger.Error("failed to resolve knowledge share targets", "from", from, "error", err)
			return true
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
		msg := core.NewMessage(from, target, "Knowledge shared: "+item.Topic, core.MessageTypeResource, core.MessagePriorityLow)
		msg.Attachments = map[string]any{
			"knowledge_id": item.ID,
			"domain":       item.Domain,
			"topic":        item.Topic,
		}
		if s.mailbox.Send(ctx, from, target, msg) {
			delivered++
			s.metrics.RecordDelivery(metrics.KindKnowledge, true)
		} else {
			s.metrics.RecordDelivery(metrics.KindKnowledge, false)
			s.logger.Warn("knowledge delivery failed", "knowledge_id", item.ID, "target", target)
		}
	}

	s.logger.Info("knowledge shared", "from", from, "topic", item.Topic, "targets", len(targets), "delivered", delivered)
	return true
}

// SharedBy returns a snapshot of the agent's own knowledge log in append
// order.
func (s *Store) SharedBy(agentID string) []core.KnowledgeShare {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.logs[agentID]
	snapshot := make([]core.KnowledgeShare, len(log))
	copy(snapshot, log)
	return snapshot
}

// Query filters knowledge across all agents' logs. Domain matches
// case-insensitively; topic, type, minimum confidence and keywords narrow the
// result when supplied. Results are ordered by confidence descending then
// creation time descending and truncated to the configured limit.
func (s *Store) Query(q core.KnowledgeQuery) []core.KnowledgeShare {
	s.mu.RLock()
	matches := make([]core.KnowledgeShare, 0)
	for _, log := range s.logs {
		for _, item := range log {
			if matchesQuery(item, q) {
				matches = append(matches, item)
			}
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if len(matches) > s.queryLimit {
		matches = matches[:s.queryLimit]
	}
	return matches
}

func matchesQuery(item core.KnowledgeShare, q core.KnowledgeQuery) bool {
	if !strings.EqualFold(item.Domain, q.Domain) {
		return false
	}
	if q.Topic != "" && !containsFold(item.Topic, q.Topic) {
		return false
	}
	if q.Type != nil && item.Type != *q.Type {
		return false
	}
	if q.MinConfidence != nil && item.Confidence < *q.MinConfidence {
		return false
	}
	if len(q.Keywords) > 0 && !anyKeywordMatchesTags(q.Keywords, item.Tags) {
		return false
	}
	return true
}

func anyKeywordMatchesTags(keywords, tags []string) bool {
	for _, kw := range keywords {
		for _, tag := range tags {
			if containsFold(tag, kw) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package presence

import (
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
)

// Options configures a Tracker.
type Options struct {
	// Logger receives status update outcomes. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Tracker holds one presence record per agent.
type Tracker struct {
	logger logging.Logger

	mu        sync.RWMutex
	presences map[string]core.Presence
}

// NewTracker creates an empty presence tracker.
func NewTracker(optFns ...func(o *Options)) *Tracker {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Tracker{logger: opts.Logger, presences: make(map[string]core.Presence)}
}

// Update upserts the agent's presence record. The new record fully replaces
// the prior one; no field-level merge happens and both timestamps are set to
// now regardless of whether the status changed.
func (t *Tracker) Update(agentID string, status core.PresenceStatus, customMessage string) bool {
	now := time.Now().UTC()
	record := core.Presence{
		AgentID:         agentID,
		Status:          status,
		CustomMessage:   customMessage,
		LastSeen:        now,
		StatusUpdatedAt: now,
	}

	t.mu.Lock()
	t.presences[agentID] = record
	t.mu.Unlock()

	t.logger.Debug("presence updated", "agent_id", agentID, "status", string(status))
	return true
}

// Get returns the agent's latest presence record.
func (t *Tracker) Get(agentID string) (core.Presence, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.presences[agentID]
	return p, ok
}

// AgentIDs returns every agent id with a presence record, in unspecified
// order.
func (t *Tracker) AgentIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.presences))
	for id := range t.presences {
		ids = append(ids, id)
	}
	return ids
}

// Online returns every agent whose status is Online or Busy, ordered by most
// recently seen first.
func (t *Tracker) Online() []core.Presence {
	t.mu.RLock()
	online := make([]core.Presence, 0)
	for _, p := range t.presences {
		if p.Status.Available() {
			online = append(online, p)
		}
	}
	t.mu.RUnlock()

	sort.Slice(online, func(i, j int) bool {
		return online[i].LastSeen.After(online[j].LastSeen)
	})
	return online
}

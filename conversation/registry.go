package conversation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
)

// ErrInsufficientParticipants is returned when fewer than two participants
// survive directory validation. Terminal; the caller should not retry with the
// same participant set.
var ErrInsufficientParticipants = errors.New("conversation: at least 2 valid participants required")

// Options configures a Registry.
type Options struct {
	// Logger receives membership and lifecycle outcomes. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Registry stores conversations keyed by id. Records are never physically
// deleted; archival is the terminal state.
type Registry struct {
	dir    core.AgentDirectory
	logger logging.Logger

	mu            sync.RWMutex
	conversations map[string]*core.Conversation
}

// NewRegistry creates a conversation registry validating participants against dir.
func NewRegistry(dir core.AgentDirectory, optFns ...func(o *Options)) *Registry {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{
		dir:           dir,
		logger:        opts.Logger,
		conversations: make(map[string]*core.Conversation),
	}
}

// Start creates an Active conversation from the participants that pass
// directory validation, silently dropping unknown ids. The first valid
// participant is recorded as the initiator. Fails with
// ErrInsufficientParticipants when fewer than two valid participants remain.
func (r *Registry) Start(ctx context.Context, topic string, participantIDs []string, typ core.ConversationType) (string, error) {
	valid := make([]string, 0, len(participantIDs))
	for _, id := range participantIDs {
		desc, err := r.dir.Resolve(ctx, id)
		if err != nil {
			r.logger.Error("participant resolution failed", "agent_id", id, "error", err)
			continue
		}
		if desc == nil {
			r.logger.Warn("unknown participant dropped from conversation", "agent_id", id)
			continue
		}
		valid = append(valid, id)
	}

	if len(valid) < 2 {
		r.logger.Warn("insufficient valid participants for conversation", "topic", topic, "valid", len(valid))
		return "", ErrInsufficientParticipants
	}

	now := time.Now().UTC()
	conv := &core.Conversation{
		ID:             core.NewID(),
		Topic:          topic,
		Type:           typ,
		InitiatorID:    valid[0],
		ParticipantIDs: valid,
		CreatedAt:      now,
		LastActivity:   now,
		Status:         core.ConversationStatusActive,
	}

	r.mu.Lock()
	r.conversations[conv.ID] = conv
	r.mu.Unlock()

	r.logger.Info("conversation started", "conversation_id", conv.ID, "topic", topic, "participants", len(valid))
	return conv.ID, nil
}

// Join adds the agent to the conversation. Joining an existing member is
// idempotent and succeeds without duplicating membership. Returns false for
// unknown conversations.
func (r *Registry) Join(conversationID, agentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[conversationID]
	if !ok {
		r.logger.Warn("conversation not found", "conversation_id", conversationID)
		return false
	}
	if conv.HasParticipant(agentID) {
		r.logger.Debug("agent already in conversation", "conversation_id", conversationID, "agent_id", agentID)
		return true
	}
	conv.ParticipantIDs = append(conv.ParticipantIDs, agentID)
	conv.LastActivity = time.Now().UTC()
	r.logger.Info("agent joined conversation", "conversation_id", conversationID, "agent_id", agentID)
	return true
}

// Leave removes the agent from the participant set. When the remaining
// membership would fall below two, the conversation is archived instead of
// staying Active with a single member. Returns false for unknown
// conversations.
func (r *Registry) Leave(conversationID, agentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[conversationID]
	if !ok {
		r.logger.Warn("conversation not found", "conversation_id", conversationID)
		return false
	}

	remaining := conv.ParticipantIDs[:0:0]
	for _, id := range conv.ParticipantIDs {
		if id != agentID {
			remaining = append(remaining, id)
		}
	}
	conv.ParticipantIDs = remaining
	conv.LastActivity = time.Now().UTC()

	if len(conv.ParticipantIDs) < 2 {
		conv.Status = core.ConversationStatusArchived
		r.logger.Info("conversation archived on membership drop", "conversation_id", conversationID)
	}

	r.logger.Info("agent left conversation", "conversation_id", conversationID, "agent_id", agentID)
	return true
}

// SetStatus applies a lifecycle transition. Only transitions out of Active are
// permitted; Archived is terminal. Returns false for unknown conversations or
// disallowed transitions.
func (r *Registry) SetStatus(conversationID string, status core.ConversationStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[conversationID]
	if !ok {
		return false
	}
	if conv.Status != core.ConversationStatusActive || status == core.ConversationStatusActive {
		r.logger.Warn("disallowed conversation transition", "conversation_id", conversationID, "from", string(conv.Status), "to", string(status))
		return false
	}
	conv.Status = status
	conv.LastActivity = time.Now().UTC()
	return true
}

// Get returns a copy of the conversation.
func (r *Registry) Get(conversationID string) (core.Conversation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conv, ok := r.conversations[conversationID]
	if !ok {
		return core.Conversation{}, false
	}
	return conv.Clone(), true
}

// ListForAgent returns every conversation the agent participates in, ordered
// by most recent activity first.
func (r *Registry) ListForAgent(agentID string) []core.Conversation {
	r.mu.RLock()
	result := make([]core.Conversation, 0)
	for _, conv := range r.conversations {
		if conv.HasParticipant(agentID) {
			result = append(result, conv.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].LastActivity.After(result[j].LastActivity)
	})
	return result
}

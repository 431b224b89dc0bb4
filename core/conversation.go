package core

import "time"

// ConversationType categorizes the purpose of a conversation.
type ConversationType string

const (
	// ConversationTypeCollaboration is joint work on a shared task.
	ConversationTypeCollaboration ConversationType = "collaboration"
	// ConversationTypeConsultation is one agent seeking another's input.
	ConversationTypeConsultation ConversationType = "consultation"
	// ConversationTypePlanning coordinates upcoming work.
	ConversationTypePlanning ConversationType = "planning"
	// ConversationTypeReview covers evaluation of completed work.
	ConversationTypeReview ConversationType = "review"
	// ConversationTypeEmergency is urgent incident coordination.
	ConversationTypeEmergency ConversationType = "emergency"
	// ConversationTypeTraining is knowledge transfer between agents.
	ConversationTypeTraining ConversationType = "training"
	// ConversationTypeSocial is informal exchange.
	ConversationTypeSocial ConversationType = "social"
)

// ConversationStatus is the lifecycle state of a conversation.
//
// Transitions: Active -> {Paused, Completed, Archived}. Archived is terminal:
// a conversation whose membership drops below two participants is archived and
// never reactivated at this layer.
type ConversationStatus string

const (
	// ConversationStatusActive is the initial, running state.
	ConversationStatusActive ConversationStatus = "active"
	// ConversationStatusPaused is a temporarily suspended conversation.
	ConversationStatusPaused ConversationStatus = "paused"
	// ConversationStatusCompleted marks a conversation that finished its purpose.
	ConversationStatusCompleted ConversationStatus = "completed"
	// ConversationStatusArchived is terminal.
	ConversationStatusArchived ConversationStatus = "archived"
)

// Conversation is a multi-party, topic-scoped messaging context.
//
// ParticipantIDs preserves insertion order, but the initiator is tracked in
// its own field rather than inferred from position so that membership changes
// cannot alter who is credited with starting the conversation.
//
// Invariant: an Active conversation has at least two participants.
type Conversation struct {
	ID             string             `json:"id"`
	Topic          string             `json:"topic"`
	Type           ConversationType   `json:"type"`
	InitiatorID    string             `json:"initiator_id"`
	ParticipantIDs []string           `json:"participant_ids"`
	CreatedAt      time.Time          `json:"created_at"`
	LastActivity   time.Time          `json:"last_activity"`
	Status         ConversationStatus `json:"status"`
	Metadata       map[string]string  `json:"metadata,omitempty"`
}

// HasParticipant reports whether the agent is currently a member.
func (c Conversation) HasParticipant(agentID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == agentID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe for independent mutation.
func (c Conversation) Clone() Conversation {
	cp := c
	cp.ParticipantIDs = make([]string, len(c.ParticipantIDs))
	copy(cp.ParticipantIDs, c.ParticipantIDs)
	if c.Metadata != nil {
		cp.Metadata = make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			cp.Metadata[k] = v
		}
	}
	return cp
}

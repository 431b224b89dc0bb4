package core

import "time"

// MessageType categorizes the intent of a mailbox message.
type MessageType string

const (
	// MessageTypeText is free-form conversational text.
	MessageTypeText MessageType = "text"
	// MessageTypeData carries structured payloads in Attachments.
	MessageTypeData MessageType = "data"
	// MessageTypeCommand asks the recipient to perform work. Derived from
	// requests sent through the correlator.
	MessageTypeCommand MessageType = "command"
	// MessageTypeQuestion expects an answer message in return.
	MessageTypeQuestion MessageType = "question"
	// MessageTypeAnswer replies to a question or request. Derived from
	// responses sent through the correlator.
	MessageTypeAnswer MessageType = "answer"
	// MessageTypeStatus reports state changes. Derived from published events.
	MessageTypeStatus MessageType = "status"
	// MessageTypeAlert is an out-of-band notification.
	MessageTypeAlert MessageType = "alert"
	// MessageTypeResource points at shared material. Derived from knowledge
	// shares.
	MessageTypeResource MessageType = "resource"
)

// MessagePriority orders messages by urgency. Values are ordered so numeric
// comparison matches urgency comparison.
type MessagePriority int

const (
	// MessagePriorityLow is the lowest urgency band.
	MessagePriorityLow MessagePriority = iota + 1
	// MessagePriorityMedium is the default urgency band.
	MessagePriorityMedium
	// MessagePriorityHigh marks messages that should be handled soon.
	MessagePriorityHigh
	// MessagePriorityCritical marks messages that must be handled immediately.
	MessagePriorityCritical
)

// String returns the string representation of the priority.
func (p MessagePriority) String() string {
	switch p {
	case MessagePriorityLow:
		return "low"
	case MessagePriorityMedium:
		return "medium"
	case MessagePriorityHigh:
		return "high"
	case MessagePriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Message is the unit of agent-to-agent communication stored in mailboxes.
// After delivery it should be treated as immutable except for the Read flag,
// which the mailbox store flips in place when messages are fetched with
// mark-as-read semantics.
//
// ConversationID and ReplyToID are optional correlation handles; an empty
// string means unset. Attachments may carry arbitrary structured payloads.
type Message struct {
	ID             string          `json:"id"`
	FromAgentID    string          `json:"from_agent_id"`
	ToAgentID      string          `json:"to_agent_id"`
	Content        string          `json:"content"`
	Type           MessageType     `json:"type"`
	Priority       MessagePriority `json:"priority"`
	Attachments    map[string]any  `json:"attachments,omitempty"`
	ConversationID string          `json:"conversation_id,omitempty"`
	ReplyToID      string          `json:"reply_to_id,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	Read           bool            `json:"read"`
}

// NewMessage creates a message with a fresh id and the given routing and
// content fields. Timestamp is left zero so the mailbox store stamps it at
// acceptance time.
func NewMessage(from, to, content string, typ MessageType, priority MessagePriority) Message {
	return Message{
		ID:          NewID(),
		FromAgentID: from,
		ToAgentID:   to,
		Content:     content,
		Type:        typ,
		Priority:    priority,
	}
}

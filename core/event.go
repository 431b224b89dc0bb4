package core

import "time"

// EventType identifies the category of a published agent event. Subscriptions
// are keyed by event type.
type EventType string

const (
	// EventTaskStarted signals an agent began a task.
	EventTaskStarted EventType = "task_started"
	// EventTaskCompleted signals an agent finished a task.
	EventTaskCompleted EventType = "task_completed"
	// EventTaskFailed signals a task ended in failure.
	EventTaskFailed EventType = "task_failed"
	// EventStatusChanged signals an agent presence/status change.
	EventStatusChanged EventType = "status_changed"
	// EventCapabilityAdded signals an agent gained a capability.
	EventCapabilityAdded EventType = "capability_added"
	// EventSpecializationUpdated signals a specialization profile change.
	EventSpecializationUpdated EventType = "specialization_updated"
	// EventErrorOccurred signals a fault an agent wants peers to know about.
	EventErrorOccurred EventType = "error_occurred"
	// EventPerformanceAlert signals degraded performance.
	EventPerformanceAlert EventType = "performance_alert"
	// EventCollaborationRequest signals a call for collaborators.
	EventCollaborationRequest EventType = "collaboration_request"
	// EventKnowledgeUpdate signals new shared knowledge.
	EventKnowledgeUpdate EventType = "knowledge_update"
)

// Event is a broadcast notification published through the event bus. It is
// delivered to interested subscribers as a derived status message; the event
// itself is not stored beyond that delivery.
type Event struct {
	ID          string         `json:"id"`
	PublisherID string         `json:"publisher_id"`
	Type        EventType      `json:"type"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// NewEvent creates an event with a fresh id. Timestamp is left zero so the
// bus stamps it at publish time.
func NewEvent(publisherID string, typ EventType, description string) Event {
	return Event{
		ID:          NewID(),
		PublisherID: publisherID,
		Type:        typ,
		Description: description,
	}
}

package core

import "time"

// RequestPriority orders requests by urgency. Values are ordered so numeric
// comparison matches urgency comparison; pending-request listings sort on it
// descending.
type RequestPriority int

const (
	// RequestPriorityLow is the lowest urgency band.
	RequestPriorityLow RequestPriority = iota + 1
	// RequestPriorityMedium is the default urgency band.
	RequestPriorityMedium
	// RequestPriorityHigh marks requests that should be handled soon.
	RequestPriorityHigh
	// RequestPriorityUrgent marks requests that must be handled immediately.
	RequestPriorityUrgent
)

// String returns the string representation of the priority.
func (p RequestPriority) String() string {
	switch p {
	case RequestPriorityLow:
		return "low"
	case RequestPriorityMedium:
		return "medium"
	case RequestPriorityHigh:
		return "high"
	case RequestPriorityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// MessagePriority maps a request priority onto the equivalent message
// priority band for derived command messages.
func (p RequestPriority) MessagePriority() MessagePriority {
	return MessagePriority(p)
}

// Request is one half of a correlated request-reply exchange. Immutable after
// creation. A request is "pending" until a response referencing its id exists
// or its Timeout (when non-zero) has elapsed; expiry is computed lazily at
// read time, no background sweep runs.
type Request struct {
	ID          string          `json:"id"`
	FromAgentID string          `json:"from_agent_id"`
	ToAgentID   string          `json:"to_agent_id"`
	RequestType string          `json:"request_type"`
	Description string          `json:"description"`
	Parameters  map[string]any  `json:"parameters,omitempty"`
	Priority    RequestPriority `json:"priority"`
	Timeout     time.Duration   `json:"timeout,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Expired reports whether the request's deadline has passed at the given
// instant. Requests without a timeout never expire.
func (r Request) Expired(now time.Time) bool {
	return r.Timeout > 0 && now.Sub(r.CreatedAt) >= r.Timeout
}

// NewRequest creates a request with a fresh id. CreatedAt is left zero so the
// correlator stamps it at acceptance time.
func NewRequest(from, to, requestType, description string, priority RequestPriority) Request {
	return Request{
		ID:          NewID(),
		FromAgentID: from,
		ToAgentID:   to,
		RequestType: requestType,
		Description: description,
		Priority:    priority,
	}
}

// Response is the reply to a Request, linked through RequestID. Immutable
// after creation. A response is only accepted when its request id resolves to
// a previously stored request.
type Response struct {
	ID           string         `json:"id"`
	RequestID    string         `json:"request_id"`
	FromAgentID  string         `json:"from_agent_id"`
	Success      bool           `json:"success"`
	Data         map[string]any `json:"data,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewResponse creates a response with a fresh id for the given request.
func NewResponse(requestID, from string, success bool) Response {
	return Response{
		ID:          NewID(),
		RequestID:   requestID,
		FromAgentID: from,
		Success:     success,
	}
}

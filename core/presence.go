package core

import "time"

// PresenceStatus is an agent's availability state.
type PresenceStatus string

const (
	// PresenceOnline means the agent is available for work.
	PresenceOnline PresenceStatus = "online"
	// PresenceBusy means the agent is working but reachable.
	PresenceBusy PresenceStatus = "busy"
	// PresenceAway means the agent is temporarily unavailable.
	PresenceAway PresenceStatus = "away"
	// PresenceOffline means the agent is not running.
	PresenceOffline PresenceStatus = "offline"
	// PresenceInMaintenance means the agent is being serviced.
	PresenceInMaintenance PresenceStatus = "in_maintenance"
	// PresenceError means the agent is in a fault state.
	PresenceError PresenceStatus = "error"
)

// Available reports whether the status counts as reachable for the online
// listing (Online or Busy).
func (s PresenceStatus) Available() bool {
	return s == PresenceOnline || s == PresenceBusy
}

// Presence is an agent's latest availability record. One record per agent;
// every update fully replaces the prior record (no field-level merge) and
// refreshes both timestamps regardless of whether the status changed.
type Presence struct {
	AgentID         string         `json:"agent_id"`
	Status          PresenceStatus `json:"status"`
	CustomMessage   string         `json:"custom_message,omitempty"`
	LastSeen        time.Time      `json:"last_seen"`
	StatusUpdatedAt time.Time      `json:"status_updated_at"`
}

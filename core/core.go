package core

import (
	"context"

	"github.com/google/uuid"
)

// Specialization describes one domain an agent is proficient in. SkillLevel
// and Confidence are both normalized to [0,1]; their product is used as the
// ranking score when routing expertise requests.
type Specialization struct {
	Domain     string  `json:"domain"`
	SkillLevel float64 `json:"skill_level"`
	Confidence float64 `json:"confidence"`
}

// AgentDescriptor is the minimal view of an agent the hub relies on: a stable
// identifier, liveness, and optional specializations. The hub makes no other
// assumption about agent shape; richer agent models live behind the
// AgentDirectory implementation.
type AgentDescriptor struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Active          bool             `json:"active"`
	Specializations []Specialization `json:"specializations,omitempty"`
}

// HasSpecializationIn reports whether the agent declares any specialization in
// the given domain (case-sensitive; directories normalize on registration).
func (d AgentDescriptor) HasSpecializationIn(domain string) bool {
	for _, s := range d.Specializations {
		if s.Domain == domain {
			return true
		}
	}
	return false
}

// AgentDirectory resolves agent identifiers to descriptors. It is the single
// external collaborator the hub consumes; every inbound hub operation
// validates its agent ids through it.
//
// Implementations must be safe for concurrent use.
type AgentDirectory interface {
	// Resolve returns the descriptor for the given agent id, or nil if the
	// agent is unknown.
	Resolve(ctx context.Context, agentID string) (*AgentDescriptor, error)

	// ListActive returns all agents currently considered live. Used to compute
	// default broadcast / fan-out target sets.
	ListActive(ctx context.Context) ([]AgentDescriptor, error)

	// FindBySpecialization returns active agents declaring a specialization in
	// the given domain. Used only by expertise routing.
	FindBySpecialization(ctx context.Context, domain string) ([]AgentDescriptor, error)
}

// NewID generates a new unique identifier for hub entities.
//
// Every entity (message, conversation, request, response, knowledge item) is
// keyed by one of these for correlation across stores.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }

package agenthub

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
)

// CollaborationType categorizes the purpose of a collaboration request.
type CollaborationType string

const (
	// CollaborationTask is joint execution of a task.
	CollaborationTask CollaborationType = "task_collaboration"
	// CollaborationKnowledgeSharing is mutual knowledge exchange.
	CollaborationKnowledgeSharing CollaborationType = "knowledge_sharing"
	// CollaborationPeerReview is review of another agent's output.
	CollaborationPeerReview CollaborationType = "peer_review"
	// CollaborationConsultation is advisory input.
	CollaborationConsultation CollaborationType = "consultation"
	// CollaborationTraining is structured knowledge transfer.
	CollaborationTraining CollaborationType = "training"
	// CollaborationProblemSolving is joint incident or problem work.
	CollaborationProblemSolving CollaborationType = "problem_solving"
)

// TaskDelegation hands a task from one agent to another. The deadline, when
// set, becomes the timeout of the derived request.
type TaskDelegation struct {
	ID              string               `json:"id"`
	TaskID          string               `json:"task_id"`
	TaskDescription string               `json:"task_description"`
	Reason          string               `json:"reason"`
	Context         map[string]any       `json:"context,omitempty"`
	Deadline        time.Duration        `json:"deadline,omitempty"`
	Priority        core.RequestPriority `json:"priority"`
}

// CollaborationRequest invites a set of agents to work together.
type CollaborationRequest struct {
	ID                string            `json:"id"`
	Purpose           string            `json:"purpose"`
	Description       string            `json:"description"`
	RequestedAgentIDs []string          `json:"requested_agent_ids"`
	Type              CollaborationType `json:"type"`
	Duration          time.Duration     `json:"duration,omitempty"`
	Requirements      map[string]any    `json:"requirements,omitempty"`
}

// CollaborationResponse is one agent's accept/decline answer to a
// collaboration request.
type CollaborationResponse struct {
	CollaborationID   string         `json:"collaboration_id"`
	Accepted          bool           `json:"accepted"`
	Reason            string         `json:"reason,omitempty"`
	AvailableDuration time.Duration  `json:"available_duration,omitempty"`
	Conditions        map[string]any `json:"conditions,omitempty"`
}

// ExpertiseRequest asks the best-matching specialists in a domain a question.
type ExpertiseRequest struct {
	ID       string               `json:"id"`
	Domain   string               `json:"domain"`
	Question string               `json:"question"`
	Context  string               `json:"context,omitempty"`
	Priority core.RequestPriority `json:"priority"`
	Timeout  time.Duration        `json:"timeout,omitempty"`
}

// Defaults applied when fanning out coordination requests.
const (
	collaborationTimeout = 24 * time.Hour
	maxExpertsPerRequest = 3
)

type collaborationRecord struct {
	request   CollaborationRequest
	initiator string
	responses map[string]CollaborationResponse // agent id -> answer
}

// coordinationState holds delegation and collaboration records. Synchronized
// independently of the stores, per the no-cross-store-lock policy.
type coordinationState struct {
	mu             sync.RWMutex
	delegations    map[string]TaskDelegation
	collaborations map[string]*collaborationRecord
}

func newCoordinationState() *coordinationState {
	return &coordinationState{
		delegations:    make(map[string]TaskDelegation),
		collaborations: make(map[string]*collaborationRecord),
	}
}

// DelegateTask records the delegation and issues it to the target agent as a
// derived request carrying the delegation id; the deadline, when set, bounds
// how long the request stays pending.
func (h *Hub) DelegateTask(ctx context.Context, from, to string, d TaskDelegation) bool {
	if d.ID == "" {
		d.ID = core.NewID()
	}
	if d.Priority == 0 {
		d.Priority = core.RequestPriorityMedium
	}

	h.coordination.mu.Lock()
	h.coordination.delegations[d.ID] = d
	h.coordination.mu.Unlock()

	req := core.NewRequest(from, to, "task_delegation", "Task delegation: "+d.TaskDescription, d.Priority)
	req.Parameters = map[string]any{"delegation_id": d.ID, "task_id": d.TaskID}
	req.Timeout = d.Deadline

	if _, err := h.requests.SendRequest(ctx, from, to, req); err != nil {
		h.opts.Logger.Warn("task delegation request failed", "delegation_id", d.ID, "from", from, "to", to, "error", err)
		return false
	}

	h.opts.Logger.Info("task delegated", "delegation_id", d.ID, "from", from, "to", to)
	return true
}

// Delegation returns a stored delegation by id.
func (h *Hub) Delegation(delegationID string) (TaskDelegation, bool) {
	h.coordination.mu.RLock()
	defer h.coordination.mu.RUnlock()
	d, ok := h.coordination.delegations[delegationID]
	return d, ok
}

// RequestCollaboration records the collaboration and fans out one derived
// request per requested agent (medium priority, 24h timeout). Per-target
// failures are logged; the call reports true when at least one request was
// issued.
func (h *Hub) RequestCollaboration(ctx context.Context, initiator string, c CollaborationRequest) bool {
	if c.ID == "" {
		c.ID = core.NewID()
	}

	h.coordination.mu.Lock()
	h.coordination.collaborations[c.ID] = &collaborationRecord{
		request:   c,
		initiator: initiator,
		responses: make(map[string]CollaborationResponse),
	}
	h.coordination.mu.Unlock()

	sent := 0
	for _, agentID := range c.RequestedAgentIDs {
		req := core.NewRequest(initiator, agentID, "collaboration_request", c.Description, core.RequestPriorityMedium)
		req.Parameters = map[string]any{"collaboration_id": c.ID, "purpose": c.Purpose}
		req.Timeout = collaborationTimeout

		if _, err := h.requests.SendRequest(ctx, initiator, agentID, req); err != nil {
			h.opts.Logger.Warn("collaboration request failed", "collaboration_id", c.ID, "to", agentID, "error", err)
			continue
		}
		sent++
	}

	h.opts.Logger.Info("collaboration requested", "collaboration_id", c.ID, "initiator", initiator, "requested", len(c.RequestedAgentIDs), "sent", sent)
	return sent > 0
}

// RespondToCollaboration records the agent's accept/decline on the stored
// collaboration. Returns false for unknown collaboration ids.
func (h *Hub) RespondToCollaboration(collaborationID, agentID string, resp CollaborationResponse) bool {
	resp.CollaborationID = collaborationID

	h.coordination.mu.Lock()
	defer h.coordination.mu.Unlock()
	record, ok := h.coordination.collaborations[collaborationID]
	if !ok {
		h.opts.Logger.Warn("collaboration not found", "collaboration_id", collaborationID, "agent_id", agentID)
		return false
	}
	record.responses[agentID] = resp

	h.opts.Logger.Info("collaboration response recorded", "collaboration_id", collaborationID, "agent_id", agentID, "accepted", resp.Accepted)
	return true
}

// CollaborationResponses returns the answers recorded so far for a
// collaboration.
func (h *Hub) CollaborationResponses(collaborationID string) []CollaborationResponse {
	h.coordination.mu.RLock()
	defer h.coordination.mu.RUnlock()
	record, ok := h.coordination.collaborations[collaborationID]
	if !ok {
		return nil
	}
	responses := make([]CollaborationResponse, 0, len(record.responses))
	for _, r := range record.responses {
		responses = append(responses, r)
	}
	return responses
}

// RequestExpertise routes the question to the strongest specialists in the
// domain: active agents with a matching specialization, ranked by their best
// skill-times-confidence score, excluding the requester, at most three. Each
// selected expert receives a derived request. Returns false when no expert
// matched.
func (h *Hub) RequestExpertise(ctx context.Context, requester string, e ExpertiseRequest) bool {
	if e.ID == "" {
		e.ID = core.NewID()
	}
	if e.Priority == 0 {
		e.Priority = core.RequestPriorityMedium
	}

	experts, err := h.dir.FindBySpecialization(ctx, e.Domain)
	if err != nil {
		h.opts.Logger.Error("expertise lookup failed", "domain", e.Domain, "error", err)
		return false
	}

	ranked := make([]core.AgentDescriptor, 0, len(experts))
	for _, expert := range experts {
		if expert.ID != requester {
			ranked = append(ranked, expert)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return expertiseScore(ranked[i], e.Domain) > expertiseScore(ranked[j], e.Domain)
	})
	if len(ranked) > maxExpertsPerRequest {
		ranked = ranked[:maxExpertsPerRequest]
	}

	if len(ranked) == 0 {
		h.opts.Logger.Warn("no experts found", "domain", e.Domain, "requester", requester)
		return false
	}

	sent := 0
	for _, expert := range ranked {
		req := core.NewRequest(requester, expert.ID, "expertise_request", e.Question, e.Priority)
		req.Parameters = map[string]any{"expertise_request_id": e.ID, "domain": e.Domain, "context": e.Context}
		req.Timeout = e.Timeout

		if _, err := h.requests.SendRequest(ctx, requester, expert.ID, req); err != nil {
			h.opts.Logger.Warn("expertise request failed", "expertise_request_id", e.ID, "to", expert.ID, "error", err)
			continue
		}
		sent++
	}

	h.opts.Logger.Info("expertise requested", "expertise_request_id", e.ID, "domain", e.Domain, "experts", len(ranked), "sent", sent)
	return sent > 0
}

// expertiseScore is the agent's best skill*confidence across specializations
// matching the domain.
func expertiseScore(desc core.AgentDescriptor, domain string) float64 {
	best := 0.0
	for _, s := range desc.Specializations {
		if strings.EqualFold(s.Domain, domain) {
			if score := s.SkillLevel * s.Confidence; score > best {
				best = score
			}
		}
	}
	return best
}

package agenthub

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DelegateTask(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")
	ctx := context.Background()

	ok := hub.DelegateTask(ctx, "a", "b", TaskDelegation{
		TaskID:          "task-1",
		TaskDescription: "summarize report",
		Reason:          "overloaded",
		Deadline:        time.Hour,
	})
	require.True(t, ok)

	// the target sees a pending delegation request carrying the delegation id
	pending := hub.GetPendingRequests("b")
	require.Len(t, pending, 1)
	assert.Equal(t, "task_delegation", pending[0].RequestType)
	assert.Equal(t, time.Hour, pending[0].Timeout)

	delegationID, ok := pending[0].Parameters["delegation_id"].(string)
	require.True(t, ok)

	d, found := hub.Delegation(delegationID)
	require.True(t, found)
	assert.Equal(t, "task-1", d.TaskID)
	assert.Equal(t, core.RequestPriorityMedium, d.Priority, "unset priority defaults to medium")
}

func TestHub_DelegateTask_UnknownTarget(t *testing.T) {
	hub, _ := newTestHub(t, "a")
	assert.False(t, hub.DelegateTask(context.Background(), "a", "ghost", TaskDelegation{TaskID: "t"}))
}

func TestHub_Collaboration(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b", "c")
	ctx := context.Background()

	c := CollaborationRequest{
		Purpose:           "incident response",
		Description:       "prod outage in region eu-1",
		RequestedAgentIDs: []string{"b", "c"},
		Type:              CollaborationProblemSolving,
	}
	require.True(t, hub.RequestCollaboration(ctx, "a", c))

	// every requested agent has a pending collaboration request
	var collaborationID string
	for _, id := range []string{"b", "c"} {
		pending := hub.GetPendingRequests(id)
		require.Len(t, pending, 1, "agent %s", id)
		assert.Equal(t, "collaboration_request", pending[0].RequestType)
		collaborationID = pending[0].Parameters["collaboration_id"].(string)
	}

	require.True(t, hub.RespondToCollaboration(collaborationID, "b", CollaborationResponse{Accepted: true}))
	require.True(t, hub.RespondToCollaboration(collaborationID, "c", CollaborationResponse{Accepted: false, Reason: "on call elsewhere"}))

	responses := hub.CollaborationResponses(collaborationID)
	require.Len(t, responses, 2)

	accepted := 0
	for _, r := range responses {
		assert.Equal(t, collaborationID, r.CollaborationID)
		if r.Accepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestHub_RespondToCollaboration_Unknown(t *testing.T) {
	hub, _ := newTestHub(t, "a")
	assert.False(t, hub.RespondToCollaboration("no-such-id", "a", CollaborationResponse{Accepted: true}))
	assert.Nil(t, hub.CollaborationResponses("no-such-id"))
}

func TestHub_RequestCollaboration_AllTargetsUnknown(t *testing.T) {
	hub, _ := newTestHub(t, "a")
	c := CollaborationRequest{RequestedAgentIDs: []string{"ghost1", "ghost2"}}
	assert.False(t, hub.RequestCollaboration(context.Background(), "a", c))
}

func TestHub_RequestExpertise(t *testing.T) {
	hub, dir := newTestHub(t)
	ctx := context.Background()

	dir.Register(core.AgentDescriptor{ID: "asker", Active: true})
	// four specialists; only the top three by skill*confidence get the request
	specialists := []struct {
		id         string
		skill      float64
		confidence float64
	}{
		{"expert-weak", 0.4, 0.5},    // 0.20
		{"expert-strong", 0.95, 0.9}, // 0.855
		{"expert-mid", 0.7, 0.8},     // 0.56
		{"expert-ok", 0.6, 0.6},      // 0.36
	}
	for _, s := range specialists {
		dir.Register(core.AgentDescriptor{
			ID: s.id, Active: true,
			Specializations: []core.Specialization{{Domain: "Databases", SkillLevel: s.skill, Confidence: s.confidence}},
		})
	}

	ok := hub.RequestExpertise(ctx, "asker", ExpertiseRequest{
		Domain:   "databases",
		Question: "how do I shard the sessions table?",
	})
	require.True(t, ok)

	for _, id := range []string{"expert-strong", "expert-mid", "expert-ok"} {
		pending := hub.GetPendingRequests(id)
		require.Len(t, pending, 1, "agent %s", id)
		assert.Equal(t, "expertise_request", pending[0].RequestType)
		assert.Equal(t, "databases", pending[0].Parameters["domain"])
	}
	assert.Empty(t, hub.GetPendingRequests("expert-weak"), "only the top three ranked experts are asked")
}

func TestHub_RequestExpertise_ExcludesRequester(t *testing.T) {
	hub, dir := newTestHub(t)
	ctx := context.Background()

	dir.Register(core.AgentDescriptor{
		ID: "solo", Active: true,
		Specializations: []core.Specialization{{Domain: "ml", SkillLevel: 0.9, Confidence: 0.9}},
	})

	// the requester is the only specialist, so routing finds nobody
	ok := hub.RequestExpertise(ctx, "solo", ExpertiseRequest{Domain: "ml", Question: "?"})
	assert.False(t, ok)
}

func TestHub_RequestExpertise_NoMatch(t *testing.T) {
	hub, _ := newTestHub(t, "a")
	assert.False(t, hub.RequestExpertise(context.Background(), "a", ExpertiseRequest{Domain: "quantum", Question: "?"}))
}

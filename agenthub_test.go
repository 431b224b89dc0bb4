package agenthub

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/agenthub/config"
	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/directory"
	"github.com/hupe1980/agenthub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, ids ...string) (*Hub, *directory.InMemoryDirectory) {
	t.Helper()
	dir := directory.NewInMemoryDirectory()
	for _, id := range ids {
		dir.Register(core.AgentDescriptor{ID: id, Active: true})
	}
	hub := New(dir, func(o *Options) {
		cfg := config.Default()
		cfg.PollInterval = config.Duration(5 * time.Millisecond)
		o.Config = cfg
	})
	return hub, dir
}

func TestHub_SendAndGetMessages(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")
	ctx := context.Background()

	msg := testutil.NewMessageBuilder().From("a").To("b").Text("hello").Build()
	require.True(t, hub.SendMessage(ctx, "a", "b", msg))

	got := hub.GetMessages("b", true)
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Content)

	// marked read on the first fetch
	assert.Empty(t, hub.GetUnreadMessages("b"))

	byID, ok := hub.GetMessage(got[0].ID)
	require.True(t, ok)
	assert.True(t, byID.Read)
}

func TestHub_BroadcastMessage(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b", "c")
	ctx := context.Background()

	msg := testutil.NewMessageBuilder().From("a").Text("all hands").Build()
	require.True(t, hub.BroadcastMessage(ctx, "a", msg, nil))

	assert.Len(t, hub.GetMessages("b", false), 1)
	assert.Len(t, hub.GetMessages("c", false), 1)
	assert.Empty(t, hub.GetMessages("a", false))
}

func TestHub_SendNotification(t *testing.T) {
	hub, _ := newTestHub(t, "a")
	ctx := context.Background()

	ok := hub.SendNotification(ctx, "a", core.Notification{
		Title:    "Deploy finished",
		Content:  "v2 rolled out",
		Type:     core.NotificationSuccess,
		Priority: core.MessagePriorityHigh,
	})
	require.True(t, ok)

	msgs := hub.GetMessages("a", false)
	require.Len(t, msgs, 1)
	assert.Equal(t, core.MessageTypeAlert, msgs[0].Type)
	assert.Equal(t, core.MessagePriorityHigh, msgs[0].Priority)
	assert.Empty(t, msgs[0].FromAgentID, "notifications come from the system sender")

	assert.False(t, hub.SendNotification(ctx, "ghost", core.Notification{Content: "x"}))
}

func TestHub_ConversationLifecycle(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b", "c")
	ctx := context.Background()

	id, err := hub.StartConversation(ctx, "rollout plan", []string{"a", "b"}, core.ConversationTypePlanning)
	require.NoError(t, err)

	require.True(t, hub.JoinConversation(id, "c"))
	conv, ok := hub.GetConversation(id)
	require.True(t, ok)
	assert.Len(t, conv.ParticipantIDs, 3)

	// dropping to one participant archives the conversation
	require.True(t, hub.LeaveConversation(id, "b"))
	require.True(t, hub.LeaveConversation(id, "c"))
	conv, _ = hub.GetConversation(id)
	assert.Equal(t, core.ConversationStatusArchived, conv.Status)

	list := hub.GetAgentConversations("a")
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	// archived is terminal
	assert.False(t, hub.SetConversationStatus(id, core.ConversationStatusPaused))
}

func TestHub_SetConversationStatus(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")
	id, err := hub.StartConversation(context.Background(), "retro", []string{"a", "b"}, core.ConversationTypeReview)
	require.NoError(t, err)

	require.True(t, hub.SetConversationStatus(id, core.ConversationStatusCompleted))
	conv, _ := hub.GetConversation(id)
	assert.Equal(t, core.ConversationStatusCompleted, conv.Status)
}

func TestHub_RequestResponseRoundTrip(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")
	ctx := context.Background()

	req := testutil.NewRequestBuilder("analysis").Description("crunch numbers").Priority(core.RequestPriorityHigh).Build()
	id, err := hub.SendRequest(ctx, "a", "b", req)
	require.NoError(t, err)

	pending := hub.GetPendingRequests("b")
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)

	go func() {
		time.Sleep(15 * time.Millisecond)
		resp := core.NewResponse(id, "b", true)
		resp.Data = map[string]any{"result": "ok"}
		hub.SendResponse(ctx, id, resp)
	}()

	resp := hub.WaitForResponse(ctx, id, time.Second)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)

	// answered requests drop out of the pending set
	assert.Empty(t, hub.GetPendingRequests("b"))
}

func TestHub_WaitForResponse_Timeout(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")
	ctx := context.Background()

	id, err := hub.SendRequest(ctx, "a", "b", testutil.NewRequestBuilder("analysis").Build())
	require.NoError(t, err)

	assert.Nil(t, hub.WaitForResponse(ctx, id, 50*time.Millisecond))
}

func TestHub_PendingRequests_Ordering(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")
	ctx := context.Background()

	lowID, err := hub.SendRequest(ctx, "a", "b", testutil.NewRequestBuilder("t").Priority(core.RequestPriorityLow).Build())
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	urgentID, err := hub.SendRequest(ctx, "a", "b", testutil.NewRequestBuilder("t").Priority(core.RequestPriorityUrgent).Build())
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	mediumID, err := hub.SendRequest(ctx, "a", "b", testutil.NewRequestBuilder("t").Priority(core.RequestPriorityMedium).Build())
	require.NoError(t, err)

	pending := hub.GetPendingRequests("b")
	require.Len(t, pending, 3)
	assert.Equal(t, []string{urgentID, mediumID, lowID}, []string{pending[0].ID, pending[1].ID, pending[2].ID})
}

func TestHub_Events(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b", "c", "d")
	ctx := context.Background()

	hub.SubscribeToEvents("b", core.EventTaskCompleted)
	hub.SubscribeToEvents("c", core.EventTaskCompleted)
	hub.SubscribeToEvents("d", core.EventTaskFailed)

	require.True(t, hub.PublishEvent(ctx, "a", core.NewEvent("a", core.EventTaskCompleted, "done")))

	assert.Len(t, hub.GetMessages("b", false), 1)
	assert.Len(t, hub.GetMessages("c", false), 1)
	assert.Empty(t, hub.GetMessages("d", false))
	assert.Empty(t, hub.GetMessages("a", false))

	hub.UnsubscribeFromEvents("b", core.EventTaskCompleted)
	hub.PublishEvent(ctx, "a", core.NewEvent("a", core.EventTaskCompleted, "again"))
	assert.Len(t, hub.GetMessages("b", false), 1, "unsubscribed agent receives nothing further")
	assert.Len(t, hub.GetMessages("c", false), 2)
}

func TestHub_Presence(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")

	require.True(t, hub.UpdateAgentStatus("a", core.PresenceOnline, "working"))
	require.True(t, hub.UpdateAgentStatus("b", core.PresenceOffline, ""))

	p, ok := hub.GetAgentPresence("a")
	require.True(t, ok)
	assert.Equal(t, core.PresenceOnline, p.Status)

	online := hub.GetOnlineAgents()
	require.Len(t, online, 1)
	assert.Equal(t, "a", online[0].AgentID)
}

func TestHub_Knowledge(t *testing.T) {
	hub, _ := newTestHub(t, "a", "b")
	ctx := context.Background()

	item := testutil.NewKnowledgeBuilder("Research", "embedding models").
		Content("small models suffice for routing").
		Confidence(0.9).
		Tags("llm", "routing").
		Build()
	require.True(t, hub.ShareKnowledge(ctx, "a", item, nil))

	// the other agent receives a resource message
	msgs := hub.GetMessages("b", false)
	require.Len(t, msgs, 1)
	assert.Equal(t, core.MessageTypeResource, msgs[0].Type)

	// query matches the domain case-insensitively
	results := hub.QueryKnowledge(core.KnowledgeQuery{Domain: "research"})
	require.Len(t, results, 1)
	assert.Equal(t, "embedding models", results[0].Topic)

	assert.Empty(t, hub.QueryKnowledge(core.KnowledgeQuery{Domain: "cooking"}))
}

func TestHub_DefaultWaitTimeoutApplied(t *testing.T) {
	dir := directory.NewInMemoryDirectory()
	dir.Register(core.AgentDescriptor{ID: "a", Active: true})
	dir.Register(core.AgentDescriptor{ID: "b", Active: true})

	hub := New(dir, func(o *Options) {
		cfg := config.Default()
		cfg.PollInterval = config.Duration(5 * time.Millisecond)
		cfg.DefaultWaitTimeout = config.Duration(30 * time.Millisecond)
		o.Config = cfg
	})

	id, err := hub.SendRequest(context.Background(), "a", "b", testutil.NewRequestBuilder("t").Build())
	require.NoError(t, err)

	start := time.Now()
	resp := hub.WaitForResponse(context.Background(), id, 0)
	assert.Nil(t, resp)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Less(t, time.Since(start), 5*time.Second)
}

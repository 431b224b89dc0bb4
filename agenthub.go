// Package agenthub provides a high-level façade over the communication stores
// (mailboxes, conversations, request correlation, presence, events &
// knowledge) enabling message passing and coordination between autonomous
// agents in a single process. Most applications interact with this package by:
//  1. Creating a Hub via New() with an AgentDirectory (optionally overriding
//     defaults through functional options)
//  2. Sending messages / requests and polling mailboxes or typed collections
//  3. Publishing events and sharing knowledge across the agent population
//
// The façade owns no business logic beyond orchestration and invariant
// enforcement; each store keeps its own concurrency discipline and no
// operation takes a lock across stores. All defaults are safe for local
// development and testing; production deployments typically supply a durable
// AgentDirectory, a structured logger and a metrics registry.
package agenthub

import (
	"context"
	"time"

	"github.com/hupe1980/agenthub/config"
	"github.com/hupe1980/agenthub/conversation"
	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/eventbus"
	"github.com/hupe1980/agenthub/knowledge"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/mailbox"
	"github.com/hupe1980/agenthub/metrics"
	"github.com/hupe1980/agenthub/presence"
	"github.com/hupe1980/agenthub/request"
)

// Options configures the Hub instance.
type Options struct {
	// Config supplies store bounds and intervals. Defaults to config.Default().
	Config *config.Config

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// Metrics records delivery and fan-out observability counters. Nil
	// disables recording.
	Metrics *metrics.Metrics
}

// Hub is the single API surface agents use for communication. It composes the
// mailbox store, conversation registry, request correlator, presence tracker,
// event bus and knowledge store.
type Hub struct {
	opts Options
	dir  core.AgentDirectory

	mailbox       *mailbox.Store
	conversations *conversation.Registry
	requests      *request.Correlator
	presence      *presence.Tracker
	events        *eventbus.Bus
	knowledge     *knowledge.Store

	coordination *coordinationState
}

// New creates a Hub validating agents against dir. Unset options fall back to
// safe in-process defaults.
func New(dir core.AgentDirectory, optFns ...func(o *Options)) *Hub {
	opts := Options{
		Config: config.Default(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	mb := mailbox.NewStore(dir, func(o *mailbox.Options) {
		o.QueueCap = opts.Config.MailboxCap
		o.Logger = opts.Logger
		o.Metrics = opts.Metrics
	})

	return &Hub{
		opts: opts,
		dir:  dir,

		mailbox: mb,
		conversations: conversation.NewRegistry(dir, func(o *conversation.Options) {
			o.Logger = opts.Logger
		}),
		requests: request.NewCorrelator(dir, mb, func(o *request.Options) {
			o.PollInterval = opts.Config.PollInterval.Std()
			o.Logger = opts.Logger
			o.Metrics = opts.Metrics
		}),
		presence: presence.NewTracker(func(o *presence.Options) {
			o.Logger = opts.Logger
		}),
		events: eventbus.NewBus(mb, func(o *eventbus.Options) {
			o.Logger = opts.Logger
			o.Metrics = opts.Metrics
		}),
		knowledge: knowledge.NewStore(dir, mb, func(o *knowledge.Options) {
			o.LogCap = opts.Config.KnowledgeCap
			o.QueryLimit = opts.Config.KnowledgeQueryLimit
			o.Logger = opts.Logger
			o.Metrics = opts.Metrics
		}),

		coordination: newCoordinationState(),
	}
}

// Directory returns the agent directory the hub validates against.
func (h *Hub) Directory() core.AgentDirectory { return h.dir }

// SendMessage delivers one message between two directory-known agents.
// Failures (unknown agent, directory errors) are logged and reported as
// false.
func (h *Hub) SendMessage(ctx context.Context, from, to string, msg core.Message) bool {
	return h.mailbox.Send(ctx, from, to, msg)
}

// BroadcastMessage delivers the message to the explicit targets, or to all
// active agents except the sender when targets is nil. Not atomic; reports
// true when at least one delivery succeeded.
func (h *Hub) BroadcastMessage(ctx context.Context, from string, msg core.Message, targets []string) bool {
	return h.mailbox.Broadcast(ctx, from, msg, targets)
}

// SendNotification converts a system notification into an alert message for
// the agent. The sender is the system (empty id); only the recipient is
// validated.
func (h *Hub) SendNotification(ctx context.Context, agentID string, n core.Notification) bool {
	msg := core.Message{
		ID:          core.NewID(),
		Content:     n.Content,
		Type:        core.MessageTypeAlert,
		Priority:    n.Priority,
		Attachments: n.Data,
		Timestamp:   n.Timestamp,
	}
	return h.mailbox.Send(ctx, "", agentID, msg)
}

// GetMessages returns the agent's mailbox in send order, flipping unread
// messages to read when markRead is set.
func (h *Hub) GetMessages(agentID string, markRead bool) []core.Message {
	return h.mailbox.Messages(agentID, markRead)
}

// GetUnreadMessages returns the agent's unread messages in send order.
func (h *Hub) GetUnreadMessages(agentID string) []core.Message {
	return h.mailbox.Unread(agentID)
}

// GetMessage looks up a message by id in the global index.
func (h *Hub) GetMessage(messageID string) (core.Message, bool) {
	return h.mailbox.ByID(messageID)
}

// StartConversation creates an Active conversation from the directory-valid
// participants. Fails with conversation.ErrInsufficientParticipants when
// fewer than two remain after validation.
func (h *Hub) StartConversation(ctx context.Context, topic string, participantIDs []string, typ core.ConversationType) (string, error) {
	return h.conversations.Start(ctx, topic, participantIDs, typ)
}

// JoinConversation adds the agent to the conversation (idempotent).
func (h *Hub) JoinConversation(conversationID, agentID string) bool {
	return h.conversations.Join(conversationID, agentID)
}

// LeaveConversation removes the agent; a conversation dropping below two
// participants is archived.
func (h *Hub) LeaveConversation(conversationID, agentID string) bool {
	return h.conversations.Leave(conversationID, agentID)
}

// SetConversationStatus applies a lifecycle transition out of Active
// (Paused, Completed or Archived). Returns false for unknown conversations
// or disallowed transitions.
func (h *Hub) SetConversationStatus(conversationID string, status core.ConversationStatus) bool {
	return h.conversations.SetStatus(conversationID, status)
}

// GetConversation returns the conversation by id.
func (h *Hub) GetConversation(conversationID string) (core.Conversation, bool) {
	return h.conversations.Get(conversationID)
}

// GetAgentConversations returns the agent's conversations, most recent
// activity first.
func (h *Hub) GetAgentConversations(agentID string) []core.Conversation {
	return h.conversations.ListForAgent(agentID)
}

// SendRequest stores a request and delivers a derived command message to the
// recipient, returning the request id for correlation.
func (h *Hub) SendRequest(ctx context.Context, from, to string, req core.Request) (string, error) {
	return h.requests.SendRequest(ctx, from, to, req)
}

// SendResponse records a response for an existing request and notifies the
// original requester with a derived answer message. Returns false when the
// request id is unknown.
func (h *Hub) SendResponse(ctx context.Context, requestID string, resp core.Response) bool {
	return h.requests.SendResponse(ctx, requestID, resp)
}

// WaitForResponse blocks until a response arrives, the timeout elapses or ctx
// is cancelled, returning nil in the latter two cases. A non-positive timeout
// falls back to the configured default wait timeout.
func (h *Hub) WaitForResponse(ctx context.Context, requestID string, timeout time.Duration) *core.Response {
	if timeout <= 0 {
		timeout = h.opts.Config.DefaultWaitTimeout.Std()
	}
	return h.requests.WaitForResponse(ctx, requestID, timeout)
}

// GetPendingRequests returns unanswered, unexpired requests addressed to the
// agent, ordered by priority descending then creation time ascending.
func (h *Hub) GetPendingRequests(agentID string) []core.Request {
	return h.requests.Pending(agentID)
}

// SubscribeToEvents registers the agent's interest in event types
// (idempotent).
func (h *Hub) SubscribeToEvents(agentID string, types ...core.EventType) {
	h.events.Subscribe(agentID, types...)
}

// UnsubscribeFromEvents removes the agent's interest in event types.
func (h *Hub) UnsubscribeFromEvents(agentID string, types ...core.EventType) {
	h.events.Unsubscribe(agentID, types...)
}

// PublishEvent delivers the event to every subscriber of its type except the
// publisher, as derived status messages. Per-subscriber failures do not abort
// the batch.
func (h *Hub) PublishEvent(ctx context.Context, publisherID string, event core.Event) bool {
	return h.events.Publish(ctx, publisherID, event)
}

// UpdateAgentStatus upserts the agent's presence record (latest wins).
func (h *Hub) UpdateAgentStatus(agentID string, status core.PresenceStatus, customMessage string) bool {
	return h.presence.Update(agentID, status, customMessage)
}

// GetAgentPresence returns the agent's latest presence record.
func (h *Hub) GetAgentPresence(agentID string) (core.Presence, bool) {
	return h.presence.Get(agentID)
}

// GetOnlineAgents returns agents with Online or Busy status, most recently
// seen first.
func (h *Hub) GetOnlineAgents() []core.Presence {
	return h.presence.Online()
}

// ShareKnowledge appends the item to the publisher's bounded log and fans out
// a derived resource message to the targets (or all active agents).
func (h *Hub) ShareKnowledge(ctx context.Context, from string, item core.KnowledgeShare, targets []string) bool {
	return h.knowledge.Share(ctx, from, item, targets)
}

// QueryKnowledge filters knowledge across all agents.
func (h *Hub) QueryKnowledge(q core.KnowledgeQuery) []core.KnowledgeShare {
	return h.knowledge.Query(q)
}

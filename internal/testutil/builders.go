package testutil

import (
	"time"

	"github.com/hupe1980/agenthub/core"
)

// MessageBuilder helps construct messages with fluent chaining for tests.
// Example:
//
//	msg := NewMessageBuilder().From("a").To("b").Text("hi").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type MessageBuilder struct {
	msg core.Message
}

// NewMessageBuilder creates a builder with a text message of medium priority.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{msg: core.Message{
		ID:       core.NewID(),
		Type:     core.MessageTypeText,
		Priority: core.MessagePriorityMedium,
	}}
}

// From sets the sender id (chainable).
func (b *MessageBuilder) From(id string) *MessageBuilder { b.msg.FromAgentID = id; return b }

// To sets the recipient id (chainable).
func (b *MessageBuilder) To(id string) *MessageBuilder { b.msg.ToAgentID = id; return b }

// Text sets the content and the text type (chainable).
func (b *MessageBuilder) Text(content string) *MessageBuilder {
	b.msg.Content = content
	b.msg.Type = core.MessageTypeText
	return b
}

// Type overrides the message type (chainable).
func (b *MessageBuilder) Type(t core.MessageType) *MessageBuilder { b.msg.Type = t; return b }

// Priority overrides the priority (chainable).
func (b *MessageBuilder) Priority(p core.MessagePriority) *MessageBuilder {
	b.msg.Priority = p
	return b
}

// Conversation attaches a conversation id (chainable).
func (b *MessageBuilder) Conversation(id string) *MessageBuilder {
	b.msg.ConversationID = id
	return b
}

// At sets an explicit timestamp (chainable). Use mainly where determinism matters.
func (b *MessageBuilder) At(t time.Time) *MessageBuilder { b.msg.Timestamp = t; return b }

// Build returns the constructed message.
func (b *MessageBuilder) Build() core.Message { return b.msg }

// RequestBuilder helps construct requests with fluent chaining for tests.
type RequestBuilder struct {
	req core.Request
}

// NewRequestBuilder creates a builder for a medium priority request of the
// given type.
func NewRequestBuilder(requestType string) *RequestBuilder {
	return &RequestBuilder{req: core.Request{
		ID:          core.NewID(),
		RequestType: requestType,
		Priority:    core.RequestPriorityMedium,
	}}
}

// Description sets the human readable description (chainable).
func (b *RequestBuilder) Description(d string) *RequestBuilder { b.req.Description = d; return b }

// Priority overrides the priority (chainable).
func (b *RequestBuilder) Priority(p core.RequestPriority) *RequestBuilder {
	b.req.Priority = p
	return b
}

// Timeout sets the pending deadline (chainable).
func (b *RequestBuilder) Timeout(d time.Duration) *RequestBuilder { b.req.Timeout = d; return b }

// Param sets one parameter key/value pair (chainable).
func (b *RequestBuilder) Param(key string, val any) *RequestBuilder {
	if b.req.Parameters == nil {
		b.req.Parameters = map[string]any{}
	}
	b.req.Parameters[key] = val
	return b
}

// Build returns the constructed request.
func (b *RequestBuilder) Build() core.Request { return b.req }

// KnowledgeBuilder helps construct knowledge items with fluent chaining for
// tests.
type KnowledgeBuilder struct {
	item core.KnowledgeShare
}

// NewKnowledgeBuilder creates a builder for a fact in the given domain/topic
// with confidence 0.8.
func NewKnowledgeBuilder(domain, topic string) *KnowledgeBuilder {
	return &KnowledgeBuilder{item: core.KnowledgeShare{
		ID:         core.NewID(),
		Domain:     domain,
		Topic:      topic,
		Type:       core.KnowledgeFact,
		Confidence: 0.8,
	}}
}

// Content sets the knowledge body (chainable).
func (b *KnowledgeBuilder) Content(c string) *KnowledgeBuilder { b.item.Content = c; return b }

// Type overrides the knowledge type (chainable).
func (b *KnowledgeBuilder) Type(t core.KnowledgeType) *KnowledgeBuilder { b.item.Type = t; return b }

// Confidence overrides the confidence score (chainable).
func (b *KnowledgeBuilder) Confidence(c float64) *KnowledgeBuilder {
	b.item.Confidence = c
	return b
}

// Tags sets the tag set (chainable).
func (b *KnowledgeBuilder) Tags(tags ...string) *KnowledgeBuilder { b.item.Tags = tags; return b }

// At sets an explicit creation time (chainable).
func (b *KnowledgeBuilder) At(t time.Time) *KnowledgeBuilder { b.item.CreatedAt = t; return b }

// Build returns the constructed knowledge item.
func (b *KnowledgeBuilder) Build() core.KnowledgeShare { return b.item }

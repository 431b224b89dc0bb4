package eventbus

import (
	"context"
	"testing"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/directory"
	"github.com/hupe1980/agenthub/mailbox"
)

func newTestBus(ids ...string) (*Bus, *mailbox.Store) {
	dir := directory.NewInMemoryDirectory()
	for _, id := range ids {
		dir.Register(core.AgentDescriptor{ID: id, Active: true})
	}
	mb := mailbox.NewStore(dir)
	return NewBus(mb), mb
}

func TestBus_SubscribeIdempotent(t *testing.T) {
	bus, _ := newTestBus("a", "b")

	bus.Subscribe("b", core.EventTaskCompleted)
	bus.Subscribe("b", core.EventTaskCompleted)
	bus.Subscribe("b", core.EventTaskCompleted, core.EventTaskFailed)

	subs := bus.Subscribers(core.EventTaskCompleted, "")
	if len(subs) != 1 || subs[0] != "b" {
		t.Fatalf("duplicate subscriptions must collapse, got %#v", subs)
	}
}

func TestBus_Publish(t *testing.T) {
	bus, mb := newTestBus("a", "b", "c", "d")
	ctx := context.Background()

	bus.Subscribe("b", core.EventTaskCompleted)
	bus.Subscribe("c", core.EventTaskCompleted)
	bus.Subscribe("d", core.EventTaskFailed)
	bus.Subscribe("a", core.EventTaskCompleted) // publisher subscribes to its own type

	event := core.NewEvent("a", core.EventTaskCompleted, "indexing done")
	event.Data = map[string]any{"docs": 12}
	if !bus.Publish(ctx, "a", event) {
		t.Fatal("expected publish to succeed")
	}

	// subscribers of the type receive a derived status message
	for _, id := range []string{"b", "c"} {
		msgs := mb.Messages(id, false)
		if len(msgs) != 1 {
			t.Fatalf("agent %s: expected 1 message, got %d", id, len(msgs))
		}
		if msgs[0].Type != core.MessageTypeStatus || msgs[0].Priority != core.MessagePriorityLow {
			t.Fatalf("agent %s: unexpected derived message %#v", id, msgs[0])
		}
		if msgs[0].Attachments["docs"] != 12 {
			t.Fatalf("agent %s: event data missing from attachments", id)
		}
	}

	// other event types and the publisher itself receive nothing
	if len(mb.Messages("d", false)) != 0 {
		t.Fatal("agent d subscribed to a different type and must not receive the event")
	}
	if len(mb.Messages("a", false)) != 0 {
		t.Fatal("the publisher must not receive its own event")
	}
}

func TestBus_Publish_NoSubscribers(t *testing.T) {
	bus, _ := newTestBus("a")

	// publishing into the void is not a failure
	if !bus.Publish(context.Background(), "a", core.NewEvent("a", core.EventStatusChanged, "idle")) {
		t.Fatal("expected publish with no subscribers to report success")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus, mb := newTestBus("a", "b")
	ctx := context.Background()

	bus.Subscribe("b", core.EventTaskCompleted, core.EventTaskFailed)
	bus.Unsubscribe("b", core.EventTaskCompleted)
	bus.Unsubscribe("ghost", core.EventTaskCompleted) // unknown agent, no-op

	bus.Publish(ctx, "a", core.NewEvent("a", core.EventTaskCompleted, "done"))
	if len(mb.Messages("b", false)) != 0 {
		t.Fatal("expected no delivery after unsubscribe")
	}

	// the remaining subscription still works
	bus.Publish(ctx, "a", core.NewEvent("a", core.EventTaskFailed, "oops"))
	if len(mb.Messages("b", false)) != 1 {
		t.Fatal("expected delivery for the remaining subscription")
	}
}

func TestBus_Publish_StampsEvent(t *testing.T) {
	bus, mb := newTestBus("a", "b")
	bus.Subscribe("b", core.EventKnowledgeUpdate)

	// zero-valued event gets id and timestamp at publish time
	bus.Publish(context.Background(), "a", core.Event{Type: core.EventKnowledgeUpdate, Description: "new facts"})

	msgs := mb.Messages("b", false)
	if len(msgs) != 1 {
		t.Fatalf("expected delivery, got %d messages", len(msgs))
	}
	if msgs[0].Content != "Event: new facts" {
		t.Fatalf("unexpected derived content %q", msgs[0].Content)
	}
}

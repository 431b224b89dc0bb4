package presence

import (
	"testing"
	"time"

	"github.com/hupe1980/agenthub/core"
)

func TestTracker_UpdateAndGet(t *testing.T) {
	tr := NewTracker()

	if !tr.Update("a", core.PresenceOnline, "ready") {
		t.Fatal("expected update to succeed")
	}

	p, ok := tr.Get("a")
	if !ok {
		t.Fatal("expected presence record")
	}
	if p.Status != core.PresenceOnline || p.CustomMessage != "ready" {
		t.Fatalf("unexpected record: %#v", p)
	}
	if p.LastSeen.IsZero() || p.StatusUpdatedAt.IsZero() {
		t.Fatal("expected both timestamps stamped")
	}

	if _, ok := tr.Get("unknown"); ok {
		t.Fatal("expected no record for unknown agent")
	}
}

func TestTracker_UpdateReplacesRecord(t *testing.T) {
	tr := NewTracker()
	tr.Update("a", core.PresenceOnline, "ready")
	first, _ := tr.Get("a")

	time.Sleep(2 * time.Millisecond)
	tr.Update("a", core.PresenceBusy, "")
	second, _ := tr.Get("a")

	if second.Status != core.PresenceBusy {
		t.Fatalf("expected status replaced, got %s", second.Status)
	}
	// full replace: the custom message from the prior record does not survive
	if second.CustomMessage != "" {
		t.Fatalf("expected custom message cleared, got %q", second.CustomMessage)
	}
	if !second.StatusUpdatedAt.After(first.StatusUpdatedAt) {
		t.Fatal("expected timestamps refreshed on every update")
	}
}

func TestTracker_Online(t *testing.T) {
	tr := NewTracker()
	tr.Update("offline", core.PresenceOffline, "")
	tr.Update("away", core.PresenceAway, "")
	time.Sleep(2 * time.Millisecond)
	tr.Update("online", core.PresenceOnline, "")
	time.Sleep(2 * time.Millisecond)
	tr.Update("busy", core.PresenceBusy, "")

	online := tr.Online()
	if len(online) != 2 {
		t.Fatalf("expected 2 reachable agents, got %d", len(online))
	}
	// ordered by most recently seen first
	if online[0].AgentID != "busy" || online[1].AgentID != "online" {
		t.Fatalf("unexpected ordering: %s, %s", online[0].AgentID, online[1].AgentID)
	}
}

func TestTracker_AgentIDs(t *testing.T) {
	tr := NewTracker()
	tr.Update("a", core.PresenceOnline, "")
	tr.Update("b", core.PresenceOffline, "")

	ids := tr.AgentIDs()
	if len(ids) != 2 {
		t.Fatalf("expected every tracked agent regardless of status, got %d", len(ids))
	}
}

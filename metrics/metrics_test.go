package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordDelivery(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordDelivery(KindMessage, true)
	m.RecordDelivery(KindMessage, true)
	m.RecordDelivery(KindMessage, false)

	delivered := testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues(KindMessage, OutcomeDelivered))
	rejected := testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues(KindMessage, OutcomeRejected))
	if delivered != 2 || rejected != 1 {
		t.Fatalf("unexpected counts: delivered=%v rejected=%v", delivered, rejected)
	}
}

func TestMetrics_EvictionsAndWaits(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordEviction("mailbox")
	m.RecordEviction("mailbox")
	if got := testutil.ToFloat64(m.EvictionsTotal.WithLabelValues("mailbox")); got != 2 {
		t.Fatalf("expected 2 evictions, got %v", got)
	}

	m.WaitStarted()
	m.WaitStarted()
	m.WaitFinished()
	if got := testutil.ToFloat64(m.PendingWaits); got != 1 {
		t.Fatalf("expected 1 pending wait, got %v", got)
	}
}

func TestMetrics_NilReceiverSafe(t *testing.T) {
	// stores run without a registry; every method must tolerate a nil receiver
	var m *Metrics
	m.RecordDelivery(KindEvent, true)
	m.RecordFanOut(3)
	m.RecordEviction("knowledge")
	m.WaitStarted()
	m.WaitFinished()
}

package agenthub

import (
	"fmt"
	"sort"
	"time"
)

// DefaultAnalyticsPeriod is the lookback window applied when none is given.
const DefaultAnalyticsPeriod = 30 * 24 * time.Hour

// CommunicationAnalytics summarizes one agent's communication activity within
// a lookback window.
type CommunicationAnalytics struct {
	AgentID                   string         `json:"agent_id"`
	Period                    time.Duration  `json:"period"`
	MessagesSent              int            `json:"messages_sent"`
	MessagesReceived          int            `json:"messages_received"`
	ConversationsStarted      int            `json:"conversations_started"`
	ConversationsParticipated int            `json:"conversations_participated"`
	RequestsSent              int            `json:"requests_sent"`
	RequestsReceived          int            `json:"requests_received"`
	KnowledgeShared           int            `json:"knowledge_shared"`
	TopPartners               map[string]int `json:"top_partners"`
}

// CommunicationPattern describes a recurring communication structure
// discovered across agents.
type CommunicationPattern struct {
	PatternType    string         `json:"pattern_type"`
	Description    string         `json:"description"`
	InvolvedAgents []string       `json:"involved_agents"`
	Frequency      float64        `json:"frequency"`
	Metrics        map[string]any `json:"metrics,omitempty"`
}

// Analytics computes the agent's communication summary over the given period.
// A non-positive period falls back to DefaultAnalyticsPeriod. Counters are
// derived from the in-memory stores, so evicted messages no longer count.
func (h *Hub) Analytics(agentID string, period time.Duration) CommunicationAnalytics {
	if period <= 0 {
		period = DefaultAnalyticsPeriod
	}
	cutoff := time.Now().UTC().Add(-period)

	a := CommunicationAnalytics{
		AgentID:     agentID,
		Period:      period,
		TopPartners: make(map[string]int),
	}

	partnerCounts := make(map[string]int)
	for _, m := range h.mailbox.SentBy(agentID) {
		if m.Timestamp.Before(cutoff) {
			continue
		}
		a.MessagesSent++
		partnerCounts[m.ToAgentID]++
	}
	for _, m := range h.mailbox.Messages(agentID, false) {
		if !m.Timestamp.Before(cutoff) {
			a.MessagesReceived++
		}
	}

	for _, conv := range h.conversations.ListForAgent(agentID) {
		if conv.CreatedAt.Before(cutoff) {
			continue
		}
		a.ConversationsParticipated++
		if conv.InitiatorID == agentID {
			a.ConversationsStarted++
		}
	}

	for _, req := range h.requests.RequestsFrom(agentID) {
		if !req.CreatedAt.Before(cutoff) {
			a.RequestsSent++
		}
	}
	for _, req := range h.requests.RequestsTo(agentID) {
		if !req.CreatedAt.Before(cutoff) {
			a.RequestsReceived++
		}
	}

	for _, item := range h.knowledge.SharedBy(agentID) {
		if !item.CreatedAt.Before(cutoff) {
			a.KnowledgeShared++
		}
	}

	a.TopPartners = topN(partnerCounts, 5)
	return a
}

// CommunicationPatterns analyzes message traffic for recurring structures.
// When agentIDs is empty every agent with a presence record is considered.
// Currently detects high-communication pairs: ordered sender/recipient pairs
// with more than ten messages between them.
func (h *Hub) CommunicationPatterns(agentIDs []string) []CommunicationPattern {
	scope := make(map[string]bool)
	if len(agentIDs) > 0 {
		for _, id := range agentIDs {
			scope[id] = true
		}
	} else {
		for _, id := range h.presence.AgentIDs() {
			scope[id] = true
		}
	}

	type pair struct{ from, to string }
	pairCounts := make(map[pair]int)
	for _, m := range h.mailbox.All() {
		if scope[m.FromAgentID] && scope[m.ToAgentID] {
			pairCounts[pair{m.FromAgentID, m.ToAgentID}]++
		}
	}

	patterns := make([]CommunicationPattern, 0)
	for p, count := range pairCounts {
		if count <= 10 {
			continue
		}
		patterns = append(patterns, CommunicationPattern{
			PatternType:    "high_communication_pair",
			Description:    fmt.Sprintf("Agents %s and %s communicate frequently", p.from, p.to),
			InvolvedAgents: []string{p.from, p.to},
			Frequency:      float64(count) / 30.0, // messages per day over the default window
			Metrics:        map[string]any{"message_count": count},
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].Frequency > patterns[j].Frequency
	})
	return patterns
}

// topN returns the n highest counts as a map, breaking ties by key for
// determinism.
func topN(counts map[string]int, n int) map[string]int {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	top := make(map[string]int, len(entries))
	for _, e := range entries {
		top[e.key] = e.count
	}
	return top
}

package core

import "time"

// KnowledgeType categorizes a shared knowledge item.
type KnowledgeType string

const (
	// KnowledgeFact is a verifiable statement.
	KnowledgeFact KnowledgeType = "fact"
	// KnowledgeProcedure is a step-by-step method.
	KnowledgeProcedure KnowledgeType = "procedure"
	// KnowledgeBestPractice is a recommended approach.
	KnowledgeBestPractice KnowledgeType = "best_practice"
	// KnowledgeLessonLearned is insight gained from past outcomes.
	KnowledgeLessonLearned KnowledgeType = "lesson_learned"
	// KnowledgePattern is a recurring structure worth recognizing.
	KnowledgePattern KnowledgeType = "pattern"
	// KnowledgeSolution is a resolution to a known problem.
	KnowledgeSolution KnowledgeType = "solution"
	// KnowledgeResource is a pointer to useful material.
	KnowledgeResource KnowledgeType = "resource"
	// KnowledgeInsight is an interpretation or observation.
	KnowledgeInsight KnowledgeType = "insight"
)

// KnowledgeShare is an item of expertise published by an agent. Append-only
// per publisher; the store bounds each publisher's log and evicts oldest
// first. Confidence is normalized to [0,1].
type KnowledgeShare struct {
	ID          string        `json:"id"`
	FromAgentID string        `json:"from_agent_id"`
	Domain      string        `json:"domain"`
	Topic       string        `json:"topic"`
	Content     string        `json:"content"`
	Type        KnowledgeType `json:"type"`
	Confidence  float64       `json:"confidence"`
	Tags        []string      `json:"tags,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewKnowledgeShare creates a knowledge item with a fresh id. CreatedAt is
// left zero so the store stamps it at acceptance time.
func NewKnowledgeShare(from, domain, topic, content string, typ KnowledgeType, confidence float64) KnowledgeShare {
	return KnowledgeShare{
		ID:          NewID(),
		FromAgentID: from,
		Domain:      domain,
		Topic:       topic,
		Content:     content,
		Type:        typ,
		Confidence:  confidence,
	}
}

// KnowledgeQuery selects knowledge items across all publishers.
//
// Domain matches case-insensitively and is required. Topic, Type,
// MinConfidence and Keywords are optional refinements: Topic is a
// case-insensitive substring match, Keywords match when any keyword is a
// case-insensitive substring of any tag.
type KnowledgeQuery struct {
	Domain        string         `json:"domain"`
	Topic         string         `json:"topic,omitempty"`
	Keywords      []string       `json:"keywords,omitempty"`
	Type          *KnowledgeType `json:"type,omitempty"`
	MinConfidence *float64       `json:"min_confidence,omitempty"`
}

// Package core provides the foundational domain types and interfaces used by
// AgentHub. It defines the core abstractions for:
//
//   - Messages (typed, prioritized mailbox entries exchanged between agents)
//   - Conversations (multi-party, topic-scoped contexts with lifecycle state)
//   - Requests / Responses (correlated request-reply exchanges)
//   - Presence (latest-wins agent availability records)
//   - Events and Knowledge (pub/sub notifications and shared expertise)
//   - AgentDirectory (pluggable agent identity and liveness resolution)
//
// The package intentionally keeps implementation concerns (store internals,
// fan-out orchestration, the hub façade) out of scope, exposing small types and
// interfaces so stores can be composed or replaced independently.
package core

// Package knowledge implements the per-agent bounded append log of shared
// knowledge items and the cross-agent query surface.
//
// Each publisher's log is capped with FIFO eviction, so the newest items
// always win. Sharing also fans out a derived resource message to the target
// agents (explicit targets, or all active agents except the publisher).
// Queries run across every agent's log: domain matches case-insensitively,
// optional topic/type/confidence/keyword refinements narrow the set, and
// results are ordered most confident then most recent, truncated to the query
// limit.
package knowledge

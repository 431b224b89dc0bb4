// Package presence tracks per-agent availability with latest-wins upsert
// semantics: each status update fully replaces the prior record and refreshes
// both the last-seen and status-updated timestamps, whether or not the status
// actually changed.
package presence

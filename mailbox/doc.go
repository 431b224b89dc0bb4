// Package mailbox implements per-agent bounded message queues plus a global
// message index keyed by message id.
//
// Delivery contract:
//
//   - Send validates both agent ids against the agent directory and reports
//     failure as a boolean false (logged, never raised).
//   - Each per-agent queue is bounded; insertion past the bound evicts the
//     oldest entry, so the newest messages always win.
//   - Broadcast fans out one Send per target and is not atomic: partial
//     delivery is possible and the call succeeds when at least one target
//     accepted the message.
//
// Concurrency: each agent's queue is serialized by its own mutex and the
// global index is synchronized separately. No lock spans more than one queue,
// so broadcasts never deadlock against concurrent sends.
package mailbox

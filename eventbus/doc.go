// Package eventbus implements the event subscription table and publish
// fan-out.
//
// Subscriptions are per-agent sets of event types: subscribing twice to the
// same type is idempotent and an empty set simply means no subscriptions.
// Publishing delivers one derived low-priority status message per interested
// subscriber through the mailbox store, never to the publisher itself. A
// failed delivery to one subscriber does not abort delivery to the others.
package eventbus

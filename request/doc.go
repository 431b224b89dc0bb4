// Package request implements the request/response correlator: it tracks
// outstanding requests, matches responses to them by request id, and supports
// blocking wait-with-timeout.
//
// A request is pending until a response referencing its id arrives or its
// timeout elapses; expiry is evaluated lazily when pending requests are
// listed, no background sweeper runs. WaitForResponse is the only blocking
// operation in the hub: a fixed-interval poll loop that honors context
// cancellation and returns nil on timeout, since timing out is an expected
// outcome rather than a defect.
//
// Every accepted request and response also produces a derived mailbox message
// (command to the recipient, answer back to the requester) so agents can
// either consult the typed pending list or drain their unified mailbox.
package request

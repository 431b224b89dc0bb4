// Package logging provides a minimal logging interface and adapters for AgentHub.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the hub and stores use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - HubLogger with contextual helpers and delivery/fan-out logging
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	hub := agenthub.New(dir, func(o *agenthub.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging

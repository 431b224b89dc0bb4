// Package directory provides an in-memory implementation of the
// core.AgentDirectory interface. It is the hub's default agent identity and
// liveness source for tests, examples and single-process deployments;
// production systems typically adapt their own registry (database, service
// mesh, orchestrator API) to the same interface.
package directory

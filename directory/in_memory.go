package directory

import (
	"context"
	"strings"
	"sync"

	"github.com/hupe1980/agenthub/core"
)

// InMemoryDirectory is a volatile AgentDirectory implementation storing
// descriptors in a process local map. It is safe for concurrent access and
// best suited for tests or single-process deployments. Each returned
// descriptor is copied to prevent external mutation of internal state.
type InMemoryDirectory struct {
	mu     sync.RWMutex
	agents map[string]core.AgentDescriptor
}

// NewInMemoryDirectory constructs an empty in-memory directory.
func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{agents: make(map[string]core.AgentDescriptor)}
}

// Register adds or replaces an agent descriptor. An empty id is assigned a
// fresh one; the (possibly generated) id is returned.
func (d *InMemoryDirectory) Register(desc core.AgentDescriptor) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if desc.ID == "" {
		desc.ID = core.NewID()
	}
	d.agents[desc.ID] = cloneDescriptor(desc)
	return desc.ID
}

// Deregister removes an agent. Unknown ids are ignored.
func (d *InMemoryDirectory) Deregister(agentID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.agents, agentID)
}

// SetActive flips the liveness flag for an agent, reporting whether the agent
// was known.
func (d *InMemoryDirectory) SetActive(agentID string, active bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	desc, ok := d.agents[agentID]
	if !ok {
		return false
	}
	desc.Active = active
	d.agents[agentID] = desc
	return true
}

// Resolve returns a copy of the descriptor for the given id, or nil if the
// agent is unknown.
func (d *InMemoryDirectory) Resolve(_ context.Context, agentID string) (*core.AgentDescriptor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	desc, ok := d.agents[agentID]
	if !ok {
		return nil, nil
	}
	cp := cloneDescriptor(desc)
	return &cp, nil
}

// ListActive returns copies of all descriptors currently flagged active.
func (d *InMemoryDirectory) ListActive(_ context.Context) ([]core.AgentDescriptor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	active := make([]core.AgentDescriptor, 0, len(d.agents))
	for _, desc := range d.agents {
		if desc.Active {
			active = append(active, cloneDescriptor(desc))
		}
	}
	return active, nil
}

// FindBySpecialization returns active agents declaring a specialization whose
// domain matches case-insensitively.
func (d *InMemoryDirectory) FindBySpecialization(_ context.Context, domain string) ([]core.AgentDescriptor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	matches := make([]core.AgentDescriptor, 0)
	for _, desc := range d.agents {
		if !desc.Active {
			continue
		}
		for _, s := range desc.Specializations {
			if strings.EqualFold(s.Domain, domain) {
				matches = append(matches, cloneDescriptor(desc))
				break
			}
		}
	}
	return matches, nil
}

func cloneDescriptor(desc core.AgentDescriptor) core.AgentDescriptor {
	cp := desc
	if desc.Specializations != nil {
		cp.Specializations = make([]core.Specialization, len(desc.Specializations))
		copy(cp.Specializations, desc.Specializations)
	}
	return cp
}

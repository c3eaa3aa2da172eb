// Package registry maps agent names to constructors, so binaries can pick a bot by name.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/anthill/pkg/ports"
)

// Factory builds a fresh agent for one game.
type Factory func() ports.Agent

// Registry manages the available agents.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds an agent to the registry.
// If an agent with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// New looks up an agent by name and builds it.
// Returns an error if the agent is not found.
func (r *Registry) New(name string) (ports.Agent, error) {
	r.mu.RLock()
	fn, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("agent not found: %s (available: %v)", name, r.Names())
	}

	return fn(), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

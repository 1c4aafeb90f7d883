package node

import (
	"sort"
	"sync"

	"github.com/kbukum/nodekit/errors"
)

// Registry manages definitions keyed by node type. It is the discovery
// surface a pipeline engine uses to find nodes; invocation stays with
// the caller.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. Incomplete definitions and duplicate
// types are rejected.
func (r *Registry) Register(def *Definition) error {
	if err := def.complete(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[def.Type]; ok {
		return errors.AlreadyExists(def.Type)
	}
	r.defs[def.Type] = def
	return nil
}

// MustRegister adds a definition and panics on error. Intended for
// package-init wiring where a failure is a programming mistake.
func (r *Registry) MustRegister(def *Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get returns the definition registered under the given type.
func (r *Registry) Get(nodeType string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[nodeType]
	if !ok {
		return nil, errors.NotFound(nodeType)
	}
	return def, nil
}

// List returns the sorted types of all registered definitions.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

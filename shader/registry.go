package shader

import (
	"fmt"
	"sync"
)

// Registry is a concurrency-safe name-to-Program map, the natural way to
// let a Graphics facade's use_program operation take a material name
// instead of a *Program value directly.
type Registry struct {
	mu       sync.RWMutex
	programs map[string]*Program
}

// NewRegistry returns a Registry pre-populated with the package's
// built-in materials under their Program.Name.
func NewRegistry() *Registry {
	r := &Registry{programs: make(map[string]*Program)}
	r.Register(SolidColorProgram)
	r.Register(VertexColorProgram)
	r.Register(BlinnPhongProgram)
	return r
}

// Register adds or replaces a Program under its Name.
func (r *Registry) Register(p *Program) {
	r.mu.Lock()
	r.programs[p.Name] = p
	r.mu.Unlock()
}

// Lookup returns the Program registered under name, or ErrProgramNotFound.
func (r *Registry) Lookup(name string) (*Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.programs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProgramNotFound, name)
	}
	return p, nil
}

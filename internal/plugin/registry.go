package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a plugin from its options.
type Factory func(options map[string]any) (Plugin, error)

// NotFoundError indicates no factory is registered for an id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugin %q is not registered", e.ID)
}

// Resolved is an instantiated plugin.
type Resolved struct {
	Info    Info
	Plugin  Plugin
	BuiltIn bool
}

// Registration describes a plugin known to the registry.
type Registration struct {
	ID      string
	Factory Factory
	// Packages are npm packages a project needs once the plugin is added.
	Packages []string
	// Version is the plugin's semantic version.
	Version string
	// Description is shown by the CLI plugin listing.
	Description string
}

// Registry maps plugin ids to registrations.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Registration)}
}

// Register adds a plugin. Registering an id twice is an error.
func (r *Registry) Register(reg Registration) error {
	if reg.ID == "" || reg.Factory == nil {
		return fmt.Errorf("plugin registration needs an id and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[reg.ID]; ok {
		return fmt.Errorf("plugin %q already registered", reg.ID)
	}
	r.factories[reg.ID] = reg
	return nil
}

// MustRegister is Register for package initialization.
func (r *Registry) MustRegister(reg Registration) {
	if err := r.Register(reg); err != nil {
		panic(err)
	}
}

// Lookup returns the registration for id.
func (r *Registry) Lookup(id string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.factories[id]
	return reg, ok
}

// Packages returns the npm packages backing ids, in order and without
// duplicates.
func (r *Registry) Packages(ids []string) ([]string, error) {
	seen := make(map[string]bool)
	var pkgs []string
	for _, id := range ids {
		reg, ok := r.Lookup(id)
		if !ok {
			return nil, &NotFoundError{ID: id}
		}
		for _, p := range reg.Packages {
			if !seen[p] {
				seen[p] = true
				pkgs = append(pkgs, p)
			}
		}
	}
	return pkgs, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

// IDs returns all registered ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Instantiate builds the plugin for info.
func (r *Registry) Instantiate(info Info) (Plugin, error) {
	reg, ok := r.Lookup(info.ID)
	if !ok {
		return nil, &NotFoundError{ID: info.ID}
	}
	p, err := reg.Factory(info.Options)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", info.ID, err)
	}
	return p, nil
}

// Resolve instantiates builtins followed by inline, in order. An id that
// appears more than once keeps its first position and options.
func (r *Registry) Resolve(builtins, inline []Info) ([]Resolved, error) {
	seen := make(map[string]bool, len(builtins)+len(inline))
	out := make([]Resolved, 0, len(builtins)+len(inline))

	add := func(infos []Info, builtIn bool) error {
		for _, info := range infos {
			if seen[info.ID] {
				continue
			}
			seen[info.ID] = true
			p, err := r.Instantiate(info)
			if err != nil {
				return err
			}
			out = append(out, Resolved{Info: info, Plugin: p, BuiltIn: builtIn})
		}
		return nil
	}

	if err := add(builtins, true); err != nil {
		return nil, err
	}
	if err := add(inline, false); err != nil {
		return nil, err
	}
	return out, nil
}

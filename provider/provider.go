package provider

import (
	"net/url"
	"sort"
	"sync"
)

// Provider is the connection profile of one SDMX data service.
// Values returned by a Registry are copies; mutating them, including the
// Endpoint URL, does not affect the registry.
type Provider struct {
	Name                string
	Endpoint            *url.URL // nil for providers resolved by convention
	NeedsCredentials    bool
	NeedsURLEncoding    bool
	SupportsCompression bool
	Description         string
	IsCustom            bool
}

func (p Provider) clone() Provider {
	if p.Endpoint != nil {
		u := *p.Endpoint
		if p.Endpoint.User != nil {
			user := *p.Endpoint.User
			u.User = &user
		}
		p.Endpoint = &u
	}
	return p
}

// Registry maps provider names to their profiles. It is safe for concurrent
// use. Registering an existing name replaces the previous entry.
type Registry struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry. Most callers want Initialize.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Add inserts or replaces the provider called name.
func (r *Registry) Add(name string, endpoint *url.URL, needsCredentials, needsURLEncoding,
	supportsCompression bool, description string, isCustom bool,
) {
	r.AddProvider(Provider{
		Name:                name,
		Endpoint:            endpoint,
		NeedsCredentials:    needsCredentials,
		NeedsURLEncoding:    needsURLEncoding,
		SupportsCompression: supportsCompression,
		Description:         description,
		IsCustom:            isCustom,
	})
}

// AddProvider inserts or replaces p under p.Name.
func (r *Registry) AddProvider(p Provider) {
	p = p.clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name] = p
}

// Get returns a copy of the provider called name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	p, ok := r.providers[name]
	r.mu.RUnlock()

	if !ok {
		return Provider{}, false
	}
	return p.clone(), true
}

// Remove deletes the provider called name and reports whether it existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return false
	}
	delete(r.providers, name)
	return true
}

// Providers returns a snapshot of all registered providers keyed by name.
func (r *Registry) Providers() map[string]Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Provider, len(r.providers))
	for name, p := range r.providers {
		out[name] = p.clone()
	}
	return out
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

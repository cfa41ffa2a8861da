package registry

import (
	"fmt"
	"sort"
)

// EndpointRegistry maps group names to their API version and allowed regions.
type EndpointRegistry struct {
	groups map[string]EndpointGroup
}

// NewEndpointRegistry creates an EndpointRegistry. Group names must be unique and non-empty.
func NewEndpointRegistry(groups []EndpointGroup) (*EndpointRegistry, error) {
	m := make(map[string]EndpointGroup, len(groups))
	for _, g := range groups {
		if g.Name == "" {
			return nil, NewRegistryError(CodeInvalidCatalog, "endpoint group with empty name")
		}
		if g.APIVersion == "" {
			return nil, NewRegistryError(CodeInvalidCatalog, fmt.Sprintf("endpoint group %q has no api version", g.Name))
		}
		if _, dup := m[g.Name]; dup {
			return nil, NewRegistryError(CodeInvalidCatalog, fmt.Sprintf("duplicate endpoint group %q", g.Name))
		}
		m[g.Name] = g
	}
	return &EndpointRegistry{groups: m}, nil
}

// Lookup returns the group registered under name.
func (r *EndpointRegistry) Lookup(name string) (EndpointGroup, error) {
	g, ok := r.groups[name]
	if !ok {
		return EndpointGroup{}, &RegistryError{
			Code:    CodeUnknownGroup,
			Message: fmt.Sprintf("endpoint group %q is not registered", name),
			Details: map[string]string{"group": name},
		}
	}
	return g, nil
}

// Names returns all group names, sorted.
func (r *EndpointRegistry) Names() []string {
	out := make([]string, 0, len(r.groups))
	for name := range r.groups {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered groups.
func (r *EndpointRegistry) Len() int {
	return len(r.groups)
}

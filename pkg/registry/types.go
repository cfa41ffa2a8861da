// Package registry holds the endpoint registry and the region directory.
//
// Both are built once from a catalog and never mutated afterwards, so they are
// safe to share between concurrent calls without locking.
package registry

import (
	"sort"
	"strings"
)

// Error codes reported by lookups.
const (
	CodeUnknownGroup   = "UNKNOWN_GROUP"
	CodeUnknownRegion  = "UNKNOWN_REGION"
	CodeInvalidCatalog = "INVALID_CATALOG"
)

// GlobalRegion is the pseudo-region whose host serves endpoints that are not region-sharded.
const GlobalRegion = "global"

// EndpointGroup is a family of operations sharing one API version and one set of legal regions.
type EndpointGroup struct {
	Name       string
	APIVersion string
	allowed    map[string]struct{}
}

// NewEndpointGroup builds a group. Region codes are normalized to lowercase.
func NewEndpointGroup(name, apiVersion string, regions []string) EndpointGroup {
	allowed := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		allowed[NormalizeRegion(r)] = struct{}{}
	}
	return EndpointGroup{Name: name, APIVersion: apiVersion, allowed: allowed}
}

// Allows reports whether region is legal for this group.
func (g EndpointGroup) Allows(region string) bool {
	_, ok := g.allowed[NormalizeRegion(region)]
	return ok
}

// Regions returns the allowed region codes, sorted.
func (g EndpointGroup) Regions() []string {
	out := make([]string, 0, len(g.allowed))
	for r := range g.allowed {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// RegionEntry maps a region code to its platform id and host.
type RegionEntry struct {
	Code       string `json:"code"`
	PlatformID string `json:"platformId"`
	Host       string `json:"host"`
}

// IsGlobal reports whether e is the global pseudo-region.
func (e RegionEntry) IsGlobal() bool {
	return e.Code == GlobalRegion
}

// NormalizeRegion lowercases and trims a region code.
func NormalizeRegion(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// RegistryError is a structured lookup error.
type RegistryError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *RegistryError) Error() string {
	return e.Code + ": " + e.Message
}

// NewRegistryError creates a new RegistryError.
func NewRegistryError(code, message string) *RegistryError {
	return &RegistryError{Code: code, Message: message}
}

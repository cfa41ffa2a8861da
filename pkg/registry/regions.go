package registry

import (
	"fmt"
	"sort"
)

// RegionDirectory maps region codes to platform ids and hosts.
type RegionDirectory struct {
	entries map[string]RegionEntry
}

// NewRegionDirectory creates a RegionDirectory. Codes are lowercased; a global entry is required.
func NewRegionDirectory(entries []RegionEntry) (*RegionDirectory, error) {
	m := make(map[string]RegionEntry, len(entries))
	for _, e := range entries {
		e.Code = NormalizeRegion(e.Code)
		if e.Code == "" {
			return nil, NewRegistryError(CodeInvalidCatalog, "region entry with empty code")
		}
		if e.Host == "" {
			return nil, NewRegistryError(CodeInvalidCatalog, fmt.Sprintf("region %q has no host", e.Code))
		}
		if _, dup := m[e.Code]; dup {
			return nil, NewRegistryError(CodeInvalidCatalog, fmt.Sprintf("duplicate region %q", e.Code))
		}
		m[e.Code] = e
	}
	if _, ok := m[GlobalRegion]; !ok {
		return nil, NewRegistryError(CodeInvalidCatalog, "region directory has no global entry")
	}
	return &RegionDirectory{entries: m}, nil
}

// Lookup returns the entry for code, ignoring case.
func (d *RegionDirectory) Lookup(code string) (RegionEntry, error) {
	key := NormalizeRegion(code)
	e, ok := d.entries[key]
	if !ok {
		return RegionEntry{}, &RegistryError{
			Code:    CodeUnknownRegion,
			Message: fmt.Sprintf("region %q is not in the directory", key),
			Details: map[string]string{"region": key},
		}
	}
	return e, nil
}

// Global returns the global pseudo-region entry.
func (d *RegionDirectory) Global() RegionEntry {
	return d.entries[GlobalRegion]
}

// Codes returns all region codes except global, sorted.
func (d *RegionDirectory) Codes() []string {
	out := make([]string, 0, len(d.entries))
	for code := range d.entries {
		if code == GlobalRegion {
			continue
		}
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Entries returns every entry including global, sorted by code.
func (d *RegionDirectory) Entries() []RegionEntry {
	out := make([]RegionEntry, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

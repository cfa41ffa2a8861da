package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/morezero/gamestats/pkg/registry"
	"github.com/morezero/gamestats/pkg/semver"
)

const logPrefix = "catalog:loader"

// EnvCatalogFile names the environment variable consulted after explicit paths.
const EnvCatalogFile = "STATS_CATALOG_FILE"

// LoadCatalogConfig loads the catalog from the first readable path. It tries explicit
// paths, then STATS_CATALOG_FILE, then config/catalog.{json,yaml}, then the built-in default.
func LoadCatalogConfig(paths ...string) (*CatalogConfig, error) {
	all := make([]string, 0, len(paths)+5)
	for _, p := range paths {
		if p != "" {
			all = append(all, p)
		}
	}
	if envPath := os.Getenv(EnvCatalogFile); envPath != "" {
		all = append(all, envPath)
	}
	all = append(all, "config/catalog.json", "config/catalog.yaml", "catalog.json")

	for _, p := range all {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}

		cfg, err := ParseCatalogConfig(p, data)
		if err != nil {
			slog.Warn(fmt.Sprintf("%s - Failed to parse catalog file %s: %v", logPrefix, p, err))
			continue
		}

		slog.Info(fmt.Sprintf("%s - Loaded catalog from %s", logPrefix, p))
		return cfg, nil
	}

	slog.Info(fmt.Sprintf("%s - Using default catalog", logPrefix))
	return GetDefaultCatalogConfig(), nil
}

// LoadCatalogFile loads exactly one file and fails if it cannot be read or parsed.
func LoadCatalogFile(path string) (*CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s - read %s: %w", logPrefix, path, err)
	}
	return ParseCatalogConfig(path, data)
}

// ParseCatalogConfig decodes data as YAML when name ends in .yaml or .yml, otherwise as JSON.
func ParseCatalogConfig(name string, data []byte) (*CatalogConfig, error) {
	var cfg CatalogConfig
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s - decode yaml %s: %w", logPrefix, name, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s - decode json %s: %w", logPrefix, name, err)
		}
	}
	return &cfg, nil
}

// Validate checks that every group has a valid API version and only names known regions,
// and that a global region exists.
func Validate(cfg *CatalogConfig) error {
	var errs []error
	if len(cfg.Groups) == 0 {
		errs = append(errs, errors.New("no endpoint groups"))
	}

	regionCodes := make(map[string]struct{}, len(cfg.Regions))
	for code, r := range cfg.Regions {
		norm := registry.NormalizeRegion(code)
		if _, dup := regionCodes[norm]; dup {
			errs = append(errs, fmt.Errorf("region %q declared twice", norm))
		}
		regionCodes[norm] = struct{}{}
		if r.Host == "" {
			errs = append(errs, fmt.Errorf("region %q has no host", code))
		}
	}
	if _, ok := regionCodes[registry.GlobalRegion]; !ok {
		errs = append(errs, fmt.Errorf("no %q region", registry.GlobalRegion))
	}

	for _, name := range sortedKeys(cfg.Groups) {
		g := cfg.Groups[name]
		if _, err := semver.ParseAPIVersion(g.APIVersion); err != nil {
			errs = append(errs, fmt.Errorf("group %q: %w", name, err))
		}
		if len(g.Regions) == 0 {
			errs = append(errs, fmt.Errorf("group %q allows no regions", name))
		}
		for _, r := range g.Regions {
			if _, ok := regionCodes[registry.NormalizeRegion(r)]; !ok {
				errs = append(errs, fmt.Errorf("group %q allows unknown region %q", name, r))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s - invalid catalog %q: %w", logPrefix, cfg.Name, errors.Join(errs...))
	}
	return nil
}

// MergeCatalogConfigs returns base with groups, regions and status URLs from override applied.
// Neither input is modified.
func MergeCatalogConfigs(base, override *CatalogConfig) *CatalogConfig {
	merged := *base
	merged.Groups = make(map[string]GroupConfig, len(base.Groups)+len(override.Groups))
	for name, g := range base.Groups {
		merged.Groups[name] = g
	}
	for name, g := range override.Groups {
		if prev, ok := merged.Groups[name]; ok {
			if cmp, err := semver.CompareAPIVersions(g.APIVersion, prev.APIVersion); err == nil && cmp < 0 {
				slog.Warn(fmt.Sprintf("%s - Override downgrades %s from %s to %s", logPrefix, name, prev.APIVersion, g.APIVersion))
			}
		}
		merged.Groups[name] = g
	}

	merged.Regions = make(map[string]RegionConfig, len(base.Regions)+len(override.Regions))
	for code, r := range base.Regions {
		merged.Regions[code] = r
	}
	for code, r := range override.Regions {
		merged.Regions[code] = r
	}

	if override.Status.BaseURL != "" {
		merged.Status.BaseURL = override.Status.BaseURL
	}
	if override.Status.PBEBaseURL != "" {
		merged.Status.PBEBaseURL = override.Status.PBEBaseURL
	}
	if override.CredentialKey != "" {
		merged.CredentialKey = override.CredentialKey
	}
	if override.Name != "" {
		merged.Name = override.Name
	}
	if override.Version != "" {
		merged.Version = override.Version
	}
	return &merged
}

// Build validates cfg and constructs the read-only registries.
func Build(cfg *CatalogConfig) (*registry.EndpointRegistry, *registry.RegionDirectory, error) {
	if err := Validate(cfg); err != nil {
		return nil, nil, err
	}

	groups := make([]registry.EndpointGroup, 0, len(cfg.Groups))
	for _, name := range sortedKeys(cfg.Groups) {
		g := cfg.Groups[name]
		groups = append(groups, registry.NewEndpointGroup(name, g.APIVersion, g.Regions))
	}
	endpoints, err := registry.NewEndpointRegistry(groups)
	if err != nil {
		return nil, nil, fmt.Errorf("%s - build endpoints: %w", logPrefix, err)
	}

	entries := make([]registry.RegionEntry, 0, len(cfg.Regions))
	for _, code := range sortedKeys(cfg.Regions) {
		r := cfg.Regions[code]
		entries = append(entries, registry.RegionEntry{Code: code, PlatformID: r.PlatformID, Host: r.Host})
	}
	regions, err := registry.NewRegionDirectory(entries)
	if err != nil {
		return nil, nil, fmt.Errorf("%s - build regions: %w", logPrefix, err)
	}

	slog.Debug(fmt.Sprintf("%s - Built catalog %s: %d groups, %d regions", logPrefix, cfg.Name, endpoints.Len(), len(entries)))
	return endpoints, regions, nil
}

// Describe renders the registries as a View.
func Describe(name, version string, endpoints *registry.EndpointRegistry, regions *registry.RegionDirectory) View {
	v := View{Name: name, Version: version}
	for _, n := range endpoints.Names() {
		g, _ := endpoints.Lookup(n)
		v.Groups = append(v.Groups, GroupView{Name: g.Name, APIVersion: g.APIVersion, Regions: g.Regions()})
	}
	for _, e := range regions.Entries() {
		v.Regions = append(v.Regions, RegionView{Code: e.Code, PlatformID: e.PlatformID, Host: e.Host})
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

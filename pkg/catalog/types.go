// Package catalog loads the endpoint group and region tables that the registries are built from.
package catalog

// GroupConfig is one endpoint group entry in the catalog.
type GroupConfig struct {
	APIVersion  string   `json:"apiVersion" yaml:"apiVersion"`
	Regions     []string `json:"regions" yaml:"regions"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// RegionConfig is one region entry in the catalog.
type RegionConfig struct {
	PlatformID string `json:"platformId" yaml:"platformId"`
	Host       string `json:"host" yaml:"host"`
}

// StatusConfig holds the base URLs of the unversioned shard status service.
type StatusConfig struct {
	BaseURL    string `json:"baseUrl" yaml:"baseUrl"`
	PBEBaseURL string `json:"pbeBaseUrl" yaml:"pbeBaseUrl"`
}

// CatalogConfig is the root catalog document.
type CatalogConfig struct {
	Name          string                  `json:"name" yaml:"name"`
	Version       string                  `json:"version" yaml:"version"`
	Description   string                  `json:"description,omitempty" yaml:"description,omitempty"`
	CredentialKey string                  `json:"credentialKey,omitempty" yaml:"credentialKey,omitempty"`
	Groups        map[string]GroupConfig  `json:"groups" yaml:"groups"`
	Regions       map[string]RegionConfig `json:"regions" yaml:"regions"`
	Status        StatusConfig            `json:"status" yaml:"status"`
}

// GroupView is the read-only description of a group returned by Describe.
type GroupView struct {
	Name       string   `json:"name" yaml:"name"`
	APIVersion string   `json:"apiVersion" yaml:"apiVersion"`
	Regions    []string `json:"regions" yaml:"regions"`
}

// RegionView is the read-only description of a region returned by Describe.
type RegionView struct {
	Code       string `json:"code" yaml:"code"`
	PlatformID string `json:"platformId,omitempty" yaml:"platformId,omitempty"`
	Host       string `json:"host" yaml:"host"`
}

// View is the effective catalog as served by the gateway and the HTTP surface.
type View struct {
	Name    string       `json:"name" yaml:"name"`
	Version string       `json:"version" yaml:"version"`
	Groups  []GroupView  `json:"groups" yaml:"groups"`
	Regions []RegionView `json:"regions" yaml:"regions"`
}

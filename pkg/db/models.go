package db

import "time"

// Keys stored in the catalog_settings table.
const (
	SettingName          = "name"
	SettingVersion       = "version"
	SettingDescription   = "description"
	SettingCredentialKey = "credential_key"
	SettingStatusBaseURL = "status_base_url"
	SettingStatusPBEURL  = "status_pbe_base_url"
)

// EndpointGroupRow represents a row in the endpoint_groups table.
type EndpointGroupRow struct {
	Name        string    `json:"name"`
	APIVersion  string    `json:"api_version"`
	Description *string   `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

// RegionRow represents a row in the regions table.
type RegionRow struct {
	Code       string    `json:"code"`
	PlatformID string    `json:"platform_id"`
	Host       string    `json:"host"`
	Created    time.Time `json:"created"`
	Modified   time.Time `json:"modified"`
}

// GroupRegionRow represents a row in the group_regions table.
type GroupRegionRow struct {
	GroupName  string `json:"group_name"`
	RegionCode string `json:"region_code"`
}

// CatalogRows is the full relational form of a catalog.
type CatalogRows struct {
	Settings     map[string]string
	Groups       []EndpointGroupRow
	Regions      []RegionRow
	GroupRegions []GroupRegionRow
}

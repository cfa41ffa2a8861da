package db

import (
	"sort"
	"strings"

	"github.com/morezero/gamestats/pkg/catalog"
)

// ToCatalogConfig assembles a CatalogConfig from its relational rows.
// Links to groups that do not exist are ignored.
func ToCatalogConfig(rows CatalogRows) *catalog.CatalogConfig {
	cfg := &catalog.CatalogConfig{
		Name:          rows.Settings[SettingName],
		Version:       rows.Settings[SettingVersion],
		Description:   rows.Settings[SettingDescription],
		CredentialKey: rows.Settings[SettingCredentialKey],
		Groups:        make(map[string]catalog.GroupConfig, len(rows.Groups)),
		Regions:       make(map[string]catalog.RegionConfig, len(rows.Regions)),
		Status: catalog.StatusConfig{
			BaseURL:    rows.Settings[SettingStatusBaseURL],
			PBEBaseURL: rows.Settings[SettingStatusPBEURL],
		},
	}

	for _, r := range rows.Regions {
		cfg.Regions[r.Code] = catalog.RegionConfig{PlatformID: r.PlatformID, Host: r.Host}
	}

	allowed := make(map[string][]string, len(rows.Groups))
	for _, link := range rows.GroupRegions {
		allowed[link.GroupName] = append(allowed[link.GroupName], link.RegionCode)
	}
	for _, g := range rows.Groups {
		regions := allowed[g.Name]
		sort.Strings(regions)
		gc := catalog.GroupConfig{APIVersion: g.APIVersion, Regions: regions}
		if g.Description != nil {
			gc.Description = *g.Description
		}
		cfg.Groups[g.Name] = gc
	}
	return cfg
}

// FromCatalogConfig flattens cfg into rows, sorted for deterministic seeding.
// Region codes are lowercased to match the regions table constraint.
func FromCatalogConfig(cfg *catalog.CatalogConfig) CatalogRows {
	rows := CatalogRows{
		Settings: map[string]string{
			SettingName:          cfg.Name,
			SettingVersion:       cfg.Version,
			SettingDescription:   cfg.Description,
			SettingCredentialKey: cfg.CredentialKey,
			SettingStatusBaseURL: cfg.Status.BaseURL,
			SettingStatusPBEURL:  cfg.Status.PBEBaseURL,
		},
	}

	for code, r := range cfg.Regions {
		rows.Regions = append(rows.Regions, RegionRow{
			Code:       strings.ToLower(code),
			PlatformID: r.PlatformID,
			Host:       r.Host,
		})
	}
	sort.Slice(rows.Regions, func(i, j int) bool { return rows.Regions[i].Code < rows.Regions[j].Code })

	for name, g := range cfg.Groups {
		row := EndpointGroupRow{Name: name, APIVersion: g.APIVersion}
		if g.Description != "" {
			desc := g.Description
			row.Description = &desc
		}
		rows.Groups = append(rows.Groups, row)
		for _, region := range g.Regions {
			rows.GroupRegions = append(rows.GroupRegions, GroupRegionRow{
				GroupName:  name,
				RegionCode: strings.ToLower(region),
			})
		}
	}
	sort.Slice(rows.Groups, func(i, j int) bool { return rows.Groups[i].Name < rows.Groups[j].Name })
	sort.Slice(rows.GroupRegions, func(i, j int) bool {
		a, b := rows.GroupRegions[i], rows.GroupRegions[j]
		if a.GroupName != b.GroupName {
			return a.GroupName < b.GroupName
		}
		return a.RegionCode < b.RegionCode
	})
	return rows
}

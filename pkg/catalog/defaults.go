package catalog

import "github.com/morezero/gamestats/pkg/registry"

// Endpoint group names.
const (
	GroupChampion      = "champion"
	GroupCurrentGame   = "currentGame"
	GroupFeaturedGames = "featuredGames"
	GroupGame          = "game"
	GroupLeague        = "league"
	GroupStaticData    = "lolStaticData"
	GroupStatus        = "lolStatus"
	GroupMatch         = "match"
	GroupMatchHistory  = "matchHistory"
	GroupStats         = "stats"
	GroupSummoner      = "summoner"
	GroupTeam          = "team"
)

// DefaultRegions are the shards every group serves unless stated otherwise.
var DefaultRegions = []string{"br", "eune", "euw", "kr", "lan", "las", "na", "oce", "ru", "tr"}

func withRegions(extra ...string) []string {
	out := make([]string, 0, len(DefaultRegions)+len(extra))
	out = append(out, DefaultRegions...)
	return append(out, extra...)
}

func withoutRegion(drop string, extra ...string) []string {
	out := make([]string, 0, len(DefaultRegions)+len(extra))
	for _, r := range DefaultRegions {
		if r != drop {
			out = append(out, r)
		}
	}
	return append(out, extra...)
}

// GetDefaultCatalogConfig returns the built-in catalog.
func GetDefaultCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		Name:          "gamestats-default",
		Version:       "1.0.0",
		Description:   "Built-in endpoint groups and region hosts",
		CredentialKey: "api_key",
		Groups: map[string]GroupConfig{
			GroupChampion:      {APIVersion: "v1.2", Regions: withRegions()},
			GroupCurrentGame:   {APIVersion: "v1.0", Regions: withRegions("pbe")},
			GroupFeaturedGames: {APIVersion: "v1.0", Regions: withRegions("pbe")},
			GroupGame:          {APIVersion: "v1.3", Regions: withRegions()},
			GroupLeague:        {APIVersion: "v2.5", Regions: withRegions()},
			GroupStaticData:    {APIVersion: "v1.2", Regions: withRegions()},
			GroupStatus:        {APIVersion: "v1.0", Regions: withoutRegion("kr", "pbe")},
			GroupMatch:         {APIVersion: "v2.2", Regions: withRegions()},
			GroupMatchHistory:  {APIVersion: "v2.2", Regions: withRegions()},
			GroupStats:         {APIVersion: "v1.3", Regions: withRegions()},
			GroupSummoner:      {APIVersion: "v1.4", Regions: withRegions()},
			GroupTeam:          {APIVersion: "v2.4", Regions: withRegions()},
		},
		Regions: map[string]RegionConfig{
			"br":                  {PlatformID: "BR1", Host: "br.api.pvp.net"},
			"eune":                {PlatformID: "EUN1", Host: "eune.api.pvp.net"},
			"euw":                 {PlatformID: "EUW1", Host: "euw.api.pvp.net"},
			"kr":                  {PlatformID: "KR", Host: "kr.api.pvp.net"},
			"lan":                 {PlatformID: "LA1", Host: "lan.api.pvp.net"},
			"las":                 {PlatformID: "LA2", Host: "las.api.pvp.net"},
			"na":                  {PlatformID: "NA1", Host: "na.api.pvp.net"},
			"oce":                 {PlatformID: "OC1", Host: "oce.api.pvp.net"},
			"ru":                  {PlatformID: "RU", Host: "ru.api.pvp.net"},
			"tr":                  {PlatformID: "TR1", Host: "tr.api.pvp.net"},
			"pbe":                 {PlatformID: "PBE1", Host: "pbe.api.pvp.net"},
			registry.GlobalRegion: {PlatformID: "", Host: "global.api.pvp.net"},
		},
		Status: StatusConfig{
			BaseURL:    "http://status.leagueoflegends.com",
			PBEBaseURL: "http://status.pbe.leagueoflegends.com",
		},
	}
}

package gateway

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/client"
	"github.com/morezero/gamestats/pkg/commsutil"
	"github.com/morezero/gamestats/pkg/dispatcher"
)

// route binds a method name to the accessor it invokes.
type route struct {
	group  string
	invoke func(ctx context.Context, c *client.Client, raw json.RawMessage, defaults dispatcher.CallOptions) (*dispatcher.Outcome, string, error)
}

type overrider interface {
	Overrides() *dispatcher.CallOptions
}

// errDecode wraps a params decoding failure.
type errDecode struct{ err error }

func (e *errDecode) Error() string { return e.err.Error() }
func (e *errDecode) Unwrap() error { return e.err }

// bind decodes params into T, fills unset overrides from the envelope context and calls the accessor.
// The second return is the effective region, for reporting.
func bind[T any](group string, call func(*client.Client, context.Context, T) (*dispatcher.Outcome, error)) route {
	return route{
		group: group,
		invoke: func(ctx context.Context, c *client.Client, raw json.RawMessage, defaults dispatcher.CallOptions) (*dispatcher.Outcome, string, error) {
			var opts T
			if len(raw) > 0 && string(raw) != "null" {
				if err := commsutil.DecodeStrict(raw, &opts); err != nil {
					return nil, "", &errDecode{err: err}
				}
			}
			region := defaults.Region
			if o, ok := any(&opts).(overrider); ok {
				merged := o.Overrides().Merge(defaults)
				*o.Overrides() = merged
				region = merged.Region
			}
			if region == "" {
				region = c.Context().DefaultRegion
			}
			out, err := call(c, ctx, opts)
			return out, region, err
		},
	}
}

var routes = map[string]route{
	"getChampions":                bind(catalog.GroupChampion, (*client.Client).GetChampions),
	"getChampionById":             bind(catalog.GroupChampion, (*client.Client).GetChampionByID),
	"getCurrentGameBySummonerId":  bind(catalog.GroupCurrentGame, (*client.Client).GetCurrentGameBySummonerID),
	"getFeaturedGames":            bind(catalog.GroupFeaturedGames, (*client.Client).GetFeaturedGames),
	"getRecentGamesBySummonerId":  bind(catalog.GroupGame, (*client.Client).GetRecentGamesBySummonerID),
	"getLeagueBySummonerIds":      bind(catalog.GroupLeague, (*client.Client).GetLeagueBySummonerIDs),
	"getLeagueEntryBySummonerIds": bind(catalog.GroupLeague, (*client.Client).GetLeagueEntryBySummonerIDs),
	"getLeagueByTeamIds":          bind(catalog.GroupLeague, (*client.Client).GetLeagueByTeamIDs),
	"getLeagueEntryByTeamIds":     bind(catalog.GroupLeague, (*client.Client).GetLeagueEntryByTeamIDs),
	"getChallengerLeague":         bind(catalog.GroupLeague, (*client.Client).GetChallengerLeague),
	"getMasterLeague":             bind(catalog.GroupLeague, (*client.Client).GetMasterLeague),
	"getChampionData":             bind(catalog.GroupStaticData, (*client.Client).GetStaticChampions),
	"getChampionDataById":         bind(catalog.GroupStaticData, (*client.Client).GetStaticChampionByID),
	"getItemData":                 bind(catalog.GroupStaticData, (*client.Client).GetStaticItems),
	"getItemDataById":             bind(catalog.GroupStaticData, (*client.Client).GetStaticItemByID),
	"getLanguageStrings":          bind(catalog.GroupStaticData, (*client.Client).GetStaticLanguageStrings),
	"getLanguages":                bind(catalog.GroupStaticData, (*client.Client).GetStaticLanguages),
	"getMaps":                     bind(catalog.GroupStaticData, (*client.Client).GetStaticMap),
	"getMasteryData":              bind(catalog.GroupStaticData, (*client.Client).GetStaticMasteries),
	"getMasteryDataById":          bind(catalog.GroupStaticData, (*client.Client).GetStaticMasteryByID),
	"getRealms":                   bind(catalog.GroupStaticData, (*client.Client).GetStaticRealm),
	"getRuneData":                 bind(catalog.GroupStaticData, (*client.Client).GetStaticRunes),
	"getRuneDataById":             bind(catalog.GroupStaticData, (*client.Client).GetStaticRuneByID),
	"getSummonerSpellData":        bind(catalog.GroupStaticData, (*client.Client).GetStaticSummonerSpells),
	"getSummonerSpellDataById":    bind(catalog.GroupStaticData, (*client.Client).GetStaticSummonerSpellByID),
	"getVersions":                 bind(catalog.GroupStaticData, (*client.Client).GetStaticVersions),
	"getStatus":                   bind(catalog.GroupStatus, (*client.Client).GetShards),
	"getStatusByRegion":           bind(catalog.GroupStatus, (*client.Client).GetShardByRegion),
	"getMatchById":                bind(catalog.GroupMatch, (*client.Client).GetMatchByID),
	"getMatchHistoryBySummonerId": bind(catalog.GroupMatchHistory, (*client.Client).GetMatchHistoryBySummonerID),
	"getRankedStatsBySummonerId":  bind(catalog.GroupStats, (*client.Client).GetRankedStatsBySummonerID),
	"getStatsSummaryBySummonerId": bind(catalog.GroupStats, (*client.Client).GetStatsSummaryBySummonerID),
	"getSummonersByNames":         bind(catalog.GroupSummoner, (*client.Client).GetSummonersByNames),
	"getSummonersByIds":           bind(catalog.GroupSummoner, (*client.Client).GetSummonersByIDs),
	"getMasteriesBySummonerIds":   bind(catalog.GroupSummoner, (*client.Client).GetMasteriesBySummonerIDs),
	"getSummonerNamesByIds":       bind(catalog.GroupSummoner, (*client.Client).GetNamesBySummonerIDs),
	"getRunesBySummonerIds":       bind(catalog.GroupSummoner, (*client.Client).GetRunesBySummonerIDs),
	"getTeamsBySummonerIds":       bind(catalog.GroupTeam, (*client.Client).GetTeamsBySummonerIDs),
	"getTeamsByIds":               bind(catalog.GroupTeam, (*client.Client).GetTeamsByIDs),
}

// MethodCatalog is the built-in method returning the effective catalog.
const MethodCatalog = "catalog"

// Methods returns every routable method name, sorted.
func Methods() []string {
	out := make([]string, 0, len(routes)+1)
	for name := range routes {
		out = append(out, name)
	}
	out = append(out, MethodCatalog)
	sort.Strings(out)
	return out
}

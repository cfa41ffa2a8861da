package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

const (
	rankedStatsPath  = "/api/lol/{region}/{version}/stats/by-summoner/{summonerId}/ranked"
	statsSummaryPath = "/api/lol/{region}/{version}/stats/by-summoner/{summonerId}/summary"
)

// StatsOptions select a summoner and an optional season such as "SEASON2015".
type StatsOptions struct {
	dispatcher.CallOptions
	ID     params.Value `json:"id" validate:"required"`
	Season string       `json:"season,omitempty"`
}

func (c *Client) summonerStats(ctx context.Context, opts StatsOptions, template string) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupStats,
			PathTemplate: template,
			PathParams:   map[string]params.Value{"summonerId": opts.ID},
			Query:        params.Query{"season": params.OptionalString(opts.Season)},
		}
	})
}

// GetRankedStatsBySummonerID returns ranked stats per champion.
func (c *Client) GetRankedStatsBySummonerID(ctx context.Context, opts StatsOptions) (*dispatcher.Outcome, error) {
	return c.summonerStats(ctx, opts, rankedStatsPath)
}

// GetStatsSummaryBySummonerID returns stats aggregated per queue type.
func (c *Client) GetStatsSummaryBySummonerID(ctx context.Context, opts StatsOptions) (*dispatcher.Outcome, error) {
	return c.summonerStats(ctx, opts, statsSummaryPath)
}

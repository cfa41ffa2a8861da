package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

const (
	matchPath        = "/api/lol/{region}/{version}/match/{matchId}"
	matchHistoryPath = "/api/lol/{region}/{version}/matchhistory/{summonerId}"
)

// MatchOptions are the options of GetMatchByID.
type MatchOptions struct {
	dispatcher.CallOptions
	ID              params.Value `json:"id" validate:"required"`
	IncludeTimeline bool         `json:"includeTimeline,omitempty"`
}

// MatchHistoryOptions are the options of GetMatchHistoryBySummonerID. Zero indices are omitted.
type MatchHistoryOptions struct {
	dispatcher.CallOptions
	ID           params.Value `json:"id" validate:"required"`
	ChampionIDs  params.Value `json:"championIds,omitempty"`
	RankedQueues params.Value `json:"rankedQueues,omitempty"`
	BeginIndex   int64        `json:"beginIndex,omitempty" validate:"gte=0"`
	EndIndex     int64        `json:"endIndex,omitempty" validate:"gte=0"`
}

// GetMatchByID returns one match, optionally with its timeline.
func (c *Client) GetMatchByID(ctx context.Context, opts MatchOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupMatch,
			PathTemplate: matchPath,
			PathParams:   map[string]params.Value{"matchId": opts.ID},
			Query:        params.Query{"includeTimeline": params.Bool(opts.IncludeTimeline)},
		}
	})
}

// GetMatchHistoryBySummonerID returns a page of a summoner's ranked match history.
func (c *Client) GetMatchHistoryBySummonerID(ctx context.Context, opts MatchHistoryOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupMatchHistory,
			PathTemplate: matchHistoryPath,
			PathParams:   map[string]params.Value{"summonerId": opts.ID},
			Query: params.Query{
				"championIds":  params.OrNull(opts.ChampionIDs),
				"rankedQueues": params.OrNull(opts.RankedQueues),
				"beginIndex":   params.OptionalInt(opts.BeginIndex),
				"endIndex":     params.OptionalInt(opts.EndIndex),
			},
		}
	})
}

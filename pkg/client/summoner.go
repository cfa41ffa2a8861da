package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

const (
	summonersByNamePath = "/api/lol/{region}/{version}/summoner/by-name/{summonerNames}"
	summonersPath       = "/api/lol/{region}/{version}/summoner/{summonerIds}"
	masteriesPath       = "/api/lol/{region}/{version}/summoner/{summonerIds}/masteries"
	namesPath           = "/api/lol/{region}/{version}/summoner/{summonerIds}/name"
	runesPath           = "/api/lol/{region}/{version}/summoner/{summonerIds}/runes"
)

// NamesOptions select summoners by name. Names may be a scalar or a list.
type NamesOptions struct {
	dispatcher.CallOptions
	Names params.Value `json:"names" validate:"required"`
}

// GetSummonersByNames looks summoners up by name.
func (c *Client) GetSummonersByNames(ctx context.Context, opts NamesOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupSummoner,
			PathTemplate: summonersByNamePath,
			PathParams:   map[string]params.Value{"summonerNames": opts.Names},
		}
	})
}

func (c *Client) summonersByIDs(ctx context.Context, opts IDsOptions, template string) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupSummoner,
			PathTemplate: template,
			PathParams:   map[string]params.Value{"summonerIds": opts.IDs},
		}
	})
}

// GetSummonersByIDs looks summoners up by id.
func (c *Client) GetSummonersByIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.summonersByIDs(ctx, opts, summonersPath)
}

// GetMasteriesBySummonerIDs returns the mastery pages of the given summoners.
func (c *Client) GetMasteriesBySummonerIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.summonersByIDs(ctx, opts, masteriesPath)
}

// GetNamesBySummonerIDs returns the names of the given summoners.
func (c *Client) GetNamesBySummonerIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.summonersByIDs(ctx, opts, namesPath)
}

// GetRunesBySummonerIDs returns the rune pages of the given summoners.
func (c *Client) GetRunesBySummonerIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.summonersByIDs(ctx, opts, runesPath)
}

package client

import (
	"context"
	"strings"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/registry"
)

const pbeRegion = "pbe"

// ShardsOptions are the options of GetShards. The status host is unauthenticated
// and shard-independent, so there is nothing to override.
type ShardsOptions struct{}

// GetShards lists all shards from the status service. No credential is sent.
func (c *Client) GetShards(ctx context.Context, _ ShardsOptions) (*dispatcher.Outcome, error) {
	url := strings.TrimRight(c.status.BaseURL, "/") + "/shards"
	return c.dispatcher.Dispatch(ctx, dispatcher.RequestSpec{
		Group:            catalog.GroupStatus,
		BypassResolution: true,
		ExplicitURL:      url,
	}, dispatcher.CallOptions{})
}

// GetShardByRegion returns the status of one shard. The region defaults to the client's.
func (c *Client) GetShardByRegion(ctx context.Context, opts RegionOptions) (*dispatcher.Outcome, error) {
	region := registry.NormalizeRegion(opts.Region)
	if region == "" {
		region = c.Context().DefaultRegion
	}
	return c.dispatcher.Dispatch(ctx, dispatcher.RequestSpec{
		Group:            catalog.GroupStatus,
		BypassResolution: true,
		ExplicitURL:      c.shardURL(region),
	}, dispatcher.CallOptions{Region: region})
}

func (c *Client) shardURL(region string) string {
	if region == pbeRegion && c.status.PBEBaseURL != "" {
		return strings.TrimRight(c.status.PBEBaseURL, "/") + "/shards/pbe"
	}
	return strings.TrimRight(c.status.BaseURL, "/") + "/shards/" + region
}

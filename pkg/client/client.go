// Package client exposes one accessor per remote stats operation. Every accessor
// validates its options, builds a RequestSpec and hands it to the shared dispatcher.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/transport"
)

const logPrefix = "client:client"

// Options configures a Client.
type Options struct {
	// Credential is the default API key sent with every call.
	Credential string `json:"credential"`
	// Region defaults to dispatcher.DefaultRegion.
	Region string `json:"region,omitempty"`
	// Catalog defaults to catalog.GetDefaultCatalogConfig().
	Catalog *catalog.CatalogConfig `json:"-"`
	// Transport defaults to an HTTPTransport over HTTPClient.
	Transport transport.Transport `json:"-"`
	// HTTPClient is used by the default transport.
	HTTPClient transport.HTTPDoer `json:"-"`
	// Timeout applies to the default HTTP client only. Zero means no timeout.
	Timeout time.Duration `json:"-"`
}

// Client is the entry point for all stats calls. It is safe for concurrent use.
type Client struct {
	dispatcher *dispatcher.Dispatcher
	status     catalog.StatusConfig
	catalog    catalog.View
}

// New creates a Client. A missing credential or an unknown default region is a *ValidationError.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Credential) == "" {
		return nil, &ValidationError{
			Message: "credential: required",
			Fields:  map[string]string{"credential": "required"},
		}
	}

	cfg := opts.Catalog
	if cfg == nil {
		cfg = catalog.GetDefaultCatalogConfig()
	}
	endpoints, regions, err := catalog.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s - build catalog: %w", logPrefix, err)
	}

	region := opts.Region
	if region == "" {
		region = dispatcher.DefaultRegion
	}
	if _, err := regions.Lookup(region); err != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf("region: unknown region %q", region),
			Fields:  map[string]string{"region": "must be a known region"},
		}
	}

	tr := opts.Transport
	if tr == nil {
		tr = transport.NewHTTPTransport(transport.NewHTTPTransportParams{
			Doer:    opts.HTTPClient,
			Timeout: opts.Timeout,
		})
	}

	d := dispatcher.NewDispatcher(dispatcher.NewDispatcherParams{
		Endpoints: endpoints,
		Regions:   regions,
		Transport: tr,
		Context: dispatcher.ClientContext{
			DefaultCredential: opts.Credential,
			DefaultRegion:     region,
		},
		CredentialKey: cfg.CredentialKey,
	})

	slog.Debug(fmt.Sprintf("%s - Client ready: catalog=%s region=%s groups=%d", logPrefix, cfg.Name, region, endpoints.Len()))

	return &Client{
		dispatcher: d,
		status:     cfg.Status,
		catalog:    catalog.Describe(cfg.Name, cfg.Version, endpoints, regions),
	}, nil
}

// Context returns the client defaults.
func (c *Client) Context() dispatcher.ClientContext {
	return c.dispatcher.Context()
}

// Catalog describes the endpoint groups and regions the client was built with.
func (c *Client) Catalog() catalog.View {
	return c.catalog
}

// Dispatch runs an arbitrary spec through the shared dispatcher.
func (c *Client) Dispatch(ctx context.Context, spec dispatcher.RequestSpec, opts dispatcher.CallOptions) (*dispatcher.Outcome, error) {
	return c.dispatcher.Dispatch(ctx, spec, opts)
}

// call validates opts and dispatches the spec produced by build.
func (c *Client) call(ctx context.Context, opts interface{}, overrides dispatcher.CallOptions, build func() dispatcher.RequestSpec) (*dispatcher.Outcome, error) {
	if err := validateStruct(opts); err != nil {
		return nil, err
	}
	return c.dispatcher.Dispatch(ctx, build(), overrides)
}

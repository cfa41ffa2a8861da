package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/morezero/gamestats/pkg/params"
	"github.com/morezero/gamestats/pkg/registry"
	"github.com/morezero/gamestats/pkg/resolver"
	"github.com/morezero/gamestats/pkg/transport"
)

const logPrefix = "dispatcher:dispatch"

// hostTemplate prefixes every path template before resolution.
const hostTemplate = "https://{host}"

// Dispatcher executes RequestSpecs. It holds only read-only state and is safe for concurrent use.
type Dispatcher struct {
	endpoints     *registry.EndpointRegistry
	regions       *registry.RegionDirectory
	transport     transport.Transport
	context       ClientContext
	credentialKey string
}

// NewDispatcherParams holds parameters for NewDispatcher.
type NewDispatcherParams struct {
	Endpoints *registry.EndpointRegistry
	Regions   *registry.RegionDirectory
	Transport transport.Transport
	Context   ClientContext
	// CredentialKey defaults to CredentialQueryKey.
	CredentialKey string
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(p NewDispatcherParams) *Dispatcher {
	cc := p.Context
	if cc.DefaultRegion == "" {
		cc.DefaultRegion = DefaultRegion
	}
	cc.DefaultRegion = registry.NormalizeRegion(cc.DefaultRegion)
	key := p.CredentialKey
	if key == "" {
		key = CredentialQueryKey
	}
	return &Dispatcher{
		endpoints:     p.Endpoints,
		regions:       p.Regions,
		transport:     p.Transport,
		context:       cc,
		credentialKey: key,
	}
}

// Context returns the client defaults.
func (d *Dispatcher) Context() ClientContext {
	return d.context
}

// Endpoints returns the endpoint registry.
func (d *Dispatcher) Endpoints() *registry.EndpointRegistry {
	return d.endpoints
}

// Regions returns the region directory.
func (d *Dispatcher) Regions() *registry.RegionDirectory {
	return d.regions
}

// Dispatch runs one call. Failures of the call itself are reported in the Outcome;
// the error return is reserved for caller contract violations such as an unknown
// group, a missing path parameter or a region absent from the directory.
func (d *Dispatcher) Dispatch(ctx context.Context, spec RequestSpec, opts CallOptions) (*Outcome, error) {
	region := registry.NormalizeRegion(opts.Region)
	if region == "" {
		region = d.context.DefaultRegion
	}
	credential := opts.Credential
	if credential == "" {
		credential = d.context.DefaultCredential
	}

	var target string
	if spec.BypassResolution {
		if spec.ExplicitURL == "" {
			return nil, fmt.Errorf("%s - group %s: bypassResolution requires an explicit URL", logPrefix, spec.Group)
		}
		target = spec.ExplicitURL
	} else {
		group, err := d.endpoints.Lookup(spec.Group)
		if err != nil {
			return nil, fmt.Errorf("%s - validate: %w", logPrefix, err)
		}
		if !group.Allows(region) {
			slog.Debug(fmt.Sprintf("%s - group=%s region=%s rejected", logPrefix, spec.Group, region))
			return failure(KindInvalidRegion, nil,
				fmt.Sprintf("region %q is not available for %s", region, spec.Group)), nil
		}
		target, err = d.resolve(spec, group, region, credential)
		if err != nil {
			return nil, err
		}
	}

	slog.Debug(fmt.Sprintf("%s - group=%s region=%s GET %s", logPrefix, spec.Group, region, d.redact(target)))

	resp, err := d.transport.Get(ctx, target)
	outcome := normalize(resp, err)

	slog.Debug(fmt.Sprintf("%s - group=%s region=%s ok=%t kind=%s", logPrefix, spec.Group, region, outcome.Ok, outcome.Kind()))
	return outcome, nil
}

// resolve derives host, version and platform id and materializes the final URL.
func (d *Dispatcher) resolve(spec RequestSpec, group registry.EndpointGroup, region, credential string) (string, error) {
	entry, err := d.regions.Lookup(region)
	if err != nil {
		return "", fmt.Errorf("%s - resolve: %w", logPrefix, err)
	}
	host := entry.Host
	if spec.UseGlobalHost {
		host = d.regions.Global().Host
	}

	bag := params.NormalizeAll(spec.PathParams)
	bag["host"] = host
	bag["version"] = group.APIVersion
	bag["region"] = region
	bag["platformId"] = entry.PlatformID

	query := spec.Query.Clone(1)
	if credential != "" {
		query[d.credentialKey] = params.String(credential)
	}

	out, err := resolver.Resolve(hostTemplate+spec.PathTemplate, bag, query)
	if err != nil {
		return "", fmt.Errorf("%s - resolve: %w", logPrefix, err)
	}
	return out, nil
}

func normalize(resp *transport.Response, err error) *Outcome {
	if err != nil {
		if te, ok := transport.AsError(err); ok && te.HasStatus() {
			code := te.StatusCode
			if code != http.StatusOK {
				return failure(KindUpstream, &code, te.StatusText)
			}
			return failure(KindTransport, &code, te.StatusText)
		}
		return failure(KindTransport, nil, TransportFallbackMessage)
	}
	if resp == nil {
		return failure(KindTransport, nil, TransportFallbackMessage)
	}
	if resp.StatusCode == http.StatusOK {
		return success(resp.Body)
	}
	code := resp.StatusCode
	msg := resp.Status
	if msg == "" {
		msg = http.StatusText(code)
	}
	return failure(KindUpstream, &code, msg)
}

// redact masks the credential in a URL for logging.
func (d *Dispatcher) redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	if q.Has(d.credentialKey) {
		q.Set(d.credentialKey, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

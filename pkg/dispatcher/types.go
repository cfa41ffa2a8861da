// Package dispatcher runs a single logical call against the stats API: it validates the
// region, resolves the URL, invokes the transport and normalizes the result into an Outcome.
package dispatcher

import (
	"encoding/json"
	"fmt"

	"github.com/morezero/gamestats/pkg/params"
)

// Defaults shared by every client.
const (
	DefaultRegion            = "na"
	CredentialQueryKey       = "api_key"
	TransportFallbackMessage = "could not resolve the request"
)

// ErrorKind classifies a failed Outcome.
type ErrorKind string

const (
	KindInvalidRegion ErrorKind = "INVALID_REGION"
	KindUpstream      ErrorKind = "UPSTREAM"
	KindTransport     ErrorKind = "TRANSPORT"
)

// RequestSpec describes one call. It is built fresh per call and not modified by the dispatcher.
type RequestSpec struct {
	Group        string
	PathTemplate string
	PathParams   map[string]params.Value
	Query        params.Query
	// UseGlobalHost selects the global region's host instead of the effective region's.
	UseGlobalHost bool
	// BypassResolution sends ExplicitURL verbatim, skipping region validation and URL resolution.
	BypassResolution bool
	ExplicitURL      string
}

// ClientContext holds the defaults applied when a call carries no override.
type ClientContext struct {
	DefaultCredential string
	DefaultRegion     string
}

// CallOptions are per-call overrides of the ClientContext.
type CallOptions struct {
	Region     string `json:"region,omitempty"`
	Credential string `json:"credential,omitempty"`
}

// Overrides returns o itself, letting option structs that embed CallOptions expose it generically.
func (o *CallOptions) Overrides() *CallOptions {
	return o
}

// Merge returns o with empty fields filled from fallback.
func (o CallOptions) Merge(fallback CallOptions) CallOptions {
	if o.Region == "" {
		o.Region = fallback.Region
	}
	if o.Credential == "" {
		o.Credential = fallback.Credential
	}
	return o
}

// Outcome is the normalized result of a call: either Ok with Data, or an Error.
type Outcome struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *ErrorDetail    `json:"error,omitempty"`
}

// ErrorDetail describes a failed Outcome. Code is the upstream status when one was received.
type ErrorDetail struct {
	Kind    ErrorKind `json:"kind"`
	Code    *int      `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

func (e *ErrorDetail) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("%s (%d): %s", e.Kind, *e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Result splits the outcome into data or an error. The error is the *ErrorDetail.
func (o *Outcome) Result() (json.RawMessage, error) {
	if o.Ok {
		return o.Data, nil
	}
	if o.Error == nil {
		return nil, &ErrorDetail{Kind: KindTransport, Message: TransportFallbackMessage}
	}
	return nil, o.Error
}

// Kind returns the error kind, or "" for a successful outcome.
func (o *Outcome) Kind() ErrorKind {
	if o.Ok || o.Error == nil {
		return ""
	}
	return o.Error.Kind
}

func success(data json.RawMessage) *Outcome {
	return &Outcome{Ok: true, Data: data}
}

func failure(kind ErrorKind, code *int, message string) *Outcome {
	return &Outcome{Ok: false, Error: &ErrorDetail{Kind: kind, Code: code, Message: message}}
}

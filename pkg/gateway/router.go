package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/morezero/gamestats/pkg/client"
	"github.com/morezero/gamestats/pkg/commsutil"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/events"
)

const logPrefix = "gateway:router"

// result label for successful calls.
const resultOK = "OK"

// Router routes CallRequests to client accessors.
type Router struct {
	client    *client.Client
	publisher events.CallPublisher
	metrics   *Metrics
	now       func() time.Time
}

// NewRouterParams holds parameters for NewRouter.
type NewRouterParams struct {
	Client *client.Client
	// Publisher defaults to a NoOpPublisher.
	Publisher events.CallPublisher
	// Metrics may be nil to disable metrics.
	Metrics *Metrics
}

// NewRouter creates a new Router.
func NewRouter(p NewRouterParams) *Router {
	pub := p.Publisher
	if pub == nil {
		pub = &events.NoOpPublisher{}
	}
	return &Router{client: p.Client, publisher: pub, metrics: p.Metrics, now: time.Now}
}

// HandleMessage decodes a raw envelope, routes it and encodes the response.
func (r *Router) HandleMessage(ctx context.Context, data []byte) []byte {
	var req CallRequest
	var resp *CallResponse
	if err := commsutil.DecodePayload(data, &req); err != nil {
		resp = errorResponse("", CodeInvalidArgument, fmt.Sprintf("Failed to parse request: %v", err))
	} else {
		resp = r.Route(ctx, &req)
	}

	out, err := commsutil.EncodePayload(resp)
	if err != nil {
		slog.Error(fmt.Sprintf("%s - Failed to encode response for %s: %v", logPrefix, req.ID, err))
		out, _ = commsutil.EncodePayload(errorResponse(req.ID, CodeInternalError, "failed to encode response"))
	}
	return out
}

// Route dispatches a request to the matching accessor and returns a response.
func (r *Router) Route(ctx context.Context, req *CallRequest) *CallResponse {
	slog.Debug(fmt.Sprintf("%s - method=%s id=%s", logPrefix, req.Method, req.ID))

	if req.Method == MethodCatalog {
		return &CallResponse{ID: req.ID, Ok: true, Result: r.client.Catalog()}
	}

	rt, ok := routes[req.Method]
	if !ok {
		return errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("Unknown method: %s", req.Method))
	}

	var defaults dispatcher.CallOptions
	if req.Ctx != nil {
		defaults = dispatcher.CallOptions{Region: req.Ctx.Region, Credential: req.Ctx.Credential}
	}

	start := r.now()
	outcome, region, err := rt.invoke(ctx, r.client, req.Params, defaults)
	elapsed := r.now().Sub(start)

	resp := r.toResponse(req.ID, outcome, err)
	r.report(ctx, req, rt.group, region, resp, elapsed)
	return resp
}

func (r *Router) toResponse(id string, outcome *dispatcher.Outcome, err error) *CallResponse {
	if err != nil {
		var decErr *errDecode
		var valErr *client.ValidationError
		switch {
		case errors.As(err, &decErr):
			return errorResponse(id, CodeInvalidArgument, fmt.Sprintf("Failed to parse params: %v", decErr.err))
		case errors.As(err, &valErr):
			resp := errorResponse(id, CodeInvalidArgument, valErr.Message)
			resp.Error.Details = valErr.Fields
			return resp
		default:
			slog.Error(fmt.Sprintf("%s - call %s failed: %v", logPrefix, id, err))
			return errorResponse(id, CodeInternalError, err.Error())
		}
	}

	if outcome.Ok {
		return &CallResponse{ID: id, Ok: true, Result: outcome.Data}
	}
	_, failure := outcome.Result()
	var detail *dispatcher.ErrorDetail
	errors.As(failure, &detail)
	return &CallResponse{
		ID: id,
		Ok: false,
		Error: &ErrorDetail{
			Code:    string(detail.Kind),
			Kind:    string(detail.Kind),
			Message: detail.Message,
			Status:  detail.Code,
		},
	}
}

func (r *Router) report(ctx context.Context, req *CallRequest, group, region string, resp *CallResponse, elapsed time.Duration) {
	result := resultOK
	event := &events.CallCompletedEvent{
		Method:     req.Method,
		Group:      group,
		Region:     region,
		Ok:         resp.Ok,
		DurationMs: elapsed.Milliseconds(),
		Timestamp:  r.now().UTC().Format(time.RFC3339),
	}
	if req.Ctx != nil {
		event.RequestID = req.Ctx.RequestID
	}
	if !resp.Ok {
		result = resp.Error.Code
		event.Kind = resp.Error.Kind
		event.Status = resp.Error.Status
	}

	r.metrics.observe(req.Method, group, result, elapsed)

	if err := r.publisher.PublishCompleted(ctx, event); err != nil {
		slog.Warn(fmt.Sprintf("%s - Failed to publish completion of %s: %v", logPrefix, req.Method, err))
	}
}

func errorResponse(id, code, message string) *CallResponse {
	return &CallResponse{
		ID: id,
		Ok: false,
		Error: &ErrorDetail{
			Code:      code,
			Message:   message,
			Retryable: false,
		},
	}
}

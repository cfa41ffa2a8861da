package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	comms "github.com/nats-io/nats.go"

	"github.com/morezero/gamestats/pkg/gateway"
)

const gatewayLogPrefix = "server:gateway"

// gatewayHandler serves gateway envelopes received on COMMS. Each message is routed
// on its own goroutine; at most maxInFlight run at once, further messages block the
// subscription until a slot frees up.
type gatewayHandler struct {
	router  *gateway.Router
	baseCtx context.Context
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
}

func newGatewayHandler(ctx context.Context, router *gateway.Router, timeout time.Duration, maxInFlight int) *gatewayHandler {
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	return &gatewayHandler{
		router:  router,
		baseCtx: ctx,
		timeout: timeout,
		slots:   make(chan struct{}, maxInFlight),
	}
}

// subscribe joins the queue group so replicas share the subject.
func (h *gatewayHandler) subscribe(nc *comms.Conn, subject, queue string) (*comms.Subscription, error) {
	sub, err := nc.QueueSubscribe(subject, queue, h.handle)
	if err != nil {
		return nil, fmt.Errorf("%s - failed to subscribe to %s: %w", gatewayLogPrefix, subject, err)
	}
	slog.Info(fmt.Sprintf("%s - Subscribed to %s (queue %s)", gatewayLogPrefix, subject, queue))
	return sub, nil
}

func (h *gatewayHandler) handle(msg *comms.Msg) {
	h.slots <- struct{}{}
	h.wg.Add(1)
	go func() {
		defer func() {
			<-h.slots
			h.wg.Done()
		}()

		ctx, cancel := context.WithTimeout(h.baseCtx, h.timeout)
		defer cancel()

		out := h.router.HandleMessage(ctx, msg.Data)
		if msg.Reply == "" {
			slog.Debug(fmt.Sprintf("%s - Message on %s has no reply subject; response dropped", gatewayLogPrefix, msg.Subject))
			return
		}
		if err := msg.Respond(out); err != nil {
			slog.Warn(fmt.Sprintf("%s - Failed to respond on %s: %v", gatewayLogPrefix, msg.Reply, err))
		}
	}()
}

// wait blocks until all in-flight messages are answered.
func (h *gatewayHandler) wait() {
	h.wg.Wait()
}

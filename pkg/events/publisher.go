package events

import "context"

// CallPublisher is the interface for publishing call-completed events.
type CallPublisher interface {
	PublishCompleted(ctx context.Context, event *CallCompletedEvent) error
}

// NoOpPublisher is a CallPublisher that does nothing.
type NoOpPublisher struct{}

// PublishCompleted is a no-op.
func (p *NoOpPublisher) PublishCompleted(_ context.Context, _ *CallCompletedEvent) error {
	return nil
}

// CallbackPublisher is a CallPublisher that calls a callback function (for testing).
type CallbackPublisher struct {
	callback func(ctx context.Context, event *CallCompletedEvent) error
}

// NewCallbackPublisher creates a new CallbackPublisher.
func NewCallbackPublisher(cb func(ctx context.Context, event *CallCompletedEvent) error) *CallbackPublisher {
	return &CallbackPublisher{callback: cb}
}

// PublishCompleted calls the callback.
func (p *CallbackPublisher) PublishCompleted(ctx context.Context, event *CallCompletedEvent) error {
	return p.callback(ctx, event)
}

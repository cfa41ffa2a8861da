// Package events defines the call-completed event and the publishers that emit it.
package events

// CallCompletedEvent is emitted by the gateway after every routed stats call.
type CallCompletedEvent struct {
	RequestID  string `json:"requestId,omitempty"`
	Method     string `json:"method"`
	Group      string `json:"group"`
	Region     string `json:"region,omitempty"`
	Ok         bool   `json:"ok"`
	Kind       string `json:"kind,omitempty"`
	Status     *int   `json:"status,omitempty"`
	DurationMs int64  `json:"durationMs"`
	Timestamp  string `json:"timestamp"`
}

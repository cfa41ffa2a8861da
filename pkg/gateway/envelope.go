// Package gateway routes COMMS call envelopes to client accessors and converts
// their outcomes back into response envelopes.
package gateway

import "encoding/json"

// Gateway error codes. Failed outcomes use their ErrorKind as the code.
const (
	CodeMethodNotFound  = "METHOD_NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// CallRequest is the JSON envelope for incoming gateway requests.
type CallRequest struct {
	ID     string             `json:"id"`
	Method string             `json:"method"`
	Params json.RawMessage    `json:"params,omitempty"`
	Ctx    *InvocationContext `json:"ctx,omitempty"`
}

// CallResponse is the JSON envelope for gateway responses.
type CallResponse struct {
	ID     string       `json:"id"`
	Ok     bool         `json:"ok"`
	Result interface{}  `json:"result,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail holds structured error information. Status is the upstream HTTP status when known.
type ErrorDetail struct {
	Code      string      `json:"code"`
	Kind      string      `json:"kind,omitempty"`
	Message   string      `json:"message"`
	Status    *int        `json:"status,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Retryable bool        `json:"retryable"`
}

// InvocationContext holds caller defaults applied when params carry no override.
type InvocationContext struct {
	Region        string `json:"region,omitempty"`
	Credential    string `json:"credential,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

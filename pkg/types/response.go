// Package types holds the wire envelopes shared by every dukaan endpoint.
package types

// SuccessEnvelope wraps every 2xx body: {"data": <payload>}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Code is one of the pkg/errors
// codes; Details is present only for codes that allow structured details
// (insufficient stock, dependency checks).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx body: {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

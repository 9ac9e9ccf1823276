package expresspay

import (
	"errors"
	"fmt"
)

// ErrSignatureMismatch is returned when an inbound notification's claimed
// signature does not match the one recomputed over the raw body. The payload
// is never deserialized in that case.
var ErrSignatureMismatch = errors.New("notification signature mismatch")

// ConfigurationError reports an invalid gateway configuration. It is raised
// at construction time, never per call.
type ConfigurationError struct {
	Option string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "expresspay configuration: " + e.Option + ": " + e.Reason
}

// GatewayError is a structured error returned by the gateway itself. It is
// surfaced to the caller unchanged and never retried.
type GatewayError struct {
	Message string
	Code    int
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("gateway error %d: %s", e.Code, e.Message)
	}
	return "gateway error: " + e.Message
}

// TransportError wraps a network or connection failure from the underlying
// HTTP client. The cause is propagated as-is, not interpreted.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return "expresspay transport: " + e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to reach the transport cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response body that is neither a success payload
// nor a recognized error envelope. It lets callers distinguish "gateway
// said no" from "gateway said something unparseable".
type ProtocolError struct {
	StatusCode int
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("expresspay protocol: unexpected response (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("expresspay protocol: unexpected response: %v", e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the decode cause.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

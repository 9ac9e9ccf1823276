package expresspay

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// SignatureProvider computes HMAC-SHA1 signatures for outbound API requests
// and inbound notifications. It is stateless aside from configuration and
// safe for unlimited concurrent use.
//
// API requests and notifications are separate signing channels: each has its
// own enable flag and secret, and either can be disabled independently.
type SignatureProvider struct {
	apiSignature          bool
	apiSecret             string
	notificationSignature bool
	notificationSecret    string
}

// NewSignatureProvider validates the signing configuration and returns a
// provider. Enabling a channel with an empty secret is rejected here rather
// than producing an empty-key HMAC at call time.
func NewSignatureProvider(apiSignature bool, apiSecret string, notificationSignature bool, notificationSecret string) (*SignatureProvider, error) {
	if apiSignature && apiSecret == "" {
		return nil, &ConfigurationError{Option: "api_secret", Reason: "required when api_signature is enabled"}
	}
	if notificationSignature && notificationSecret == "" {
		return nil, &ConfigurationError{Option: "notification_secret", Reason: "required when notification_signature is enabled"}
	}
	return &SignatureProvider{
		apiSignature:          apiSignature,
		apiSecret:             apiSecret,
		notificationSignature: notificationSignature,
		notificationSecret:    notificationSecret,
	}, nil
}

// ComputeRequestSignature returns the signature for an API request, or the
// empty string when API signing is disabled. The signature input is the
// concatenation of the operation's signed fields, in table order, with
// absent fields contributing the empty string.
//
// An operation outside the signing table is a programming error and panics:
// every operation the client exposes has a table entry.
func (p *SignatureProvider) ComputeRequestSignature(op Operation, params *ParameterSet) string {
	if !p.apiSignature {
		return ""
	}
	if op < 0 || op >= numOperations {
		panic(fmt.Sprintf("expresspay: no signing fields for operation %d", op))
	}

	var input strings.Builder
	for _, field := range signingFields[op] {
		input.WriteString(params.Get(field))
	}
	return hmacSHA1(p.apiSecret, []byte(input.String()))
}

// ComputeNotificationSignature returns the signature over the exact raw
// notification body bytes, or the empty string when notification signing is
// disabled. The payload is signed as received: serialization is not
// byte-stable, so no re-serialized form would verify.
func (p *SignatureProvider) ComputeNotificationSignature(raw []byte) string {
	if !p.notificationSignature {
		return ""
	}
	return hmacSHA1(p.notificationSecret, raw)
}

func hmacSHA1(secret string, payload []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(payload)
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

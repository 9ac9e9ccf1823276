package expresspay

import (
	"crypto/hmac"
	"encoding/json"
)

// ReceiveNotification verifies and deserializes an inbound gateway
// notification. raw is the serialized body exactly as received;
// claimedSignature is the signature the gateway sent alongside it.
//
// With notification signing enabled, a claimed signature that does not
// match the recomputed one fails with ErrSignatureMismatch and the payload
// is not deserialized. With signing disabled, verification is skipped
// entirely.
func (c *Client) ReceiveNotification(raw []byte, claimedSignature string) (*Notification, error) {
	computed := c.signer.ComputeNotificationSignature(raw)
	if computed != "" && !hmac.Equal([]byte(computed), []byte(claimedSignature)) {
		return nil, ErrSignatureMismatch
	}

	var notification Notification
	if err := json.Unmarshal(raw, &notification); err != nil {
		return nil, &ProtocolError{Body: raw, Err: err}
	}
	return &notification, nil
}

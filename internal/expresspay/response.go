package expresspay

import "encoding/json"

// The gateway reports failures in two envelope shapes: a nested Error
// object and a flat message/code pair. Both are checked on every response,
// nested first.
type errorEnvelope struct {
	Error        *nestedError `json:"Error"`
	ErrorMessage string       `json:"ErrorMessage"`
	ErrorCode    int          `json:"ErrorCode"`
}

type nestedError struct {
	Msg     string `json:"Msg"`
	MsgCode int    `json:"MsgCode"`
}

// classifyResponse applies the uniform error classification to a response
// body. It returns the raw payload for the caller to decode on success, a
// *GatewayError when the body carries either error envelope, and a
// *ProtocolError when the body is not a well-formed envelope at all.
func classifyResponse(raw []byte, statusCode int) (json.RawMessage, error) {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ProtocolError{StatusCode: statusCode, Body: raw, Err: err}
	}

	if envelope.Error != nil && envelope.Error.Msg != "" {
		return nil, &GatewayError{Message: envelope.Error.Msg, Code: envelope.Error.MsgCode}
	}
	if envelope.ErrorMessage != "" {
		return nil, &GatewayError{Message: envelope.ErrorMessage, Code: envelope.ErrorCode}
	}
	return raw, nil
}

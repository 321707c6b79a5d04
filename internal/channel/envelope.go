package channel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the wire frame delivered on every push topic. The backend
// keys it as {"channel": ..., "data": ...}.
type Envelope struct {
	Topic   string          `json:"channel"`
	Payload json.RawMessage `json:"data"`
}

// Envelope rejection reasons. A rejected frame is dropped, never surfaced
// as a session error.
var (
	ErrEmptyFrame   = errors.New("empty frame")
	ErrFrameSyntax  = errors.New("frame is not valid json")
	ErrMissingTopic = errors.New("frame has no channel field")
)

// DecodeEnvelope validates a raw frame against the envelope schema.
// The returned error wraps one of the rejection reasons above.
func DecodeEnvelope(data []byte) (Envelope, error) {
	if len(data) == 0 {
		return Envelope{}, ErrEmptyFrame
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrFrameSyntax, err)
	}

	if env.Topic == "" {
		return Envelope{}, ErrMissingTopic
	}

	return env, nil
}

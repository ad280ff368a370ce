package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrCorruptEnvelope = errors.New("corrupt storage envelope")

// Envelope is the persisted wrapper around every stored value. Data holds either
// the JSON payload or its obfuscated form; only Encrypted tells them apart.
type Envelope struct {
	Timestamp int64  `json:"timestamp"`
	Encrypted bool   `json:"encrypted"`
	Data      string `json:"data"`
}

func encodeEnvelope(envelope Envelope) (string, error) {
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return string(encoded), nil
}

func decodeEnvelope(raw string) (Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return Envelope{}, ErrCorruptEnvelope
	}

	envelope := Envelope{}
	if value, ok := fields["timestamp"]; ok {
		var timestamp float64
		if err := json.Unmarshal(value, &timestamp); err == nil {
			envelope.Timestamp = int64(timestamp)
		}
	}
	if value, ok := fields["encrypted"]; ok {
		var encrypted bool
		if err := json.Unmarshal(value, &encrypted); err != nil {
			return Envelope{}, ErrCorruptEnvelope
		}
		envelope.Encrypted = encrypted
	}
	value, ok := fields["data"]
	if !ok {
		return Envelope{}, ErrCorruptEnvelope
	}
	if err := json.Unmarshal(value, &envelope.Data); err != nil {
		return Envelope{}, ErrCorruptEnvelope
	}
	return envelope, nil
}

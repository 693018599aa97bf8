package store

import (
	"encoding/json"
	"fmt"
)

// Serializer encodes/decodes arbitrary values to/from bytes so the Store can
// hold them as opaque payloads.
type Serializer interface {
	// Serialize encodes value into bytes.
	Serialize(value any) ([]byte, error)

	// Deserialize decodes bytes back into a value.
	Deserialize(data []byte) (any, error)
}

// JSONSerializer encodes values as JSON. Decoded values come back as the
// generic JSON shapes (map[string]any, []any, float64, string, bool, nil).
type JSONSerializer struct{}

// NewJSONSerializer returns a Serializer backed by encoding/json.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

// Serialize implements Serializer.
func (s *JSONSerializer) Serialize(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializerEncodeFailed, err)
	}

	return data, nil
}

// Deserialize implements Serializer.
func (s *JSONSerializer) Deserialize(data []byte) (any, error) {
	var value any

	err := json.Unmarshal(data, &value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializerDecodeFailed, err)
	}

	return value, nil
}

// StringSerializer stores values as their raw bytes and returns them as
// strings. Only string and []byte inputs are accepted.
type StringSerializer struct{}

// NewStringSerializer returns a Serializer for raw string payloads.
func NewStringSerializer() *StringSerializer {
	return &StringSerializer{}
}

// Serialize implements Serializer.
func (s *StringSerializer) Serialize(value any) ([]byte, error) {
	data, err := normalizeToBytes(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializerEncodeFailed, err)
	}

	return data, nil
}

// Deserialize implements Serializer.
func (s *StringSerializer) Deserialize(data []byte) (any, error) {
	return string(data), nil
}

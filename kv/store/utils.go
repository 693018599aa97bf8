package store

import (
	"fmt"
	"slices"
)

// normalizeToBytes converts value to an owned []byte copy.
//
// Supported inputs:
//   - []byte   => copied
//   - string   => converted to []byte
//
// Anything else is rejected so the store always contains raw bytes and
// SerializedStore can uniformly (de)serialize.
func normalizeToBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		// Make a copy to avoid external aliasing after Set.
		return slices.Clone(v), nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValueType, value)
	}
}

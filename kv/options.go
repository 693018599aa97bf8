package kv

import (
	"fmt"
	"math"

	"github.com/askopin/key-value-storage/kv/store"
)

const (
	// IndexRadix selects the compressed radix tree prefix index.
	IndexRadix = string(store.IndexRadix)

	// IndexSet selects the flat set prefix index.
	IndexSet = string(store.IndexSet)

	// SerializationJSON encodes/decodes values using JSON.
	SerializationJSON = "json"

	// SerializationString stores values as raw strings/bytes.
	SerializationString = "string"

	// DefaultIndex is used when the user does not specify an index kind.
	DefaultIndex = IndexRadix

	// DefaultSerialization is used when the user does not specify a serialization mode.
	DefaultSerialization = SerializationJSON
)

// Options controls how a KV store is created by Open().
type Options struct {
	// Index selects the prefix index implementation.
	// Valid values: "radix" (tree, scales with key length), "set" (flat scans).
	Index string

	// Serialization selects how values are encoded/decoded when stored.
	// Valid values: "json" (structured), "string" (raw string to []byte).
	Serialization string

	// MaxKeySize caps key length in bytes. It accepts an integer byte count or
	// a human-readable size string such as "64kb". When nil, the default of
	// store.DefaultMaxKeySize (1024) bytes applies.
	MaxKeySize any
}

// withDefaults fills unset fields with the package defaults.
func (o Options) withDefaults() Options {
	if o.Index == "" {
		o.Index = DefaultIndex
	}

	if o.Serialization == "" {
		o.Serialization = DefaultSerialization
	}

	return o
}

// validate is intentionally strict to fail fast on invalid configs. It returns
// the resolved max key size in bytes.
func (o Options) validate() (int, error) {
	if o.Index != IndexRadix && o.Index != IndexSet {
		return 0, fmt.Errorf(
			"%w: %q; valid values are: %q, %q",
			store.ErrInvalidIndexKind, o.Index, IndexRadix, IndexSet,
		)
	}

	if o.Serialization != SerializationJSON && o.Serialization != SerializationString {
		return 0, fmt.Errorf(
			"%w: %q; valid values are: %q, %q",
			store.ErrInvalidSerialization, o.Serialization, SerializationJSON, SerializationString,
		)
	}

	if o.MaxKeySize == nil {
		return store.DefaultMaxKeySize, nil
	}

	size, err := parseSizeValue(o.MaxKeySize)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrInvalidMaxKeySize, err)
	}

	if size == 0 || size > math.MaxInt {
		return 0, fmt.Errorf("%w: got %d", store.ErrInvalidMaxKeySize, size)
	}

	return int(size), nil
}

// Equal checks if two Options are equal.
func (o Options) Equal(other Options) bool {
	return o.Index == other.Index &&
		o.Serialization == other.Serialization &&
		o.MaxKeySize == other.MaxKeySize
}

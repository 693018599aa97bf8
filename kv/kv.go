package kv

import (
	"fmt"

	"github.com/askopin/key-value-storage/kv/store"
)

// KV is the public façade over the storage core. It applies the configured
// serializer to values and converts store-level sentinels into structured
// *Error values.
//
// A KV is safe for concurrent use: all operations funnel through the store's
// single serialization boundary.
type KV struct {
	store *store.SerializedStore
}

// Open creates a KV store from the given options. Unset option fields fall
// back to defaults (radix index, JSON serialization, 1024-byte key limit);
// invalid fields fail fast with a structured error.
func Open(options Options) (*KV, error) {
	opts := options.withDefaults()

	maxKeySize, err := opts.validate()
	if err != nil {
		return nil, classifyError(err)
	}

	base, err := store.NewStore(store.IndexKind(opts.Index), maxKeySize)
	if err != nil {
		return nil, classifyError(err)
	}

	serializer, err := buildSerializer(opts.Serialization)
	if err != nil {
		return nil, classifyError(err)
	}

	return &KV{
		store: store.NewSerializedStore(base, serializer),
	}, nil
}

// buildSerializer maps a serialization mode to its Serializer.
func buildSerializer(serialization string) (store.Serializer, error) {
	switch serialization {
	case SerializationJSON:
		return store.NewJSONSerializer(), nil
	case SerializationString:
		return store.NewStringSerializer(), nil
	default:
		return nil, fmt.Errorf(
			"%w: %q; valid values are: %q, %q",
			store.ErrInvalidSerialization, serialization, SerializationJSON, SerializationString,
		)
	}
}

// Set stores value under key, overwriting any existing value. The key must be
// non-empty and within the configured size limit; a rejected Set leaves the
// store exactly as it was.
func (k *KV) Set(key string, value any) error {
	return classifyError(k.store.Set(key, value))
}

// Get returns the value stored under key. An absent key yields
// (nil, false, nil) rather than an error.
func (k *KV) Get(key string) (any, bool, error) {
	value, ok, err := k.store.Get(key)

	return value, ok, classifyError(err)
}

// Exists reports whether key is present.
func (k *KV) Exists(key string) bool {
	return k.store.Exists(key)
}

// Delete removes key and its value. Deleting an absent key succeeds silently.
func (k *KV) Delete(key string) {
	k.store.Delete(key)
}

// GetRandomValue returns the value of a key chosen uniformly at random across
// all stored keys, or (nil, false, nil) when the store is empty.
func (k *KV) GetRandomValue() (any, bool, error) {
	value, ok, err := k.store.RandomValue()

	return value, ok, classifyError(err)
}

// KeysWithPrefix returns every stored key starting with prefix, sorted
// lexicographically by byte value. An empty prefix matches all keys.
func (k *KV) KeysWithPrefix(prefix string) []string {
	return k.store.KeysWithPrefix(prefix)
}

// Keys returns all stored keys, sorted lexicographically.
func (k *KV) Keys() []string {
	return k.store.Keys()
}

// List returns sorted key-value pairs whose keys start with prefix, with
// values decoded by the configured serializer. Passing limit <= 0 means
// "no limit".
func (k *KV) List(prefix string, limit int64) ([]store.Entry, error) {
	entries, err := k.store.List(prefix, limit)

	return entries, classifyError(err)
}

// Size returns the number of keys currently stored.
func (k *KV) Size() int64 {
	return k.store.Size()
}

// Clear removes all keys and values.
func (k *KV) Clear() {
	k.store.Clear()
}

package store

// SerializedStore wraps a Store and transparently applies a Serializer to
// values on write/read. This lets callers work with rich types while the
// Store holds raw bytes internally, and type-mismatched payloads surface as
// deterministic decode errors instead of runtime cast failures.
type SerializedStore struct {
	// store is the underlying key-value core.
	store *Store

	// serializer encodes/decodes arbitrary values to/from bytes.
	serializer Serializer
}

// NewSerializedStore constructs a SerializedStore over the given Store and
// Serializer.
func NewSerializedStore(store *Store, serializer Serializer) *SerializedStore {
	return &SerializedStore{
		store:      store,
		serializer: serializer,
	}
}

// Set serializes the provided value and stores it under key. Key validation
// errors from the underlying store pass through unchanged.
func (s *SerializedStore) Set(key string, value any) error {
	serializedValue, err := s.serializer.Serialize(value)
	if err != nil {
		return err
	}

	return s.store.Set(key, serializedValue)
}

// Get fetches the raw value and deserializes it. An absent key yields
// (nil, false, nil).
func (s *SerializedStore) Get(key string) (any, bool, error) {
	rawValue, ok := s.store.Get(key)
	if !ok {
		return nil, false, nil
	}

	value, err := s.serializer.Deserialize(rawValue)
	if err != nil {
		return nil, false, err
	}

	return value, true, nil
}

// Exists reports whether key is present in the underlying store.
func (s *SerializedStore) Exists(key string) bool {
	return s.store.Exists(key)
}

// Delete removes key from the underlying store (no serialization involved).
func (s *SerializedStore) Delete(key string) {
	s.store.Delete(key)
}

// RandomValue returns the deserialized value of a uniformly random key, or
// (nil, false, nil) when the store is empty.
func (s *SerializedStore) RandomValue() (any, bool, error) {
	rawValue, ok := s.store.RandomValue()
	if !ok {
		return nil, false, nil
	}

	value, err := s.serializer.Deserialize(rawValue)
	if err != nil {
		return nil, false, err
	}

	return value, true, nil
}

// KeysWithPrefix returns the sorted keys starting with prefix.
func (s *SerializedStore) KeysWithPrefix(prefix string) []string {
	return s.store.KeysWithPrefix(prefix)
}

// Keys returns all stored keys, sorted.
func (s *SerializedStore) Keys() []string {
	return s.store.Keys()
}

// List returns sorted key-value pairs filtered by prefix and limited by
// limit (<= 0 means no limit), with each value deserialized.
func (s *SerializedStore) List(prefix string, limit int64) ([]Entry, error) {
	rawEntries := s.store.List(prefix, limit)

	entries := make([]Entry, len(rawEntries))

	for i, e := range rawEntries {
		raw, ok := e.Value.([]byte)
		if !ok {
			// Store-level entries always carry []byte values.
			entries[i] = e

			continue
		}

		value, err := s.serializer.Deserialize(raw)
		if err != nil {
			return nil, err
		}

		entries[i] = Entry{Key: e.Key, Value: value}
	}

	return entries, nil
}

// Size returns the number of keys currently in the underlying store.
func (s *SerializedStore) Size() int64 {
	return s.store.Size()
}

// Clear removes all keys from the underlying store.
func (s *SerializedStore) Clear() {
	s.store.Clear()
}

// GetSerializer returns the currently configured serializer.
func (s *SerializedStore) GetSerializer() Serializer {
	return s.serializer
}

package store

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultMaxKeySize is the key size limit applied when the caller does not
// configure one.
const DefaultMaxKeySize = 1024

// Entry represents a single key-value pair returned by List().
type Entry struct {
	// Key is the string identifier for the stored value.
	Key string
	// Value holds the stored value: raw []byte at the Store level, a decoded
	// value when returned through the SerializedStore wrapper.
	Value any
}

// Store is the in-memory key-value store: a direct key-to-value table composed
// with one prefix Index under a single consistency boundary.
//
// Every operation, reads included, runs under one mutex so that no caller ever
// observes the table and the index mid-update. The cost is accepted up front:
// a Set or Delete whose index work is O(key length) blocks concurrent Gets for
// that duration; there is no independent read fast lane.
//
// Keys are validated before either structure is touched, so a rejected
// operation leaves the store exactly as it was.
type Store struct {
	mu         sync.Mutex
	container  map[string][]byte
	index      Index
	maxKeySize int
}

// NewStore creates a Store backed by the index implementation named by kind,
// enforcing maxKeySize bytes per key. A non-positive maxKeySize or an unknown
// kind fails construction.
func NewStore(kind IndexKind, maxKeySize int) (*Store, error) {
	if maxKeySize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxKeySize, maxKeySize)
	}

	index, err := NewIndex(kind)
	if err != nil {
		return nil, err
	}

	return &Store{
		container:  make(map[string][]byte),
		index:      index,
		maxKeySize: maxKeySize,
	}, nil
}

// Set associates value with key, overwriting any previous value. The key keeps
// its position in the index; last writer wins on the value.
//
// The value must be a []byte or string; []byte input is copied so the store
// never aliases caller memory. Validation errors (ErrKeyEmpty,
// *KeyTooLargeError) are returned before any mutation.
func (s *Store) Set(key string, value any) error {
	if err := s.validateKey(key); err != nil {
		return err
	}

	valueBytes, err := normalizeToBytes(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Table and index are updated in the same critical section; the insert is
	// idempotent for keys that already exist.
	s.container[key] = valueBytes
	s.index.Insert(key)

	return nil
}

// Get returns the value stored under key, consulting the value table only.
// An absent key yields (nil, false), never an error.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.container[key]

	return value, ok
}

// Exists reports whether key is present in the store.
func (s *Store) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.container[key]

	return ok
}

// Delete removes key from both the table and the index. Deleting an absent
// key is a silent no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existed := s.container[key]; !existed {
		return
	}

	delete(s.container, key)
	s.index.Remove(key)
}

// RandomValue returns the value of a key selected uniformly across all stored
// keys, or (nil, false) when the store is empty. Each key maps to exactly one
// value, so the distribution over values is uniform as well.
func (s *Store) RandomValue() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.index.RandomElement()
	if !ok {
		return nil, false
	}

	value, ok := s.container[key]

	return value, ok
}

// KeysWithPrefix returns every stored key starting with prefix, sorted
// lexicographically by byte value. Sortedness is this layer's contract: the
// index enumerates in unspecified order.
func (s *Store) KeysWithPrefix(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.keysWithPrefixLocked(prefix)
}

// Keys returns all stored keys, sorted lexicographically.
func (s *Store) Keys() []string {
	return s.KeysWithPrefix("")
}

// List returns key-value pairs whose keys start with prefix, ordered by key in
// ascending lexicographic order. Passing limit <= 0 means "no limit".
func (s *Store) List(prefix string, limit int64) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.keysWithPrefixLocked(prefix)

	maxEntries := len(keys)

	hasLimit := limit > 0
	if hasLimit && limit < int64(maxEntries) {
		maxEntries = int(limit)
	}

	entries := make([]Entry, 0, maxEntries)
	for _, k := range keys[:maxEntries] {
		entries = append(entries, Entry{
			Key:   k,
			Value: s.container[k],
		})
	}

	return entries
}

// Size returns the number of keys in the store. The value table is the
// authoritative cardinality; the index's Len() must always agree with it.
func (s *Store) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.container))
}

// Clear removes all keys and values from both structures atomically with
// respect to other operations.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.container = make(map[string][]byte)
	s.index.RemoveAll()
}

// validateKey applies the key policy shared by all mutating operations.
// It runs before either structure is touched.
func (s *Store) validateKey(key string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	if len(key) > s.maxKeySize {
		return &KeyTooLargeError{Size: len(key), Limit: s.maxKeySize}
	}

	return nil
}

// keysWithPrefixLocked queries the index and sorts the result.
// Precondition: s.mu must be held by the caller.
func (s *Store) keysWithPrefixLocked(prefix string) []string {
	keys := s.index.KeysWithPrefix(prefix)
	sort.Strings(keys)

	return keys
}

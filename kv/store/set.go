package store

import (
	"math/rand/v2"
	"strings"
)

// SetIndex is the flat baseline prefix index: a unique-key set with O(1)
// point operations where prefix enumeration and random selection scan the
// whole set linearly.
//
// Like RadixTree, a SetIndex is not safe for concurrent use on its own.
type SetIndex struct {
	keys map[string]struct{}
}

// NewSetIndex creates an empty set index.
func NewSetIndex() *SetIndex {
	return &SetIndex{
		keys: make(map[string]struct{}),
	}
}

// Len returns the number of keys stored.
func (s *SetIndex) Len() int {
	return len(s.keys)
}

// Insert adds key to the set; duplicates are a no-op.
func (s *SetIndex) Insert(key string) {
	if key == "" {
		return
	}

	s.keys[key] = struct{}{}
}

// Contains reports whether key is present.
func (s *SetIndex) Contains(key string) bool {
	_, ok := s.keys[key]

	return ok
}

// Remove deletes key if present; absent keys are a no-op.
func (s *SetIndex) Remove(key string) {
	delete(s.keys, key)
}

// KeysWithPrefix returns all keys starting with prefix via a full scan.
// Order is unspecified (map iteration order).
func (s *SetIndex) KeysWithPrefix(prefix string) []string {
	var matches []string

	for k := range s.keys {
		if prefix != "" && !strings.HasPrefix(k, prefix) {
			continue
		}

		matches = append(matches, k)
	}

	return matches
}

// RemoveAll empties the set.
func (s *SetIndex) RemoveAll() {
	s.keys = make(map[string]struct{})
}

// RandomElement returns a uniformly random key using a two-pass scan: count
// the keys, then walk to the target-th one. This keeps memory flat instead of
// building a temporary slice per call.
func (s *SetIndex) RandomElement() (string, bool) {
	if len(s.keys) == 0 {
		return "", false
	}

	target := rand.IntN(len(s.keys)) //nolint:gosec // math/rand/v2 is safe

	for k := range s.keys {
		if target == 0 {
			return k, true
		}

		target--
	}

	// Unreachable for a non-empty map.
	return "", false
}

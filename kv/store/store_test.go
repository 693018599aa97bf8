package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore builds a Store for tests, failing fast on construction errors.
func newTestStore(t *testing.T, kind IndexKind) *Store {
	t.Helper()

	s, err := NewStore(kind, DefaultMaxKeySize)
	require.NoError(t, err)

	return s
}

// TestNewStore verifies construction and the rejection of invalid parameters.
func TestNewStore(t *testing.T) {
	t.Parallel()

	s, err := NewStore(IndexRadix, DefaultMaxKeySize)
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = NewStore("btree", DefaultMaxKeySize)
	require.ErrorIs(t, err, ErrInvalidIndexKind)

	_, err = NewStore(IndexRadix, 0)
	require.ErrorIs(t, err, ErrInvalidMaxKeySize)

	_, err = NewStore(IndexRadix, -1)
	require.ErrorIs(t, err, ErrInvalidMaxKeySize)
}

// TestStore_SetGet_Roundtrip validates:
//  1. Get on a missing key returns (nil, false), not an error;
//  2. string and []byte Set -> Get round-trip to the same bytes;
//  3. the last write wins on overwrite;
//  4. unsupported value types are rejected.
func TestStore_SetGet_Roundtrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, IndexRadix)

	_, ok := s.Get("does-not-exist")
	assert.False(t, ok, "missing key must report absence, not an error")

	require.NoError(t, s.Set("string-key", "string-value"))

	got, ok := s.Get("string-key")
	require.True(t, ok)
	assert.Equal(t, []byte("string-value"), got)

	byteValue := []byte("byte-value")
	require.NoError(t, s.Set("byte-key", byteValue))

	got, ok = s.Get("byte-key")
	require.True(t, ok)
	assert.Equal(t, byteValue, got)

	// The store must own its bytes: mutating the caller's slice afterwards
	// must not leak into storage.
	byteValue[0] = 'X'
	got, _ = s.Get("byte-key")
	assert.Equal(t, []byte("byte-value"), got)

	// Overwrite: last writer wins, size unchanged.
	require.NoError(t, s.Set("string-key", "second"))

	got, _ = s.Get("string-key")
	assert.Equal(t, []byte("second"), got)
	assert.EqualValues(t, 2, s.Size())

	require.ErrorIs(t, s.Set("bad", 123), ErrUnsupportedValueType)
}

// TestStore_Validation verifies that empty and oversized keys are rejected
// before any state changes, leaving the store untouched.
func TestStore_Validation(t *testing.T) {
	t.Parallel()

	const limit = 1024

	s, err := NewStore(IndexRadix, limit)
	require.NoError(t, err)

	err = s.Set("", "x")
	require.ErrorIs(t, err, ErrKeyEmpty)
	assert.EqualValues(t, 0, s.Size(), "rejected Set must not mutate the store")

	bigKey := make([]byte, 2000)
	for i := range bigKey {
		bigKey[i] = 'a'
	}

	err = s.Set(string(bigKey), "x")
	require.ErrorIs(t, err, ErrKeyTooLarge)

	var tooLarge *KeyTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, 2000, tooLarge.Size)
	assert.Equal(t, limit, tooLarge.Limit)

	assert.EqualValues(t, 0, s.Size())
	assert.Empty(t, s.Keys())

	// A key exactly at the limit is fine.
	require.NoError(t, s.Set(string(bigKey[:limit]), "x"))
}

// TestStore_Delete covers removal from both structures and the idempotence of
// deleting twice.
func TestStore_Delete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, IndexRadix)

	require.NoError(t, s.Set("k1", "v1"))
	require.NoError(t, s.Set("k2", "v2"))

	s.Delete("k1")

	_, ok := s.Get("k1")
	assert.False(t, ok)
	assert.EqualValues(t, 1, s.Size())
	assert.Equal(t, []string{"k2"}, s.Keys())

	// Second delete is a no-op, as is deleting a key that never existed.
	s.Delete("k1")
	s.Delete("ghost")
	assert.EqualValues(t, 1, s.Size())
}

// TestStore_KeysWithPrefix_Sorted checks that prefix results come back sorted
// lexicographically regardless of index enumeration order.
func TestStore_KeysWithPrefix_Sorted(t *testing.T) {
	t.Parallel()

	for _, kind := range []IndexKind{IndexRadix, IndexSet} {
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t, kind)

			require.NoError(t, s.Set("city:tokyo:population", "37m"))
			require.NoError(t, s.Set("city:tokyo:latitude", "35.68"))
			require.NoError(t, s.Set("city:paris:population", "11m"))

			got := s.KeysWithPrefix("city:tokyo")
			assert.Equal(t, []string{"city:tokyo:latitude", "city:tokyo:population"}, got)

			all := s.Keys()
			assert.Equal(t, []string{
				"city:paris:population",
				"city:tokyo:latitude",
				"city:tokyo:population",
			}, all)

			assert.Equal(t, all, s.KeysWithPrefix(""), `Keys() must equal KeysWithPrefix("")`)
		})
	}
}

// TestStore_List verifies sorted key-value listing and limit handling.
func TestStore_List(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, IndexRadix)

	require.NoError(t, s.Set("a:1", "v1"))
	require.NoError(t, s.Set("a:2", "v2"))
	require.NoError(t, s.Set("b:1", "v3"))

	entries := s.List("a:", 0)
	require.Len(t, entries, 2)
	assert.Equal(t, "a:1", entries[0].Key)
	assert.Equal(t, []byte("v1"), entries[0].Value)
	assert.Equal(t, "a:2", entries[1].Key)

	limited := s.List("", 2)
	require.Len(t, limited, 2)
	assert.Equal(t, "a:1", limited[0].Key)
	assert.Equal(t, "a:2", limited[1].Key)

	assert.Empty(t, s.List("z", 0))
}

// TestStore_RandomValue covers the empty store, the single-key store, and
// coverage of all values over repeated draws.
func TestStore_RandomValue(t *testing.T) {
	t.Parallel()

	for _, kind := range []IndexKind{IndexRadix, IndexSet} {
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t, kind)

			_, ok := s.RandomValue()
			require.False(t, ok, "empty store must not produce a value")

			require.NoError(t, s.Set("solo", "the-only-value"))

			for range 50 {
				v, ok := s.RandomValue()
				require.True(t, ok)
				require.Equal(t, []byte("the-only-value"), v)
			}

			require.NoError(t, s.Set("duo", "another"))
			require.NoError(t, s.Set("trio", "third"))

			seen := map[string]bool{}

			for range 1000 {
				v, ok := s.RandomValue()
				require.True(t, ok)

				seen[string(v)] = true
			}

			for _, want := range []string{"the-only-value", "another", "third"} {
				assert.Truef(t, seen[want], "value never selected: %q", want)
			}
		})
	}
}

// TestStore_IndexAgreement asserts the cross-structure invariant: the value
// table's cardinality and the index's reported total always agree, through
// inserts, overwrites, deletes and clears.
func TestStore_IndexAgreement(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, IndexRadix)

	check := func() {
		t.Helper()
		require.EqualValues(t, s.Size(), s.index.Len(),
			"value table and index disagree on cardinality")
		require.EqualValues(t, s.Size(), len(s.Keys()))
	}

	check()

	for i := range 100 {
		require.NoError(t, s.Set(fmt.Sprintf("key:%03d", i), "v"))
	}
	check()

	// Overwrites must not double-count.
	require.NoError(t, s.Set("key:000", "v2"))
	check()

	for i := range 50 {
		s.Delete(fmt.Sprintf("key:%03d", i))
	}
	check()

	s.Clear()
	check()
	assert.EqualValues(t, 0, s.Size())
}

// TestStore_Clear verifies both structures empty together and the store
// remains usable.
func TestStore_Clear(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, IndexRadix)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))

	s.Clear()

	assert.EqualValues(t, 0, s.Size())
	assert.Empty(t, s.Keys())

	_, ok := s.Get("a")
	assert.False(t, ok)

	_, ok = s.RandomValue()
	assert.False(t, ok)

	require.NoError(t, s.Set("c", "3"))
	assert.EqualValues(t, 1, s.Size())
}

// TestStore_Exists covers the membership check.
func TestStore_Exists(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, IndexRadix)

	assert.False(t, s.Exists("k"))
	require.NoError(t, s.Set("k", "v"))
	assert.True(t, s.Exists("k"))

	s.Delete("k")
	assert.False(t, s.Exists("k"))
}

// TestStore_Concurrency hammers the store from many goroutines mixing reads,
// writes, deletes and enumerations. If it completes without deadlock or a
// race detector report, the serialization boundary holds; the final state is
// also checked for table/index agreement.
func TestStore_Concurrency(t *testing.T) {
	t.Parallel()

	const (
		workers    = 8
		iterations = 200
	)

	s := newTestStore(t, IndexRadix)

	var wg sync.WaitGroup

	wg.Add(workers)

	for w := range workers {
		go func() {
			defer wg.Done()

			for i := range iterations {
				key := fmt.Sprintf("worker:%d:%d", w, i%20)

				switch i % 5 {
				case 0:
					_ = s.Set(key, "value")
				case 1:
					_, _ = s.Get(key)
				case 2:
					s.Delete(key)
				case 3:
					_ = s.KeysWithPrefix(fmt.Sprintf("worker:%d:", w))
				case 4:
					_, _ = s.RandomValue()
				}
			}
		}()
	}

	wg.Wait()

	require.EqualValues(t, s.Size(), s.index.Len(),
		"value table and index diverged under concurrency")
}

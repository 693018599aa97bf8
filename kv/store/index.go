package store

import "fmt"

// IndexKind selects the prefix index implementation backing a Store.
type IndexKind string

const (
	// IndexRadix selects the compressed radix tree index: O(k) point
	// operations, O(k+m) prefix enumeration and O(depth) uniform random
	// selection via per-node subtree counters.
	IndexRadix IndexKind = "radix"

	// IndexSet selects the flat set index: O(1) point operations with linear
	// scans for prefix enumeration and random selection. A deliberately
	// simpler alternative for small datasets or write-heavy workloads where
	// the tree's maintenance cost is not justified.
	IndexSet IndexKind = "set"
)

// Index is the capability set shared by the prefix index implementations.
//
// General notes:
//
//   - Keys are non-empty strings treated as opaque byte sequences; nothing in
//     an Index assumes ASCII or code-point boundaries.
//   - Implementations are NOT safe for concurrent use on their own. They must
//     only ever be reached through the Store's serialization boundary.
//   - KeysWithPrefix makes no ordering promise; the Store sorts results before
//     returning them to callers.
type Index interface {
	// Insert adds key to the index. Inserting an already-present key is a
	// no-op with no structural change.
	Insert(key string)

	// Contains reports whether key is present in the index.
	Contains(key string) bool

	// Remove deletes key from the index if present. Removing an absent key is
	// a no-op, never an error.
	Remove(key string)

	// KeysWithPrefix returns every stored key whose byte sequence starts with
	// prefix. An empty prefix matches all keys. Order is unspecified.
	KeysWithPrefix(prefix string) []string

	// RemoveAll empties the index. Subsequent calls behave as on a fresh index.
	RemoveAll()

	// RandomElement returns one key selected with uniform probability across
	// all currently stored keys, or ("", false) when the index is empty.
	RandomElement() (string, bool)

	// Len returns the number of keys currently stored.
	Len() int
}

// NewIndex constructs the index implementation named by kind.
// The set of kinds is closed; anything else fails with ErrInvalidIndexKind.
func NewIndex(kind IndexKind) (Index, error) {
	switch kind {
	case IndexRadix:
		return NewRadixTree(), nil
	case IndexSet:
		return NewSetIndex(), nil
	default:
		return nil, fmt.Errorf(
			"%w: %q; valid values are: %q, %q",
			ErrInvalidIndexKind, kind, IndexRadix, IndexSet,
		)
	}
}

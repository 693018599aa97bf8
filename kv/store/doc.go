// Package store implements the in-memory key-value store core: a direct
// key-to-value table composed with a prefix index under a single consistency
// boundary.
//
// Two interchangeable index implementations back exact-key membership,
// byte-wise prefix enumeration and uniformly random key selection: RadixTree,
// a compressed radix tree (Patricia trie) with per-node subtree counters, and
// SetIndex, a flat set baseline that scans linearly. The Store serializes all
// operations, validates keys before any mutation, and sorts prefix results
// before returning them.
//
// Values are opaque byte payloads at this level; SerializedStore layers typed
// values on top by encoding them to bytes on write and decoding on read.
package store

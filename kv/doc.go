// Package kv provides an in-memory key-value store with exact-key lookup,
// alphabetically-sorted prefix search, and uniformly-distributed random-value
// retrieval.
//
// High-level behavior:
//   - Open() builds a store from Options: a prefix index ("radix" or "set"),
//     a value serialization mode ("json" or "string") and a maximum key size.
//   - Prefix search is backed by a compressed radix tree whose per-node
//     subtree counters also drive O(depth) uniform random selection; the flat
//     set index is a simpler linear-scan alternative.
//   - All operations are serialized behind a single consistency boundary, so
//     concurrent callers always observe the value table and the index in
//     agreement.
//   - The store is memory-only: there is no persistence, eviction or network
//     surface.
package kv

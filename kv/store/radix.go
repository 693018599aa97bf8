package store

import (
	"math/rand/v2"
	"strings"
)

// handle addresses a node inside the tree's arena.
type handle = int32

// rootHandle is the arena slot of the root node. The root carries no edge
// label and is never terminal, merged or pruned.
const rootHandle handle = 0

// radixNode is a single node of the compressed trie. The zero value is a
// released arena slot.
type radixNode struct {
	// label is the edge label leading into this node; empty only for the root.
	// Sibling labels never share a leading byte: children are keyed by their
	// label's first byte and splits keep it that way.
	label string

	// children maps the first byte of each child's edge label to its handle.
	children map[byte]handle

	// terminal marks that the path from the root to this node spells a
	// complete stored key.
	terminal bool

	// count is the number of terminal nodes in this subtree, including this
	// node itself. Maintained incrementally on every insert and remove; it is
	// what makes O(depth) uniform random selection possible.
	count int
}

// RadixTree is a compressed radix tree (Patricia trie) over opaque byte-string
// keys.
//
// Nodes live in an arena addressed by integer handles; parents hold child
// handles rather than pointers, and released slots are recycled through a free
// list. All operations stay proportional to key length (plus result size for
// prefix enumeration), and RandomElement runs in O(depth) guided by subtree
// counters.
//
// A RadixTree is not safe for concurrent use; it must only be reached through
// the Store's serialization boundary.
type RadixTree struct {
	nodes []radixNode
	free  []handle
}

// NewRadixTree creates an empty tree containing only the root node.
func NewRadixTree() *RadixTree {
	t := &RadixTree{}
	t.nodes = append(t.nodes, radixNode{children: map[byte]handle{}})

	return t
}

// Len returns the number of keys stored, i.e. the root's subtree count.
func (t *RadixTree) Len() int {
	return t.nodes[rootHandle].count
}

// Insert adds key to the tree. Inserting a key that is already present is a
// no-op with no structural or counter change.
func (t *RadixTree) Insert(key string) {
	// Empty keys are rejected upstream; the root must stay non-terminal.
	if key == "" {
		return
	}

	t.insertBelow(rootHandle, key)
}

// insertBelow adds the remaining suffix under h and reports whether a new
// terminal node was created (false for duplicates). Counters along the descent
// are incremented on the way back up, so a duplicate insert touches nothing.
func (t *RadixTree) insertBelow(h handle, rest string) bool {
	if rest == "" {
		if t.nodes[h].terminal {
			return false
		}

		t.nodes[h].terminal = true
		t.nodes[h].count++

		return true
	}

	child, ok := t.nodes[h].children[rest[0]]
	if !ok {
		// No edge shares a byte with the remainder: attach a terminal leaf
		// labeled with the full remainder.
		leaf := t.alloc(radixNode{label: rest, terminal: true, count: 1})
		t.nodes[h].children[rest[0]] = leaf
		t.nodes[h].count++

		return true
	}

	label := t.nodes[child].label

	shared := commonPrefixLen(label, rest)
	if shared < len(label) {
		// Partial edge match: split the edge at the shared prefix and
		// continue from the new intermediate node.
		child = t.splitEdge(h, child, shared)
	}

	inserted := t.insertBelow(child, rest[shared:])
	if inserted {
		t.nodes[h].count++
	}

	return inserted
}

// splitEdge replaces the edge into child with one labeled by its first
// "shared" bytes, leading to a new intermediate node that re-parents child
// under the remaining suffix. The intermediate inherits the child's subtree
// count, so totals along the path are unchanged by the split itself.
func (t *RadixTree) splitEdge(parent, child handle, shared int) handle {
	label := t.nodes[child].label

	mid := t.alloc(radixNode{
		label:    label[:shared],
		children: map[byte]handle{label[shared]: child},
		count:    t.nodes[child].count,
	})

	t.nodes[child].label = label[shared:]
	t.nodes[parent].children[label[0]] = mid

	return mid
}

// Contains reports whether key is stored in the tree. It is true only when
// the descent consumes the full key exactly at a terminal node.
func (t *RadixTree) Contains(key string) bool {
	h := rootHandle

	rest := key
	for rest != "" {
		child, ok := t.nodes[h].children[rest[0]]
		if !ok {
			return false
		}

		label := t.nodes[child].label
		if !strings.HasPrefix(rest, label) {
			return false
		}

		rest = rest[len(label):]
		h = child
	}

	return t.nodes[h].terminal
}

// Remove deletes key from the tree if present. Removing an absent key is a
// no-op and never disturbs counters or structure.
func (t *RadixTree) Remove(key string) {
	if key == "" {
		return
	}

	t.removeBelow(rootHandle, key)
}

// removeBelow deletes the remaining suffix under h and reports whether the key
// was actually found. Distinguishing "not found" from "found and removed"
// keeps counters exact: decrements happen only on the return path of a
// successful removal.
func (t *RadixTree) removeBelow(h handle, rest string) bool {
	if rest == "" {
		if !t.nodes[h].terminal {
			return false
		}

		t.nodes[h].terminal = false
		t.nodes[h].count--

		return true
	}

	child, ok := t.nodes[h].children[rest[0]]
	if !ok {
		return false
	}

	label := t.nodes[child].label
	if !strings.HasPrefix(rest, label) {
		return false
	}

	if !t.removeBelow(child, rest[len(label):]) {
		return false
	}

	t.nodes[h].count--
	t.compactChild(h, child)

	return true
}

// compactChild restores path compression under h after a removal: a
// non-terminal child with no children is pruned, and one with exactly one
// remaining child is merged with it, concatenating edge labels. Terminal
// children and fan-out nodes are left alone.
func (t *RadixTree) compactChild(parent, child handle) {
	n := t.nodes[child]
	if n.terminal {
		return
	}

	switch len(n.children) {
	case 0:
		delete(t.nodes[parent].children, n.label[0])
		t.release(child)
	case 1:
		var grand handle
		for _, g := range n.children {
			grand = g
		}

		t.nodes[grand].label = n.label + t.nodes[grand].label
		t.nodes[parent].children[n.label[0]] = grand
		t.release(child)
	}
}

// KeysWithPrefix returns every stored key starting with prefix, in no
// particular order. An empty prefix enumerates the whole tree.
func (t *RadixTree) KeysWithPrefix(prefix string) []string {
	var (
		acc  []string
		path string
	)

	h := rootHandle

	rest := prefix
	for rest != "" {
		child, ok := t.nodes[h].children[rest[0]]
		if !ok {
			return nil
		}

		label := t.nodes[child].label
		if len(label) >= len(rest) {
			// The prefix ends on this edge. If the edge starts with the
			// remaining bytes, the entire subtree below it matches.
			if strings.HasPrefix(label, rest) {
				t.collect(child, path+label, &acc)
			}

			return acc
		}

		if !strings.HasPrefix(rest, label) {
			return nil
		}

		path += label
		rest = rest[len(label):]
		h = child
	}

	// Prefix consumed exactly at a node boundary: everything below matches,
	// including the node itself if terminal.
	t.collect(h, path, &acc)

	return acc
}

// collect appends every key terminating in the subtree rooted at h, where
// path is the concatenation of edge labels from the root down to h.
func (t *RadixTree) collect(h handle, path string, acc *[]string) {
	if t.nodes[h].terminal {
		*acc = append(*acc, path)
	}

	for _, child := range t.nodes[h].children {
		t.collect(child, path+t.nodes[child].label, acc)
	}
}

// RemoveAll empties the tree, leaving only a fresh root.
func (t *RadixTree) RemoveAll() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.nodes = append(t.nodes, radixNode{children: map[byte]handle{}})
}

// RandomElement returns one key chosen uniformly across all stored keys, or
// ("", false) when the tree is empty.
//
// It draws a target rank in [0, Len()) and descends: a terminal node occupies
// rank 0 of its own subtree, then each child subtree covers the next
// child.count ranks. The subtree counters act as an implicit cumulative-count
// index, so the walk costs one node per tree level instead of a linear scan.
func (t *RadixTree) RandomElement() (string, bool) {
	total := t.nodes[rootHandle].count
	if total == 0 {
		return "", false
	}

	var path string

	target := rand.IntN(total) //nolint:gosec // math/rand/v2 is safe
	h := rootHandle

descent:
	for {
		if t.nodes[h].terminal {
			if target == 0 {
				return path, true
			}

			target--
		}

		for _, child := range t.nodes[h].children {
			if target < t.nodes[child].count {
				path += t.nodes[child].label
				h = child

				continue descent
			}

			target -= t.nodes[child].count
		}

		// Unreachable while counters are consistent: the target rank is
		// always consumed before the children run out.
		return "", false
	}
}

// alloc places n into a recycled arena slot when one is available, growing the
// arena otherwise.
func (t *RadixTree) alloc(n radixNode) handle {
	if len(t.free) > 0 {
		h := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[h] = n

		return h
	}

	t.nodes = append(t.nodes, n)

	return handle(len(t.nodes) - 1)
}

// release zeroes the slot at h and queues it for reuse.
func (t *RadixTree) release(h handle) {
	t.nodes[h] = radixNode{}
	t.free = append(t.free, h)
}

// commonPrefixLen returns the length of the longest shared byte prefix of a
// and b.
func commonPrefixLen(a, b string) int {
	limit := min(len(a), len(b))

	i := 0
	for i < limit && a[i] == b[i] {
		i++
	}

	return i
}

package collections

import "cmp"

type treeNode[K cmp.Ordered, V any] struct {
	key         K
	value       V
	left, right *treeNode[K, V]
}

// OrderedIndex is an unbalanced binary search tree mapping keys to values.
//
// Equal keys are kept, not replaced: a key that is not strictly less than a
// node's key always descends to the right. No rebalancing happens, so
// inserting keys in sorted order produces a tree with linked-list depth.
type OrderedIndex[K cmp.Ordered, V any] struct {
	root *treeNode[K, V]
	size int
}

// NewOrderedIndex returns an empty index.
func NewOrderedIndex[K cmp.Ordered, V any]() *OrderedIndex[K, V] {
	return &OrderedIndex[K, V]{}
}

// Insert adds value under key. Duplicates go to the right subtree.
func (t *OrderedIndex[K, V]) Insert(key K, value V) {
	t.size++
	if t.root == nil {
		t.root = &treeNode[K, V]{key: key, value: value}
		return
	}
	insertNode(t.root, key, value)
}

func insertNode[K cmp.Ordered, V any](n *treeNode[K, V], key K, value V) {
	if key < n.key {
		if n.left == nil {
			n.left = &treeNode[K, V]{key: key, value: value}
			return
		}
		insertNode(n.left, key, value)
		return
	}
	if n.right == nil {
		n.right = &treeNode[K, V]{key: key, value: value}
		return
	}
	insertNode(n.right, key, value)
}

// Find returns the first value whose key equals key on the descent path.
func (t *OrderedIndex[K, V]) Find(key K) (V, bool) {
	return findNode(t.root, key)
}

func findNode[K cmp.Ordered, V any](n *treeNode[K, V], key K) (V, bool) {
	if n == nil {
		var zero V
		return zero, false
	}
	if key == n.key {
		return n.value, true
	}
	if key < n.key {
		return findNode(n.left, key)
	}
	return findNode(n.right, key)
}

// InOrder returns every stored value in ascending key order.
func (t *OrderedIndex[K, V]) InOrder() []V {
	out := make([]V, 0, t.size)
	return appendInOrder(t.root, out)
}

func appendInOrder[K cmp.Ordered, V any](n *treeNode[K, V], out []V) []V {
	if n == nil {
		return out
	}
	out = appendInOrder(n.left, out)
	out = append(out, n.value)
	return appendInOrder(n.right, out)
}

// Len reports the number of stored entries, duplicates included.
func (t *OrderedIndex[K, V]) Len() int { return t.size }

// Height is the number of nodes on the longest root-to-leaf path.
func (t *OrderedIndex[K, V]) Height() int { return nodeHeight(t.root) }

func nodeHeight[K cmp.Ordered, V any](n *treeNode[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(nodeHeight(n.left), nodeHeight(n.right))
}

// RootKey returns the key stored at the root.
func (t *OrderedIndex[K, V]) RootKey() (K, bool) {
	if t.root == nil {
		var zero K
		return zero, false
	}
	return t.root.key, true
}

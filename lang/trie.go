package lang

import "sort"

// Trie is a byte-wise prefix tree mapping string keys to values of type V.
// The zero value is an empty trie ready to use.
type Trie[V any] struct {
	root trieNode[V]
	size int
}

type trieNode[V any] struct {
	next  map[byte]*trieNode[V]
	value V
	set   bool
}

// Len returns the number of keys stored.
func (t *Trie[V]) Len() int { return t.size }

// Insert stores value under key, replacing any previous value.
func (t *Trie[V]) Insert(key string, value V) {
	n := &t.root

	for i := 0; i < len(key); i++ {
		if n.next == nil {
			n.next = make(map[byte]*trieNode[V])
		}

		child, ok := n.next[key[i]]
		if !ok {
			child = new(trieNode[V])
			n.next[key[i]] = child
		}

		n = child
	}

	if !n.set {
		t.size++
	}

	n.value, n.set = value, true
}

// Get returns the value stored under key.
func (t *Trie[V]) Get(key string) (V, bool) {
	n := t.find(key)
	if n == nil || !n.set {
		var zero V

		return zero, false
	}

	return n.value, true
}

// Delete removes key, pruning nodes left without keys below them.
// It reports whether key was present.
func (t *Trie[V]) Delete(key string) bool {
	if !t.root.remove(key) {
		return false
	}

	t.size--

	return true
}

// LongestPrefix returns the longest stored key that is a prefix of s.
func (t *Trie[V]) LongestPrefix(s string) (key string, value V, ok bool) {
	n := &t.root
	if n.set {
		value, ok = n.value, true
	}

	for i := 0; i < len(s); i++ {
		child := n.next[s[i]]
		if child == nil {
			break
		}

		n = child
		if n.set {
			key, value, ok = s[:i+1], n.value, true
		}
	}

	return key, value, ok
}

// Keys returns all stored keys in lexical order.
func (t *Trie[V]) Keys() []string {
	keys := make([]string, 0, t.size)

	var walk func(n *trieNode[V], prefix []byte)

	walk = func(n *trieNode[V], prefix []byte) {
		if n.set {
			keys = append(keys, string(prefix))
		}

		for b, child := range n.next {
			walk(child, append(prefix[:len(prefix):len(prefix)], b))
		}
	}

	walk(&t.root, nil)
	sort.Strings(keys)

	return keys
}

func (t *Trie[V]) find(key string) *trieNode[V] {
	n := &t.root

	for i := 0; i < len(key) && n != nil; i++ {
		n = n.next[key[i]]
	}

	return n
}

// remove unsets key below n and reports whether it was set.
func (n *trieNode[V]) remove(key string) bool {
	if key == "" {
		if !n.set {
			return false
		}

		var zero V

		n.value, n.set = zero, false

		return true
	}

	child := n.next[key[0]]
	if child == nil || !child.remove(key[1:]) {
		return false
	}

	if !child.set && len(child.next) == 0 {
		delete(n.next, key[0])
	}

	return true
}

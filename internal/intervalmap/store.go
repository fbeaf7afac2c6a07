package intervalmap

import (
	"cmp"

	"github.com/tidwall/btree"
)

// Store is the ordered backing container for a breakpoint sequence. Any
// structure with ordered search and positional insert/remove can serve; the
// map's algorithm only depends on this capability, not on a concrete tree.
type Store[K cmp.Ordered, V any] interface {
	// Set inserts a breakpoint at key, replacing any existing one.
	Set(key K, value V)
	// Delete removes the breakpoint at key if present.
	Delete(key K)
	// Floor returns the greatest breakpoint with key <= k.
	Floor(k K) (K, V, bool)
	// Ceiling returns the least breakpoint with key >= k.
	Ceiling(k K) (K, V, bool)
	// Ascend calls fn for each breakpoint with key >= from, in key order,
	// until fn returns false. The store must not be mutated from fn.
	Ascend(from K, fn func(key K, value V) bool)
	// Len returns the number of breakpoints.
	Len() int
}

// btreeStore backs the sequence with a B-tree, giving O(log n) search and
// mutation. This is the default store.
type btreeStore[K cmp.Ordered, V any] struct {
	tree btree.Map[K, V]
}

// NewBTreeStore returns an empty B-tree backed store.
func NewBTreeStore[K cmp.Ordered, V any]() Store[K, V] {
	return &btreeStore[K, V]{}
}

func (s *btreeStore[K, V]) Set(key K, value V) {
	s.tree.Set(key, value)
}

func (s *btreeStore[K, V]) Delete(key K) {
	s.tree.Delete(key)
}

func (s *btreeStore[K, V]) Floor(k K) (K, V, bool) {
	var (
		fk K
		fv V
		ok bool
	)
	s.tree.Descend(k, func(key K, value V) bool {
		fk, fv, ok = key, value, true
		return false
	})
	return fk, fv, ok
}

func (s *btreeStore[K, V]) Ceiling(k K) (K, V, bool) {
	var (
		ck K
		cv V
		ok bool
	)
	s.tree.Ascend(k, func(key K, value V) bool {
		ck, cv, ok = key, value, true
		return false
	})
	return ck, cv, ok
}

func (s *btreeStore[K, V]) Ascend(from K, fn func(key K, value V) bool) {
	s.tree.Ascend(from, fn)
}

func (s *btreeStore[K, V]) Len() int {
	return s.tree.Len()
}

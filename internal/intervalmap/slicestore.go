package intervalmap

import (
	"cmp"
	"slices"
	"sort"
)

// sliceStore keeps breakpoints in a pair of parallel sorted slices. Searches
// are O(log n) but inserts and removals shift elements, so it only pays off
// for small breakpoint counts.
type sliceStore[K cmp.Ordered, V any] struct {
	keys   []K
	values []V
}

// NewSliceStore returns an empty sorted-slice backed store.
func NewSliceStore[K cmp.Ordered, V any]() Store[K, V] {
	return &sliceStore[K, V]{}
}

// search returns the index of the first key >= k.
func (s *sliceStore[K, V]) search(k K) int {
	return sort.Search(len(s.keys), func(i int) bool {
		return s.keys[i] >= k
	})
}

func (s *sliceStore[K, V]) Set(key K, value V) {
	i := s.search(key)
	if i < len(s.keys) && s.keys[i] == key {
		s.values[i] = value
		return
	}
	s.keys = slices.Insert(s.keys, i, key)
	s.values = slices.Insert(s.values, i, value)
}

func (s *sliceStore[K, V]) Delete(key K) {
	i := s.search(key)
	if i >= len(s.keys) || s.keys[i] != key {
		return
	}
	s.keys = slices.Delete(s.keys, i, i+1)
	s.values = slices.Delete(s.values, i, i+1)
}

func (s *sliceStore[K, V]) Floor(k K) (K, V, bool) {
	i := s.search(k)
	if i < len(s.keys) && s.keys[i] == k {
		return s.keys[i], s.values[i], true
	}
	if i == 0 {
		var zk K
		var zv V
		return zk, zv, false
	}
	return s.keys[i-1], s.values[i-1], true
}

func (s *sliceStore[K, V]) Ceiling(k K) (K, V, bool) {
	i := s.search(k)
	if i >= len(s.keys) {
		var zk K
		var zv V
		return zk, zv, false
	}
	return s.keys[i], s.values[i], true
}

func (s *sliceStore[K, V]) Ascend(from K, fn func(key K, value V) bool) {
	for i := s.search(from); i < len(s.keys); i++ {
		if !fn(s.keys[i], s.values[i]) {
			return
		}
	}
}

func (s *sliceStore[K, V]) Len() int {
	return len(s.keys)
}

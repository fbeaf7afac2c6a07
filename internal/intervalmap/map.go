// Package intervalmap implements a compressed map from an ordered key domain
// to values. The map models a piecewise-constant function: memory is
// proportional to the number of value transitions (breakpoints), not to the
// size of the key domain. Assigning a value to a half-open interval and
// looking up a single key are the only operations.
package intervalmap

import "cmp"

// Breakpoint is a key at which the mapped value changes. The value applies
// from Key up to (but excluding) the next breakpoint's key.
type Breakpoint[K cmp.Ordered, V comparable] struct {
	Key   K
	Value V
}

// Map associates every key in its domain with a value. The breakpoint
// sequence is kept canonical: the first breakpoint sits at the domain
// minimum, keys strictly increase, and no two adjacent breakpoints carry
// equal values.
//
// A Map is not safe for concurrent mutation. Concurrent lookups against an
// unchanging Map are fine.
type Map[K cmp.Ordered, V comparable] struct {
	store Store[K, V]
	min   K
}

// New returns a map over [min, ∞) with every key associated with initial.
// min must be the smallest key the caller will ever pass; it anchors the
// sentinel breakpoint that makes Lookup total. The default B-tree store is
// used.
func New[K cmp.Ordered, V comparable](min K, initial V) *Map[K, V] {
	return NewWithStore(NewBTreeStore[K, V](), min, initial)
}

// NewWithStore is New with an explicit backing store. The store must be
// empty.
func NewWithStore[K cmp.Ordered, V comparable](store Store[K, V], min K, initial V) *Map[K, V] {
	store.Set(min, initial)
	return &Map[K, V]{store: store, min: min}
}

// Assign associates every key in the half-open interval [keyBegin, keyEnd)
// with value, leaving all keys outside the interval unchanged. If
// !(keyBegin < keyEnd) the interval is empty and Assign does nothing.
//
// The sequence is re-canonicalized before returning: boundary breakpoints
// that would duplicate a neighbor's value are elided, so assigning a value
// the interval already carries never grows the map.
//
// Cost is O(log n + k) on the B-tree store, where k is the number of
// breakpoints the interval swallows.
func (m *Map[K, V]) Assign(keyBegin, keyEnd K, value V) {
	if !(keyBegin < keyEnd) {
		return
	}

	// Value in effect at keyEnd before any mutation; it must survive to the
	// right of the assigned interval. The sentinel guarantees a floor exists.
	_, endValue, _ := m.store.Floor(keyEnd)

	// Every breakpoint inside [keyBegin, keyEnd] describes a sub-interval the
	// assignment overwrites. Collect first: stores need not support removal
	// mid-iteration.
	var doomed []K
	m.store.Ascend(keyBegin, func(k K, _ V) bool {
		if k > keyEnd {
			return false
		}
		doomed = append(doomed, k)
		return true
	})
	for _, k := range doomed {
		m.store.Delete(k)
	}

	// Left boundary. Skip the breakpoint when the preceding interval already
	// carries value; inserting it would break canonical form. No floor means
	// keyBegin is the domain minimum and the sentinel must be re-seeded.
	if _, prevValue, ok := m.store.Floor(keyBegin); !ok || prevValue != value {
		m.store.Set(keyBegin, value)
	}

	// Right boundary. Restore the prior value beyond the interval unless it
	// equals the assigned one, in which case the runs merge. The breakpoint
	// after keyEnd differed from endValue before the call, so no trailing
	// duplicate can appear.
	if endValue != value {
		m.store.Set(keyEnd, endValue)
	}
}

// Lookup returns the value associated with key: the value of the greatest
// breakpoint with key <= key. Keys below the declared minimum answer with
// the first breakpoint's value.
func (m *Map[K, V]) Lookup(key K) V {
	if _, v, ok := m.store.Floor(key); ok {
		return v
	}
	_, v, _ := m.store.Ceiling(key)
	return v
}

// Len returns the number of breakpoints in the sequence.
func (m *Map[K, V]) Len() int {
	return m.store.Len()
}

// Breakpoints returns a snapshot of the breakpoint sequence in key order.
// It exists for diagnostics and validation; mutating the snapshot does not
// affect the map.
func (m *Map[K, V]) Breakpoints() []Breakpoint[K, V] {
	bps := make([]Breakpoint[K, V], 0, m.store.Len())
	m.store.Ascend(m.min, func(k K, v V) bool {
		bps = append(bps, Breakpoint[K, V]{Key: k, Value: v})
		return true
	})
	return bps
}

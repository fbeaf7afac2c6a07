package intervalmap

import (
	"cmp"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertCanonical checks the structural invariants: sentinel at the minimum,
// strictly increasing keys, no adjacent equal values.
func assertCanonical[K cmp.Ordered, V comparable](t *testing.T, m *Map[K, V], min K) {
	t.Helper()
	bps := m.Breakpoints()
	require.NotEmpty(t, bps, "sequence must never be empty")
	assert.Equal(t, min, bps[0].Key, "first breakpoint must sit at the minimum")
	for i := 1; i < len(bps); i++ {
		assert.Less(t, bps[i-1].Key, bps[i].Key, "keys must strictly increase")
		assert.NotEqual(t, bps[i-1].Value, bps[i].Value,
			"adjacent breakpoints %d and %d carry equal values", i-1, i)
	}
}

func TestNew_WholeDomainInitial(t *testing.T) {
	m := New[uint, uint](0, 42)
	assert.Equal(t, uint(42), m.Lookup(0))
	assert.Equal(t, uint(42), m.Lookup(1000000))
	assert.Equal(t, 1, m.Len())
}

func TestAssign_EmptyInterval(t *testing.T) {
	m := New[uint, uint](0, 0)

	m.Assign(3, 3, 5)
	assert.Equal(t, uint(0), m.Lookup(3), "empty interval is a no-op")
	assert.Equal(t, 1, m.Len())

	m.Assign(7, 2, 5)
	assert.Equal(t, uint(0), m.Lookup(4), "inverted interval is a no-op")
	assert.Equal(t, 1, m.Len())
}

func TestAssign_Scenario(t *testing.T) {
	m := New[uint, uint](0, 0)

	m.Assign(3, 3, 5)
	assert.Equal(t, uint(0), m.Lookup(3))

	m.Assign(2, 5, 7)
	assert.Equal(t, uint(0), m.Lookup(1))
	assert.Equal(t, uint(7), m.Lookup(2))
	assert.Equal(t, uint(7), m.Lookup(4))
	assert.Equal(t, uint(0), m.Lookup(5))

	// Redundant sub-range with the same value changes nothing.
	before := m.Len()
	m.Assign(3, 4, 7)
	assert.Equal(t, before, m.Len(), "redundant assignment must not add breakpoints")
	assert.Equal(t, uint(7), m.Lookup(3))

	m.Assign(3, 4, 9)
	assert.Equal(t, uint(7), m.Lookup(2))
	assert.Equal(t, uint(9), m.Lookup(3))
	assert.Equal(t, uint(7), m.Lookup(4))

	assertCanonical(t, m, uint(0))
}

func TestAssign_Idempotent(t *testing.T) {
	m := New(0, 0)
	m.Assign(2, 5, 7)

	lookups := func() []int {
		out := make([]int, 10)
		for k := range out {
			out[k] = m.Lookup(k)
		}
		return out
	}

	first := lookups()
	count := m.Len()

	m.Assign(2, 5, 7)
	assert.Equal(t, first, lookups(), "repeat assignment must not change lookups")
	assert.Equal(t, count, m.Len(), "repeat assignment must not grow the map")
}

func TestAssign_MergesWithPredecessor(t *testing.T) {
	m := New(0, 0)
	m.Assign(2, 5, 7)
	require.Equal(t, 3, m.Len())

	// Breakpoint exists exactly at keyBegin and the new value equals the
	// predecessor's; the boundary must merge away rather than leave two
	// adjacent zeros.
	m.Assign(2, 3, 0)
	assert.Equal(t, 0, m.Lookup(2))
	assert.Equal(t, 7, m.Lookup(3))
	assert.Equal(t, 0, m.Lookup(5))
	assertCanonical(t, m, 0)
}

func TestAssign_OverwritesInterior(t *testing.T) {
	m := New(0, 0)
	m.Assign(1, 3, 1)
	m.Assign(3, 5, 2)
	m.Assign(5, 7, 3)
	require.Equal(t, 5, m.Len())

	// One assignment swallowing all interior breakpoints.
	m.Assign(0, 9, 8)
	assert.Equal(t, 8, m.Lookup(0))
	assert.Equal(t, 8, m.Lookup(4))
	assert.Equal(t, 8, m.Lookup(8))
	assert.Equal(t, 0, m.Lookup(9), "value beyond keyEnd must survive")
	assertCanonical(t, m, 0)
}

func TestAssign_ExactEndBreakpoint(t *testing.T) {
	m := New(0, 0)
	m.Assign(4, 8, 3)

	// keyEnd lands exactly on an existing breakpoint.
	m.Assign(2, 4, 5)
	assert.Equal(t, 0, m.Lookup(1))
	assert.Equal(t, 5, m.Lookup(2))
	assert.Equal(t, 5, m.Lookup(3))
	assert.Equal(t, 3, m.Lookup(4))
	assertCanonical(t, m, 0)

	// keyEnd on a breakpoint whose run carries the assigned value: the two
	// runs must merge into one.
	m.Assign(2, 4, 3)
	assert.Equal(t, 3, m.Lookup(2))
	assert.Equal(t, 3, m.Lookup(5))
	assertCanonical(t, m, 0)
}

func TestAssign_AtMinimum(t *testing.T) {
	m := New(0, 0)
	m.Assign(0, 5, 9)
	assert.Equal(t, 9, m.Lookup(0))
	assert.Equal(t, 9, m.Lookup(4))
	assert.Equal(t, 0, m.Lookup(5))
	assertCanonical(t, m, 0)

	// Assigning the initial value back from the minimum collapses everything
	// into the sentinel again.
	m.Assign(0, 5, 0)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Lookup(3))
}

func TestLookup_BelowMinimum(t *testing.T) {
	m := New(10, 4)
	m.Assign(12, 15, 6)
	assert.Equal(t, 4, m.Lookup(3), "keys below the minimum answer with the sentinel value")
}

func TestMap_SliceStoreMatchesBTree(t *testing.T) {
	bt := New(0, 0)
	sl := NewWithStore(NewSliceStore[int, int](), 0, 0)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		begin := rng.Intn(10)
		end := rng.Intn(10)
		value := rng.Intn(10)
		bt.Assign(begin, end, value)
		sl.Assign(begin, end, value)
	}

	for k := 0; k < 10; k++ {
		assert.Equal(t, bt.Lookup(k), sl.Lookup(k), "stores diverged at key %d", k)
	}
	assert.Equal(t, bt.Breakpoints(), sl.Breakpoints())
	assertCanonical(t, bt, 0)
	assertCanonical(t, sl, 0)
}

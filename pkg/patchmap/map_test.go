package patchmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whashgo/patchmap/pkg/patchmap"
)

func TestSetGetDelete(t *testing.T) {
	m, err := patchmap.New[string, int]()
	require.NoError(t, err)

	assert.True(t, m.Empty())

	existed := m.Set("a", 1)
	assert.False(t, existed)

	existed = m.Set("a", 2)
	assert.True(t, existed)

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	_, err = m.At("missing")
	assert.True(t, errors.Is(err, patchmap.ErrKeyNotFound))

	assert.Equal(t, 1, m.Count("a"))
	assert.Equal(t, 0, m.Count("missing"))

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 0, m.Len())
}

func TestInsertDoesNotOverwrite(t *testing.T) {
	m, err := patchmap.New[int, string]()
	require.NoError(t, err)

	assert.True(t, m.Insert(1, "first"))
	assert.False(t, m.Insert(1, "second"))

	v, _ := m.Get(1)
	assert.Equal(t, "first", v)
}

func TestRefInsertsZeroValue(t *testing.T) {
	m, err := patchmap.New[string, int]()
	require.NoError(t, err)

	p := m.Ref("x")
	assert.Equal(t, 0, *p)

	*p = 42

	v, ok := m.Get("x")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestManyInsertsAndDeletesPreserveInvariants(t *testing.T) {
	m, err := patchmap.New[int, int]()
	require.NoError(t, err)

	const n = 5000

	for i := 0; i < n; i++ {
		m.Set(i, i*i)
	}

	require.Equal(t, n, m.Len())

	for i := 0; i < n; i += 2 {
		require.True(t, m.Delete(i))
	}

	require.Equal(t, n/2, m.Len())

	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if i%2 == 0 {
			assert.False(t, ok, "expected %d to be deleted", i)
		} else {
			require.True(t, ok, "expected %d to still be present", i)
			assert.Equal(t, i*i, v)
		}
	}
}

func TestAllVisitsEveryEntryExactlyOnce(t *testing.T) {
	m, err := patchmap.New[int, bool]()
	require.NoError(t, err)

	const n = 1000
	for i := 0; i < n; i++ {
		m.Set(i, true)
	}

	seen := make(map[int]int, n)
	for k := range m.All() {
		seen[k]++
	}

	assert.Len(t, seen, n)
	for k, count := range seen {
		assert.Equalf(t, 1, count, "key %d visited %d times", k, count)
	}
}

func TestBackwardIsReverseOfAll(t *testing.T) {
	m, err := patchmap.New[int, int]()
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		m.Set(i, i)
	}

	var forward, backward []int

	for k := range m.All() {
		forward = append(forward, k)
	}

	for k := range m.Backward() {
		backward = append(backward, k)
	}

	require.Len(t, backward, len(forward))

	for i := range forward {
		assert.Equal(t, forward[i], backward[len(backward)-1-i])
	}
}

func TestEqual(t *testing.T) {
	a, err := patchmap.New[string, int]()
	require.NoError(t, err)

	b, err := patchmap.New[string, int]()
	require.NoError(t, err)

	a.Set("x", 1)
	a.Set("y", 2)

	b.Set("y", 2)
	b.Set("x", 1)

	valueEq := func(x, y int) bool { return x == y }

	assert.True(t, a.Equal(b, valueEq))

	b.Set("y", 3)
	assert.False(t, a.Equal(b, valueEq))
}

func TestClear(t *testing.T) {
	m, err := patchmap.New[int, int]()
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		m.Set(i, i)
	}

	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.True(t, m.Empty())

	_, ok := m.Get(5)
	assert.False(t, ok)

	// Map should still be usable after Clear.
	m.Set(1, 1)
	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestRehashAndReserve(t *testing.T) {
	m, err := patchmap.New[int, int]()
	require.NoError(t, err)

	m.Reserve(1000)
	assert.GreaterOrEqual(t, m.BucketCount(), 1000)

	for i := 0; i < 100; i++ {
		m.Set(i, i)
	}

	before := m.BucketCount()
	m.Rehash(10) // smaller than size, should be a no-op
	assert.Equal(t, before, m.BucketCount())

	m.Rehash(5000)
	assert.GreaterOrEqual(t, m.BucketCount(), 5000)

	for i := 0; i < 100; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestIdentityHashUnhashOptimization(t *testing.T) {
	m, err := patchmap.New[uint64, string](
		patchmap.WithHash[uint64, string](patchmap.IdentityHash{}),
	)
	require.NoError(t, err)

	for i := uint64(0); i < 2000; i++ {
		m.Set(i, "v")
	}

	for i := uint64(0); i < 2000; i++ {
		_, ok := m.Get(i)
		require.True(t, ok)
	}

	assert.False(t, m.Empty())
	assert.Equal(t, 2000, m.Len())
}

func TestNonInjectiveHashRequiresLess(t *testing.T) {
	collidingHash := constantHash{}

	_, err := patchmap.New[int, int](
		patchmap.WithHash[int, int](collidingHash),
	)
	assert.ErrorIs(t, err, patchmap.ErrTieBreakRequired)

	m, err := patchmap.New[int, int](
		patchmap.WithHash[int, int](collidingHash),
		patchmap.WithLess[int, int](func(a, b int) bool { return a < b }),
	)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		m.Set(i, i)
	}

	for i := 0; i < 50; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

// constantHash always returns the same rank, forcing every insert through
// the non-injective tie-break path.
type constantHash struct{}

func (constantHash) Sum(int) uint64 { return 42 }

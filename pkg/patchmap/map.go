package patchmap

// Map is a sorted, open-addressed associative container from K to V. The
// zero value is not usable; construct one with New.
type Map[K comparable, V any] struct {
	rank          ranker[K]
	bitmap        bitmap
	store         slotStore[K, V]
	size          int
	loadFactorNum uint64
	loadFactorDen uint64
	growth        func(oldCapacity int) int
	inversedCap   uint64
}

// New constructs a Map. With no options it uses hash/maphash.Comparable as
// the Hash, a 7/8 load factor, and the default growth policy, starting at
// zero capacity.
//
// New never fails except when a caller-supplied, non-injective Hash is
// passed via WithHash without a matching WithLess; in that situation it
// still returns a usable *Map, paired with ErrTieBreakRequired, so that
// call sites preferring to panic on misconfiguration can do
// `m, err := patchmap.New(...); if err != nil { panic(err) }` without a nil
// check in between.
func New[K comparable, V any](opts ...Option[K, V]) (*Map[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	isInjective := false
	var unhash Unhasher[K]

	if inj, ok := cfg.hash.(injective); ok && inj.Injective() {
		if uh, ok := cfg.hash.(Unhasher[K]); ok {
			isInjective = true
			unhash = uh
		}
	}

	var err error
	if !isInjective && cfg.less == nil {
		if _, isDefault := cfg.hash.(comparableHash[K]); !isDefault {
			err = ErrTieBreakRequired
		}
		cfg.less = func(a, b K) bool { return false } // rank collisions are then resolved by key equality alone
	}

	r := ranker[K]{
		hash:      cfg.hash,
		unhash:    unhash,
		injective: isInjective,
		keyEq:     cfg.keyEq,
		less:      cfg.less,
	}

	n := roundUpToWord(cfg.initialCapacity)

	var store slotStore[K, V]
	if unhash != nil {
		store = newUnhashStore[K, V](n, unhash)
	} else {
		store = newDirectStore[K, V](n)
	}

	m := &Map[K, V]{
		rank:          r,
		bitmap:        newBitmap(n),
		store:         store,
		loadFactorNum: cfg.loadFactorNum,
		loadFactorDen: cfg.loadFactorDen,
		growth:        cfg.growth,
		inversedCap:   inverseCapacity(n),
	}

	return m, err
}

// Len returns the number of entries currently stored.
func (m *Map[K, V]) Len() int { return m.size }

// Size is an alias for Len.
func (m *Map[K, V]) Size() int { return m.size }

// Empty reports whether the map holds no entries.
func (m *Map[K, V]) Empty() bool { return m.size == 0 }

// BucketCount returns the current capacity: the number of slots in the
// backing array, occupied or not.
func (m *Map[K, V]) BucketCount() int { return m.bitmap.n }

// LoadFactor returns size/capacity, or 0 when capacity is 0.
func (m *Map[K, V]) LoadFactor() float64 {
	if m.bitmap.n == 0 {
		return 0
	}

	return float64(m.size) / float64(m.bitmap.n)
}

// MaxLoadFactor always returns 1.0: the nominal ceiling a caller should
// budget for, distinct from the lower internal growth threshold (7/8 by
// default) that actually triggers a resize before the table ever gets that
// full.
func (m *Map[K, V]) MaxLoadFactor() float64 { return 1.0 }

// virtualRank returns the total-order position of slot i: its real rank if
// occupied, or an approximation derived from its position in the array if
// free. Both are on the same H scale, which is what lets probe, insert and
// erase compare a free slot against a real key's rank directly.
func (m *Map[K, V]) virtualRank(i int) uint64 {
	if m.bitmap.isSet(i) {
		return m.store.rankAt(i, &m.rank)
	}

	return uint64(i) * m.inversedCap
}

// Get returns the value stored for k, if any.
func (m *Map[K, V]) Get(k K) (V, bool) {
	i, found := m.probe(k)
	if !found {
		var zero V
		return zero, false
	}

	return *m.store.valuePtr(i), true
}

// At returns the value stored for k, or a KeyNotFoundError wrapping
// ErrKeyNotFound and carrying k.
func (m *Map[K, V]) At(k K) (V, error) {
	v, ok := m.Get(k)
	if !ok {
		return v, KeyNotFoundError[K]{Key: k}
	}

	return v, nil
}

// Ref returns a pointer to the value for k, inserting the zero value first
// if k is absent -- the operator[] idiom. The pointer is only valid until
// the next structural mutation of the map (insert, delete, Rehash, Reserve).
func (m *Map[K, V]) Ref(k K) *V {
	i, _ := m.insert(k, func() V { var zero V; return zero })

	return m.store.valuePtr(i)
}

// Set inserts or overwrites the value for k, returning true if k already
// existed.
func (m *Map[K, V]) Set(k K, v V) bool {
	i, existed := m.insert(k, func() V { return v })
	if existed {
		*m.store.valuePtr(i) = v
	}

	return existed
}

// Insert inserts v for k only if k is absent, reporting whether the insert
// happened.
func (m *Map[K, V]) Insert(k K, v V) bool {
	_, existed := m.insert(k, func() V { return v })

	return !existed
}

// Count returns 1 if k is present, 0 otherwise.
func (m *Map[K, V]) Count(k K) int {
	if _, found := m.probe(k); found {
		return 1
	}

	return 0
}

// Delete removes k, reporting whether it was present.
func (m *Map[K, V]) Delete(k K) bool {
	i, found := m.probe(k)
	if !found {
		return false
	}

	m.eraseAt(i)

	return true
}

// Clear removes every entry without shrinking capacity.
func (m *Map[K, V]) Clear() {
	for i := 0; i < m.bitmap.n; i++ {
		if m.bitmap.isSet(i) {
			m.store.clearAt(i)
		}
	}

	m.bitmap.clear()
	m.size = 0
}

// Equal reports whether m and other hold the same set of keys, each mapped
// to values considered equal by valueEq. Capacity and internal layout are
// not compared -- two maps built differently can still be equal.
func (m *Map[K, V]) Equal(other *Map[K, V], valueEq func(a, b V) bool) bool {
	if m.size != other.size {
		return false
	}

	for i := 0; i < m.bitmap.n; i++ {
		if !m.bitmap.isSet(i) {
			continue
		}

		k := m.store.keyAt(i, &m.rank)
		v := *m.store.valuePtr(i)

		ov, ok := other.Get(k)
		if !ok || !valueEq(v, ov) {
			return false
		}
	}

	return true
}

package patchmap

// Iterator walks a Map's occupied slots in rank order. It is not stable
// across structural mutation of the map (insert, delete, Rehash, Reserve
// can all move an entry to a different slot) -- per the Non-goals, no
// iterator validity guarantee is made across mutation. What it does provide
// is lazy re-location: if the slot an iterator last pointed at no longer
// holds the same key (because something else moved it), the next
// Valid/Next/Prev/Value call re-probes for that key by value rather than
// silently returning whatever now happens to live in the old slot.
type Iterator[K comparable, V any] struct {
	m     *Map[K, V]
	hint  int
	key   K
	valid bool
}

// Begin returns an iterator positioned at the first occupied slot (lowest
// rank), or an invalid iterator if the map is empty.
func (m *Map[K, V]) Begin() *Iterator[K, V] {
	it := &Iterator[K, V]{m: m}
	it.seekForward(0)

	return it
}

// End returns an invalid iterator, usable only as a sentinel to compare
// against (it.Valid() is always false).
func (m *Map[K, V]) End() *Iterator[K, V] {
	return &Iterator[K, V]{m: m}
}

func (it *Iterator[K, V]) seekForward(from int) {
	i := it.m.bitmap.nextOccupied(from)
	if i >= it.m.bitmap.n {
		it.valid = false
		return
	}

	it.hint = i
	it.key = it.m.store.keyAt(i, &it.m.rank)
	it.valid = true
}

func (it *Iterator[K, V]) seekBackward(from int) {
	i := it.m.bitmap.prevOccupied(from)
	if i < 0 {
		it.valid = false
		return
	}

	it.hint = i
	it.key = it.m.store.keyAt(i, &it.m.rank)
	it.valid = true
}

// relocate re-probes for it.key if the hint slot has stopped holding it --
// the lazy hint+key re-location scheme described on Iterator.
func (it *Iterator[K, V]) relocate() bool {
	if it.hint < it.m.bitmap.n && it.m.bitmap.isSet(it.hint) {
		stored := it.m.store.keyAt(it.hint, &it.m.rank)
		if stored == it.key {
			return true
		}
	}

	i, found := it.m.probe(it.key)
	if !found {
		return false
	}

	it.hint = i

	return true
}

// Valid reports whether the iterator currently denotes an entry.
func (it *Iterator[K, V]) Valid() bool {
	if !it.valid {
		return false
	}

	return it.relocate()
}

// Key returns the key the iterator currently denotes. Valid must be true.
func (it *Iterator[K, V]) Key() K {
	return it.key
}

// Value returns a pointer to the value the iterator currently denotes.
// Valid must be true. The pointer is only valid until the next structural
// mutation of the map.
func (it *Iterator[K, V]) Value() *V {
	it.relocate()

	return it.m.store.valuePtr(it.hint)
}

// Next advances the iterator to the next occupied slot in rank order,
// returning false once it runs off the end.
func (it *Iterator[K, V]) Next() bool {
	if !it.valid || !it.relocate() {
		it.valid = false
		return false
	}

	it.seekForward(it.hint + 1)

	return it.valid
}

// Prev moves the iterator to the previous occupied slot in rank order,
// returning false once it runs off the beginning.
func (it *Iterator[K, V]) Prev() bool {
	if !it.valid || !it.relocate() {
		it.valid = false
		return false
	}

	it.seekBackward(it.hint - 1)

	return it.valid
}

// Seq2 has the same shape as iter.Seq2[K, V]; defining it locally instead of
// depending on the iter package directly keeps this package's import set
// minimal, the same tradeoff the teacher's slotcache package makes for its
// own Seq type.
type Seq2[K comparable, V any] func(yield func(K, V) bool)

// All returns a Seq2 ranging over every entry in ascending rank order.
func (m *Map[K, V]) All() Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key(), *it.Value()) {
				return
			}
		}
	}
}

// Backward returns a Seq2 ranging over every entry in descending rank
// order.
func (m *Map[K, V]) Backward() Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := m.bitmap.n - 1; i >= 0; i-- {
			if !m.bitmap.isSet(i) {
				continue
			}

			if !yield(m.store.keyAt(i, &m.rank), *m.store.valuePtr(i)) {
				return
			}
		}
	}
}

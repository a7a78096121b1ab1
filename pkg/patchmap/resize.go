package patchmap

// ensureCapacity grows the table, if needed, before an insert proceeds:
// once size*loadFactorDen >= capacity*loadFactorNum the table is resized
// ahead of the insert rather than after, so the new entry never has to be
// placed against an already-overfull table.
func (m *Map[K, V]) ensureCapacity() {
	if m.bitmap.n == 0 {
		m.resize(roundUpToWord(m.growth(0)))
		return
	}

	if uint64(m.size)*m.loadFactorDen >= uint64(m.bitmap.n)*m.loadFactorNum {
		m.resize(roundUpToWord(m.growth(m.bitmap.n)))
	}
}

// resize is the Resizer component: it always rebuilds out-of-place, since a
// Go slice has no in-place-growth hook to call into (spec's in-place path is
// explicitly optional; this implements only the out-of-place one). Every
// occupied entry is walked off the old array and reinserted into a fresh
// one sized newN, using the same free-slot claim and sort-order repair
// insert itself uses.
func (m *Map[K, V]) resize(newN int) {
	if newN < m.bitmap.n {
		newN = m.bitmap.n
	}

	newBm := newBitmap(newN)
	newStore := m.store.grow(newN)
	newInversed := inverseCapacity(newN)

	for i := 0; i < m.bitmap.n; i++ {
		if !m.bitmap.isSet(i) {
			continue
		}

		key := m.store.keyAt(i, &m.rank)
		rawSum := m.store.rawSumAt(i, &m.rank)
		value := *m.store.valuePtr(i)

		insertIntoFresh(&newBm, newStore, &m.rank, key, rawSum, value)
	}

	m.bitmap = newBm
	m.store = newStore
	m.inversedCap = newInversed
}

// insertIntoFresh places one already-known-absent entry into a table being
// built by resize, without the probe or capacity check insert performs: the
// entry is known new, and the target table already has a slot for every
// entry being moved.
func insertIntoFresh[K comparable, V any](bm *bitmap, store slotStore[K, V], r *ranker[K], k K, rawSum uint64, v V) {
	ok := r.orderOf(rawSum)
	mok := home(ok, bm.n)

	j := mok
	if bm.isSet(mok) {
		j = bm.searchFreeBidirV0(mok)
	}

	bm.set(j)
	store.setEntry(j, k, rawSum, v)
	settleSorted(bm, store, r, j)
}

// Rehash rebuilds the table if n is at least as large as the current size;
// smaller requests are ignored. The new capacity is n rounded up to a word
// multiple, but never less than the current capacity: Rehash grows the
// table and does not shrink it (a request below the current capacity
// rebuilds it at its current capacity).
func (m *Map[K, V]) Rehash(n int) {
	if n < m.size {
		return
	}

	newN := roundUpToWord(n)
	if newN == 0 {
		newN = wordBits
	}

	if newN != m.bitmap.n {
		m.resize(newN)
	}
}

// Reserve ensures the table can hold n entries in total (not n on top of
// the current size) without the ordinary load-factor growth trigger firing
// partway through a bulk insert: it
// resizes to ceil(3n/2) slots when that exceeds the current headroom
// (2*(size+1)/3), mirroring the reference reserve()'s formula.
func (m *Map[K, V]) Reserve(n int) {
	if n <= 0 {
		return
	}

	target := (3*n + 1) / 2
	threshold := 2 * (m.size + 1) / 3

	if target <= threshold {
		return
	}

	newN := roundUpToWord(target)
	if newN <= m.bitmap.n {
		return
	}

	m.resize(newN)
}

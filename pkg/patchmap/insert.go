package patchmap

// insert is the Insert component: it finds k if already present, otherwise
// grows the table if needed, claims a free slot near k's home bucket, and
// restores sort order around it with bounded adjacent swaps. newValue is
// only called when k is genuinely new, so callers can defer constructing an
// expensive zero/default value until it's known to be needed.
func (m *Map[K, V]) insert(k K, newValue func() V) (idx int, existed bool) {
	if i, found := m.probe(k); found {
		return i, true
	}

	m.ensureCapacity()

	rawSum := m.rank.hash.Sum(k)
	ok := m.rank.orderOf(rawSum)
	mok := home(ok, m.bitmap.n)

	j, found := m.claimSlot(mok)
	for !found {
		// Pathological run of collisions exhausted the table before the
		// load-factor check would normally trigger; grow and retry.
		m.resize(roundUpToWord(m.growth(m.bitmap.n)))
		mok = home(ok, m.bitmap.n)
		j, found = m.claimSlot(mok)
	}

	m.bitmap.set(j)
	m.store.setEntry(j, k, rawSum, newValue())
	m.size++

	j = settleSorted(&m.bitmap, m.store, &m.rank, j)

	return j, false
}

// claimSlot returns mok itself if free, or the nearest free slot to it
// found by FreeSlotFinder.searchFreeBidirV0. Capacity has just been checked
// by ensureCapacity, so a free slot should exist; ok reports whether one
// was actually found, letting insert fall back to growing the table again
// on the rare occasion it wasn't.
func (m *Map[K, V]) claimSlot(mok int) (slot int, ok bool) {
	if !m.bitmap.isSet(mok) {
		return mok, true
	}

	j := m.bitmap.searchFreeBidirV0(mok)

	return j, j != noSlot
}

// settleSorted performs the two bounded adjacent-swap walks that restore
// P2 (sorted order) after a new entry lands in the nearest free slot rather
// than exactly at its home bucket: first toward lower indices while the
// left neighbor is out of order, then toward higher indices while the right
// neighbor is out of order. It returns the entry's final resting index.
func settleSorted[K comparable, V any](bm *bitmap, store slotStore[K, V], r *ranker[K], j int) int {
	ourRank := store.rankAt(j, r)
	ourKey := store.keyAt(j, r)

	for j > 0 && bm.isSet(j-1) {
		leftRank := store.rankAt(j-1, r)
		leftKey := store.keyAt(j-1, r)

		if !r.isLess(ourKey, ourRank, leftKey, leftRank) {
			break
		}

		store.swap(j, j-1)
		j--
	}

	for j < bm.n-1 && bm.isSet(j+1) {
		rightRank := store.rankAt(j+1, r)
		rightKey := store.keyAt(j+1, r)

		if !r.isLess(rightKey, rightRank, ourKey, ourRank) {
			break
		}

		store.swap(j, j+1)
		j++
	}

	return j
}

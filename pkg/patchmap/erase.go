package patchmap

// eraseAt removes the occupied entry at i, sliding neighbors into the gap
// toward i's own ideal position (its virtualRank, treated as a hole) so
// that P2 (sorted order) still holds afterward, then marks the slot free.
// Ported directly from the reference erase: each loop compares a neighbor's
// real rank against the hole's position-derived virtual rank to decide
// whether the neighbor belongs on the far side of the hole and should slide
// across it.
func (m *Map[K, V]) eraseAt(i int) {
	n := m.bitmap.n

	for i+1 < n && m.bitmap.isSet(i+1) && m.store.rankAt(i+1, &m.rank) < uint64(i)*m.inversedCap {
		m.store.swap(i, i+1)
		i++
	}

	for i > 0 && m.bitmap.isSet(i-1) && m.store.rankAt(i-1, &m.rank) > uint64(i)*m.inversedCap {
		m.store.swap(i, i-1)
		i--
	}

	m.store.clearAt(i)
	m.bitmap.unset(i)
	m.size--
}

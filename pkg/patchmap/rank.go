package patchmap

import "math/bits"

// ranker is the Ranker component: it turns a key into a total-ordered rank
// (order), maps a rank to a home bucket in a table of n slots (home), and
// decides which of two keys with colliding ranks sorts first (less).
type ranker[K comparable] struct {
	hash      Hash[K]
	unhash    Unhasher[K] // nil unless the hash also supports reconstruction
	injective bool
	keyEq     func(a, b K) bool
	less      func(a, b K) bool // only consulted when !injective and ranks collide
}

// order computes the mixed rank H of a key.
func (r *ranker[K]) order(k K) uint64 {
	return mix64(r.hash.Sum(k))
}

// orderOf mixes an already-computed raw Sum (used by the unhash slot store,
// which keeps the raw Sum around instead of the key).
func (r *ranker[K]) orderOf(rawSum uint64) uint64 {
	return mix64(rawSum)
}

// home maps a rank into [0, n) via the high half of a 128-bit multiply --
// the same "long_mul" trick the original uses so that home() is
// approximately the inverse of treating a free slot's position as a
// virtual rank (see (*Map[K,V]).virtualRank).
func home(ok uint64, n int) int {
	if n == 0 {
		return 0
	}

	hi, _ := bits.Mul64(ok, uint64(n))

	return int(hi)
}

// isLess orders two distinct keys given their ranks: ranks decide first,
// and only on a genuine collision does the tie-break comparator run.
func (r *ranker[K]) isLess(a K, oa uint64, b K, ob uint64) bool {
	if oa != ob {
		return oa < ob
	}

	if r.injective {
		// An injective hash cannot collide on distinct keys; equal ranks
		// here mean equal keys, so neither is "less".
		return false
	}

	return r.less(a, b)
}

// sameKey reports whether a stored entry with rank `storedOrder` is the same
// key as k (whose rank is ok). Ranks must already be known equal by the
// caller in the non-injective case to reach here economically, but this
// helper is safe to call unconditionally.
func (r *ranker[K]) sameKey(k K, ok uint64, stored K, storedOrder uint64) bool {
	if ok != storedOrder {
		return false
	}

	if r.injective {
		return true
	}

	return r.keyEq(k, stored)
}

// inverseCapacity computes the scaling constant used to project a free
// slot's position into the same H domain real ranks live in, so that
// comparisons between "this slot is free, its virtual rank is roughly here"
// and "this slot holds a key whose real rank is X" are meaningful. This
// mirrors the original's inverse(n): an approximate reciprocal of n scaled
// to the width of H, with a +1 nudge when n is an exact power of two to
// compensate for the truncation in the division.
func inverseCapacity(n int) uint64 {
	if n == 0 {
		return 0
	}

	inv := ^uint64(0) / uint64(n)
	if n&(n-1) == 0 { // power of two
		inv++
	}

	return inv
}

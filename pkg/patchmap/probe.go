package patchmap

import "math/bits"

// probeWidthThreshold is the bracket width below which probe gives up on
// interpolation and falls back to plain midpoint narrowing: below this width
// the interpolation estimate's variance costs more than a couple of extra
// comparisons would.
const probeWidthThreshold = 8

// probe is the Probe component: it locates k's slot, or the position it
// would occupy if present. The bucket array is kept sorted by virtualRank
// (real rank for occupied slots, a position-derived approximation for free
// ones, both on the same H scale -- see (*Map[K,V]).virtualRank), so probe
// reduces to a lower-bound search: find the leftmost slot whose virtualRank
// is >= ok, then confirm against any occupied run that happens to share
// exactly that rank.
func (m *Map[K, V]) probe(k K) (idx int, found bool) {
	n := m.bitmap.n
	if n == 0 {
		return 0, false
	}

	ok := m.rank.order(k)
	lo, hi := m.lowerBound(ok, 0, n)

	for i := lo; i < hi && i < n && m.bitmap.isSet(i); i++ {
		storedOrder := m.store.rankAt(i, &m.rank)
		if storedOrder != ok {
			break
		}

		if m.rank.sameKey(k, ok, m.store.keyAt(i, &m.rank), storedOrder) {
			return i, true
		}
	}

	return lo, false
}

// lowerBound finds the leftmost index in [lo, hi) whose virtualRank is >=
// ok, narrowing the interval by interpolated midpoint estimates while it's
// wide and falling back to plain bisection once it's narrow. hi is returned
// unchanged; it's only useful to probe's caller as a scan ceiling.
func (m *Map[K, V]) lowerBound(ok uint64, lo, hi int) (int, int) {
	ceiling := hi

	for hi-lo >= probeWidthThreshold {
		loR := m.virtualRank(lo)
		hiR := m.virtualRank(hi - 1)

		var mid int
		switch {
		case ok <= loR:
			mid = lo
		case ok >= hiR:
			mid = hi - 1
		case hiR == loR:
			mid = lo + (hi-lo)/2
		default:
			mid = interpolateMid(lo, hi-1, ok, loR, hiR)
		}

		if m.virtualRank(mid) < ok {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	for hi-lo > 0 {
		mid := lo + (hi-lo)/2
		if m.virtualRank(mid) < ok {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo, ceiling
}

// interpolateMid estimates where ok would fall between lo and hi assuming a
// roughly linear distribution of ranks across the interval, using a 128-bit
// intermediate product (via bits.Mul64/Div64) so the estimate doesn't
// overflow for wide intervals or ranks near the top of the H range.
func interpolateMid(lo, hi int, ok, loR, hiR uint64) int {
	span := uint64(hi - lo)
	num := ok - loR
	den := hiR - loR

	hiProd, loProd := bits.Mul64(span, num)
	if hiProd >= den {
		// would overflow a 64-bit quotient; den is tiny relative to the
		// product, so the estimate is effectively at the far end anyway.
		return hi
	}

	q, _ := bits.Div64(hiProd, loProd, den)
	mid := lo + int(q)

	if mid < lo {
		mid = lo
	}

	if mid > hi {
		mid = hi
	}

	return mid
}

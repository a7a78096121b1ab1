// Package patchmap implements an open-addressed associative container whose
// bucket array is kept sorted by an internal rank derived from each key's
// hash. Sorting the buckets lets lookups use interpolation search instead of
// a blind linear probe, which is what gives the container its name: entries
// are "patched" into position with a bounded number of adjacent swaps on
// insert, and slid back out the same way on erase.
//
// # Basic Usage
//
//	m, err := patchmap.New[string, int]()
//	m.Set("a", 1)
//	m.Set("b", 2)
//
//	if v, ok := m.Get("a"); ok {
//		fmt.Println(v) // 1
//	}
//
//	m.Delete("a")
//
//	for k, v := range m.All() {
//		fmt.Println(k, v)
//	}
//
// Construction takes functional options when the defaults don't fit:
//
//	m, err := patchmap.New[uint64, []byte](
//		patchmap.WithHash[uint64, []byte](patchmap.IdentityHash{}),
//		patchmap.WithInitialCapacity[uint64, []byte](4096),
//	)
//
// # Concurrency
//
// A Map is not safe for concurrent use. There is no internal locking, and
// none is added by any wrapper in this package -- callers needing concurrent
// access must synchronize externally (a sync.RWMutex around a Map is the
// usual shape).
//
// # Error Handling
//
// Lookups that can legitimately miss report it without an error: Get
// returns an ok bool and Count returns 0. At returns a KeyNotFoundError carrying the missed key
// instead, for call sites that prefer the error-returning idiom; check for
// it with errors.Is(err, patchmap.ErrKeyNotFound). New itself can fail --
// ErrTieBreakRequired
// -- only when a non-injective Hash is supplied without a WithLess
// tie-breaker; every other operation on a constructed Map cannot fail.
package patchmap

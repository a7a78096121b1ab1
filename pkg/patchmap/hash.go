package patchmap

import "hash/maphash"

// Hash produces the 64-bit rank input for a key. It need not be
// well-distributed on its own -- the Ranker mixes its output before using it
// as a sort rank -- but it must be deterministic for a given key within the
// lifetime of a Map.
type Hash[K any] interface {
	Sum(k K) uint64
}

// Unhasher lets a Hash reconstruct a key from its own Sum output. A Hash that
// implements Unhasher and reports Injective() == true enables the "store the
// hash instead of the key" slot layout: useful when H is cheaper to store
// than K, or when K is derived data that would otherwise need to be kept
// around only to be hashed again.
type Unhasher[K any] interface {
	Unhash(h uint64) K
}

// injective is implemented by a Hash that guarantees no two distinct keys
// ever produce the same Sum. Without this guarantee the map falls back to a
// caller-supplied tie-break comparator whenever two keys collide on rank.
type injective interface {
	Injective() bool
}

// comparableHash is the default Hash for any comparable K, built on the
// standard library's seeded, allocation-free maphash.Comparable. It is not
// injective: maphash.Comparable only promises good distribution, not a
// bijection.
type comparableHash[K comparable] struct {
	seed maphash.Seed
}

func newComparableHash[K comparable]() comparableHash[K] {
	return comparableHash[K]{seed: maphash.MakeSeed()}
}

func (h comparableHash[K]) Sum(k K) uint64 {
	return maphash.Comparable(h.seed, k)
}

// IdentityHash is an injective, invertible Hash[uint64]: it hashes a uint64
// key to itself. Pairing it with WithHash demonstrates the unhash slot
// optimization -- the map stores the uint64 alone and reconstructs the key
// (itself) on demand, which is a no-op here but exercises the same code path
// a real injective hash (e.g. a dense integer ID or an already-random
// fixed-width token) would.
type IdentityHash struct{}

func (IdentityHash) Sum(k uint64) uint64 { return k }

func (IdentityHash) Unhash(h uint64) uint64 { return h }

func (IdentityHash) Injective() bool { return true }

var (
	_ Hash[uint64]     = IdentityHash{}
	_ Unhasher[uint64] = IdentityHash{}
	_ injective        = IdentityHash{}
)

// mix64 is the Ranker's distribution finalizer (the role patchmap.hpp's
// clmul_circ-based distribute() plays): it takes a Hash's raw Sum output,
// which may be low-entropy (IdentityHash passes the key straight through),
// and scrambles it into a rank with good avalanche properties before it is
// used for ordering or home-bucket placement. This is the widely used
// splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

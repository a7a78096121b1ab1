package patchmap

// Option configures a Map at construction time. Options are applied in the
// order they are passed to New.
//
// A single Options struct cannot carry these fields cleanly because several
// of them (WithHash, WithEqual, WithLess) are functions parameterized over
// the map's own K, and a struct literal can't express "a field whose type
// depends on the type parameters of the struct it's being built for" any
// more conveniently than a constructor function already does. Functional
// options sidestep that without losing the self-documenting call sites an
// Options struct gives you.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	hash            Hash[K]
	keyEq           func(a, b K) bool
	less            func(a, b K) bool
	initialCapacity int
	loadFactorNum   uint64
	loadFactorDen   uint64
	growth          func(oldCapacity int) int
}

func defaultConfig[K comparable, V any]() config[K, V] {
	return config[K, V]{
		hash:          newComparableHash[K](),
		keyEq:         func(a, b K) bool { return a == b },
		loadFactorNum: 7,
		loadFactorDen: 8,
		growth:        defaultGrowth,
	}
}

// WithInitialCapacity starts the table at n slots, rounded up to a word
// multiple, instead of at zero. The load-factor trigger still applies, so
// the table grows once it is 7/8 full by default, before all n slots are
// used.
func WithInitialCapacity[K comparable, V any](n int) Option[K, V] {
	return func(c *config[K, V]) { c.initialCapacity = n }
}

// WithHash overrides the default Hash, which otherwise uses
// hash/maphash.Comparable with a fresh random seed per Map. If the supplied
// Hash also implements Unhasher[K] and reports Injective() == true, the map
// switches to the hash-only slot layout and stops requiring WithLess.
func WithHash[K comparable, V any](h Hash[K]) Option[K, V] {
	return func(c *config[K, V]) { c.hash = h }
}

// WithEqual overrides the default == based key equality. Only used by the
// non-injective path, where a rank match still has to be confirmed against
// the actual key.
func WithEqual[K comparable, V any](eq func(a, b K) bool) Option[K, V] {
	return func(c *config[K, V]) { c.keyEq = eq }
}

// WithLess supplies the tie-break total order consulted when two distinct
// keys collide on rank under a non-injective Hash. Required when such a
// Hash is supplied with WithHash; New returns ErrTieBreakRequired if it's
// missing. The default Hash does not require it.
func WithLess[K comparable, V any](less func(a, b K) bool) Option[K, V] {
	return func(c *config[K, V]) { c.less = less }
}

// WithLoadFactor overrides the default 7/8 growth trigger: once
// size*den >= capacity*num, the table grows before the next insert.
func WithLoadFactor[K comparable, V any](num, den uint64) Option[K, V] {
	return func(c *config[K, V]) { c.loadFactorNum, c.loadFactorDen = num, den }
}

// WithGrowth overrides the default growth policy (double below 257 slots,
// then by 47/31, always rounded up to a word multiple). fn receives the
// current capacity and returns the new one; the result is still rounded up
// to a word multiple by the caller.
func WithGrowth[K comparable, V any](fn func(oldCapacity int) int) Option[K, V] {
	return func(c *config[K, V]) { c.growth = fn }
}

func defaultGrowth(oldCapacity int) int {
	if oldCapacity == 0 {
		return wordBits
	}

	if oldCapacity < 257 {
		return oldCapacity * 2
	}

	return int(uint64(oldCapacity) * 47 / 31)
}

func roundUpToWord(n int) int {
	return (n + wordBits - 1) &^ (wordBits - 1)
}

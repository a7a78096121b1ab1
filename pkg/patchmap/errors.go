package patchmap

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is the sentinel wrapped by KeyNotFoundError. Check for it
// with errors.Is rather than comparing a KeyNotFoundError directly, since
// the key type makes the concrete error type vary per Map instantiation.
var ErrKeyNotFound = errors.New("patchmap: key not found")

// KeyNotFoundError is returned by At when the requested key is absent. It
// carries the key that was looked up, for callers that want to report it.
type KeyNotFoundError[K any] struct {
	Key K
}

func (e KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("patchmap: key not found: %v", e.Key)
}

func (e KeyNotFoundError[K]) Unwrap() error {
	return ErrKeyNotFound
}

// ErrTieBreakRequired is returned by New when a Hash supplied with WithHash
// is not injective and no WithLess comparator was supplied. A non-injective hash
// can, in principle, collide two distinct keys onto the same rank; without a
// total-order tie-break the map has no way to place them relative to each
// other.
var ErrTieBreakRequired = errors.New("patchmap: WithLess is required for a non-injective Hash")

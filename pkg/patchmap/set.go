package patchmap

// Set is a thin wrapper over Map[K, struct{}] for callers that only need
// membership, not an associated value -- the same map[K]struct{} idiom Go
// code reaches for when there's no map[K]V at hand, just built on the
// sorted container instead of the runtime's builtin map.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet constructs an empty Set. Options are the same ones New accepts,
// minus the value type parameter.
func NewSet[K comparable](opts ...Option[K, struct{}]) (*Set[K], error) {
	m, err := New[K, struct{}](opts...)
	return &Set[K]{m: m}, err
}

// Add inserts k, reporting whether it was newly added (false if it was
// already present).
func (s *Set[K]) Add(k K) bool {
	return s.m.Insert(k, struct{}{})
}

// Contains reports whether k is present.
func (s *Set[K]) Contains(k K) bool {
	return s.m.Count(k) == 1
}

// Remove deletes k, reporting whether it was present.
func (s *Set[K]) Remove(k K) bool {
	return s.m.Delete(k)
}

// Len returns the number of elements.
func (s *Set[K]) Len() int { return s.m.Len() }

// Clear removes every element.
func (s *Set[K]) Clear() { s.m.Clear() }

// All returns an iter.Seq-shaped iterator yielding each element, alone, in
// ascending rank order.
func (s *Set[K]) All() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		for it := s.m.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

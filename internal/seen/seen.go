// Package seen is a set of identifiers that reports repeat insertions.
package seen

// Set remembers identifiers it has been given.
// The zero value is ready to use.
type Set[T comparable] struct {
	index map[T]struct{}
}

// New returns an empty set sized for n elements.
func New[T comparable](n int) *Set[T] {
	return &Set[T]{index: make(map[T]struct{}, n)}
}

// Insert adds v if absent and reports whether it was already present.
func (s *Set[T]) Insert(v T) (present bool) {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	if _, ok := s.index[v]; ok {
		return true
	}
	s.index[v] = struct{}{}
	return false
}

// Contains reports whether v has been inserted.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct elements.
func (s *Set[T]) Len() int { return len(s.index) }

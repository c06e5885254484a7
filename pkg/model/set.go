package model

// Set is an insertion-ordered set of identifiers. Iteration over Values
// always yields members in the order they were first added, which keeps
// downstream rankings reproducible.
type Set struct {
	order   []string
	members map[string]struct{}
}

// NewSet creates a set containing the given values.
func NewSet(values ...string) *Set {
	s := &Set{members: make(map[string]struct{})}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value. Returns false if it was already present.
func (s *Set) Add(v string) bool {
	if _, ok := s.members[v]; ok {
		return false
	}
	s.members[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Contains reports whether v is a member.
func (s *Set) Contains(v string) bool {
	_, ok := s.members[v]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.order)
}

// Values returns the members in insertion order.
func (s *Set) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Intersect returns the members present in both sets, ordered by this
// set's insertion order.
func (s *Set) Intersect(other *Set) *Set {
	out := NewSet()
	for _, v := range s.order {
		if other.Contains(v) {
			out.Add(v)
		}
	}
	return out
}

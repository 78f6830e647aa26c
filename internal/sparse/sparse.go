// Package sparse provides a sparse set for O(1) membership testing over a
// bounded universe of uint32 values.
//
// The determinizer uses it to deduplicate NFA state ids while computing
// epsilon-closures and symbol moves: Insert/Contains are O(1), Clear is O(1),
// and the dense array gives allocation-free iteration over the members.
package sparse

// Set is a set of uint32 values below a fixed capacity.
// It keeps a sparse array (value → index) for membership testing and a dense
// array holding the members themselves.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a set able to hold values in [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set. Inserting a present value is a no-op.
// Values at or above the capacity are out of contract; Insert will panic on
// them via the slice bounds check.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
}

// Contains reports whether the value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < uint32(len(s.dense)) && s.dense[idx] == value
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order.
// The slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}

// Clear empties the set in O(1) time.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

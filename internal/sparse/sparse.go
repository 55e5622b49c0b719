// Package sparse provides a sparse set data structure for O(1) membership
// testing and insertion-order iteration.
//
// The Pike-style ordered NFA (package pike) uses SparseSet to deduplicate
// bytecode program-counter values across a thread list: a PC can appear in
// a step's thread list at most once, and the *first* time it is inserted
// wins (it came from the higher-priority thread), which is exactly the
// "shadowing" rule the ordered NFA relies on for greedy/lazy priority.
package sparse

// SparseSet is a set of uint32 values (bytecode PCs, in this module's use)
// supporting O(1) Insert/Contains/Remove/Clear while preserving insertion
// order for iteration via Values/Iter.
//
// The classic sparse-set trick: sparse[v] is only meaningful when it points
// back into dense at an index < size whose value is v. Values outside that
// invariant are garbage and ignored, which is what makes Clear O(1).
type SparseSet struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

const defaultSparseCapacity = 64

// NewSparseSet creates a sparse set that can hold values in [0, capacity).
// A capacity of 0 defaults to 64.
func NewSparseSet(capacity uint32) *SparseSet {
	if capacity == 0 {
		capacity = defaultSparseCapacity
	}
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Capacity returns the maximum value (exclusive) the set can hold.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Len returns the number of elements currently in the set.
func (s *SparseSet) Len() int {
	return int(s.size)
}

// Size is an alias for Len.
func (s *SparseSet) Size() int {
	return s.Len()
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return s.size == 0
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Insert adds value to the set. It returns true if the value was newly
// inserted, false if it was already present (or out of range).
func (s *SparseSet) Insert(value uint32) bool {
	if value >= uint32(len(s.sparse)) || s.Contains(value) {
		return false
	}
	s.sparse[value] = s.size
	if int(s.size) < len(s.dense) {
		s.dense[s.size] = value
	} else {
		s.dense = append(s.dense, value)
	}
	s.size++
	return true
}

// Remove deletes value from the set, if present.
func (s *SparseSet) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}
	idx := s.sparse[value]
	last := s.dense[s.size-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.size--
}

// Clear empties the set in O(1) time.
func (s *SparseSet) Clear() {
	s.size = 0
}

// Values returns the elements currently in the set, in insertion order.
// The slice is valid until the next mutating call.
func (s *SparseSet) Values() []uint32 {
	return s.dense[:s.size]
}

// Iter calls f once for every element, in insertion order.
func (s *SparseSet) Iter(f func(uint32)) {
	for _, v := range s.dense[:s.size] {
		f(v)
	}
}

// MemoryUsage returns an estimate of the set's heap footprint in bytes.
func (s *SparseSet) MemoryUsage() int {
	return len(s.sparse)*4 + cap(s.dense)*4
}

// Resize changes the set's capacity. Growing preserves existing elements;
// shrinking (or resizing to the same capacity) clears the set, since the
// sparse array can no longer be trusted to address every prior value. A
// size of 0 defaults to 64, matching NewSparseSet.
func (s *SparseSet) Resize(capacity uint32) {
	if capacity == 0 {
		capacity = defaultSparseCapacity
	}
	if capacity > uint32(len(s.sparse)) {
		grown := make([]uint32, capacity)
		copy(grown, s.sparse)
		s.sparse = grown
		return
	}
	s.sparse = make([]uint32, capacity)
	s.dense = s.dense[:0]
	s.size = 0
}

// Clone returns an independent copy of the set.
func (s *SparseSet) Clone() *SparseSet {
	clone := &SparseSet{
		sparse: make([]uint32, len(s.sparse)),
		dense:  make([]uint32, len(s.dense)),
		size:   s.size,
	}
	copy(clone.sparse, s.sparse)
	copy(clone.dense, s.dense)
	return clone
}

// SparseSets bundles the two thread lists a Pike VM alternates between on
// successive input steps ("current" and "next"), so a step can populate
// one while draining the other and then swap without reallocating.
type SparseSets struct {
	Set1 *SparseSet
	Set2 *SparseSet
}

// NewSparseSets creates a pair of sparse sets, each with the given capacity.
func NewSparseSets(capacity uint32) *SparseSets {
	return &SparseSets{
		Set1: NewSparseSet(capacity),
		Set2: NewSparseSet(capacity),
	}
}

// Swap exchanges Set1 and Set2.
func (ss *SparseSets) Swap() {
	ss.Set1, ss.Set2 = ss.Set2, ss.Set1
}

// Clear empties both sets.
func (ss *SparseSets) Clear() {
	ss.Set1.Clear()
	ss.Set2.Clear()
}

// Resize resizes both sets to the given capacity.
func (ss *SparseSets) Resize(capacity uint32) {
	ss.Set1.Resize(capacity)
	ss.Set2.Resize(capacity)
}

// MemoryUsage returns the combined heap footprint of both sets.
func (ss *SparseSets) MemoryUsage() int {
	return ss.Set1.MemoryUsage() + ss.Set2.MemoryUsage()
}

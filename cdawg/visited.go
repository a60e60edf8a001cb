package cdawg

import "github.com/coregx/cdawgindex/internal/sparse"

// visitedSet tracks visited node ids during a single traversal (freeze,
// DebugString, NodeCount), backed by a sparse.SparseSet so that repeated
// DFS calls over the same arena never pay for a full map allocation.
type visitedSet struct {
	s *sparse.SparseSet
}

// newVisitedSet creates a visitedSet sized for node ids in [0, capacity).
func newVisitedSet(capacity uint32) *visitedSet {
	return &visitedSet{s: sparse.NewSparseSet(capacity)}
}

// insert records id as visited and reports whether it was newly added
// (false means the caller has already seen id and should not recurse).
func (v *visitedSet) insert(id uint32) bool {
	if v.s.Contains(id) {
		return false
	}
	v.s.Insert(id)
	return true
}

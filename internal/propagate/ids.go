package propagate

// IDs hands out strictly increasing rectangle identifiers for one top-level
// solve. The search driver threads a single IDs through every recursive
// branch: a branch board inherits its parent's placements, so a shared
// counter guarantees a new rectangle never reuses an ID already on that
// board. The canonicalizer relabels IDs, so their actual values never
// reach the output.
type IDs struct{ next int }

// NewIDs returns an allocator with no rectangles issued yet.
func NewIDs() *IDs { return &IDs{} }

// Next returns the next unused rectangle ID, starting at 1.
func (a *IDs) Next() int {
	a.next++
	return a.next
}

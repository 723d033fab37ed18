package fdr

import (
	"slices"

	"github.com/corey/fdrizer/internal/ports"
)

// Comparator orders two items along one scoring dimension. It returns a
// negative number when a ranks ahead of b, positive when b ranks ahead of a
// and zero when the dimension cannot tell them apart.
type Comparator[T any] func(a, b T) int

// RankedList is a permutation of arena indices under one comparator.
// Ties are broken decoy before target, then by input order, so a list is
// reproducible regardless of how the items were supplied or sorted before.
// A RankedList is immutable once built and safe to share between sweeps.
type RankedList struct {
	order []int32
}

// Cursor bounds the undecided region [Front, Back] of one RankedList.
// Items before Front are tentatively taken, items after Back tentatively dropped.
// Invariant: Front <= Back+1.
type Cursor struct {
	Front int
	Back  int
}

// Undecided returns the number of items between the cursors.
func (c Cursor) Undecided() int {
	if n := c.Back - c.Front + 1; n > 0 {
		return n
	}
	return 0
}

// Build ranks the arena indices 0..len(labels)-1 with cmp, which compares two
// arena indices. Comparator ties put decoys first; full ties keep input order.
// A cmp that is not a strict weak ordering still yields some deterministic order.
func Build(labels []ports.Label, cmp func(i, j int) int) RankedList {
	order := make([]int32, len(labels))
	for i := range order {
		order[i] = int32(i)
	}
	slices.SortStableFunc(order, func(a, b int32) int {
		if c := cmp(int(a), int(b)); c != 0 {
			return c
		}
		// Target is 0 and Decoy is 1: reversed label order puts decoys first.
		return int(labels[b]) - int(labels[a])
	})
	return RankedList{order: order}
}

// Rank builds the RankedList of items under one comparator.
func Rank[T ports.Labeled](items []T, cmp Comparator[T]) RankedList {
	return Build(Labels(items), func(i, j int) int { return cmp(items[i], items[j]) })
}

// FromOrder wraps an existing permutation of arena indices. The slice is copied.
func FromOrder(order []int32) RankedList {
	return RankedList{order: slices.Clone(order)}
}

// Len returns the number of ranked items.
func (l RankedList) Len() int { return len(l.order) }

// At returns the arena index at rank i.
func (l RankedList) At(i int) int { return int(l.order[i]) }

// Order returns a copy of the ranked arena indices.
func (l RankedList) Order() []int32 { return slices.Clone(l.order) }

// Reset returns the initial cursor of the list: everything undecided.
// An empty list yields {0, -1}.
func (l RankedList) Reset() Cursor {
	return Cursor{Front: 0, Back: len(l.order) - 1}
}

package fdr

import (
	"cmp"

	"github.com/corey/fdrizer/internal/ports"
)

// Fused is the consensus ranking derived from several RankedLists.
type Fused struct {
	List RankedList

	// Scores holds the fused decoy-survival score per arena index.
	Scores []float64
}

// Fuse combines lists by decoy survival. For each list holding D > 0 decoys,
// an item at a position where cd decoys have been seen so far (itself
// included) earns 1 - cd/D. Scores are summed across lists and the result is
// ranked by descending score, decoys first on ties, then input order.
//
// The ranking follows each item's position under decoy pressure rather than
// any one classifier's score scale.
func Fuse(labels []ports.Label, lists []RankedList) Fused {
	scores := make([]float64, len(labels))
	for _, l := range lists {
		total := 0
		for _, idx := range l.order {
			if labels[idx].IsDecoy() {
				total++
			}
		}
		if total == 0 {
			continue
		}
		seen := 0
		for _, idx := range l.order {
			if labels[idx].IsDecoy() {
				seen++
			}
			scores[idx] += 1 - float64(seen)/float64(total)
		}
	}
	list := Build(labels, func(i, j int) int { return cmp.Compare(scores[j], scores[i]) })
	return Fused{List: list, Scores: scores}
}

// Consensus runs Forward over the fused ranking of lists.
func Consensus(labels []ports.Label, lists []RankedList, desired float64) []int32 {
	return Forward(labels, Fuse(labels, lists).List, desired)
}

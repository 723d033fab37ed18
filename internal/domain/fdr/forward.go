package fdr

import "github.com/corey/fdrizer/internal/ports"

// Forward walks list from the head, keeping running target and decoy counts.
// A target that keeps decoys/targets within desired confirms itself and every
// item deferred since the last confirmation; any other item is deferred.
// Items still deferred at the end are dropped.
//
// Acceptance is lazy: a stretch that pushes the rate above desired is
// forgiven once a later target brings it back within bound. The result is
// either empty or satisfies the bound, and keeps ranked order.
func Forward(labels []ports.Label, list RankedList, desired float64) []int32 {
	var (
		targets, decoys int
		kept, pending   []int32
	)
	for _, idx := range list.order {
		if labels[idx].IsDecoy() {
			decoys++
			pending = append(pending, idx)
			continue
		}
		targets++
		if Rate(decoys, targets) > desired {
			pending = append(pending, idx)
			continue
		}
		kept = append(kept, pending...)
		kept = append(kept, idx)
		pending = pending[:0]
	}
	return kept
}

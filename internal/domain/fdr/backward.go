package fdr

import "github.com/corey/fdrizer/internal/ports"

// Backward starts with every item included and shaves decoy-heavy tails off
// the lists until the included set fits desired.
//
// Each round looks, for every list, at the run behind its back cursor that
// ends after window non-decoys and counts its decoys. The list with the most
// decoys loses window+decoys-1 items from its back cursor. When no list has a
// decoy within reach the window grows by one. The search stops once the rate
// fits, the window reaches the item count or the round cap is hit.
//
// It returns the included set in input order, or nil if the final set is not
// valid, including when shaving leaves no target.
func Backward(labels []ports.Label, lists []RankedList, desired float64) []int32 {
	return backward(labels, lists, desired, DefaultMaxRounds)
}

func backward(labels []ports.Label, lists []RankedList, desired float64, maxRounds int) []int32 {
	s := newSweep(labels, lists)
	s.addAll()

	window := 1
	for round := 0; round < maxRounds && window < len(labels); round++ {
		if Rate(s.decoys, s.targets) <= desired {
			break
		}
		best, bestDecoys := -1, 0
		for k := range lists {
			if d := s.tailDecoys(k, window); d > bestDecoys {
				best, bestDecoys = k, d
			}
		}
		if best < 0 {
			window++
			continue
		}
		s.shave(best, window+bestDecoys-1)
	}

	if !Valid(s.decoys, s.targets, desired) {
		return nil
	}
	return s.collect()
}

// tailDecoys counts the decoys met walking list k from its back cursor towards
// the front until budget non-decoys have been passed.
func (s *sweep) tailDecoys(k, budget int) int {
	order, c := s.lists[k].order, s.cursors[k]
	n := 0
	for i := c.Back; budget > 0 && i > c.Front; i-- {
		if s.labels[order[i]].IsDecoy() {
			n++
		} else {
			budget--
		}
	}
	return n
}

// shave drops up to count items from the back of list k.
func (s *sweep) shave(k, count int) {
	order, c := s.lists[k].order, &s.cursors[k]
	for ; count > 0 && c.Back >= 0; count-- {
		s.remove(order[c.Back])
		c.Back--
	}
}

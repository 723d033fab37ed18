package fdr

import "github.com/corey/fdrizer/internal/ports"

// TwoPointer advances, round by round, a front pointer over targets and a back
// pointer over decoys on every list, sharing one decision state between the
// lists: items crossed by a front pointer are added, items crossed by a back
// pointer are removed, and a removed item stays out even if another list adds it.
//
// Each round every list reports the furthest cursor pair that gives the best
// net target gain while the running rate stays within desired. Only the list
// with the largest total advance moves, and only by half of it (rounded up) on
// each side: lists interact through the shared state, and a full jump to one
// list's local optimum tends to overshoot once the others catch up.
//
// It returns the included items in input order, or nil if the final set is
// not valid.
func TwoPointer(labels []ports.Label, lists []RankedList, desired float64) []int32 {
	out, _ := twoPointer(labels, lists, desired, DefaultMaxRounds)
	return out
}

func twoPointer(labels []ports.Label, lists []RankedList, desired float64, maxRounds int) ([]int32, []Cursor) {
	s := newSweep(labels, lists)

	for round := 0; round < maxRounds; round++ {
		best, bestAdvance := -1, 0
		var bestFront, bestBack int
		for k := range lists {
			front, back := s.reach(k, desired)
			c := s.cursors[k]
			if advance := (c.Back - back) + (front - c.Front); advance > bestAdvance {
				best, bestAdvance = k, advance
				bestFront, bestBack = front, back
			}
		}
		if best < 0 {
			break
		}
		s.step(best, bestFront, bestBack)
	}

	if !Valid(s.decoys, s.targets, desired) {
		return nil, s.cursors
	}
	return s.collect(), s.cursors
}

// reach simulates the two pointers of list k without touching the state and
// returns the best (front, back) pair seen.
//
// The front pointer passes targets freely. A front decoy waits for the back
// pointer: a back decoy is dropped alone, a back target is traded together
// with the front decoy.
func (s *sweep) reach(k int, desired float64) (front, back int) {
	order, c := s.lists[k].order, s.cursors[k]
	var addedTargets, removedTargets, addedDecoys, removedDecoys int

	head, tail := c.Front, c.Back
	front, back = c.Front, c.Back
	bestGain := 0
	for tail > head {
		gain := addedTargets - removedTargets
		if gain >= bestGain && within(s.decoys+addedDecoys-removedDecoys, s.targets+gain, desired) {
			bestGain, front, back = gain, head, tail
		}

		h := order[head]
		if s.labels[h].IsTarget() {
			if s.undecided(h) {
				addedTargets++
			}
			head++
			continue
		}
		t := order[tail]
		if s.labels[t].IsDecoy() {
			if s.included(t) {
				removedDecoys++
			}
			tail--
			continue
		}
		if s.undecided(h) {
			addedDecoys++
		}
		if s.included(t) {
			removedTargets++
		}
		head++
		tail--
	}
	return front, back
}

// step moves the cursors of list k half way (rounded up) towards front and back.
func (s *sweep) step(k, front, back int) {
	order, c := s.lists[k].order, &s.cursors[k]
	for n := (front - c.Front + 1) / 2; n > 0; n-- {
		s.add(order[c.Front])
		c.Front++
	}
	for n := (c.Back - back + 1) / 2; n > 0; n-- {
		s.remove(order[c.Back])
		c.Back--
	}
}

// within is the strict form of the bound used while simulating: a set with no
// targets never qualifies.
func within(decoys, targets int, desired float64) bool {
	return targets > 0 && float64(decoys)/float64(targets) <= desired
}

package fdr

import "github.com/corey/fdrizer/internal/ports"

// decision flags of one item within a sweep.
type decision uint8

const (
	added decision = 1 << iota
	removed
)

// sweep is the private state of one heuristic run: a cursor per list and the
// per-item decision flags. It is built fresh for every run, so concurrent runs
// over the same lists never share mutable state.
//
// An item is included when it is added and not removed. targets/decoys
// always count the included items.
type sweep struct {
	labels  []ports.Label
	lists   []RankedList
	cursors []Cursor
	flags   []decision
	targets int
	decoys  int
}

func newSweep(labels []ports.Label, lists []RankedList) *sweep {
	s := &sweep{
		labels:  labels,
		lists:   lists,
		cursors: make([]Cursor, len(lists)),
		flags:   make([]decision, len(labels)),
	}
	for k, l := range lists {
		s.cursors[k] = l.Reset()
	}
	return s
}

func (s *sweep) included(idx int32) bool {
	return s.flags[idx]&(added|removed) == added
}

func (s *sweep) undecided(idx int32) bool {
	return s.flags[idx] == 0
}

func (s *sweep) tally(idx int32, delta int) {
	if s.labels[idx].IsTarget() {
		s.targets += delta
	} else {
		s.decoys += delta
	}
}

// add marks idx added. Removed items stay excluded.
func (s *sweep) add(idx int32) {
	if s.flags[idx] == 0 {
		s.tally(idx, 1)
	}
	s.flags[idx] |= added
}

// remove marks idx removed, excluding it for the rest of the run.
func (s *sweep) remove(idx int32) {
	if s.included(idx) {
		s.tally(idx, -1)
	}
	s.flags[idx] |= removed
}

// addAll starts the run with every item included.
func (s *sweep) addAll() {
	for i := range s.flags {
		s.add(int32(i))
	}
}

// collect returns the included arena indices in input order.
func (s *sweep) collect() []int32 {
	out := make([]int32, 0, s.targets+s.decoys)
	for i := range s.flags {
		if s.included(int32(i)) {
			out = append(out, int32(i))
		}
	}
	return out
}

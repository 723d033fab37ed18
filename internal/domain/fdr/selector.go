package fdr

import (
	"context"
	"sync"

	"github.com/corey/fdrizer/internal/ports"
)

// Heuristic names one sweep strategy.
type Heuristic string

// Heuristic names reported in Candidate and Result.Winner.
const (
	HeuristicForward    Heuristic = "forward"
	HeuristicBackward   Heuristic = "backward"
	HeuristicTwoPointer Heuristic = "two-pointer"
	HeuristicConsensus  Heuristic = "consensus"
)

// Heuristics lists every strategy in the order the selector prefers them on ties.
var Heuristics = []Heuristic{HeuristicForward, HeuristicBackward, HeuristicTwoPointer, HeuristicConsensus}

// Candidate is the subset one heuristic proposed.
type Candidate struct {
	Heuristic Heuristic
	List      int // comparator list for HeuristicForward, -1 otherwise
	Indices   []int32
	Targets   int
	Decoys    int
	Valid     bool
}

// Size returns the candidate's cardinality.
func (c Candidate) Size() int { return len(c.Indices) }

// FDR returns the candidate's decoy/target ratio.
func (c Candidate) FDR() float64 { return Rate(c.Decoys, c.Targets) }

func newCandidate(labels []ports.Label, h Heuristic, list int, indices []int32, desired float64) Candidate {
	t, d := Count(labels, indices)
	return Candidate{
		Heuristic: h,
		List:      list,
		Indices:   indices,
		Targets:   t,
		Decoys:    d,
		Valid:     Valid(d, t, desired),
	}
}

// Impact is the position of one list's cursors after the two-pointer run,
// as fractions of the list length. Lists that drove the selection end with
// Front well above zero or Back well below one.
type Impact struct {
	List  int
	Front float64
	Back  float64
}

// Result is the outcome of one Select call.
type Result[T any] struct {
	// Items is the chosen subset (empty when no candidate qualified).
	Items []T
	// Indices are the arena indices of Items.
	Indices []int32
	// Winner is the heuristic that produced Items, empty when none qualified.
	Winner Heuristic
	// Targets and Decoys count the chosen subset.
	Targets int
	Decoys  int
	// Candidates lists every proposal: one forward candidate per comparator,
	// then backward, two-pointer and consensus.
	Candidates []Candidate
	// Impact reports where each comparator list's cursors ended in the
	// two-pointer run; the last entry is the consensus list.
	Impact []Impact
	// Consensus holds the fused score of every item, by arena index.
	Consensus []float64
}

// FDR returns the decoy/target ratio of the chosen subset.
func (r Result[T]) FDR() float64 { return Rate(r.Decoys, r.Targets) }

// SelectorOptions tunes a Selector.
type SelectorOptions struct {
	// Parallel runs the heuristics on separate goroutines.
	Parallel bool
	// MaxRounds caps the iterative heuristics; 0 means DefaultMaxRounds.
	MaxRounds int
}

// Selector runs every heuristic and keeps the largest valid candidate.
// A Selector holds no per-call state and is safe for concurrent use.
type Selector[T ports.Labeled] struct {
	opts SelectorOptions
}

// NewSelector creates a Selector.
func NewSelector[T ports.Labeled](opts SelectorOptions) *Selector[T] {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	return &Selector[T]{opts: opts}
}

// Select ranks items under every comparator, plus their consensus, runs each
// heuristic from a fresh state and returns the largest candidate with at least
// one target and decoys/targets <= desired. Ties go to the earlier heuristic.
//
// It fails only on an invalid desired rate, missing comparators or a done
// context; no qualifying candidate is reported as an empty Result.
func (s *Selector[T]) Select(ctx context.Context, items []T, cmps []Comparator[T], desired float64) (Result[T], error) {
	if err := CheckRate(desired); err != nil {
		return Result[T]{}, err
	}
	if len(items) == 0 {
		return Result[T]{}, nil
	}
	if len(cmps) == 0 {
		return Result[T]{}, ErrNoComparators
	}

	labels := Labels(items)
	lists := make([]RankedList, len(cmps))
	for k, c := range cmps {
		c := c
		lists[k] = Build(labels, func(i, j int) int { return c(items[i], items[j]) })
	}
	fused := Fuse(labels, lists)
	// The sweeps over several lists also see the consensus ranking.
	all := append(lists[:len(lists):len(lists)], fused.List)

	var (
		fwd     = make([]Candidate, len(lists))
		bwd     Candidate
		tp      Candidate
		cons    Candidate
		cursors []Cursor
	)
	runs := []func(){
		func() {
			for k, l := range lists {
				fwd[k] = newCandidate(labels, HeuristicForward, k, Forward(labels, l, desired), desired)
			}
		},
		func() {
			bwd = newCandidate(labels, HeuristicBackward, -1, backward(labels, all, desired, s.opts.MaxRounds), desired)
		},
		func() {
			var out []int32
			out, cursors = twoPointer(labels, all, desired, s.opts.MaxRounds)
			tp = newCandidate(labels, HeuristicTwoPointer, -1, out, desired)
		},
		func() {
			cons = newCandidate(labels, HeuristicConsensus, -1, Forward(labels, fused.List, desired), desired)
		},
	}
	if err := s.run(ctx, runs); err != nil {
		return Result[T]{}, err
	}

	res := Result[T]{
		Candidates: append(fwd, bwd, tp, cons),
		Consensus:  fused.Scores,
	}
	for k, c := range cursors {
		n := float64(all[k].Len())
		res.Impact = append(res.Impact, Impact{List: k, Front: float64(c.Front) / n, Back: float64(c.Back) / n})
	}

	best := -1
	for i, c := range res.Candidates {
		if c.Valid && (best < 0 || c.Size() > res.Candidates[best].Size()) {
			best = i
		}
	}
	if best < 0 {
		return res, nil
	}
	winner := res.Candidates[best]
	res.Winner = winner.Heuristic
	res.Targets, res.Decoys = winner.Targets, winner.Decoys
	res.Indices = winner.Indices
	res.Items = make([]T, len(winner.Indices))
	for i, idx := range winner.Indices {
		res.Items[i] = items[idx]
	}
	return res, nil
}

// run executes the heuristic runs, sequentially or fanned out.
func (s *Selector[T]) run(ctx context.Context, runs []func()) error {
	if !s.opts.Parallel {
		for _, r := range runs {
			if err := ctx.Err(); err != nil {
				return err
			}
			r()
		}
		return ctx.Err()
	}

	var wg sync.WaitGroup
	wg.Add(len(runs))
	for _, r := range runs {
		r := r
		go func() {
			defer wg.Done()
			r()
		}()
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Select is a one-shot sequential selection with default options.
func Select[T ports.Labeled](items []T, cmps []Comparator[T], desired float64) ([]T, error) {
	res, err := NewSelector[T](SelectorOptions{}).Select(context.Background(), items, cmps, desired)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

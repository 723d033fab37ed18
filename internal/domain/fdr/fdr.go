// Package fdr selects the largest subset of target/decoy labelled items whose
// decoy-to-target ratio stays at or below a requested false discovery rate.
//
// Items are ranked once per scoring dimension (one RankedList per Comparator).
// Four sweep heuristics then propose candidate subsets over those lists:
//
//   - Forward: greedy front-to-back pass with deferred acceptance
//   - Backward: shave decoy-heavy tails until the rate fits
//   - TwoPointer: damped two-pointer advance across all lists
//   - Consensus: Forward over a decoy-survival fusion of all lists
//
// A Selector runs every heuristic on a fresh sweep context and keeps the
// largest candidate that satisfies the bound. Items are addressed by their
// position in the input slice (arena index); the package never compares items
// by value.
package fdr

import (
	"errors"
	"fmt"
	"math"

	"github.com/corey/fdrizer/internal/ports"
)

// DefaultMaxRounds caps the number of rounds of the iterative heuristics.
const DefaultMaxRounds = 10000

var (
	// ErrInvalidRate is returned when the desired rate is NaN or outside [0, 1).
	ErrInvalidRate = errors.New("desired fdr must be in [0, 1)")

	// ErrNoComparators is returned when items are given without any comparator.
	ErrNoComparators = errors.New("at least one comparator is required")
)

// Rate returns decoys/targets, or 0 when there are no targets.
func Rate(decoys, targets int) float64 {
	if targets == 0 {
		return 0
	}
	return float64(decoys) / float64(targets)
}

// Valid reports whether a set with the given counts is an acceptable result:
// at least one target and a rate within desired.
func Valid(decoys, targets int, desired float64) bool {
	return targets > 0 && Rate(decoys, targets) <= desired
}

// CheckRate validates a desired false discovery rate.
func CheckRate(desired float64) error {
	if math.IsNaN(desired) || desired < 0 || desired >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRate, desired)
	}
	return nil
}

// Labels extracts the label of every item, indexed by arena position.
func Labels[T ports.Labeled](items []T) []ports.Label {
	labels := make([]ports.Label, len(items))
	for i, it := range items {
		labels[i] = it.Label()
	}
	return labels
}

// Count returns the number of targets and decoys among the given arena indices.
func Count(labels []ports.Label, indices []int32) (targets, decoys int) {
	for _, idx := range indices {
		if labels[idx].IsTarget() {
			targets++
		} else {
			decoys++
		}
	}
	return targets, decoys
}

package ports

import "fmt"

// Label classifies an identification as a target (candidate true positive) or a
// decoy (known false positive used to calibrate the error rate).
type Label uint8

const (
	// Target is an identification searched against the real database.
	Target Label = iota

	// Decoy is an identification searched against the reversed or shuffled database.
	Decoy
)

// IsTarget reports whether l is Target.
func (l Label) IsTarget() bool { return l == Target }

// IsDecoy reports whether l is Decoy.
func (l Label) IsDecoy() bool { return l == Decoy }

// String returns the label name.
func (l Label) String() string {
	switch l {
	case Target:
		return "target"
	case Decoy:
		return "decoy"
	default:
		return fmt.Sprintf("label(%d)", uint8(l))
	}
}

// ParseLabel accepts the spellings found in search engine exports:
// "1"/"-1" (Percolator PIN), "target"/"decoy", "T"/"D", "true"/"false" (is-target).
func ParseLabel(s string) (Label, error) {
	switch s {
	case "1", "+1", "target", "Target", "TARGET", "T", "t", "true", "TRUE":
		return Target, nil
	case "-1", "decoy", "Decoy", "DECOY", "D", "d", "false", "FALSE":
		return Decoy, nil
	}
	return 0, fmt.Errorf("unrecognized label %q", s)
}

// Labeled is the only thing the selection core needs to know about an item.
type Labeled interface {
	Label() Label
}

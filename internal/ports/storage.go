// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "time"

// RunStore persists selection runs to durable storage.
// The backing store (bbolt) is dataset-scoped: each dataset name gets its own
// namespace. Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: SaveRun must be transactional. A crash mid-write must not
// corrupt previously committed runs.
type RunStore interface {
	// SaveRun persists a run under rec.Dataset. Overwrites a run with the same ID.
	SaveRun(rec *RunRecord) error

	// LoadRun retrieves one run by ID, searching every dataset.
	// Returns nil, nil if no such run exists.
	LoadRun(id string) (*RunRecord, error)

	// ListRuns returns the runs of a dataset (all datasets when empty),
	// newest first. Selected indices are not loaded.
	ListRuns(dataset string) ([]*RunRecord, error)

	// DeleteRun removes one run. Idempotent: deleting a nonexistent run is not an error.
	DeleteRun(id string) error

	// DeleteDataset removes every run of a dataset. Idempotent.
	DeleteDataset(dataset string) error

	// Close releases the underlying database.
	Close() error
}

// RunRecord is the persisted summary of one selection run.
type RunRecord struct {
	ID        string          `json:"id"`
	Dataset   string          `json:"dataset"`
	Input     string          `json:"input"`
	FDR       float64         `json:"fdr"`
	Scheme    []string        `json:"scheme"`
	CreatedAt time.Time       `json:"created_at"`
	Items     int             `json:"items"`
	Winner    string          `json:"winner"`
	Targets   int             `json:"targets"`
	Decoys    int             `json:"decoys"`
	Elapsed   time.Duration   `json:"elapsed"`
	Stats     []CandidateStat `json:"stats"`

	// Selected holds the arena indices (input row order) of the chosen items.
	// Stored in a separate compact blob, not in the JSON summary.
	Selected []uint32 `json:"-"`
}

// CandidateStat summarizes one heuristic's candidate within a run.
type CandidateStat struct {
	Heuristic string  `json:"heuristic"`
	List      int     `json:"list"`
	Size      int     `json:"size"`
	Targets   int     `json:"targets"`
	Decoys    int     `json:"decoys"`
	FDR       float64 `json:"fdr"`
	Valid     bool    `json:"valid"`
}

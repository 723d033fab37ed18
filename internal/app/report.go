package app

import (
	"time"

	"github.com/corey/fdrizer/internal/domain/fdr"
	"github.com/corey/fdrizer/internal/ports"
)

// Report is the outcome of one selection over an input table.
type Report struct {
	ID         string // set once saved
	Input      string
	Dataset    string
	Data       *ports.Dataset
	Dimensions []string // bound scheme dimensions, one per comparator list
	FDR        float64  // desired rate
	Result     fdr.Result[*ports.PSM]
	CreatedAt  time.Time
	Elapsed    time.Duration
}

// ListName names comparator list i of the report, "consensus" past the end.
func (r *Report) ListName(i int) string {
	if i >= 0 && i < len(r.Dimensions) {
		return r.Dimensions[i]
	}
	return "consensus"
}

// Record converts the report into its persisted form.
func (r *Report) Record() *ports.RunRecord {
	rec := &ports.RunRecord{
		ID:        r.ID,
		Dataset:   r.Dataset,
		Input:     r.Input,
		FDR:       r.FDR,
		Scheme:    r.Dimensions,
		CreatedAt: r.CreatedAt,
		Items:     len(r.Data.PSMs),
		Winner:    string(r.Result.Winner),
		Targets:   r.Result.Targets,
		Decoys:    r.Result.Decoys,
		Elapsed:   r.Elapsed,
		Selected:  make([]uint32, len(r.Result.Indices)),
	}
	for i, idx := range r.Result.Indices {
		rec.Selected[i] = uint32(idx)
	}
	for _, c := range r.Result.Candidates {
		rec.Stats = append(rec.Stats, ports.CandidateStat{
			Heuristic: string(c.Heuristic),
			List:      c.List,
			Size:      c.Size(),
			Targets:   c.Targets,
			Decoys:    c.Decoys,
			FDR:       c.FDR(),
			Valid:     c.Valid,
		})
	}
	return rec
}

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/corey/fdrizer/internal/app"
	"github.com/corey/fdrizer/internal/domain/fdr"
	"github.com/corey/fdrizer/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fixtures
// =============================================================================

func testReport() *app.Report {
	psms := make([]*ports.PSM, 10)
	for i := range psms {
		psms[i] = &ports.PSM{ID: fmt.Sprint(i)}
	}
	return &app.Report{
		Input:      "/data/liver.pin",
		Dataset:    "liver",
		Data:       &ports.Dataset{Columns: []string{"Xcorr", "deltCn"}, PSMs: psms},
		Dimensions: []string{"xcorr", "deltcn"},
		FDR:        0.25,
		Elapsed:    41 * time.Millisecond,
		Result: fdr.Result[*ports.PSM]{
			Indices: []int32{0, 2, 3, 5, 1},
			Winner:  fdr.HeuristicTwoPointer,
			Targets: 4,
			Decoys:  1,
			Candidates: []fdr.Candidate{
				{Heuristic: fdr.HeuristicForward, List: 0, Indices: []int32{0}, Targets: 1, Valid: true},
				{Heuristic: fdr.HeuristicForward, List: 1, Indices: []int32{0, 2}, Targets: 2, Valid: true},
				{Heuristic: fdr.HeuristicBackward, List: -1},
				{Heuristic: fdr.HeuristicTwoPointer, List: -1, Indices: []int32{0, 2, 3, 5, 1}, Targets: 4, Decoys: 1, Valid: true},
				{Heuristic: fdr.HeuristicConsensus, List: -1, Indices: []int32{0}, Targets: 1, Valid: true},
			},
			Impact: []fdr.Impact{
				{List: 0, Front: 0.4, Back: 0.9},
				{List: 1, Front: 0.1, Back: 1},
				{List: 2, Front: 0.2, Back: 0.8},
			},
		},
	}
}

// =============================================================================
// Formatting
// =============================================================================

func TestFormatSummary(t *testing.T) {
	r := testReport()
	got := formatSummary(r, false)
	assert.Equal(t, "⚡ 5/10 selected │ two-pointer │ 4 T 1 D │ fdr 0.2500 ≤ 0.25 │ 41ms │ liver", got)

	r.ID = "abc"
	assert.True(t, strings.HasSuffix(formatSummary(r, false), "│ abc"))

	assert.Contains(t, formatSummary(r, true), colorBold)
}

func TestFormatSummary_NoWinner(t *testing.T) {
	r := testReport()
	r.Result = fdr.Result[*ports.PSM]{}
	assert.Contains(t, formatSummary(r, false), "│ none │")
}

func TestFormatCandidates(t *testing.T) {
	got := formatCandidates(testReport(), false)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "forward[xcorr]")
	assert.Contains(t, lines[1], "forward[deltcn]")
	assert.Contains(t, lines[2], "backward")
	assert.Contains(t, lines[2], "✗")
	assert.True(t, strings.HasSuffix(lines[3], "✓ ←"), "winner marked: %q", lines[3])
	assert.NotContains(t, lines[4], "←")
}

func TestFormatImpact(t *testing.T) {
	got := formatImpact(testReport(), false)
	assert.Contains(t, got, "score impact")
	assert.Contains(t, got, "xcorr")
	assert.Contains(t, got, "front 0.400  back 0.900")
	assert.Contains(t, got, "consensus")
}

func TestFormatRuns(t *testing.T) {
	assert.Equal(t, "no recorded runs\n", formatRuns(nil, false))

	runs := []*ports.RunRecord{
		{ID: "r2", Dataset: "liver", Items: 10, Targets: 4, Decoys: 1, Winner: "two-pointer", FDR: 0.25, CreatedAt: time.Now()},
		{ID: "r1", Dataset: "brain", Items: 8, FDR: 0.01, CreatedAt: time.Now().Add(-time.Hour)},
	}
	got := formatRuns(runs, false)
	assert.Contains(t, got, "2 runs")
	assert.Contains(t, got, "r2")
	assert.Contains(t, got, "5/10")
	assert.Contains(t, got, "none", "no winner shown as none")
	assert.Less(t, strings.Index(got, "r2"), strings.Index(got, "r1"), "order preserved")
}

func TestFormatRun(t *testing.T) {
	r := testReport()
	r.ID = "run-1"
	got := formatRun(r.Record(), false)
	assert.Contains(t, got, "run run-1")
	assert.Contains(t, got, "Selected:  5 of 10 (4 T 1 D)")
	assert.Contains(t, got, "Scheme:    xcorr, deltcn")
	assert.Contains(t, got, "forward[deltcn]")
	assert.Contains(t, got, "two-pointer")
}

func TestPaint(t *testing.T) {
	assert.Equal(t, "x", paint(false, colorCyan, "x"))
	assert.Equal(t, "x", paint(true, "", "x"))
	assert.Equal(t, colorCyan+"x"+colorReset, paint(true, colorCyan, "x"))
}

func TestPrintWatchLine(t *testing.T) {
	var out, errw bytes.Buffer
	printWatchLine(&out, &errw, testReport(), nil, false)
	assert.Contains(t, out.String(), "5/10 selected")
	assert.Empty(t, errw.String())

	out.Reset()
	printWatchLine(&out, &errw, nil, errors.New("half-written table"), false)
	assert.Empty(t, out.String())
	assert.Equal(t, "warning: half-written table\n", errw.String())
}

// =============================================================================
// Lock errors
// =============================================================================

func TestIsDBLockError(t *testing.T) {
	assert.False(t, isDBLockError(nil))
	assert.False(t, isDBLockError(errors.New("open table: no such file")))
	assert.True(t, isDBLockError(fmt.Errorf("open store: %w", errors.New("bbolt open: timeout"))))
	assert.Contains(t, diagnoseDBLock(), "locked")
}

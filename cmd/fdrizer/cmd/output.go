package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/fdrizer/internal/app"
	"github.com/corey/fdrizer/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// paint wraps s in an ANSI code when color is on.
func paint(color bool, code, s string) string {
	if !color || code == "" {
		return s
	}
	return code + s + colorReset
}

// formatSummary renders the one-line outcome of a run.
//
//	⚡ 4812/10000 selected │ forward │ 4790 T 22 D │ fdr 0.0046 ≤ 0.01 │ 41ms │ liver
func formatSummary(r *app.Report, color bool) string {
	res := r.Result
	winner := string(res.Winner)
	if winner == "" {
		winner = paint(color, colorYellow, "none")
	} else {
		winner = paint(color, colorMagenta, winner)
	}
	line := fmt.Sprintf("%s │ %s │ %d T %d D │ fdr %.4f ≤ %g │ %s │ %s",
		paint(color, colorBold, fmt.Sprintf("⚡ %d/%d selected", len(res.Indices), len(r.Data.PSMs))),
		winner, res.Targets, res.Decoys, res.FDR(), r.FDR,
		r.Elapsed.Round(time.Millisecond), paint(color, colorCyan, r.Dataset))
	if r.ID != "" {
		line += " │ " + paint(color, colorGray, r.ID)
	}
	return line
}

// formatCandidates lists every heuristic's candidate, marking the winner.
//
//	forward[xcorr]      4812   4790 T   22 D  0.0046  ✓ ←
func formatCandidates(r *app.Report, color bool) string {
	var sb strings.Builder
	winner := -1
	for i, c := range r.Result.Candidates {
		if c.Valid && c.Heuristic == r.Result.Winner && c.Size() == len(r.Result.Indices) && winner < 0 {
			winner = i
		}
	}
	for i, c := range r.Result.Candidates {
		name := string(c.Heuristic)
		if c.List >= 0 {
			name += "[" + r.ListName(c.List) + "]"
		}
		mark := paint(color, colorYellow, "✗")
		if c.Valid {
			mark = paint(color, colorGreen, "✓")
		}
		if i == winner {
			mark += " ←"
		}
		sb.WriteString(fmt.Sprintf("  %-24s %7d %7d T %6d D  %.4f  %s\n",
			name, c.Size(), c.Targets, c.Decoys, c.FDR(), mark))
	}
	return sb.String()
}

// formatImpact shows the two-pointer cursor positions per list as fractions
// of its length: how far each score carried the selection from either end.
//
//	xcorr      front 0.412  back 0.873
func formatImpact(r *app.Report, color bool) string {
	var sb strings.Builder
	sb.WriteString(paint(color, colorBold, "score impact") + "\n")
	for _, im := range r.Result.Impact {
		sb.WriteString(fmt.Sprintf("  %-20s front %.3f  back %.3f\n",
			paint(color, colorCyan, r.ListName(im.List)), im.Front, im.Back))
	}
	return sb.String()
}

// formatRuns renders the run history, one run per line.
func formatRuns(runs []*ports.RunRecord, color bool) string {
	if len(runs) == 0 {
		return "no recorded runs\n"
	}
	var sb strings.Builder
	sb.WriteString(paint(color, colorBold, fmt.Sprintf("⚡ %d runs", len(runs))) + "\n")
	for _, rec := range runs {
		winner := rec.Winner
		if winner == "" {
			winner = "none"
		}
		sb.WriteString(fmt.Sprintf("  %s  %s  %-12s %6d/%-6d %-12s fdr≤%g\n",
			paint(color, colorGray, rec.ID),
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			paint(color, colorCyan, rec.Dataset),
			rec.Targets+rec.Decoys, rec.Items,
			winner, rec.FDR))
	}
	return sb.String()
}

// formatRun renders one run with its candidate table.
func formatRun(rec *ports.RunRecord, color bool) string {
	var sb strings.Builder
	sb.WriteString(paint(color, colorBold, "⚡ run "+rec.ID) + "\n")
	sb.WriteString(fmt.Sprintf("  Dataset:   %s\n", rec.Dataset))
	sb.WriteString(fmt.Sprintf("  Input:     %s\n", rec.Input))
	sb.WriteString(fmt.Sprintf("  Created:   %s\n", rec.CreatedAt.Local().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("  FDR:       %g\n", rec.FDR))
	sb.WriteString(fmt.Sprintf("  Scheme:    %s\n", strings.Join(rec.Scheme, ", ")))
	sb.WriteString(fmt.Sprintf("  Selected:  %d of %d (%d T %d D)\n", len(rec.Selected), rec.Items, rec.Targets, rec.Decoys))
	sb.WriteString(fmt.Sprintf("  Winner:    %s\n", orDash(rec.Winner)))
	sb.WriteString(fmt.Sprintf("  Elapsed:   %s\n", rec.Elapsed.Round(time.Millisecond)))
	for _, st := range rec.Stats {
		name := st.Heuristic
		if st.List >= 0 && st.List < len(rec.Scheme) {
			name += "[" + rec.Scheme[st.List] + "]"
		}
		mark := paint(color, colorYellow, "✗")
		if st.Valid {
			mark = paint(color, colorGreen, "✓")
		}
		sb.WriteString(fmt.Sprintf("    %-24s %7d %7d T %6d D  %.4f  %s\n",
			name, st.Size, st.Targets, st.Decoys, st.FDR, mark))
	}
	return sb.String()
}

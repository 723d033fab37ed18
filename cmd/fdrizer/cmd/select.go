package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/corey/fdrizer/internal/adapters/pin"
	"github.com/corey/fdrizer/internal/ports"
	"github.com/spf13/cobra"
)

var (
	selectOut        string
	selectSave       bool
	selectImpact     bool
	selectCandidates bool
	selectQuiet      bool
)

var selectCmd = &cobra.Command{
	Use:   "select <input>",
	Short: "Select the largest set within the desired FDR",
	Long: "Reads a Percolator PIN (or any tab-separated table with a Label column), " +
		"ranks it under every scheme dimension plus their consensus and writes the chosen rows.",
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	f := selectCmd.Flags()
	f.StringVarP(&selectOut, "out", "o", "", "write selected rows here (default: stdout)")
	f.BoolVar(&selectSave, "save", false, "record the run in the history")
	f.BoolVar(&selectImpact, "impact", false, "show where each list's cursors ended in the two-pointer run")
	f.BoolVar(&selectCandidates, "candidates", false, "show every heuristic's candidate")
	f.BoolVarP(&selectQuiet, "quiet", "q", false, "no summary")
}

func runSelect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := a.Run(ctx, args[0], selectSave)
	if err != nil {
		return err
	}

	if err := writeSelection(selectOut, a.Settings().Format, r.Data, r.Result.Indices); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}

	if selectQuiet {
		return nil
	}
	color := useColor(os.Stderr)
	fmt.Fprintln(os.Stderr, formatSummary(r, color))
	if selectCandidates {
		fmt.Fprint(os.Stderr, formatCandidates(r, color))
	}
	if selectImpact {
		fmt.Fprint(os.Stderr, formatImpact(r, color))
	}
	if len(r.Result.Indices) == 0 {
		fmt.Fprintf(os.Stderr, "warning: no subset of %s has FDR <= %g with at least one target\n", args[0], r.FDR)
	}
	return nil
}

// writeSelection writes the selected rows to path, or to stdout when path is
// empty. A file is closed before returning so a failed flush is reported.
func writeSelection(path, format string, d *ports.Dataset, indices []int32) error {
	if path == "" {
		return pin.Write(os.Stdout, format, d, indices)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pin.Write(f, format, d, indices); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

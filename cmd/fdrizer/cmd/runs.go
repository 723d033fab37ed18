package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runsDataset string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete recorded runs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRunsRm,
}

var runsPurgeCmd = &cobra.Command{
	Use:   "purge <dataset>",
	Short: "Delete every recorded run of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsPurge,
}

func init() {
	runsListCmd.Flags().StringVar(&runsDataset, "for", "", "only runs of this dataset")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsRmCmd)
	runsCmd.AddCommand(runsPurgeCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	runs, err := a.Runs(runsDataset)
	if err != nil {
		return err
	}
	fmt.Print(formatRuns(runs, useColor(os.Stdout)))
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.LoadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Print(formatRun(rec, useColor(os.Stdout)))
	return nil
}

func runRunsRm(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		if err := a.DeleteRun(id); err != nil {
			return err
		}
		fmt.Printf("⚡ removed %s\n", id)
	}
	return nil
}

func runRunsPurge(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Purge(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("⚡ removed %d runs of %s\n", n, args[0])
	return nil
}

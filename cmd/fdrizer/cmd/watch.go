package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/corey/fdrizer/internal/app"
	"github.com/spf13/cobra"
)

var (
	watchSave  bool
	watchWrite bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <input>",
	Short: "Re-run selection whenever the input changes",
	Long: "Runs a selection now and again after every change to the input file, " +
		"printing one summary line per run. Stop with Ctrl-C.",
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "record each run in the history")
	watchCmd.Flags().BoolVar(&watchWrite, "write", false, "write each selection to .fdrizer/out/")
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	paths := app.NewPaths(workDir())
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	logFile, err := os.OpenFile(paths.WatchLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	a, err := app.New(app.Config{
		Config:  c,
		WorkDir: workDir(),
		Logger:  log.New(logFile, "", log.LstdFlags),
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color := useColor(os.Stdout)
	fmt.Printf("⚡ watching %s (Ctrl-C to stop)\n", args[0])
	err = a.Watch(ctx, args[0], app.WatchOptions{Save: watchSave, Write: watchWrite}, func(r *app.Report, err error) {
		printWatchLine(os.Stdout, os.Stderr, r, err, color)
	})
	fmt.Println("\n⚡ stopped")
	return err
}

func printWatchLine(w, errw io.Writer, r *app.Report, err error, color bool) {
	if err != nil {
		fmt.Fprintf(errw, "warning: %v\n", err)
		return
	}
	fmt.Fprintln(w, formatSummary(r, color))
}

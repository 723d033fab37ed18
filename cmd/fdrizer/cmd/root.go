package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/corey/fdrizer/internal/app"
	"github.com/corey/fdrizer/internal/config"
	"github.com/spf13/cobra"
)

// v holds flag, env and file settings for every command.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "fdrizer",
	Short: "fdrizer: target/decoy FDR set selection",
	Long: "Ranks peptide-spectrum matches under several scores, runs four sweep heuristics " +
		"and keeps the largest set whose decoy/target ratio stays within the desired FDR.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// workDir returns the working directory (cwd).
func workDir() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// loadConfig resolves settings from flags, env, .fdrizer.yaml and defaults.
func loadConfig() (config.Config, error) {
	return config.Load(v)
}

// newApp builds the app from the resolved settings.
func newApp() (*app.App, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(app.Config{
		Config:  c,
		WorkDir: workDir(),
		Logger:  log.New(os.Stderr, "[fdrizer] ", log.LstdFlags),
	})
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if isDBLockError(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n%s\n", err, diagnoseDBLock())
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return err
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64(config.KeyFDR, config.DefaultFDR, "desired false discovery rate (decoys/targets)")
	pf.String(config.KeyScheme, "", "scoring scheme YAML (default: built-in)")
	pf.String(config.KeyDB, config.DefaultDB, "run history database")
	pf.Bool(config.KeyParallel, false, "run the heuristics concurrently")
	pf.String(config.KeyFormat, config.DefaultFormat, "output format: tsv or jsonl")
	pf.String(config.KeyDataset, "", "dataset name for run history (default: input file name)")
	pf.Int(config.KeyMaxRounds, 0, "round cap per heuristic (default 10000)")
	pf.Duration(config.KeyDebounce, config.DefaultDebounce, "watch mode quiet period")

	for _, key := range []string{
		config.KeyFDR, config.KeyScheme, config.KeyDB, config.KeyParallel,
		config.KeyFormat, config.KeyDataset, config.KeyMaxRounds, config.KeyDebounce,
	} {
		bindFlag(key, key)
	}

	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(schemeCmd)
}

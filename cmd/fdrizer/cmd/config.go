package cmd

import (
	"fmt"
	"os"

	"github.com/corey/fdrizer/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the effective settings after flags, FDRIZER_* env, .fdrizer.yaml and defaults.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}

	color := useColor(os.Stdout)
	file := v.ConfigFileUsed()
	if file == "" {
		file = paint(color, colorGray, fmt.Sprintf("(none: %s.yaml not found)", config.File))
	}
	scheme := c.Scheme
	if scheme == "" {
		scheme = "built-in default"
	}

	fmt.Println(paint(color, colorBold, "⚡ fdrizer config"))
	fmt.Printf("  Root:       %s\n", workDir())
	fmt.Printf("  File:       %s\n", file)
	fmt.Printf("  FDR:        %g\n", c.FDR)
	fmt.Printf("  Scheme:     %s\n", scheme)
	fmt.Printf("  DB:         %s\n", c.DB)
	fmt.Printf("  Format:     %s\n", c.Format)
	fmt.Printf("  Parallel:   %t\n", c.Parallel)
	fmt.Printf("  Dataset:    %s\n", orDash(c.Dataset))
	fmt.Printf("  MaxRounds:  %d\n", c.MaxRounds)
	fmt.Printf("  Debounce:   %s\n", c.Debounce)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

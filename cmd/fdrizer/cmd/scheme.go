package cmd

import (
	"fmt"
	"os"

	"github.com/corey/fdrizer/internal/adapters/pin"
	"github.com/corey/fdrizer/internal/app"
	"github.com/spf13/cobra"
)

var schemeCheck string

var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Print the effective scoring scheme",
	Long: "Prints the scoring scheme as YAML. With --check, reports which dimensions " +
		"bind to the columns of a table.",
	Args: cobra.NoArgs,
	RunE: runScheme,
}

func init() {
	schemeCmd.Flags().StringVar(&schemeCheck, "check", "", "table to bind the scheme against")
}

func runScheme(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := app.LoadScheme(c.Scheme)
	if err != nil {
		return err
	}

	if schemeCheck == "" {
		data, err := s.Marshal()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	d, err := pin.ReadFile(schemeCheck)
	if err != nil {
		return err
	}
	_, names, err := s.Bind(d)
	if err != nil {
		return err
	}
	color := useColor(os.Stdout)
	fmt.Printf("%s %d dimensions bind to %s\n", paint(color, colorBold, "⚡"), len(names), schemeCheck)
	for _, n := range names {
		fmt.Printf("  %s\n", paint(color, colorCyan, n))
	}
	return nil
}

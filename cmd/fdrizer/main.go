// fdrizer selects the largest set of peptide-spectrum matches whose
// decoy/target ratio stays within a desired false discovery rate.
package main

import (
	"os"

	"github.com/corey/fdrizer/cmd/fdrizer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

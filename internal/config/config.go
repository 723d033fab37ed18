// Package config is for run-wide settings unmarshalled from Viper. Values come,
// in order of precedence, from command line flags bound in cmd, FDRIZER_*
// environment variables, a .fdrizer.yaml in the working directory and the
// defaults below.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// File is the config file name looked up in the working directory (without extension).
const File = ".fdrizer"

// EnvPrefix prefixes environment overrides, e.g. FDRIZER_FDR=0.05.
const EnvPrefix = "FDRIZER"

// Keys shared by flags, env and the config file.
const (
	KeyFDR       = "fdr"
	KeyScheme    = "scheme"
	KeyDB        = "db"
	KeyParallel  = "parallel"
	KeyFormat    = "format"
	KeyDataset   = "dataset"
	KeyMaxRounds = "max-rounds"
	KeyDebounce  = "debounce"
)

// Defaults
const (
	DefaultFDR    = 0.01
	DefaultFormat = "tsv"
	DefaultDB     = ".fdrizer/fdrizer.db"

	DefaultDebounce = 250 * time.Millisecond
)

// Config is the root-level settings struct and is a mix of settings available
// in .fdrizer.yaml and those from the command line.
type Config struct {
	// desired false discovery rate, in [0, 1)
	FDR float64 `mapstructure:"fdr"`

	// path to a YAML scoring scheme; empty uses the built-in default
	Scheme string `mapstructure:"scheme"`

	// path to the run history database
	DB string `mapstructure:"db"`

	// run the heuristics concurrently
	Parallel bool `mapstructure:"parallel"`

	// output format of selected items: tsv or jsonl
	Format string `mapstructure:"format"`

	// dataset name runs are filed under; empty uses the input file name
	Dataset string `mapstructure:"dataset"`

	// round cap per heuristic; 0 uses the selector default
	MaxRounds int `mapstructure:"max-rounds"`

	// watch mode quiet period, e.g. "250ms"
	Debounce time.Duration `mapstructure:"debounce"`
}

// Formats accepted by Validate.
var Formats = []string{"tsv", "jsonl"}

// New returns a Viper instance with defaults, env binding and the config file
// search path set up. The config file is read by Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyFDR, DefaultFDR)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyDB, DefaultDB)
	v.SetDefault(KeyParallel, false)
	v.SetDefault(KeyMaxRounds, 0)
	v.SetDefault(KeyDebounce, DefaultDebounce)

	v.SetConfigName(File)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if present, unmarshals and validates.
func Load(v *viper.Viper) (Config, error) {
	var c Config

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if math.IsNaN(c.FDR) || c.FDR < 0 || c.FDR >= 1 {
		return fmt.Errorf("fdr %v: must be in [0, 1)", c.FDR)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("format %q: must be one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce %v: must not be negative", c.Debounce)
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max-rounds %d: must not be negative", c.MaxRounds)
	}
	return nil
}

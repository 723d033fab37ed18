package app

import (
	"os"
	"path/filepath"

	"github.com/corey/fdrizer/internal/domain/status"
)

// Paths holds all resolved filesystem paths for the .fdrizer/ working directory.
// All fields are pre-computed strings.
type Paths struct {
	Root   string // .fdrizer/
	DB     string // .fdrizer/fdrizer.db
	Status string // .fdrizer/status.json

	LogDir   string // .fdrizer/log/
	WatchLog string // .fdrizer/log/watch.log

	OutDir string // .fdrizer/out/
}

// NewPaths constructs all resolved paths from a working directory.
func NewPaths(workDir string) *Paths {
	root := filepath.Join(workDir, ".fdrizer")
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "fdrizer.db"),
		Status: filepath.Join(root, status.StatusFile),

		LogDir:   filepath.Join(root, "log"),
		WatchLog: filepath.Join(root, "log", "watch.log"),

		OutDir: filepath.Join(root, "out"),
	}
}

// EnsureDirs creates all subdirectories under .fdrizer/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir, p.OutDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// Output returns the path watch mode writes a dataset's selection to.
func (p *Paths) Output(dataset, format string) string {
	return filepath.Join(p.OutDir, dataset+".selected."+format)
}

// Package app wires together all adapters and domain logic.
// It loads a PSM table, ranks it under the configured scoring scheme, runs the
// selector and files the outcome in the run history.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/corey/fdrizer/internal/adapters/bbolt"
	"github.com/corey/fdrizer/internal/adapters/pin"
	"github.com/corey/fdrizer/internal/config"
	"github.com/corey/fdrizer/internal/domain/fdr"
	"github.com/corey/fdrizer/internal/domain/scheme"
	"github.com/corey/fdrizer/internal/ports"
	"github.com/corey/fdrizer/schemes"
)

// ErrRunNotFound is returned when a run ID is not in the history.
var ErrRunNotFound = errors.New("run not found")

// Config holds initialization parameters for the App.
type Config struct {
	config.Config

	WorkDir string      // directory holding .fdrizer/ (default: current directory)
	Logger  *log.Logger // default: stderr with [fdrizer] prefix
}

// App is the top-level container wiring all components together.
type App struct {
	Paths  *Paths
	Scheme *scheme.Scheme

	cfg      Config
	dbPath   string
	selector *fdr.Selector[*ports.PSM]
	log      *log.Logger

	mu    sync.Mutex // guards store
	store ports.RunStore
}

// New creates an App. The run store is opened on first use, so a plain
// selection never takes the database lock.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "[fdrizer] ", log.LstdFlags)
	}

	s, err := LoadScheme(cfg.Scheme)
	if err != nil {
		return nil, err
	}

	paths := NewPaths(cfg.WorkDir)
	dbPath := cfg.DB
	if dbPath == "" {
		dbPath = paths.DB
	}

	return &App{
		Paths:  paths,
		Scheme: s,
		cfg:    cfg,
		dbPath: dbPath,
		selector: fdr.NewSelector[*ports.PSM](fdr.SelectorOptions{
			Parallel:  cfg.Parallel,
			MaxRounds: cfg.MaxRounds,
		}),
		log: cfg.Logger,
	}, nil
}

// Settings returns the resolved configuration.
func (a *App) Settings() config.Config { return a.cfg.Config }

// LoadScheme reads a scheme file, or the embedded default when path is empty.
func LoadScheme(path string) (*scheme.Scheme, error) {
	if path == "" {
		s, err := scheme.LoadFS(schemes.FS, schemes.Default)
		if err != nil {
			return nil, fmt.Errorf("load default scheme: %w", err)
		}
		return s, nil
	}
	return scheme.LoadFile(path)
}

// Store returns the run store, opening it on first call.
func (a *App) Store() (ports.RunStore, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	if err := os.MkdirAll(filepath.Dir(a.dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	store, err := bbolt.NewStore(a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = store
	return store, nil
}

// Close releases the run store if it was opened.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// DatasetName returns the name runs of input are filed under.
func (a *App) DatasetName(input string) string {
	if a.cfg.Dataset != "" {
		return a.cfg.Dataset
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Select reads input and selects the largest subset within the configured FDR.
func (a *App) Select(ctx context.Context, input string) (*Report, error) {
	start := time.Now()

	data, err := pin.ReadFile(input)
	if err != nil {
		return nil, err
	}
	cmps, dims, err := a.Scheme.Bind(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	res, err := a.selector.Select(ctx, data.PSMs, cmps, a.cfg.FDR)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	return &Report{
		Input:      input,
		Dataset:    a.DatasetName(input),
		Data:       data,
		Dimensions: dims,
		FDR:        a.cfg.FDR,
		Result:     res,
		CreatedAt:  start.UTC(),
		Elapsed:    time.Since(start),
	}, nil
}

// Save files a report in the run history and sets its ID.
func (a *App) Save(r *Report) error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	rec := r.Record()
	if err := store.SaveRun(rec); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	r.ID = rec.ID
	return nil
}

// Run selects and, when save is set, records the run.
func (a *App) Run(ctx context.Context, input string, save bool) (*Report, error) {
	r, err := a.Select(ctx, input)
	if err != nil {
		return nil, err
	}
	if save {
		if err := a.Save(r); err != nil {
			return r, err
		}
	}
	return r, nil
}

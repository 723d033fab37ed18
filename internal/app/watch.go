package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	fsw "github.com/corey/fdrizer/internal/adapters/fsnotify"
	"github.com/corey/fdrizer/internal/adapters/pin"
	"github.com/corey/fdrizer/internal/domain/status"
	"github.com/corey/fdrizer/internal/ports"
)

// WatchOptions controls what happens after each re-run in watch mode.
type WatchOptions struct {
	Save  bool // record each run in the history
	Write bool // write the selection to Paths.Output
}

// Watch runs a selection over input now and again each time the file changes,
// until ctx is done. Runs are serialized; changes arriving during a run collapse
// into a single follow-up run. onReport receives every outcome, including
// failures (a half-written table is not fatal).
func (a *App) Watch(ctx context.Context, input string, opts WatchOptions, onReport func(*Report, error)) error {
	watcher, err := fsw.NewWatcher(fsw.WithDebounce(a.cfg.Debounce))
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	return a.watch(ctx, watcher, input, opts, onReport)
}

func (a *App) watch(ctx context.Context, watcher ports.Watcher, input string, opts WatchOptions, onReport func(*Report, error)) error {
	defer watcher.Stop()

	trigger := make(chan struct{}, 1)
	poke := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
	if err := watcher.Watch([]string{input}, func(string) { poke() }); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	a.log.Printf("watching %s", input)

	poke()
	for {
		select {
		case <-ctx.Done():
			a.log.Printf("stopped watching %s", input)
			return nil
		case <-trigger:
			r, err := a.Run(ctx, input, opts.Save)
			if err == nil && opts.Write {
				err = a.writeOutput(r)
			}
			if err != nil {
				a.log.Printf("run %s: %v", input, err)
			} else {
				a.log.Printf("%s: %d selected by %s (fdr %.4f)", r.Dataset, len(r.Result.Indices), winnerName(r), r.Result.FDR())
			}
			if serr := a.writeStatus(input, r, err); serr != nil {
				a.log.Printf("write status: %v", serr)
			}
			if onReport != nil {
				onReport(r, err)
			}
		}
	}
}

func winnerName(r *Report) string {
	if r.Result.Winner == "" {
		return "none"
	}
	return string(r.Result.Winner)
}

// writeStatus records the outcome of the latest run in Paths.Status.
func (a *App) writeStatus(input string, r *Report, runErr error) error {
	if err := a.Paths.EnsureDirs(); err != nil {
		return err
	}
	var sd *status.StatusData
	if r == nil || runErr != nil {
		if runErr == nil {
			runErr = fmt.Errorf("no report")
		}
		sd = status.Failed(a.DatasetName(input), runErr)
	} else {
		sd = status.Generate(r.Dataset, len(r.Data.PSMs), r.Result, r.FDR, r.Dimensions)
	}
	return status.WriteJSON(a.Paths.Status, sd)
}

// writeOutput replaces the dataset's output file atomically.
func (a *App) writeOutput(r *Report) error {
	if err := a.Paths.EnsureDirs(); err != nil {
		return err
	}
	path := a.Paths.Output(r.Dataset, a.cfg.Format)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".selected-*")
	if err != nil {
		return err
	}
	if err := pin.Write(tmp, a.cfg.Format, r.Data, r.Result.Indices); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

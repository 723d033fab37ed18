package app

import (
	"fmt"

	"github.com/corey/fdrizer/internal/ports"
)

// Runs lists recorded runs of a dataset (all when empty), newest first.
func (a *App) Runs(dataset string) ([]*ports.RunRecord, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	return store.ListRuns(dataset)
}

// LoadRun returns one recorded run with its selection.
func (a *App) LoadRun(id string) (*ports.RunRecord, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	rec, err := store.LoadRun(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return rec, nil
}

// DeleteRun removes a recorded run. Unknown IDs are reported as ErrRunNotFound.
func (a *App) DeleteRun(id string) error {
	if _, err := a.LoadRun(id); err != nil {
		return err
	}
	store, err := a.Store()
	if err != nil {
		return err
	}
	return store.DeleteRun(id)
}

// Purge removes every recorded run of a dataset and returns how many were dropped.
func (a *App) Purge(dataset string) (int, error) {
	runs, err := a.Runs(dataset)
	if err != nil {
		return 0, err
	}
	if dataset == "" || len(runs) == 0 {
		return 0, nil
	}
	store, err := a.Store()
	if err != nil {
		return 0, err
	}
	if err := store.DeleteDataset(dataset); err != nil {
		return 0, err
	}
	return len(runs), nil
}

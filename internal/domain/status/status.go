// Package status generates status data for fdrizer.
//
// Watch mode writes a JSON status file after every run. Shell prompts and
// pipeline dashboards read it to show the latest selection without touching
// the run history database.
package status

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/corey/fdrizer/internal/domain/fdr"
)

// StatusFile is the filename within the .fdrizer directory where status JSON is written.
const StatusFile = "status.json"

// StatusData is the JSON payload written after each run.
type StatusData struct {
	Dataset   string    `json:"dataset"`
	Items     int       `json:"items"`
	Selected  int       `json:"selected"`
	Targets   int       `json:"targets"`
	Decoys    int       `json:"decoys"`
	FDR       float64   `json:"fdr"`
	Desired   float64   `json:"desired"`
	Winner    string    `json:"winner,omitempty"`
	TopLists  []string  `json:"top_lists,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Generate produces a StatusData from a selection result. names labels the
// comparator lists; the consensus list is named "consensus".
func Generate[T any](dataset string, items int, res fdr.Result[T], desired float64, names []string) *StatusData {
	return &StatusData{
		Dataset:   dataset,
		Items:     items,
		Selected:  len(res.Indices),
		Targets:   res.Targets,
		Decoys:    res.Decoys,
		FDR:       res.FDR(),
		Desired:   desired,
		Winner:    string(res.Winner),
		TopLists:  topLists(res.Impact, names, 3),
		UpdatedAt: time.Now().UTC(),
	}
}

// Failed produces a StatusData for a run that did not complete.
func Failed(dataset string, err error) *StatusData {
	return &StatusData{Dataset: dataset, Error: err.Error(), UpdatedAt: time.Now().UTC()}
}

// WriteJSON writes the status data as JSON to a file, replacing it atomically.
func WriteJSON(path string, data *StatusData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".status-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
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

// ReadJSON reads a status file written by WriteJSON.
func ReadJSON(path string) (*StatusData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sd StatusData
	if err := json.Unmarshal(b, &sd); err != nil {
		return nil, err
	}
	return &sd, nil
}

// topLists returns the names of the n lists whose two-pointer front cursor
// advanced furthest, ties by name.
func topLists(impact []fdr.Impact, names []string, n int) []string {
	type lf struct {
		name  string
		front float64
	}

	var lists []lf
	for _, im := range impact {
		if im.Front <= 0 {
			continue
		}
		name := "consensus"
		if im.List < len(names) {
			name = names[im.List]
		}
		lists = append(lists, lf{name, im.Front})
	}

	sort.Slice(lists, func(i, j int) bool {
		if lists[i].front != lists[j].front {
			return lists[i].front > lists[j].front
		}
		return lists[i].name < lists[j].name
	})

	limit := min(n, len(lists))
	if limit == 0 {
		return nil
	}
	result := make([]string, limit)
	for i := 0; i < limit; i++ {
		result[i] = lists[i].name
	}
	return result
}

// Package bbolt implements the ports.RunStore interface using bbolt (embedded B+ tree).
// Each dataset gets its own top-level bucket. Within that bucket, "runs" holds the
// JSON summary of each run and "selected" its binary-encoded index list, both keyed
// by run ID. A top-level "ids" bucket maps run IDs to their dataset. Writes are
// transactional: a crash mid-write cannot corrupt previously committed runs.
package bbolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/corey/fdrizer/internal/ports"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketIDs      = []byte("ids")
	bucketRuns     = []byte("runs")
	bucketSelected = []byte("selected")
)

// Store implements ports.RunStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists a run. An empty ID is filled with a time-ordered UUID and an
// empty Dataset with the input path; a zero CreatedAt is set to now.
func (s *Store) SaveRun(rec *ports.RunRecord) error {
	if rec == nil {
		return fmt.Errorf("nil run")
	}
	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("run id: %w", err)
		}
		rec.ID = id.String()
	}
	if rec.Dataset == "" {
		rec.Dataset = rec.Input
	}
	if rec.Dataset == "" || rec.Dataset == string(bucketIDs) {
		return fmt.Errorf("run %s: invalid dataset %q", rec.ID, rec.Dataset)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	summary, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	selected := encodeSelected(rec.Selected)
	id := []byte(rec.ID)

	return s.db.Update(func(tx *bolt.Tx) error {
		ids, err := tx.CreateBucketIfNotExists(bucketIDs)
		if err != nil {
			return err
		}
		// A run re-saved under another dataset moves.
		if prev := ids.Get(id); prev != nil && string(prev) != rec.Dataset {
			if err := deleteFrom(tx, prev, id); err != nil {
				return err
			}
		}
		if err := ids.Put(id, []byte(rec.Dataset)); err != nil {
			return err
		}

		ds, err := tx.CreateBucketIfNotExists([]byte(rec.Dataset))
		if err != nil {
			return err
		}
		rb, err := ds.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return err
		}
		sb, err := ds.CreateBucketIfNotExists(bucketSelected)
		if err != nil {
			return err
		}
		if err := rb.Put(id, summary); err != nil {
			return err
		}
		return sb.Put(id, selected)
	})
}

// LoadRun retrieves one run with its selected indices.
// Returns nil, nil if no such run exists.
func (s *Store) LoadRun(id string) (*ports.RunRecord, error) {
	var summary, selected []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		ids := tx.Bucket(bucketIDs)
		if ids == nil {
			return nil
		}
		dataset := ids.Get([]byte(id))
		if dataset == nil {
			return nil
		}
		ds := tx.Bucket(dataset)
		if ds == nil {
			return fmt.Errorf("run %s: dataset bucket %q missing", id, dataset)
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if rb := ds.Bucket(bucketRuns); rb != nil {
			if v := rb.Get([]byte(id)); v != nil {
				summary = slices.Clone(v)
			}
		}
		if sb := ds.Bucket(bucketSelected); sb != nil {
			if v := sb.Get([]byte(id)); v != nil {
				selected = slices.Clone(v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, nil
	}

	var rec ports.RunRecord
	if err := json.Unmarshal(summary, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal run %s: %w", id, err)
	}
	if selected != nil {
		if rec.Selected, err = decodeSelected(selected); err != nil {
			return nil, fmt.Errorf("run %s: %w", id, err)
		}
	}
	return &rec, nil
}

// ListRuns returns run summaries, newest first. An empty dataset lists every dataset.
func (s *Store) ListRuns(dataset string) ([]*ports.RunRecord, error) {
	var runs []*ports.RunRecord

	collect := func(ds *bolt.Bucket) error {
		rb := ds.Bucket(bucketRuns)
		if rb == nil {
			return nil
		}
		return rb.ForEach(func(k, v []byte) error {
			var rec ports.RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal run %s: %w", k, err)
			}
			runs = append(runs, &rec)
			return nil
		})
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		if dataset != "" {
			ds := tx.Bucket([]byte(dataset))
			if ds == nil {
				return nil
			}
			return collect(ds)
		}
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			if string(name) == string(bucketIDs) {
				return nil
			}
			return collect(b)
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(runs, func(a, b *ports.RunRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return runs, nil
}

// DeleteRun removes one run.
// Idempotent: deleting a nonexistent run is not an error.
func (s *Store) DeleteRun(id string) error {
	key := []byte(id)
	return s.db.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket(bucketIDs)
		if ids == nil {
			return nil
		}
		dataset := ids.Get(key)
		if dataset == nil {
			return nil // idempotent
		}
		if err := deleteFrom(tx, slices.Clone(dataset), key); err != nil {
			return err
		}
		return ids.Delete(key)
	})
}

// DeleteDataset removes every run of a dataset.
// Idempotent: deleting a nonexistent dataset is not an error.
func (s *Store) DeleteDataset(dataset string) error {
	if dataset == "" || dataset == string(bucketIDs) {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		ds := tx.Bucket([]byte(dataset))
		if ds == nil {
			return nil
		}
		if ids := tx.Bucket(bucketIDs); ids != nil {
			if rb := ds.Bucket(bucketRuns); rb != nil {
				var keys [][]byte
				if err := rb.ForEach(func(k, _ []byte) error {
					keys = append(keys, slices.Clone(k))
					return nil
				}); err != nil {
					return err
				}
				for _, k := range keys {
					if err := ids.Delete(k); err != nil {
						return err
					}
				}
			}
		}
		err := tx.DeleteBucket([]byte(dataset))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func deleteFrom(tx *bolt.Tx, dataset, id []byte) error {
	ds := tx.Bucket(dataset)
	if ds == nil {
		return nil
	}
	for _, name := range [][]byte{bucketRuns, bucketSelected} {
		if b := ds.Bucket(name); b != nil {
			if err := b.Delete(id); err != nil {
				return err
			}
		}
	}
	return nil
}

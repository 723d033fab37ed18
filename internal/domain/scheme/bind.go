package scheme

import (
	"cmp"
	"fmt"

	"github.com/corey/fdrizer/internal/domain/fdr"
	"github.com/corey/fdrizer/internal/ports"
)

// boundKey is a Key resolved to a column index of a dataset.
type boundKey struct {
	col   int
	order Order
}

func (k boundKey) compare(a, b *ports.PSM) int {
	if k.order == Ascending {
		return cmp.Compare(a.Score(k.col), b.Score(k.col))
	}
	return cmp.Compare(b.Score(k.col), a.Score(k.col))
}

// Bind resolves the scheme against the score columns of a dataset and returns
// one comparator per usable dimension together with the dimension names.
//
// A missing optional column skips its dimension; a missing required one is an
// error. Missing tie-break columns are ignored. When nothing binds and every
// dimension was optional, each dataset column is ranked descending instead.
func (s *Scheme) Bind(d *ports.Dataset) ([]fdr.Comparator[*ports.PSM], []string, error) {
	cmps, names, err := s.bind(d)
	if err != nil {
		return nil, nil, err
	}
	if len(cmps) == 0 {
		cmps, names, err = Fallback(d.Columns).bind(d)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(cmps) == 0 {
		return nil, nil, ErrNoDimensions
	}
	return cmps, names, nil
}

func (s *Scheme) bind(d *ports.Dataset) ([]fdr.Comparator[*ports.PSM], []string, error) {
	var (
		cmps  []fdr.Comparator[*ports.PSM]
		names []string
	)
	for _, dim := range s.Dimensions {
		col := d.Column(dim.Key.Column)
		if col < 0 {
			if dim.Optional {
				continue
			}
			return nil, nil, fmt.Errorf("dimension %q: column %q not in %s", dim.Name, dim.Key.Column, d.Path)
		}
		keys := []boundKey{{col: col, order: dim.Key.Order}}
		for _, k := range dim.Then {
			if c := d.Column(k.Column); c >= 0 {
				keys = append(keys, boundKey{col: c, order: k.Order})
			}
		}
		cmps = append(cmps, comparator(keys))
		names = append(names, dim.Name)
	}
	return cmps, names, nil
}

func comparator(keys []boundKey) fdr.Comparator[*ports.PSM] {
	return func(a, b *ports.PSM) int {
		for _, k := range keys {
			if c := k.compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// Package scheme turns a YAML scoring scheme into one fdr.Comparator per score
// dimension. A scheme names the columns of a PSM table to rank by, the
// direction of each, and optional secondary keys for ties.
package scheme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Order is the ranking direction of a column.
type Order int

const (
	// Descending ranks higher values first (the default).
	Descending Order = iota
	// Ascending ranks lower values first (e-values, ranks).
	Ascending
)

// String returns the YAML spelling of o.
func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ErrUnknownOrder is returned for an order other than asc/desc.
var ErrUnknownOrder = errors.New("unknown order")

// FallbackName names the scheme built by Fallback.
const FallbackName = "all-columns"

// ErrNoDimensions is returned when no dimension of a scheme can be bound.
var ErrNoDimensions = errors.New("no usable score dimension")

// OrderFromName parses "asc"/"desc" (empty means desc).
func OrderFromName(s string) (Order, error) {
	switch s {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOrder, s)
}

// Key is one column and its direction.
type Key struct {
	Column string
	Order  Order
}

// Dimension is one ranking of the items: a primary key plus tie breakers.
type Dimension struct {
	Name     string
	Key      Key
	Then     []Key
	Optional bool
}

// Scheme is an ordered list of dimensions.
type Scheme struct {
	Name       string
	Dimensions []Dimension
}

type yamlKey struct {
	Column string `yaml:"column"`
	Order  string `yaml:"order,omitempty"`
}

type yamlDimension struct {
	Name     string    `yaml:"name"`
	Column   string    `yaml:"column"`
	Order    string    `yaml:"order,omitempty"`
	Then     []yamlKey `yaml:"then,omitempty"`
	Optional bool      `yaml:"optional,omitempty"`
}

type yamlScheme struct {
	Name       string          `yaml:"name"`
	Dimensions []yamlDimension `yaml:"dimensions"`
}

// Parse decodes a YAML scheme.
func Parse(data []byte) (*Scheme, error) {
	var ys yamlScheme
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("parse scheme: %w", err)
	}

	s := &Scheme{Name: ys.Name}
	seen := make(map[string]bool)
	for i, yd := range ys.Dimensions {
		if yd.Column == "" {
			return nil, fmt.Errorf("dimension %d: missing column", i)
		}
		if yd.Name == "" {
			yd.Name = yd.Column
		}
		if seen[yd.Name] {
			return nil, fmt.Errorf("duplicate dimension %q", yd.Name)
		}
		seen[yd.Name] = true

		key, err := convertKey(yamlKey{Column: yd.Column, Order: yd.Order})
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", yd.Name, err)
		}
		d := Dimension{Name: yd.Name, Key: key, Optional: yd.Optional}
		for _, yk := range yd.Then {
			k, err := convertKey(yk)
			if err != nil {
				return nil, fmt.Errorf("dimension %q: then: %w", yd.Name, err)
			}
			d.Then = append(d.Then, k)
		}
		s.Dimensions = append(s.Dimensions, d)
	}
	return s, nil
}

func convertKey(yk yamlKey) (Key, error) {
	if yk.Column == "" {
		return Key{}, fmt.Errorf("missing column")
	}
	o, err := OrderFromName(yk.Order)
	if err != nil {
		return Key{}, err
	}
	return Key{Column: yk.Column, Order: o}, nil
}

// LoadFS reads and parses a scheme from fsys (e.g. schemes.FS).
func LoadFS(fsys fs.FS, path string) (*Scheme, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read scheme %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFile reads and parses a scheme file from disk.
func LoadFile(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scheme: %w", err)
	}
	return Parse(data)
}

// Marshal encodes s back to YAML.
func (s *Scheme) Marshal() ([]byte, error) {
	ys := yamlScheme{Name: s.Name}
	for _, d := range s.Dimensions {
		yd := yamlDimension{Name: d.Name, Column: d.Key.Column, Optional: d.Optional}
		if d.Key.Order != Descending {
			yd.Order = d.Key.Order.String()
		}
		for _, k := range d.Then {
			yk := yamlKey{Column: k.Column}
			if k.Order != Descending {
				yk.Order = k.Order.String()
			}
			yd.Then = append(yd.Then, yk)
		}
		ys.Dimensions = append(ys.Dimensions, yd)
	}
	return yaml.Marshal(ys)
}

// Fallback ranks every column descending, one dimension per column.
func Fallback(columns []string) *Scheme {
	s := &Scheme{Name: FallbackName}
	for _, c := range columns {
		s.Dimensions = append(s.Dimensions, Dimension{Name: c, Key: Key{Column: c}})
	}
	return s
}

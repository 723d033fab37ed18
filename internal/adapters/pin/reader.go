// Package pin reads PSM tables in Percolator input (PIN) layout and writes the
// selected subset back out as TSV or JSONL.
//
// A PIN file is tab-separated with a header row. Recognized metadata columns
// are SpecId (or PSMId), Label, ScanNr, Peptide and Proteins; every other
// column is a numeric score. Proteins is the last column and may spill over
// several trailing fields. An optional second row starting with
// DefaultDirection is skipped.
package pin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/corey/fdrizer/internal/ports"
)

var (
	// ErrNoLabelColumn is returned when the header has no Label column.
	ErrNoLabelColumn = errors.New("no Label column")

	// ErrBadLabel is returned for a Label value that is neither target nor decoy.
	ErrBadLabel = errors.New("bad label")
)

const defaultDirection = "defaultdirection"

// header maps the metadata columns of a table. -1 means absent.
type header struct {
	id, label, scan, peptide, proteins int
	scores                             []int
	names                              []string
}

func parseHeader(fields []string) (header, error) {
	h := header{id: -1, label: -1, scan: -1, peptide: -1, proteins: -1}
	for i, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "specid", "psmid", "id":
			h.id = i
		case "label":
			h.label = i
		case "scannr", "scan":
			h.scan = i
		case "peptide":
			h.peptide = i
		case "proteins", "protein":
			h.proteins = i
		default:
			h.scores = append(h.scores, i)
			h.names = append(h.names, strings.TrimSpace(f))
		}
	}
	if h.label < 0 {
		return h, ErrNoLabelColumn
	}
	return h, nil
}

// Read parses a PIN table from r. path is recorded on the dataset and used in
// error messages.
func Read(r io.Reader, path string) (*ports.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	first, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty table", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h, err := parseHeader(first)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d := &ports.Dataset{Path: path, Columns: h.names}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		line, _ := cr.FieldPos(0)
		if strings.EqualFold(strings.TrimSpace(rec[0]), defaultDirection) {
			continue
		}
		p, err := h.psm(rec)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if p.ID == "" {
			p.ID = strconv.Itoa(len(d.PSMs))
		}
		d.PSMs = append(d.PSMs, p)
	}
	return d, nil
}

func (h header) psm(rec []string) (*ports.PSM, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	label, err := ports.ParseLabel(field(h.label))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadLabel, field(h.label))
	}

	p := &ports.PSM{
		ID:      field(h.id),
		Class:   label,
		Peptide: field(h.peptide),
		Scores:  make([]float64, len(h.scores)),
	}
	if s := field(h.scan); s != "" {
		scan, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", s, err)
		}
		p.Scan = scan
	}
	if h.proteins >= 0 && h.proteins < len(rec) {
		for _, prot := range rec[h.proteins:] {
			if prot = strings.TrimSpace(prot); prot != "" {
				p.Proteins = append(p.Proteins, prot)
			}
		}
	}
	for j, col := range h.scores {
		s := field(col)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", h.names[j], err)
		}
		p.Scores[j] = v
	}
	return p, nil
}

// ReadFile opens and parses a PIN table.
func ReadFile(path string) (*ports.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}

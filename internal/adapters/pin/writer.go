package pin

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"syscall"

	"github.com/corey/fdrizer/internal/ports"
)

// Output formats.
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTSV, FormatJSONL}

// ErrUnknownFormat is returned by Write for a format not in Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// IsBrokenPipe reports whether err is a broken or closed pipe, as when the
// output is piped into head.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Write emits the PSMs at indices (arena positions into d.PSMs) in the given
// format. Broken pipes are not reported.
func Write(w io.Writer, format string, d *ports.Dataset, indices []int32) error {
	var err error
	switch format {
	case FormatTSV, "":
		err = WriteTSV(w, d, indices)
	case FormatJSONL:
		err = WriteJSONL(w, d, indices)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}

// WriteTSV writes the selected PSMs back in PIN layout:
// SpecId, Label, ScanNr, score columns, Peptide, Proteins (one field each).
func WriteTSV(w io.Writer, d *ports.Dataset, indices []int32) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	head := make([]string, 0, len(d.Columns)+5)
	head = append(head, "SpecId", "Label", "ScanNr")
	head = append(head, d.Columns...)
	head = append(head, "Peptide", "Proteins")
	if err := cw.Write(head); err != nil {
		return err
	}

	row := make([]string, 0, len(head))
	for _, idx := range indices {
		p := d.PSMs[idx]
		row = row[:0]
		row = append(row, p.ID, pinLabel(p.Class), strconv.Itoa(p.Scan))
		for i := range d.Columns {
			row = append(row, strconv.FormatFloat(p.Score(i), 'g', -1, 64))
		}
		row = append(row, p.Peptide)
		row = append(row, p.Proteins...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func pinLabel(l ports.Label) string {
	if l.IsDecoy() {
		return "-1"
	}
	return "1"
}

// Record is the JSONL form of one selected PSM.
type Record struct {
	ID       string             `json:"id"`
	Label    string             `json:"label"`
	Scan     int                `json:"scan,omitempty"`
	Peptide  string             `json:"peptide,omitempty"`
	Proteins []string           `json:"proteins,omitempty"`
	Scores   map[string]float64 `json:"scores"`
}

// ToRecord converts a PSM of d to its JSONL form.
func ToRecord(d *ports.Dataset, p *ports.PSM) Record {
	r := Record{
		ID:       p.ID,
		Label:    p.Class.String(),
		Scan:     p.Scan,
		Peptide:  p.Peptide,
		Proteins: p.Proteins,
		Scores:   make(map[string]float64, len(d.Columns)),
	}
	for i, c := range d.Columns {
		r.Scores[c] = p.Score(i)
	}
	return r
}

// WriteJSONL writes one JSON object per selected PSM.
func WriteJSONL(w io.Writer, d *ports.Dataset, indices []int32) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	enc := json.NewEncoder(bw)
	for _, idx := range indices {
		if err := enc.Encode(ToRecord(d, d.PSMs[idx])); err != nil {
			return err
		}
	}
	return bw.Flush()
}

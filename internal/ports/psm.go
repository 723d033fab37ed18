package ports

// PSM is one peptide-spectrum match read from a search engine export.
// Scores holds one value per score column of the owning Dataset, in header order.
type PSM struct {
	ID       string
	Class    Label
	Scan     int
	Peptide  string
	Proteins []string
	Scores   []float64
}

// Label implements Labeled.
func (p *PSM) Label() Label { return p.Class }

// Score returns the value of score column i, or 0 when out of range.
func (p *PSM) Score(i int) float64 {
	if i < 0 || i >= len(p.Scores) {
		return 0
	}
	return p.Scores[i]
}

// Dataset is a parsed PSM table. Columns names the numeric score columns;
// PSMs keep input order, which is also their arena index in a selection run.
type Dataset struct {
	Path    string
	Columns []string
	PSMs    []*PSM
}

// Column returns the index of the named score column, or -1.
func (d *Dataset) Column(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Counts returns the number of targets and decoys in the dataset.
func (d *Dataset) Counts() (targets, decoys int) {
	for _, p := range d.PSMs {
		if p.Class.IsTarget() {
			targets++
		} else {
			decoys++
		}
	}
	return targets, decoys
}

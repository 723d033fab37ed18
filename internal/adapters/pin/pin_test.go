package pin

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corey/fdrizer/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cometPIN = "SpecId\tLabel\tScanNr\tlnrSp\tdeltCn\tXcorr\tPeptide\tProteins\n" +
	"DefaultDirection\t-\t-\t-0.5\t3.1\t2.4\t\t\n" +
	"run_101_2_1\t1\t101\t0.0\t0.31\t3.25\tK.PEPTIDEK.A\tsp|P1|A\tsp|P2|B\n" +
	"run_102_2_1\t-1\t102\t1.6\t0.02\t1.10\tR.EDITPEPK.L\tdecoy_sp|P1|A\n" +
	"# trailing comment\n" +
	"run_103_3_1\t1\t103\t0.7\t0.12\t2.05\tK.SAMPLER.-\tsp|P3|C\n"

// =============================================================================
// Reader
// =============================================================================

func TestRead_CometPIN(t *testing.T) {
	d, err := Read(strings.NewReader(cometPIN), "comet.pin")
	require.NoError(t, err)

	assert.Equal(t, "comet.pin", d.Path)
	assert.Equal(t, []string{"lnrSp", "deltCn", "Xcorr"}, d.Columns)
	require.Len(t, d.PSMs, 3, "DefaultDirection and comment rows are skipped")

	p := d.PSMs[0]
	assert.Equal(t, "run_101_2_1", p.ID)
	assert.Equal(t, ports.Target, p.Class)
	assert.Equal(t, 101, p.Scan)
	assert.Equal(t, "K.PEPTIDEK.A", p.Peptide)
	assert.Equal(t, []string{"sp|P1|A", "sp|P2|B"}, p.Proteins, "proteins spill over trailing fields")
	assert.Equal(t, []float64{0, 0.31, 3.25}, p.Scores)

	assert.Equal(t, ports.Decoy, d.PSMs[1].Class)

	targets, decoys := d.Counts()
	assert.Equal(t, 2, targets)
	assert.Equal(t, 1, decoys)
}

func TestRead_GenericTSV(t *testing.T) {
	in := "label\tscore\n" + "target\t5\n" + "decoy\t4\n"
	d, err := Read(strings.NewReader(in), "x.tsv")
	require.NoError(t, err)
	require.Len(t, d.PSMs, 2)
	assert.Equal(t, "0", d.PSMs[0].ID, "missing ids fall back to the row index")
	assert.Equal(t, "1", d.PSMs[1].ID)
	assert.Equal(t, []string{"score"}, d.Columns)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader("SpecId\tscore\na\t1\n"), "x")
	assert.ErrorIs(t, err, ErrNoLabelColumn)

	_, err = Read(strings.NewReader("Label\tscore\n0\t1\n"), "x")
	assert.ErrorIs(t, err, ErrBadLabel)

	_, err = Read(strings.NewReader("Label\tscore\n1\tabc\n"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x:2")

	_, err = Read(strings.NewReader(""), "x")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.pin")
	require.NoError(t, os.WriteFile(path, []byte(cometPIN), 0644))

	d, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, d.PSMs, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.pin"))
	assert.Error(t, err)
}

// =============================================================================
// Writers
// =============================================================================

func TestWriteTSV_ReadsBack(t *testing.T) {
	d, err := Read(strings.NewReader(cometPIN), "comet.pin")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTSV, d, []int32{2, 0}))

	back, err := Read(&buf, "out.pin")
	require.NoError(t, err)
	require.Len(t, back.PSMs, 2)
	assert.Equal(t, d.Columns, back.Columns)
	assert.Equal(t, d.PSMs[2], back.PSMs[0])
	assert.Equal(t, d.PSMs[0], back.PSMs[1])
}

func TestWriteJSONL(t *testing.T) {
	d, err := Read(strings.NewReader(cometPIN), "comet.pin")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSONL, d, []int32{1}))

	var r Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	assert.Equal(t, "run_102_2_1", r.ID)
	assert.Equal(t, "decoy", r.Label)
	assert.Equal(t, 1.10, r.Scores["Xcorr"])
	assert.Equal(t, []string{"decoy_sp|P1|A"}, r.Proteins)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(io.Discard, "xml", &ports.Dataset{}, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWrite_BrokenPipeIsSilent(t *testing.T) {
	r, w := io.Pipe()
	require.NoError(t, r.Close())

	d, err := Read(strings.NewReader(cometPIN), "comet.pin")
	require.NoError(t, err)
	assert.NoError(t, Write(w, FormatJSONL, d, []int32{0, 1, 2}))
}

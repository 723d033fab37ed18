package scheme

import (
	"testing"
	"testing/fstest"

	"github.com/corey/fdrizer/internal/domain/fdr"
	"github.com/corey/fdrizer/internal/ports"
	"github.com/corey/fdrizer/schemes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Parsing
// =============================================================================

func TestParse_Defaults(t *testing.T) {
	s, err := Parse([]byte(`
name: test
dimensions:
  - column: xcorr
  - name: evalue
    column: expect
    order: asc
    then:
      - column: xcorr
`))
	require.NoError(t, err)
	assert.Equal(t, "test", s.Name)
	require.Len(t, s.Dimensions, 2)

	assert.Equal(t, "xcorr", s.Dimensions[0].Name, "name defaults to column")
	assert.Equal(t, Descending, s.Dimensions[0].Key.Order)
	assert.False(t, s.Dimensions[0].Optional)

	assert.Equal(t, Ascending, s.Dimensions[1].Key.Order)
	assert.Equal(t, []Key{{Column: "xcorr", Order: Descending}}, s.Dimensions[1].Then)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing column":   "dimensions:\n  - name: a\n",
		"bad order":        "dimensions:\n  - column: a\n    order: up\n",
		"duplicate name":   "dimensions:\n  - column: a\n  - column: a\n",
		"bad then order":   "dimensions:\n  - column: a\n    then:\n      - column: b\n        order: sideways\n",
		"then w/o column":  "dimensions:\n  - column: a\n    then:\n      - order: asc\n",
		"not yaml mapping": "- just\n- a list\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestOrderFromName(t *testing.T) {
	for in, want := range map[string]Order{"": Descending, "desc": Descending, "descending": Descending, "asc": Ascending, "ascending": Ascending} {
		got, err := OrderFromName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := OrderFromName("DESC")
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestMarshal_RoundTrips(t *testing.T) {
	in := &Scheme{Name: "rt", Dimensions: []Dimension{
		{Name: "a", Key: Key{Column: "a"}, Optional: true},
		{Name: "b", Key: Key{Column: "b", Order: Ascending}, Then: []Key{{Column: "a"}}},
	}}
	data, err := in.Marshal()
	require.NoError(t, err)

	out, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"s.yaml": {Data: []byte("name: s\ndimensions:\n  - column: a\n")}}
	s, err := LoadFS(fsys, "s.yaml")
	require.NoError(t, err)
	assert.Equal(t, "s", s.Name)

	_, err = LoadFS(fsys, "missing.yaml")
	assert.Error(t, err)
}

func TestEmbeddedDefaultParses(t *testing.T) {
	s, err := LoadFS(schemes.FS, schemes.Default)
	require.NoError(t, err)
	assert.Equal(t, "default", s.Name)
	assert.NotEmpty(t, s.Dimensions)
	for _, d := range s.Dimensions {
		assert.True(t, d.Optional, "default dimension %s must be optional", d.Name)
	}
}

// =============================================================================
// Binding
// =============================================================================

func dataset() *ports.Dataset {
	return &ports.Dataset{
		Path:    "test.pin",
		Columns: []string{"xcorr", "expect"},
		PSMs: []*ports.PSM{
			{ID: "a", Class: ports.Target, Scores: []float64{3, 0.01}},
			{ID: "b", Class: ports.Decoy, Scores: []float64{1, 0.5}},
			{ID: "c", Class: ports.Target, Scores: []float64{3, 0.001}},
		},
	}
}

func ranked(d *ports.Dataset, c fdr.Comparator[*ports.PSM]) []string {
	list := fdr.Rank(d.PSMs, c)
	out := make([]string, list.Len())
	for i := range out {
		out[i] = d.PSMs[list.At(i)].ID
	}
	return out
}

func TestBind_OrdersAndTieBreaks(t *testing.T) {
	d := dataset()
	s := &Scheme{Dimensions: []Dimension{
		{Name: "xcorr", Key: Key{Column: "xcorr"}, Then: []Key{{Column: "expect", Order: Ascending}}},
		{Name: "expect", Key: Key{Column: "expect", Order: Ascending}},
	}}
	cmps, names, err := s.Bind(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"xcorr", "expect"}, names)

	assert.Equal(t, []string{"c", "a", "b"}, ranked(d, cmps[0]))
	assert.Equal(t, []string{"c", "a", "b"}, ranked(d, cmps[1]))
}

func TestBind_MissingColumns(t *testing.T) {
	d := dataset()

	required := &Scheme{Dimensions: []Dimension{{Name: "sp", Key: Key{Column: "sp"}}}}
	_, _, err := required.Bind(d)
	assert.Error(t, err)

	optional := &Scheme{Dimensions: []Dimension{
		{Name: "sp", Key: Key{Column: "sp"}, Optional: true},
		{Name: "xcorr", Key: Key{Column: "xcorr"}, Then: []Key{{Column: "nope"}}},
	}}
	cmps, names, err := optional.Bind(d)
	require.NoError(t, err)
	assert.Len(t, cmps, 1)
	assert.Equal(t, []string{"xcorr"}, names)
}

func TestBind_FallsBackToAllColumns(t *testing.T) {
	d := dataset()
	s := &Scheme{Dimensions: []Dimension{{Name: "sp", Key: Key{Column: "sp"}, Optional: true}}}

	cmps, names, err := s.Bind(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"xcorr", "expect"}, names)
	// Fallback ranks every column descending.
	assert.Equal(t, []string{"b", "a", "c"}, ranked(d, cmps[1]))
}

func TestBind_NoColumns(t *testing.T) {
	d := &ports.Dataset{Path: "empty.pin"}
	_, _, err := Fallback(nil).Bind(d)
	assert.ErrorIs(t, err, ErrNoDimensions)
}

package assemble

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestest-extract/internal/document"
	"bestest-extract/internal/errs"
	"bestest-extract/internal/table"
)

type recorder struct{ lines []string }

func (r *recorder) Warn(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func tree(t *testing.T, n document.Node) *document.Tree {
	t.Helper()
	tr, ok := n.(*document.Tree)
	require.True(t, ok, "expected a subtree, got %T", n)
	return tr
}

func number(t *testing.T, doc *document.Tree, path ...string) float64 {
	t.Helper()
	v, ok := doc.Lookup(path...)
	require.True(t, ok, "missing %v", path)
	f, ok := v.Float()
	require.True(t, ok, "%v is not a number", path)
	return f
}

func TestFlatByCase(t *testing.T) {
	tbl := table.New("annual_sums_peaks", []string{"case", "annual_heating_mwh", "peak_heating_kw"})
	tbl.Append([]table.Cell{table.TextCell("600"), table.NumberCell(4.3), table.NumberCell(3.4)})
	tbl.Append([]table.Cell{table.TextCell("900"), table.NumberCell(1.6), table.NullCell()})

	n, err := Flat{Key: "case"}.Assemble(Part{Table: tbl}, &recorder{})
	require.NoError(t, err)
	doc := tree(t, n)

	assert.Equal(t, []string{"600", "900"}, doc.Keys())
	assert.Equal(t, 4.3, number(t, doc, "600", "annual_heating_mwh"))
	v, ok := doc.Lookup("900", "peak_heating_kw")
	require.True(t, ok)
	assert.True(t, v.IsNull())
	_, ok = doc.Get("600", "case")
	assert.False(t, ok, "the key column is not repeated in the record")
}

func TestFlatDuplicateCaseIsProcessingError(t *testing.T) {
	tbl := table.New("t", []string{"case", "v"})
	tbl.Append([]table.Cell{table.TextCell("600"), table.NumberCell(1)})
	tbl.Append([]table.Cell{table.TextCell("600"), table.NumberCell(2)})

	_, err := Flat{Key: "case"}.Assemble(Part{Table: tbl}, &recorder{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrProcessing))
	assert.True(t, errors.Is(err, document.ErrKeyConflict))
}

func TestSurfaceSplitsCompoundKey(t *testing.T) {
	tbl := table.New("annual_incident_solar_radiation", []string{"case_surface", "incident_kwh_m2"})
	tbl.Append([]table.Cell{table.TextCell("610/South"), table.NumberCell(1435)})
	tbl.Append([]table.Cell{table.TextCell("610/ West"), table.NumberCell(1037)})
	tbl.Append([]table.Cell{table.TextCell("600/South"), table.NumberCell(1441)})

	n, err := Surface{Column: "case_surface"}.Assemble(Part{Table: tbl}, &recorder{})
	require.NoError(t, err)
	doc := tree(t, n)

	assert.Equal(t, 1435.0, number(t, doc, "610", "Surface", "South", "incident_kwh_m2"))
	assert.Equal(t, 1037.0, number(t, doc, "610", "Surface", "West", "incident_kwh_m2"))
	assert.Equal(t, 1441.0, number(t, doc, "600", "Surface", "South", "incident_kwh_m2"))
}

func TestSurfaceMalformedKey(t *testing.T) {
	tbl := table.New("s", []string{"case_surface", "v"})
	tbl.Append([]table.Cell{table.TextCell("610-South"), table.NumberCell(1)})

	_, err := Surface{Column: "case_surface"}.Assemble(Part{Table: tbl}, &recorder{})
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}

func TestSplitCompound(t *testing.T) {
	tests := []struct {
		in      string
		c, s    string
		wantErr bool
	}{
		{"610/South", "610", "South", false},
		{" 620 / East ", "620", "East", false},
		{"610/South/Upper", "610", "South/Upper", false},
		{"610", "", "", true},
		{"/South", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, s, err := SplitCompound(tt.in, "/")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.c, c)
			assert.Equal(t, tt.s, s)
		})
	}
}

func hourlyTable() *table.Table {
	tbl := table.New("hourly_incident_solar_radiation",
		[]string{"hour", "mar5_south", "mar5_west", "jul27_south", "jul27_west"})
	for h := 1; h <= 3; h++ {
		f := float64(h)
		tbl.Append([]table.Cell{table.NumberCell(f), table.NumberCell(10 * f), table.NumberCell(20 * f),
			table.NumberCell(30 * f), table.NumberCell(40 * f)})
	}
	return tbl
}

func TestSeriesByHourWithPeriods(t *testing.T) {
	rule := Series{Index: "hour", Periods: []Period{
		{Case: "600", Name: "Mar 5", Prefix: "mar5_"},
		{Case: "600", Name: "Jul 27", Prefix: "jul27_"},
	}}
	n, err := rule.Assemble(Part{Table: hourlyTable()}, &recorder{})
	require.NoError(t, err)
	doc := tree(t, n)

	assert.Equal(t, 20.0, number(t, doc, "600", "Mar 5", "hour", "2", "south"))
	assert.Equal(t, 120.0, number(t, doc, "600", "Jul 27", "hour", "3", "west"))

	rec, ok := doc.Get("600", "Mar 5", "hour", "1")
	require.True(t, ok)
	assert.Len(t, rec.(document.Record), 2, "only the period's own columns")
}

func TestSeriesWithoutSubPeriod(t *testing.T) {
	tbl := table.New("daily_floor_conduction", []string{"day", "gc40a_w", "gc40b_w"})
	tbl.Append([]table.Cell{table.NumberCell(1), table.NumberCell(2466), table.NumberCell(2100)})
	tbl.Append([]table.Cell{table.NumberCell(365), table.NumberCell(2470), table.NumberCell(2101)})

	rule := Series{Index: "day", IndexKey: "day", Periods: []Period{
		{Case: "GC40a", Prefix: "gc40a_"},
		{Case: "GC40b", Prefix: "gc40b_"},
	}}
	n, err := rule.Assemble(Part{Table: tbl}, &recorder{})
	require.NoError(t, err)
	doc := tree(t, n)

	assert.Equal(t, 2470.0, number(t, doc, "GC40a", "day", "365", "w"))
	assert.Equal(t, 2100.0, number(t, doc, "GC40b", "day", "1", "w"))
}

func TestSeriesSkipsNullIndex(t *testing.T) {
	tbl := hourlyTable()
	tbl.Set(1, 0, table.NullCell())
	log := &recorder{}

	rule := Series{Index: "hour", Periods: []Period{{Case: "600", Name: "Mar 5", Prefix: "mar5_"}}}
	n, err := rule.Assemble(Part{Table: tbl}, log)
	require.NoError(t, err)

	hours, ok := tree(t, n).Get("600", "Mar 5", "hour")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "3"}, hours.(*document.Tree).Keys())
	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "row 1 has no hour")
}

func TestSeriesUnknownPrefix(t *testing.T) {
	rule := Series{Index: "hour", Periods: []Period{{Case: "600", Prefix: "dec21_"}}}
	_, err := rule.Assemble(Part{Table: hourlyTable()}, &recorder{})
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}

func monthlyWide() *table.Table {
	fields := []string{"heating_kwh", "cooling_kwh", "peak_heating_kw", "peak_heating_day",
		"peak_heating_hour", "peak_cooling_kw", "peak_cooling_day", "peak_cooling_hour"}
	cols := []string{"month"}
	for _, p := range []string{"600_", "900_"} {
		for _, f := range fields {
			cols = append(cols, p+f)
		}
	}
	tbl := table.New("monthly_conditioned_zone_loads", cols)
	for m, name := range []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"} {
		row := []table.Cell{table.TextCell(name)}
		for i := 1; i < len(cols); i++ {
			row = append(row, table.NumberCell(float64(100*m+i)))
		}
		tbl.Append(row)
	}
	return tbl
}

func TestWideSplitsIntoPerCaseTables(t *testing.T) {
	raw := monthlyWide()
	require.Equal(t, 17, raw.Width())
	rule := Wide{RowKey: "month", Cases: []WideCase{{Case: "600", Prefix: "600_"}, {Case: "900", Prefix: "900_"}}}

	parts, err := PartsOf(rule, raw)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	for _, p := range parts {
		assert.Equal(t, 9, p.Table.Width())
		assert.Equal(t, 12, p.Table.Len())
		assert.Equal(t, "month", p.Table.Columns[0])
		assert.Equal(t, "heating_kwh", p.Table.Columns[1])
	}

	doc := document.NewTree()
	for _, p := range parts {
		n, err := rule.Assemble(p, &recorder{})
		require.NoError(t, err)
		require.NoError(t, doc.MergeTree(tree(t, n)))
	}

	assert.Equal(t, []string{"600", "900"}, doc.Keys())
	for _, c := range []string{"600", "900"} {
		months, ok := doc.Get(c)
		require.True(t, ok)
		assert.Equal(t, 12, months.(*document.Tree).Len())
	}
	assert.Equal(t, 101.0, number(t, doc, "600", "Feb", "heating_kwh"))
	assert.Equal(t, 109.0, number(t, doc, "900", "Feb", "heating_kwh"))
}

func TestWideMissingCaseColumns(t *testing.T) {
	rule := Wide{RowKey: "month", Cases: []WideCase{{Case: "620", Prefix: "620_"}}}
	_, err := rule.Split(monthlyWide())
	assert.True(t, errors.Is(err, errs.ErrProcessing))
}

func TestPartsOfNonSplitter(t *testing.T) {
	tbl := hourlyTable()
	parts, err := PartsOf(Flat{Key: "hour"}, tbl)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Same(t, tbl, parts[0].Table)
}

func TestEmptyTablesContributeNothing(t *testing.T) {
	rules := map[string]Rule{
		"flat":    Flat{Key: "case"},
		"surface": Surface{Column: "case_surface"},
		"series":  Series{Index: "hour", Periods: []Period{{Case: "600", Prefix: "x_"}}},
		"wide":    Wide{RowKey: "month", Cases: []WideCase{{Case: "600", Prefix: "600_"}}},
	}
	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			empty := table.New(name, []string{"unrelated"})
			n, err := rule.Assemble(Part{Case: "600", Table: empty}, &recorder{})
			require.NoError(t, err)
			assert.Equal(t, 0, tree(t, n).Len())
		})
	}

	n, err := Identity{}.Assemble(Part{Table: table.New("id", []string{"field", "value"})}, &recorder{})
	require.NoError(t, err)
	assert.Empty(t, n.(document.Record))
}

func TestIdentityRecord(t *testing.T) {
	tbl := table.New("identifying_information", []string{"field", "value"})
	tbl.Append([]table.Cell{table.TextCell("Software"), table.TextCell("EnergyPlus")})
	tbl.Append([]table.Cell{table.TextCell("Version"), table.TextCell("9.0.1")})
	tbl.Append([]table.Cell{table.TextCell("Release Date"), table.TextCell("2018-10-01")})

	n, err := Identity{}.Assemble(Part{Table: tbl}, &recorder{})
	require.NoError(t, err)

	sw := SoftwareOf(n)
	assert.Equal(t, Software{Name: "EnergyPlus", Version: "9.0.1", ReleaseDate: "2018-10-01"}, sw)
	assert.Equal(t, Software{}, SoftwareOf(document.NewTree()))
}

// Every cleansed cell read back from the document equals the cell it came from.
func TestRoundTripValues(t *testing.T) {
	raw := monthlyWide()
	rule := Wide{RowKey: "month", Cases: []WideCase{{Case: "600", Prefix: "600_"}, {Case: "900", Prefix: "900_"}}}
	parts, err := rule.Split(raw)
	require.NoError(t, err)

	for _, p := range parts {
		n, err := rule.Assemble(p, &recorder{})
		require.NoError(t, err)
		doc := tree(t, n)
		for _, row := range p.Table.Rows {
			for ci := 1; ci < p.Table.Width(); ci++ {
				got := number(t, doc, p.Case, row[0].Text, p.Table.Columns[ci])
				assert.InDelta(t, row[ci].Num, got, 1e-9)
			}
		}
	}
}

func TestSpecBuild(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		want    Rule
		wantErr bool
	}{
		{"flat", Spec{Kind: "flat", Key: "case"}, Flat{Key: "case"}, false},
		{"flat without key", Spec{Kind: "flat"}, nil, true},
		{"identity", Spec{Kind: "identity"}, Identity{}, false},
		{"surface", Spec{Kind: "surface", Column: "cs"}, Surface{Column: "cs"}, false},
		{"series", Spec{Kind: "series", Index: "hour", Periods: []Period{{Case: "600", Prefix: "a_"}}},
			Series{Index: "hour", Periods: []Period{{Case: "600", Prefix: "a_"}}}, false},
		{"series without periods", Spec{Kind: "series", Index: "hour"}, nil, true},
		{"wide", Spec{Kind: "wide", RowKey: "month", Cases: []WideCase{{Case: "600", Prefix: "600_"}}},
			Wide{RowKey: "month", Cases: []WideCase{{Case: "600", Prefix: "600_"}}}, false},
		{"unknown", Spec{Kind: "pivot"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Build()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errs.ErrConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

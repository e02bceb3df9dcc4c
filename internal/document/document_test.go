package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestest-extract/internal/table"
)

func surfaceTree(c, surface string, v float64) *Tree {
	s := NewTree()
	s.children[surface] = Record{"incident_kwh_m2": Number(v)}
	inner := NewTree()
	inner.children["Surface"] = s
	root := NewTree()
	root.children[c] = inner
	return root
}

func TestMergeDisjointSubtrees(t *testing.T) {
	doc := NewTree()
	require.NoError(t, doc.MergeTree(surfaceTree("610", "South", 367.1)))
	require.NoError(t, doc.MergeTree(surfaceTree("610", "West", 210)))
	require.NoError(t, doc.MergeTree(surfaceTree("600", "South", 400)))

	v, ok := doc.Lookup("610", "Surface", "South", "incident_kwh_m2")
	require.True(t, ok)
	f, _ := v.Float()
	assert.Equal(t, 367.1, f)

	n, ok := doc.Get("610", "Surface")
	require.True(t, ok)
	assert.Equal(t, []string{"South", "West"}, n.(*Tree).Keys())
}

func TestMergeConflictReportsPath(t *testing.T) {
	doc := NewTree()
	require.NoError(t, doc.MergeTree(surfaceTree("610", "South", 1)))

	err := doc.MergeTree(surfaceTree("610", "South", 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyConflict))

	var c *ConflictError
	require.True(t, errors.As(err, &c))
	assert.Equal(t, []string{"610", "Surface", "South", "incident_kwh_m2"}, c.Path)

	v, _ := doc.Lookup("610", "Surface", "South", "incident_kwh_m2")
	f, _ := v.Float()
	assert.Equal(t, 1.0, f, "existing value must not be overwritten")
}

func TestMergeRecordsFieldwise(t *testing.T) {
	doc := NewTree()
	require.NoError(t, doc.Merge("600", Record{"annual_heating_mwh": Number(4.3)}))
	require.NoError(t, doc.Merge("600", Record{"annual_cooling_mwh": Number(6.1)}))

	n, _ := doc.Get("600")
	assert.Len(t, n.(Record), 2)

	err := doc.Merge("600", NewTree())
	assert.True(t, errors.Is(err, ErrKeyConflict), "a record and a subtree cannot share a key")
}

func TestJSONRoundTrip(t *testing.T) {
	doc := NewTree()
	require.NoError(t, doc.Merge("identifying_information", Record{
		"software_name":    String("EnergyPlus"),
		"software_version": String("9.0.1"),
	}))
	hours := NewTree()
	hours.children["1"] = Record{"north": Number(0), "south": Null()}
	series := NewTree()
	series.children["hour"] = hours
	day := NewTree()
	day.children["Mar 5"] = series
	cases := NewTree()
	cases.children["600"] = day
	require.NoError(t, doc.Merge("hourly_incident_solar_radiation", cases))
	require.NoError(t, doc.Merge("empty_table", NewTree()))

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"identifying_information": {"software_name": "EnergyPlus", "software_version": "9.0.1"},
		"hourly_incident_solar_radiation": {"600": {"Mar 5": {"hour": {"1": {"north": 0, "south": null}}}}},
		"empty_table": {}
	}`, string(b))

	back := NewTree()
	require.NoError(t, json.Unmarshal(b, back))
	rec, ok := back.Get("hourly_incident_solar_radiation", "600", "Mar 5", "hour", "1")
	require.True(t, ok)
	assert.Equal(t, KindRecord, rec.Kind())
	south, _ := back.Lookup("hourly_incident_solar_radiation", "600", "Mar 5", "hour", "1", "south")
	assert.True(t, south.IsNull())

	empty, ok := back.Get("empty_table")
	require.True(t, ok)
	assert.Equal(t, KindTree, empty.Kind())
}

func TestFromCell(t *testing.T) {
	assert.True(t, FromCell(table.NullCell()).IsNull())
	s, ok := FromCell(table.TextCell("Jan 4")).Text()
	assert.True(t, ok)
	assert.Equal(t, "Jan 4", s)
	f, ok := FromCell(table.NumberCell(-2.5)).Float()
	assert.True(t, ok)
	assert.Equal(t, -2.5, f)
	assert.Equal(t, "-2.5", Number(-2.5).String())
}

func TestGetMissing(t *testing.T) {
	doc := NewTree()
	require.NoError(t, doc.Merge("600", Record{"a": Number(1)}))

	_, ok := doc.Get("900")
	assert.False(t, ok)
	_, ok = doc.Get("600", "a", "deeper")
	assert.False(t, ok)
	_, ok = doc.Lookup("600")
	assert.False(t, ok, "a record is not a leaf")
}

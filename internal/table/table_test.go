package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Table {
	t := New("monthly", []string{"month", "600_heating_kwh", "900_heating_kwh"})
	t.Append([]Cell{TextCell("Jan"), TextCell("1.5"), TextCell("0.9")})
	t.Append([]Cell{TextCell("Feb"), TextCell("1.2")})
	return t
}

func TestAppendPadsRows(t *testing.T) {
	tbl := sample()
	require.Equal(t, 2, tbl.Len())
	assert.Len(t, tbl.Rows[1], 3)
	assert.True(t, tbl.Rows[1][2].IsNull())
}

func TestTextCellBlankIsNull(t *testing.T) {
	assert.True(t, TextCell("   ").IsNull())
	assert.Equal(t, Text, TextCell("600").Kind)
	assert.Equal(t, "2.5", NumberCell(2.5).String())
	assert.Equal(t, "", NullCell().String())
}

func TestIndexMissingColumn(t *testing.T) {
	_, err := sample().Index("case")
	var colErr *ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "case", colErr.Column)
	assert.Equal(t, "monthly", colErr.Table)
}

func TestFilterReindexes(t *testing.T) {
	tbl := sample()
	out := tbl.Filter(func(i int, row []Cell) bool { return row[0].Text == "Feb" })

	require.Equal(t, 1, out.Len())
	c, err := out.Cell(0, "month")
	require.NoError(t, err)
	assert.Equal(t, "Feb", c.Text)
	assert.Equal(t, 2, tbl.Len(), "source table must not change")
}

func TestSelectWithRename(t *testing.T) {
	tbl := sample()
	cols := append([]string{"month"}, tbl.ColumnsWithPrefix("900_")...)

	out, err := tbl.Select("monthly[900]", cols, func(c string) string {
		return strings.TrimPrefix(c, "900_")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"month", "heating_kwh"}, out.Columns)
	assert.Equal(t, "0.9", out.Rows[0][1].Text)

	_, err = tbl.Select("bad", []string{"nope"}, nil)
	assert.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	tbl := sample()
	cp := tbl.Clone()
	cp.Set(0, 1, NullCell())
	assert.Equal(t, "1.5", tbl.Rows[0][1].Text)
}

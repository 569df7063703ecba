// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bytes"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/UNO-SOFT/xtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestSheet(t *testing.T) (*XLSXWriter, *XLSXSheet) {
	t.Helper()
	xlw := NewWriter(nil)
	t.Cleanup(func() { xlw.Close() })
	require.Equal(t, 1, xlw.SheetCount())
	xls, err := xlw.sheet(0)
	require.NoError(t, err)
	return xlw, xls
}

func TestStyleCache(t *testing.T) {
	xlw, _ := newTestSheet(t)
	id, err := xlw.getStyle(xtable.Style{})
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	bold := xtable.Style{Font: xtable.Font{Bold: true}}
	id1, err := xlw.getStyle(bold)
	require.NoError(t, err)
	assert.NotZero(t, id1)
	id2, err := xlw.getStyle(xtable.Style{Font: xtable.Font{Bold: true}})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	id3, err := xlw.getStyle(xtable.Style{Font: xtable.Font{Italic: true}})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
	assert.Len(t, xlw.styles, 2)
}

func TestToExcelize(t *testing.T) {
	edge := xtable.Border{Style: xtable.BorderDouble, Color: "FF00FF00"}
	st := toExcelize(xtable.Style{
		Format: "0.00",
		Fill:   "FFFFEE00",
		Font:   xtable.Font{Bold: true, Underline: true, Subscript: true, Size: 500},
		Alignment: xtable.Alignment{
			Wrap: true, Horizontal: "center", Vertical: "top",
		},
		Border: xtable.Borders{Top: edge, Left: edge},
	})
	require.NotNil(t, st.CustomNumFmt)
	assert.Equal(t, "0.00", *st.CustomNumFmt)
	assert.Equal(t, excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEE00"}}, st.Fill)
	require.NotNil(t, st.Font)
	assert.True(t, st.Font.Bold)
	assert.Equal(t, "single", st.Font.Underline)
	assert.Equal(t, "subscript", st.Font.VertAlign)
	assert.Equal(t, float64(excelize.MaxFontSize), st.Font.Size)
	assert.Equal(t, &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true}, st.Alignment)
	assert.Equal(t, []excelize.Border{
		{Type: "left", Color: "00FF00", Style: 6},
		{Type: "top", Color: "00FF00", Style: 6},
	}, st.Border)

	st = toExcelize(xtable.Style{})
	assert.Nil(t, st.Font)
	assert.Nil(t, st.Alignment)
	assert.Empty(t, st.Border)
}

func TestRGB(t *testing.T) {
	assert.Equal(t, "123456", rgb("FF123456"))
	assert.Equal(t, "123456", rgb("123456"))
}

func TestSetCellValue(t *testing.T) {
	xlw, xls := newTestSheet(t)
	f := xlw.File()
	for ref, v := range map[string]any{
		"A1": xtable.Number("12.5"),
		"B1": xtable.Number("n/a"),
		"C1": time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		"D1": sql.NullString{String: "x", Valid: true},
		"E1": sql.NullInt64{},
		"F1": nil,
		"G1": 42,
	} {
		col, row, err := excelize.CellNameToCoordinates(ref)
		require.NoError(t, err)
		require.NoError(t, xls.SetCellValue(xtable.Coord{Col: col - 1, Row: row}, v), ref)
	}
	for ref, want := range map[string]string{
		"A1": "12.5", "B1": "n/a", "C1": "2026-03-04", "D1": "x", "E1": "", "F1": "", "G1": "42",
	} {
		got, err := f.GetCellValue(xls.Name, ref)
		require.NoError(t, err)
		assert.Equal(t, want, got, ref)
	}

	typ, err := f.GetCellType(xls.Name, "A1")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "a parsable Number is a number")
	typ, err = f.GetCellType(xls.Name, "B1")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, typ)
}

func TestTooManyRows(t *testing.T) {
	_, xls := newTestSheet(t)
	err := xls.SetCellValue(xtable.Coord{Col: 0, Row: MaxRowCount + 1}, "x")
	assert.True(t, errors.Is(err, xtable.ErrTooManyRows), "got %v", err)
}

func TestSheets(t *testing.T) {
	xlw, _ := newTestSheet(t)
	idx, err := xlw.NewSheet()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	sh, err := xlw.Sheet(1)
	require.NoError(t, err)
	assert.Equal(t, "Sheet2", sh.(*XLSXSheet).Name)

	require.NoError(t, sh.SetTitle("Data"))
	idx, err = xlw.NewSheet()
	require.NoError(t, err)
	sh, err = xlw.Sheet(idx)
	require.NoError(t, err)
	assert.Equal(t, "Sheet3", sh.(*XLSXSheet).Name)

	require.NoError(t, xlw.SetActiveSheet(1))
	assert.Equal(t, 1, xlw.File().GetActiveSheetIndex())

	_, err = xlw.Sheet(3)
	assert.ErrorIs(t, err, xtable.ErrNoSheet)
	assert.ErrorIs(t, xlw.SetActiveSheet(-1), xtable.ErrNoSheet)
}

func TestColumnWidth(t *testing.T) {
	xlw, xls := newTestSheet(t)
	w, err := xls.ColumnWidth(0)
	require.NoError(t, err)
	assert.Equal(t, -1.0, w)

	require.NoError(t, xls.SetColumnWidth(0, 1000))
	w, err = xls.ColumnWidth(0)
	require.NoError(t, err)
	assert.Equal(t, float64(excelize.MaxColumnWidth), w)

	require.NoError(t, xls.SetColumnWidth(0, -1))
	w, err = xls.ColumnWidth(0)
	require.NoError(t, err)
	assert.Equal(t, -1.0, w)
	xw, err := xlw.File().GetColWidth(xls.Name, "A")
	require.NoError(t, err)
	assert.InDelta(t, DefaultColWidth, xw, 0.001)

	// nothing written yet
	require.NoError(t, xls.AutoSizeColumn(1))
	require.NoError(t, xls.SetCellValue(xtable.Coord{Col: 1, Row: 1}, "short\na much longer line"))
	require.NoError(t, xls.AutoSizeColumn(1))
	xw, err = xlw.File().GetColWidth(xls.Name, "B")
	require.NoError(t, err)
	assert.InDelta(t, 18*1.1+2, xw, 0.001)
}

func TestPixels(t *testing.T) {
	assert.Equal(t, uint(0), pixels(-3))
	assert.Equal(t, uint(0), pixels(0))
	assert.Equal(t, uint(160), pixels(120))
}

func TestClose(t *testing.T) {
	var buf bytes.Buffer
	xlw := NewWriter(&buf)
	xls, err := xlw.sheet(0)
	require.NoError(t, err)
	require.NoError(t, xls.SetCellValue(xtable.Coord{Col: 0, Row: 1}, "hello"))
	require.NoError(t, xlw.Close())
	require.NotZero(t, buf.Len())
	require.NoError(t, xlw.Close(), "second Close is a no-op")

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	s, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestWrap(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	xlw := Wrap(nil, f)
	defer xlw.Close()
	assert.Equal(t, 2, xlw.SheetCount())
	sh, err := xlw.Sheet(1)
	require.NoError(t, err)
	assert.Equal(t, "Other", sh.(*XLSXSheet).Name)
}

func TestFromExcelize(t *testing.T) {
	edge := xtable.Border{Style: xtable.BorderDashed, Color: "FF0000FF"}
	want := xtable.Style{
		Format: "#,##0.000",
		Fill:   "FFEEEEEE",
		Font: xtable.Font{
			Bold: true, Underline: true, Superscript: true, Size: 12,
			Family: "Arial", Color: "FF112233",
		},
		Alignment: xtable.Alignment{Wrap: true, Horizontal: "right"},
		Border:    xtable.Borders{Bottom: edge, Right: edge},
	}
	assert.Equal(t, want, fromExcelize(toExcelize(want)))

	assert.Equal(t, xtable.Style{NumFmt: 14}, fromExcelize(toExcelize(xtable.Style{NumFmt: 14})))
	assert.Equal(t, "FFABCDEF", argb("ABCDEF"))
	assert.Equal(t, "", argb(""))
}

func TestWrapKeepsStyles(t *testing.T) {
	f := excelize.NewFile()
	numFmt := "0.00"
	id, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
		Border:       []excelize.Border{{Type: "left", Color: "FF0000", Style: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "A1", 1.0))
	require.NoError(t, f.SetCellStyle("Sheet1", "A1", "A1", id))

	xlw := Wrap(nil, f)
	defer xlw.Close()
	tbl, err := xtable.New(xlw, xtable.Config{})
	require.NoError(t, err)

	sh := tbl.Sheet()
	st, err := sh.Style(xtable.Coord{Col: 0, Row: 1})
	require.NoError(t, err)
	assert.Equal(t, "0.00", st.Format)
	assert.True(t, st.Font.Bold)
	assert.Equal(t, "FFFFFF00", st.Fill)
	assert.Equal(t, xtable.Border{Style: xtable.BorderMedium, Color: "FFFF0000"}, st.Border.Left)

	unstyled, err := sh.Style(xtable.Coord{Col: 1, Row: 1})
	require.NoError(t, err)
	assert.Equal(t, xtable.Style{}, unstyled)

	require.NoError(t, tbl.Write(1.5, 1, xtable.Options{Italic: xtable.Bool(true)}))

	newID, err := f.GetCellStyle("Sheet1", "A1")
	require.NoError(t, err)
	xst, err := f.GetStyle(newID)
	require.NoError(t, err)
	require.NotNil(t, xst.Font)
	assert.True(t, xst.Font.Bold, "bold is kept")
	assert.True(t, xst.Font.Italic)
	require.NotNil(t, xst.CustomNumFmt)
	assert.Equal(t, "0.00", *xst.CustomNumFmt)
	assert.Equal(t, []string{"FFFF00"}, xst.Fill.Color)
	require.Len(t, xst.Border, 1)
	assert.Equal(t, "left", xst.Border[0].Type)
	assert.Equal(t, 2, xst.Border[0].Style)
}

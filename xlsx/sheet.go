// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/UNO-SOFT/xtable"
	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

// MaxRowCount is the number of maximum rows.
const MaxRowCount = excelize.TotalRows

// DefaultColWidth is the width of a column without explicit width.
const DefaultColWidth = 9.140625

// XLSXSheet is a sheet of an XLSXWriter.
type XLSXSheet struct {
	wb   *XLSXWriter
	xl   *excelize.File
	Name string

	styles map[xtable.Coord]xtable.Style
	// widths set explicitly
	widths map[int]float64
	// display width of the widest line, per column
	content map[int]int
	mu      sync.Mutex
}

func newSheet(wb *XLSXWriter, name string) *XLSXSheet {
	return &XLSXSheet{
		wb: wb, xl: wb.xl, Name: name,
		styles:  make(map[xtable.Coord]xtable.Style),
		widths:  make(map[int]float64),
		content: make(map[int]int),
	}
}

func (xls *XLSXSheet) errorf(c xtable.Coord, err error) error {
	return fmt.Errorf("%s[%s]: %w", xls.Name, c, err)
}

// SetCellValue sets the value of the cell.
//
// Nil values (including invalid sql.Null* values) are skipped, dates are
// written as YYYY-MM-DD text, xtable.Number as a number if it parses.
func (xls *XLSXSheet) SetCellValue(c xtable.Coord, v any) error {
	if c.Row > MaxRowCount {
		return xtable.ErrTooManyRows
	}
	axis := c.String()
	if v == nil {
		return nil
	}
	if vr, ok := v.(driver.Valuer); ok {
		if vv, err := vr.Value(); err == nil {
			if v = vv; v == nil {
				return nil
			}
		}
	}
	var err error
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return nil
		}
		v = x.Format("2006-01-02")
	case sql.NullTime:
		if !x.Valid || x.Time.IsZero() {
			return nil
		}
		v = x.Time.Format("2006-01-02")
	case sql.NullFloat64:
		if !x.Valid {
			return nil
		}
		v = x.Float64
	case sql.NullInt64:
		if !x.Valid {
			return nil
		}
		v = x.Int64
	case sql.NullString:
		if !x.Valid {
			return nil
		}
		v = x.String
	case xtable.Number:
		if f, perr := strconv.ParseFloat(strings.TrimSpace(string(x)), 64); perr == nil {
			v = f
		} else {
			v = string(x)
		}
	case fmt.Stringer:
		v = x.String()
	}
	if s, ok := v.(string); ok {
		err = xls.xl.SetCellStr(xls.Name, axis, s)
		xls.measure(c.Col, s)
	} else {
		err = xls.xl.SetCellValue(xls.Name, axis, v)
		xls.measure(c.Col, fmt.Sprint(v))
	}
	if err != nil {
		return xls.errorf(c, err)
	}
	return nil
}

func (xls *XLSXSheet) measure(col int, s string) {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, runewidth.StringWidth(line))
	}
	xls.mu.Lock()
	xls.content[col] = max(xls.content[col], w)
	xls.mu.Unlock()
}

func (xls *XLSXSheet) CellValue(c xtable.Coord) (string, error) {
	s, err := xls.xl.GetCellValue(xls.Name, c.String())
	if err != nil {
		return s, xls.errorf(c, err)
	}
	return s, nil
}

// Style returns the style of the cell.
// Styles not set through this sheet are read from the document.
func (xls *XLSXSheet) Style(c xtable.Coord) (xtable.Style, error) {
	xls.mu.Lock()
	st, ok := xls.styles[c]
	xls.mu.Unlock()
	if ok {
		return st, nil
	}
	id, err := xls.xl.GetCellStyle(xls.Name, c.String())
	if err != nil {
		return st, xls.errorf(c, err)
	}
	if id == 0 {
		return st, nil
	}
	xst, err := xls.xl.GetStyle(id)
	if err != nil {
		return st, xls.errorf(c, err)
	}
	st = fromExcelize(xst)
	xls.wb.rememberStyle(st, id)
	xls.mu.Lock()
	xls.styles[c] = st
	xls.mu.Unlock()
	return st, nil
}

func (xls *XLSXSheet) SetStyle(c xtable.Coord, style xtable.Style) error {
	id, err := xls.wb.getStyle(style)
	if err != nil {
		return xls.errorf(c, err)
	}
	axis := c.String()
	if err = xls.xl.SetCellStyle(xls.Name, axis, axis, id); err != nil {
		return xls.errorf(c, err)
	}
	xls.mu.Lock()
	xls.styles[c] = style
	xls.mu.Unlock()
	return nil
}

func (xls *XLSXSheet) MergeCells(from, to xtable.Coord) error {
	if err := xls.xl.MergeCell(xls.Name, from.String(), to.String()); err != nil {
		return fmt.Errorf("%s[%s:%s]: %w", xls.Name, from, to, err)
	}
	return nil
}

func (xls *XLSXSheet) ColumnWidth(col int) (float64, error) {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if w, ok := xls.widths[col]; ok {
		return w, nil
	}
	return -1, nil
}

func (xls *XLSXSheet) SetColumnWidth(col int, width float64) error {
	name := xtable.ColumnName(col)
	xls.mu.Lock()
	if width <= 0 {
		delete(xls.widths, col)
		width = DefaultColWidth
	} else {
		width = min(width, excelize.MaxColumnWidth)
		xls.widths[col] = width
	}
	xls.mu.Unlock()
	if err := xls.xl.SetColWidth(xls.Name, name, name, width); err != nil {
		return fmt.Errorf("%s[%s]: %w", xls.Name, name, err)
	}
	return nil
}

// AutoSizeColumn sets the width of the column from the widest text written
// into it. It is only an estimate, as the font is not taken into account.
func (xls *XLSXSheet) AutoSizeColumn(col int) error {
	xls.mu.Lock()
	w := xls.content[col]
	xls.mu.Unlock()
	if w == 0 {
		return nil
	}
	width := min(math.Max(float64(w)*1.1+2, DefaultColWidth), excelize.MaxColumnWidth)
	name := xtable.ColumnName(col)
	if err := xls.xl.SetColWidth(xls.Name, name, name, width); err != nil {
		return fmt.Errorf("%s[%s]: %w", xls.Name, name, err)
	}
	return nil
}

func (xls *XLSXSheet) SetRowHeight(row int, height float64) error {
	if height <= 0 {
		return nil
	}
	if err := xls.xl.SetRowHeight(xls.Name, row, min(height, excelize.MaxRowHeight)); err != nil {
		return fmt.Errorf("%s[%d]: %w", xls.Name, row, err)
	}
	return nil
}

// SetComment adds the comment to the cell. Sizes are converted from points to pixels.
func (xls *XLSXSheet) SetComment(c xtable.Coord, comment xtable.Comment) error {
	cmt := excelize.Comment{
		Cell:   c.String(),
		Author: xls.wb.Author,
		Width:  pixels(comment.Width),
		Height: pixels(comment.Height),
	}
	for _, r := range comment.Runs {
		run := excelize.RichTextRun{Text: r.Text}
		if r.Bold {
			run.Font = &excelize.Font{Bold: true}
		}
		cmt.Paragraph = append(cmt.Paragraph, run)
	}
	if err := xls.xl.AddComment(xls.Name, cmt); err != nil {
		return xls.errorf(c, err)
	}
	return nil
}

func pixels(points float64) uint {
	if points <= 0 {
		return 0
	}
	return uint(math.Round(points * 4 / 3))
}

func (xls *XLSXSheet) SetHyperlink(c xtable.Coord, link string) error {
	if err := xls.xl.SetCellHyperLink(xls.Name, c.String(), link, "External"); err != nil {
		return xls.errorf(c, err)
	}
	return nil
}

// SetTitle renames the sheet.
func (xls *XLSXSheet) SetTitle(title string) error {
	if title == xls.Name {
		return nil
	}
	if err := xls.xl.SetSheetName(xls.Name, title); err != nil {
		return fmt.Errorf("rename %q to %q: %w", xls.Name, title, err)
	}
	xls.Name = title
	return nil
}

func (xls *XLSXSheet) SetShowGridLines(show bool) error {
	return xls.xl.SetSheetView(xls.Name, -1, &excelize.ViewOptions{ShowGridLines: &show})
}

func (xls *XLSXSheet) HeaderFooter() (xtable.HeaderFooter, error) {
	opts, err := xls.xl.GetHeaderFooter(xls.Name)
	if err != nil || opts == nil {
		return xtable.HeaderFooter{}, err
	}
	return xtable.HeaderFooter{
		OddHeader: opts.OddHeader, OddFooter: opts.OddFooter,
		EvenHeader: opts.EvenHeader, EvenFooter: opts.EvenFooter,
		DifferentOddEven: opts.DifferentOddEven,
	}, nil
}

func (xls *XLSXSheet) SetHeaderFooter(hf xtable.HeaderFooter) error {
	return xls.xl.SetHeaderFooter(xls.Name, &excelize.HeaderFooterOptions{
		OddHeader: hf.OddHeader, OddFooter: hf.OddFooter,
		EvenHeader: hf.EvenHeader, EvenFooter: hf.EvenFooter,
		DifferentOddEven: hf.DifferentOddEven,
	})
}

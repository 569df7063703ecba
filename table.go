// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

import (
	"database/sql/driver"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxSheetTitleLength is the longest sheet title, in characters.
const MaxSheetTitleLength = 31

// DefaultLineHeight is the height of one text line used by AutoSizeRow.
const DefaultLineHeight = 12

// Config of a Table.
type Config struct {
	// StartRow is the first row written (default 1).
	StartRow int `yaml:"start_row,omitempty"`
	// StartColumn is the zero-based column every row starts at.
	StartColumn int `yaml:"start_column,omitempty"`

	Creator        string   `yaml:"creator,omitempty"`
	LastModifiedBy string   `yaml:"modified_by,omitempty"`
	Title          string   `yaml:"title,omitempty"`
	Subject        string   `yaml:"subject,omitempty"`
	Description    string   `yaml:"description,omitempty"`
	Keywords       []string `yaml:"keywords,omitempty"`
	Category       string   `yaml:"category,omitempty"`
	// SheetTitle is the title of the first sheet.
	SheetTitle string `yaml:"sheet_title,omitempty"`

	DefaultFontSize float64 `yaml:"default_font_size,omitempty"`

	Logger *slog.Logger `yaml:"-"`
}

// Table writes cells one after the other into the active sheet of a Workbook.
//
// A Table is not safe for concurrent use.
type Table struct {
	wb      Workbook
	sheet   Sheet
	sheetNo int
	logger  *slog.Logger

	cur             Cursor
	cascade         Cascade
	rng             RangeState
	defaultFontSize float64
}

// New returns a Table writing into the first sheet of wb.
func New(wb Workbook, cfg Config) (*Table, error) {
	t := Table{wb: wb, logger: cfg.Logger, cur: NewCursor(cfg.StartRow, cfg.StartColumn)}
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	t.SetDefaultFontSize(cfg.DefaultFontSize)

	props := Properties{
		Creator:        strings.TrimSpace(cfg.Creator),
		LastModifiedBy: strings.TrimSpace(cfg.LastModifiedBy),
		Title:          strings.TrimSpace(cfg.Title),
		Subject:        strings.TrimSpace(cfg.Subject),
		Description:    strings.TrimSpace(cfg.Description),
		Category:       strings.TrimSpace(cfg.Category),
	}
	if props.Description == "" {
		props.Description = "Generated at: " + time.Now().Format(time.DateTime)
	}
	if len(cfg.Keywords) != 0 {
		props.Keywords = strings.Join(cfg.Keywords, ", ")
	}
	if err := wb.SetProperties(props); err != nil {
		return nil, fmt.Errorf("set properties: %w", err)
	}

	if err := t.SwitchToSheet(0); err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(cfg.SheetTitle); title != "" {
		if err := t.sheet.SetTitle(normalizeTitle(title)); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// Close the underlying Workbook.
func (t *Table) Close() error { return t.wb.Close() }

// Workbook returns the underlying Workbook.
func (t *Table) Workbook() Workbook { return t.wb }

// Sheet returns the active sheet.
func (t *Table) Sheet() Sheet { return t.sheet }

// SheetIndex is the index of the active sheet.
func (t *Table) SheetIndex() int { return t.sheetNo }

// Cursor returns a copy of the cursor.
func (t *Table) Cursor() Cursor { return t.cur }

// Row is the current row, from 1.
func (t *Table) Row() int { return t.cur.Row }

// Col is the current column, from 0.
func (t *Table) Col() int { return t.cur.Col }

// MaxCol is the furthest column reached in the active sheet.
func (t *Table) MaxCol() int { return t.cur.MaxCol }

// Coord of the current cell.
func (t *Table) Coord() Coord { return t.cur.Coord() }

// Range returns the state of the range being built.
func (t *Table) Range() RangeState { return t.rng }

// Write value into the current cell, then move colspan cells to the right.
//
// If colspan > 1, the cells are merged. A colspan < 1 is treated as 1.
// See Cascade.Resolve for how opts combine with the global and row options.
func (t *Table) Write(value any, colspan int, opts Options) error {
	colspan = normalizeSpan(colspan)
	c := t.cur.Coord()
	t.logger.Debug("write", "cell", c.String(), "row", c.Row, "col", c.Col, "value", value)
	if err := t.sheet.SetCellValue(c, value); err != nil {
		return err
	}
	if err := t.applyCellOptions(c, valueText(value), opts); err != nil {
		return err
	}
	if colspan > 1 {
		to := Coord{Col: c.Col + colspan - 1, Row: c.Row}
		if err := t.sheet.MergeCells(c, to); err != nil {
			return err
		}
	}
	t.cur.Advance(colspan)
	return nil
}

// AppendRow writes the values one cell each, then moves to the next row.
func (t *Table) AppendRow(values ...any) error {
	for _, v := range values {
		if err := t.Write(v, 1, Options{}); err != nil {
			return err
		}
	}
	t.NextRow()
	return nil
}

// Skip n cells. n < 1 skips one.
func (t *Table) Skip(n int) { t.cur.Skip(n) }

// NextRow moves to the first column of the next row and forgets the row options.
func (t *Table) NextRow() {
	t.cur.BreakRow()
	t.cascade.Row = Options{}
}

// SetGlobalOptions replaces the options applied to every cell written from now on.
func (t *Table) SetGlobalOptions(opts Options) { t.cascade.Global = opts }

// GlobalOptions returns the global options.
func (t *Table) GlobalOptions() Options { return t.cascade.Global }

// SetRowOptions replaces the options of the current row, and sets the row
// height if opts has a positive Height.
func (t *Table) SetRowOptions(opts Options) error {
	t.cascade.Row = opts
	if opts.Height != nil && *opts.Height > 0 {
		return t.sheet.SetRowHeight(t.cur.Row, *opts.Height)
	}
	return nil
}

// SetCurrentRowOptions replaces the options of the current row,
// without touching the row height.
func (t *Table) SetCurrentRowOptions(opts Options) { t.cascade.Row = opts }

// RowOptions returns the options of the current row.
func (t *Table) RowOptions() Options { return t.cascade.Row }

// SetDefaultFontSize sets the font size of cells written from now on
// without an explicit font size. Sizes not above 1 are ignored.
func (t *Table) SetDefaultFontSize(size float64) {
	if size > 1 {
		t.defaultFontSize = size
	}
}

// DefaultFontSize returns the default font size, 0 if not set.
func (t *Table) DefaultFontSize() float64 { return t.defaultFontSize }

func (t *Table) applyCellOptions(c Coord, text string, call Options) error {
	st, err := t.sheet.Style(c)
	if err != nil {
		return err
	}
	// Excel wraps text with line breaks by itself.
	if strings.Contains(text, "\n") {
		st.Alignment.Wrap = true
	}
	opts := t.cascade.Resolve(call)
	opts.ApplyTo(&st, t.defaultFontSize)
	if err = t.sheet.SetStyle(c, st); err != nil {
		return err
	}

	if co := opts.Comment; co != nil {
		if runs := co.Runs(); len(runs) != 0 {
			cmt := Comment{Runs: runs, Width: positive(co.Width), Height: positive(co.Height)}
			if err = t.sheet.SetComment(c, cmt); err != nil {
				return err
			}
		}
	}

	if opts.Hyperlink != nil && *opts.Hyperlink {
		v, err := t.sheet.CellValue(c)
		if err != nil {
			return err
		}
		if link := hyperlinkTarget(v); link != "" {
			return t.sheet.SetHyperlink(c, link)
		}
		t.logger.Debug("not a link", "cell", c.String(), "value", v)
	}
	return nil
}

var validate = validator.New()

// hyperlinkTarget returns a mailto: link for an e-mail address,
// the value itself for an URL, and "" otherwise.
func hyperlinkTarget(v string) string {
	if v == "" {
		return ""
	}
	if validate.Var(v, "email") == nil {
		return "mailto:" + v
	}
	if validate.Var(v, "url") == nil {
		return v
	}
	return ""
}

// StartRange opens a range at the current cell.
func (t *Table) StartRange() { t.StartRangeAt(t.cur.Coord()) }

// StartRangeAt opens a range at c, forgetting any previous range.
func (t *Table) StartRangeAt(c Coord) { t.rng.Start(c) }

// EndRange closes the range at the cell left of the cursor,
// which is the last cell written.
//
// If no range has been opened, this opens one at the current cell.
func (t *Table) EndRange() {
	if t.rng.Phase() == RangeEmpty {
		t.StartRange()
		return
	}
	c := t.cur.Coord().Left()
	if c.Col < 0 {
		c.Col = 0
	}
	t.rng.End(c)
}

// EndRangeAt closes the range at c.
// If no range has been opened, this opens one at c.
func (t *Table) EndRangeAt(c Coord) { t.rng.End(c) }

// ResetRange forgets the range.
func (t *Table) ResetRange() { t.rng.Reset() }

// ApplyRangeOptions applies the border and font options to every cell of the
// range, then forgets the range. Empty options leave the range as it is.
//
// An open range is closed first with EndRange.
// Without any range (not even opened) nothing is applied.
func (t *Table) ApplyRangeOptions(opts RangeOptions) error {
	if t.rng.Phase() != RangeClosed {
		t.EndRange()
	}
	if _, _, ok := t.rng.Bounds(); !ok {
		t.logger.Debug("no range to apply options to", "range", t.rng.String())
		return nil
	}
	if opts.BorderOptions.IsZero() && opts.Font == nil {
		return nil
	}
	topLeft, bottomRight, _ := t.rng.Take()
	var border *BorderSpec
	if !opts.BorderOptions.IsZero() {
		spec := opts.BorderOptions.Resolve()
		border = &spec
	}
	t.logger.Debug("range options", "from", topLeft.String(), "to", bottomRight.String())

	var font Options
	if opts.Font != nil {
		font = opts.Font.Options()
	}
	for row := topLeft.Row; row <= bottomRight.Row; row++ {
		for col := topLeft.Col; col <= bottomRight.Col; col++ {
			c := Coord{Col: col, Row: row}
			var sides EdgeSet
			if border != nil {
				sides = border.Edges.Sides(c, topLeft, bottomRight)
			}
			if sides == 0 && opts.Font == nil {
				continue
			}
			st, err := t.sheet.Style(c)
			if err != nil {
				return err
			}
			if sides != 0 {
				border.ApplyTo(&st.Border, sides)
			}
			font.ApplyTo(&st, 0)
			if err = t.sheet.SetStyle(c, st); err != nil {
				return err
			}
		}
	}
	return nil
}

// ColumnOptions are options of a whole column.
type ColumnOptions struct {
	Width float64 `yaml:"width,omitempty"`
}

// SetColumnOptions resets the formatting of the column (numbered from 1),
// then applies opts. Column numbers below 1 are ignored.
func (t *Table) SetColumnOptions(columnNo int, opts ColumnOptions) error {
	if columnNo < 1 {
		return nil
	}
	col := columnNo - 1
	if err := t.sheet.SetColumnWidth(col, 0); err != nil {
		return err
	}
	if opts.Width > 0 {
		return t.sheet.SetColumnWidth(col, opts.Width)
	}
	return nil
}

// AutoSizeAllColumns sets the width of every column used so far,
// which has no explicit width, based on its contents.
func (t *Table) AutoSizeAllColumns() error {
	for col := 0; col < t.cur.MaxCol; col++ {
		w, err := t.sheet.ColumnWidth(col)
		if err != nil {
			return err
		}
		if w < 0 {
			if err = t.sheet.AutoSizeColumn(col); err != nil {
				return err
			}
		}
	}
	return nil
}

// AutoSizeRow sets the height of the current row to lineHeight times the
// largest number of lines in its cells, if that is more than one line.
// A lineHeight <= 0 means DefaultLineHeight.
func (t *Table) AutoSizeRow(lineHeight float64) error {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	maxLines := 0
	for col := 0; col < t.cur.Col; col++ {
		v, err := t.sheet.CellValue(Coord{Col: col, Row: t.cur.Row})
		if err != nil {
			return err
		}
		if n := strings.Count(v, "\n") + 1; n > maxLines {
			maxLines = n
		}
	}
	if maxLines <= 1 {
		return nil
	}
	return t.sheet.SetRowHeight(t.cur.Row, lineHeight*float64(maxLines))
}

// SheetOptions are options of a new sheet.
type SheetOptions struct {
	ShowGridLines *bool `yaml:"show_lines,omitempty"`
}

// AddSheet appends a new sheet and switches to it.
func (t *Table) AddSheet(title string, opts SheetOptions) error {
	idx, err := t.wb.NewSheet()
	if err != nil {
		return err
	}
	if err = t.SwitchToSheet(idx); err != nil {
		return err
	}
	if title = strings.TrimSpace(title); title != "" {
		if err = t.sheet.SetTitle(normalizeTitle(title)); err != nil {
			return err
		}
	}
	if opts.ShowGridLines != nil {
		return t.sheet.SetShowGridLines(*opts.ShowGridLines)
	}
	return nil
}

// SwitchToSheet makes the sheet at index (from 0) the active one.
//
// The cursor goes back to the start position; the range and the row options are forgotten.
func (t *Table) SwitchToSheet(index int) error {
	if index < 0 || index >= t.wb.SheetCount() {
		return fmt.Errorf("%d: %w", index, ErrNoSheet)
	}
	sheet, err := t.wb.Sheet(index)
	if err != nil {
		return err
	}
	if err = t.wb.SetActiveSheet(index); err != nil {
		return err
	}
	t.sheet, t.sheetNo = sheet, index
	t.cur.Reset()
	t.rng.Reset()
	t.cascade.Row = Options{}
	t.logger.Debug("switched sheet", "index", index)
	return nil
}

// SetHeader sets the printed page header of the odd (or even) pages.
// Returns false for empty content.
//
// Even pages get their own header only if EnableOddEvenHeaderFooter(true) is called.
func (t *Table) SetHeader(content string, odd bool) (bool, error) {
	return t.setHeaderFooter(content, func(hf *HeaderFooter) *string {
		if odd {
			return &hf.OddHeader
		}
		return &hf.EvenHeader
	})
}

// SetFooter sets the printed page footer of the odd (or even) pages.
// Returns false for empty content.
func (t *Table) SetFooter(content string, odd bool) (bool, error) {
	return t.setHeaderFooter(content, func(hf *HeaderFooter) *string {
		if odd {
			return &hf.OddFooter
		}
		return &hf.EvenFooter
	})
}

func (t *Table) setHeaderFooter(content string, field func(*HeaderFooter) *string) (bool, error) {
	if content == "" {
		return false, nil
	}
	hf, err := t.sheet.HeaderFooter()
	if err != nil {
		return false, err
	}
	*field(&hf) = content
	if err = t.sheet.SetHeaderFooter(hf); err != nil {
		return false, err
	}
	return true, nil
}

// Header returns the page header of the odd (or even) pages.
func (t *Table) Header(odd bool) (string, error) {
	hf, err := t.sheet.HeaderFooter()
	if odd {
		return hf.OddHeader, err
	}
	return hf.EvenHeader, err
}

// Footer returns the page footer of the odd (or even) pages.
func (t *Table) Footer(odd bool) (string, error) {
	hf, err := t.sheet.HeaderFooter()
	if odd {
		return hf.OddFooter, err
	}
	return hf.EvenFooter, err
}

// EnableOddEvenHeaderFooter turns on separate headers and footers for odd and even pages.
// It is off by default.
func (t *Table) EnableOddEvenHeaderFooter(enable bool) error {
	hf, err := t.sheet.HeaderFooter()
	if err != nil {
		return err
	}
	hf.DifferentOddEven = enable
	return t.sheet.SetHeaderFooter(hf)
}

// OddEvenHeaderFooterEnabled reports whether odd and even pages have separate headers and footers.
func (t *Table) OddEvenHeaderFooterEnabled() (bool, error) {
	hf, err := t.sheet.HeaderFooter()
	return hf.DifferentOddEven, err
}

func valueText(v any) string {
	if vr, ok := v.(driver.Valuer); ok {
		if vv, err := vr.Value(); err == nil {
			v = vv
		}
	}
	switch x := v.(type) {
	case string:
		return x
	case Number:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}
	return ""
}

func normalizeTitle(s string) string {
	if utf8.RuneCountInString(s) <= MaxSheetTitleLength {
		return s
	}
	return string([]rune(s)[:MaxSheetTitleLength])
}

func positive(f float64) float64 {
	if f > 0 {
		return f
	}
	return 0
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

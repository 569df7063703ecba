// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx implements xtable.Workbook with excelize.
package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/UNO-SOFT/xtable"
	"github.com/xuri/excelize/v2"
)

var (
	_ = (xtable.Workbook)((*XLSXWriter)(nil))
	_ = (xtable.Sheet)((*XLSXSheet)(nil))
)

// XLSXWriter is an xlsx workbook, written to w on Close.
type XLSXWriter struct {
	w      io.Writer
	xl     *excelize.File
	styles map[xtable.Style]int
	sheets []*XLSXSheet
	// Author of the comments.
	Author string
	mu     sync.Mutex
}

// NewWriter returns a new xtable.Workbook with one sheet.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewWriter(w io.Writer) *XLSXWriter {
	return Wrap(w, excelize.NewFile())
}

// Wrap the existing excelize file, keeping its sheets.
func Wrap(w io.Writer, xl *excelize.File) *XLSXWriter {
	xlw := &XLSXWriter{w: w, xl: xl}
	for _, name := range xl.GetSheetList() {
		xlw.sheets = append(xlw.sheets, newSheet(xlw, name))
	}
	return xlw
}

// File returns the underlying excelize.File.
func (xlw *XLSXWriter) File() *excelize.File { return xlw.xl }

// Close writes the workbook to the writer given to NewWriter.
func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil {
		return nil
	}
	var err error
	if w != nil {
		_, err = xl.WriteTo(w)
	}
	if closeErr := xl.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (xlw *XLSXWriter) SetProperties(p xtable.Properties) error {
	return xlw.xl.SetDocProps(&excelize.DocProperties{
		Creator:        p.Creator,
		LastModifiedBy: p.LastModifiedBy,
		Title:          p.Title,
		Subject:        p.Subject,
		Description:    p.Description,
		Keywords:       p.Keywords,
		Category:       p.Category,
	})
}

func (xlw *XLSXWriter) SheetCount() int {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	return len(xlw.sheets)
}

// NewSheet appends a sheet named "SheetN" with the first free N.
func (xlw *XLSXWriter) NewSheet() (int, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	var name string
	for n := len(xlw.sheets) + 1; ; n++ {
		name = "Sheet" + strconv.Itoa(n)
		if idx, _ := xlw.xl.GetSheetIndex(name); idx < 0 {
			break
		}
	}
	if _, err := xlw.xl.NewSheet(name); err != nil {
		return -1, fmt.Errorf("new sheet %q: %w", name, err)
	}
	xlw.sheets = append(xlw.sheets, newSheet(xlw, name))
	return len(xlw.sheets) - 1, nil
}

func (xlw *XLSXWriter) Sheet(index int) (xtable.Sheet, error) {
	return xlw.sheet(index)
}

func (xlw *XLSXWriter) sheet(index int) (*XLSXSheet, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if index < 0 || index >= len(xlw.sheets) {
		return nil, fmt.Errorf("%d: %w", index, xtable.ErrNoSheet)
	}
	return xlw.sheets[index], nil
}

func (xlw *XLSXWriter) SetActiveSheet(index int) error {
	xls, err := xlw.sheet(index)
	if err != nil {
		return err
	}
	idx, err := xlw.xl.GetSheetIndex(xls.Name)
	if err != nil {
		return fmt.Errorf("%s: %w", xls.Name, err)
	}
	xlw.xl.SetActiveSheet(idx)
	return nil
}

// rememberStyle registers an existing excelize style ID for style.
func (xlw *XLSXWriter) rememberStyle(style xtable.Style, id int) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.styles == nil {
		xlw.styles = make(map[xtable.Style]int)
	}
	if _, ok := xlw.styles[style]; !ok {
		xlw.styles[style] = id
	}
}

// getStyle returns the excelize style ID of the style, creating it if needed.
func (xlw *XLSXWriter) getStyle(style xtable.Style) (int, error) {
	if style == (xtable.Style{}) {
		return 0, nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if s, ok := xlw.styles[style]; ok {
		return s, nil
	}
	s, err := xlw.xl.NewStyle(toExcelize(style))
	if err != nil {
		return 0, err
	}
	if xlw.styles == nil {
		xlw.styles = make(map[xtable.Style]int)
	}
	xlw.styles[style] = s
	return s, nil
}

func toExcelize(style xtable.Style) *excelize.Style {
	var st excelize.Style
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	} else {
		st.NumFmt = style.NumFmt
	}
	if style.Fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb(style.Fill)}}
	}
	if f := style.Font; f != (xtable.Font{}) {
		font := excelize.Font{
			Bold: f.Bold, Italic: f.Italic, Strike: f.Strikethrough,
			Family: f.Family, Color: rgb(f.Color),
		}
		if f.Size > 0 {
			font.Size = min(f.Size, excelize.MaxFontSize)
		}
		if f.Underline {
			font.Underline = "single"
		}
		switch {
		case f.Superscript:
			font.VertAlign = "superscript"
		case f.Subscript:
			font.VertAlign = "subscript"
		}
		st.Font = &font
	}
	if a := style.Alignment; a != (xtable.Alignment{}) {
		st.Alignment = &excelize.Alignment{
			Horizontal: a.Horizontal, Vertical: a.Vertical, WrapText: a.Wrap,
		}
	}
	for _, b := range []struct {
		typ    string
		border xtable.Border
	}{
		{"left", style.Border.Left}, {"right", style.Border.Right},
		{"top", style.Border.Top}, {"bottom", style.Border.Bottom},
	} {
		if b.border.Style == xtable.BorderNone {
			continue
		}
		st.Border = append(st.Border, excelize.Border{
			Type: b.typ, Color: rgb(b.border.Color), Style: int(b.border.Style),
		})
	}
	return &st
}

// fromExcelize is the inverse of toExcelize.
// Settings without an xtable.Style counterpart (gradients, indent, rotation, protection) are lost.
func fromExcelize(xst *excelize.Style) xtable.Style {
	var st xtable.Style
	if xst.CustomNumFmt != nil {
		st.Format = *xst.CustomNumFmt
	} else {
		st.NumFmt = xst.NumFmt
	}
	if f := xst.Fill; f.Type == "pattern" && f.Pattern == 1 && len(f.Color) != 0 && f.Color[0] != "" {
		st.Fill = argb(f.Color[0])
	}
	if f := xst.Font; f != nil {
		st.Font = xtable.Font{
			Bold: f.Bold, Italic: f.Italic, Strikethrough: f.Strike,
			Underline:   f.Underline != "" && f.Underline != "none",
			Subscript:   f.VertAlign == "subscript",
			Superscript: f.VertAlign == "superscript",
			Size:        f.Size, Family: f.Family, Color: argb(f.Color),
		}
	}
	if a := xst.Alignment; a != nil {
		st.Alignment = xtable.Alignment{Wrap: a.WrapText, Horizontal: a.Horizontal, Vertical: a.Vertical}
	}
	for _, b := range xst.Border {
		if b.Style <= 0 || b.Style > int(xtable.BorderSlantDashDot) {
			continue
		}
		e := xtable.Border{Style: xtable.BorderStyle(b.Style), Color: argb(b.Color)}
		switch b.Type {
		case "left":
			st.Border.Left = e
		case "right":
			st.Border.Right = e
		case "top":
			st.Border.Top = e
		case "bottom":
			st.Border.Bottom = e
		}
	}
	return st
}

// argb adds an opaque alpha channel to an RRGGBB color.
func argb(rgb string) string {
	if len(rgb) == 6 {
		return "FF" + rgb
	}
	return rgb
}

// rgb strips the alpha channel of an AARRGGBB color.
func rgb(argb string) string {
	if len(argb) == 8 {
		return argb[2:]
	}
	return argb
}

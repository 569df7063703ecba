// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xtable is a cursor-driven authoring layer over a spreadsheet model.
//
// A Table writes values left to right, breaking rows explicitly, and layers
// formatting options at three scopes: global, row and per-write.
// The underlying document is reached only through the Workbook and Sheet
// interfaces; see the xlsx sub-package for an implementation.
package xtable

import (
	"errors"
	"io"
)

// Workbook is the document the Table writes into.
// The document is serialized when Close is called.
type Workbook interface {
	io.Closer
	SetProperties(Properties) error
	// NewSheet appends a new sheet and returns its index.
	NewSheet() (int, error)
	Sheet(index int) (Sheet, error)
	SetActiveSheet(index int) error
	SheetCount() int
}

// Sheet is one worksheet of a Workbook.
//
// Columns are zero-based, rows are one-based, as in Coord.
type Sheet interface {
	SetCellValue(c Coord, value any) error
	CellValue(c Coord) (string, error)

	// Style returns the current style of the cell (the zero Style if none).
	Style(c Coord) (Style, error)
	SetStyle(c Coord, style Style) error

	MergeCells(from, to Coord) error

	// ColumnWidth returns -1 if the width of the column has not been set.
	ColumnWidth(col int) (float64, error)
	// SetColumnWidth resets the column to the default width if width <= 0.
	SetColumnWidth(col int, width float64) error
	AutoSizeColumn(col int) error
	SetRowHeight(row int, height float64) error

	SetComment(c Coord, comment Comment) error
	SetHyperlink(c Coord, link string) error

	SetTitle(title string) error
	SetShowGridLines(show bool) error
	HeaderFooter() (HeaderFooter, error)
	SetHeaderFooter(HeaderFooter) error
}

// Properties of the document.
type Properties struct {
	Creator, LastModifiedBy string
	Title, Subject          string
	Description             string
	Keywords                string
	Category                string
}

// HeaderFooter holds the printed page header and footer texts.
type HeaderFooter struct {
	OddHeader, OddFooter   string
	EvenHeader, EvenFooter string
	DifferentOddEven       bool
}

// Style is a style for a cell.
type Style struct {
	// Format is the custom number format code.
	Format string
	// NumFmt is the ID of a built-in number format, used when Format is empty.
	NumFmt int
	// Fill is the solid background color as AARRGGBB, empty for no fill.
	Fill      string
	Font      Font
	Alignment Alignment
	Border    Borders
}

// Font of a cell.
type Font struct {
	Bold, Italic, Underline, Strikethrough bool
	Subscript, Superscript                 bool
	// Size is the font size in points, 0 means the default.
	Size float64
	// Family and Color (AARRGGBB) are kept from loaded documents.
	Family, Color string
}

// Alignment of the cell contents.
type Alignment struct {
	Wrap       bool
	Horizontal string
	Vertical   string
}

// Borders of a cell, one per edge.
type Borders struct {
	Top, Bottom, Left, Right Border
}

// Border is one edge of a cell.
type Border struct {
	Style BorderStyle
	// Color is AARRGGBB.
	Color string
}

// Comment is a note attached to a cell.
type Comment struct {
	Runs []TextRun
	// Width and Height are in points, 0 means the default size.
	Width, Height float64
}

// TextRun is a piece of rich text.
type TextRun struct {
	Text string
	Bold bool
}

var (
	ErrTooManyRows = errors.New("too many rows")
	ErrNoSheet     = errors.New("no such sheet")
)

// Number is a string that contains a number.
type Number string

// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

import "strconv"

// MaxColumn is the last column index ColumnName can represent (ZZ).
const MaxColumn = 26*26 + 25

// ColumnName returns the label of the zero-based column index:
// 0 is A, 25 is Z, 26 is AA, 701 is ZZ.
//
// At most two letters are produced, there is no carry into a third one:
// indexes above MaxColumn give meaningless labels.
func ColumnName(i int) string {
	first := i / 26
	second := i - 26*first
	if first <= 0 {
		return string(rune('A' + second))
	}
	return string([]rune{rune('@' + first), rune('A' + second)})
}

// ColumnIndex returns the zero-based index of the column label.
//
// Only the first letter is read, so only single-letter labels round-trip.
// Returns -1 for an empty label.
func ColumnIndex(label string) int {
	if label == "" {
		return -1
	}
	c := label[0]
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	return int(c) - 'A'
}

// Coord is a cell position: zero-based column, one-based row.
type Coord struct {
	Col, Row int
}

// String returns the A1-style reference of the cell.
func (c Coord) String() string { return ColumnName(c.Col) + strconv.Itoa(c.Row) }

// Left returns the coordinate of the cell on the left.
func (c Coord) Left() Coord { return Coord{Col: c.Col - 1, Row: c.Row} }

// Rect returns the top-left and bottom-right corners of the rectangle spanned by a and b.
func Rect(a, b Coord) (topLeft, bottomRight Coord) {
	topLeft, bottomRight = a, b
	if topLeft.Col > bottomRight.Col {
		topLeft.Col, bottomRight.Col = bottomRight.Col, topLeft.Col
	}
	if topLeft.Row > bottomRight.Row {
		topLeft.Row, bottomRight.Row = bottomRight.Row, topLeft.Row
	}
	return topLeft, bottomRight
}

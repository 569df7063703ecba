// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

// Cursor is the current write position and the furthest column reached.
type Cursor struct {
	Row, Col int
	// MaxCol never decreases until Reset.
	MaxCol int

	startRow, startCol int
}

// NewCursor returns a Cursor at the start position.
// A startRow below 1 is replaced by 1, a negative startCol by 0.
func NewCursor(startRow, startCol int) Cursor {
	if startRow < 1 {
		startRow = 1
	}
	if startCol < 0 {
		startCol = 0
	}
	c := Cursor{startRow: startRow, startCol: startCol}
	c.Reset()
	return c
}

// Reset moves back to the start position and forgets MaxCol.
func (c *Cursor) Reset() {
	c.Row, c.Col, c.MaxCol = c.startRow, c.startCol, c.startCol
}

// StartCol is the column each row starts at.
func (c Cursor) StartCol() int { return c.startCol }

// Coord of the current cell.
func (c Cursor) Coord() Coord { return Coord{Col: c.Col, Row: c.Row} }

// Advance moves n columns to the right. n < 1 moves one column.
func (c *Cursor) Advance(n int) {
	c.Col += normalizeSpan(n)
	if c.Col > c.MaxCol {
		c.MaxCol = c.Col
	}
}

// Skip is Advance without a write.
func (c *Cursor) Skip(n int) { c.Advance(n) }

// BreakRow moves to the start column of the next row.
func (c *Cursor) BreakRow() {
	c.Row++
	c.Col = c.startCol
}

func normalizeSpan(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

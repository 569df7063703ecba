// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor(t *testing.T) {
	c := NewCursor(1, 0)
	assert.Equal(t, Coord{Col: 0, Row: 1}, c.Coord())

	c.Advance(1)
	c.Advance(2)
	assert.Equal(t, 3, c.Col)
	assert.Equal(t, 3, c.MaxCol)

	c.BreakRow()
	assert.Equal(t, Coord{Col: 0, Row: 2}, c.Coord())
	assert.Equal(t, 3, c.MaxCol, "MaxCol must survive a row break")

	c.Advance(1)
	assert.Equal(t, 3, c.MaxCol)

	c.Reset()
	assert.Equal(t, Coord{Col: 0, Row: 1}, c.Coord())
	assert.Equal(t, 0, c.MaxCol)
}

func TestCursorSpan(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		c := NewCursor(1, 0)
		c.Advance(n)
		assert.Equal(t, 1, c.Col, "span %d", n)
		c.Skip(n)
		assert.Equal(t, 2, c.Col, "skip %d", n)
	}
}

func TestCursorStart(t *testing.T) {
	c := NewCursor(0, -3)
	assert.Equal(t, Coord{Col: 0, Row: 1}, c.Coord())

	c = NewCursor(5, 2)
	assert.Equal(t, 2, c.StartCol())
	c.Advance(4)
	assert.Equal(t, 6, c.MaxCol)
	c.BreakRow()
	assert.Equal(t, Coord{Col: 2, Row: 6}, c.Coord())
	c.Reset()
	assert.Equal(t, Coord{Col: 2, Row: 5}, c.Coord())
	assert.Equal(t, 2, c.MaxCol)
}

func TestCursorMaxColMonotonic(t *testing.T) {
	c := NewCursor(1, 0)
	prev := c.MaxCol
	for _, step := range []int{3, 1, 0, 2, -1, 5} {
		c.Advance(step)
		if step%2 == 0 {
			c.BreakRow()
		}
		assert.GreaterOrEqual(t, c.MaxCol, prev)
		assert.GreaterOrEqual(t, c.MaxCol, c.Col)
		prev = c.MaxCol
	}
}

// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnName(t *testing.T) {
	for i, want := range map[int]string{
		0: "A", 1: "B", 25: "Z",
		26: "AA", 27: "AB", 51: "AZ", 52: "BA",
		700: "ZY", 701: "ZZ",
	} {
		assert.Equal(t, want, ColumnName(i), "column %d", i)
	}
}

func TestColumnNameShape(t *testing.T) {
	rx := regexp.MustCompile(`^[A-Z]{1,2}$`)
	seen := make(map[string]int, MaxColumn+1)
	for i := 0; i <= MaxColumn; i++ {
		nm := ColumnName(i)
		assert.Regexp(t, rx, nm, "column %d", i)
		if j, ok := seen[nm]; ok {
			t.Errorf("%d and %d are both %q", j, i, nm)
		}
		seen[nm] = i
	}
}

func TestColumnIndex(t *testing.T) {
	assert.Equal(t, 0, ColumnIndex("A"))
	assert.Equal(t, 2, ColumnIndex("c"))
	assert.Equal(t, 25, ColumnIndex("Z"))
	assert.Equal(t, -1, ColumnIndex(""))
	// only the first letter counts
	assert.Equal(t, 0, ColumnIndex("AB"))

	for i := 0; i < 26; i++ {
		assert.Equal(t, i, ColumnIndex(ColumnName(i)))
	}
}

func TestCoord(t *testing.T) {
	assert.Equal(t, "A1", Coord{Col: 0, Row: 1}.String())
	assert.Equal(t, "AB12", Coord{Col: 27, Row: 12}.String())
	assert.Equal(t, Coord{Col: 2, Row: 3}, Coord{Col: 3, Row: 3}.Left())
}

func TestRect(t *testing.T) {
	tl, br := Rect(Coord{Col: 3, Row: 5}, Coord{Col: 1, Row: 2})
	assert.Equal(t, Coord{Col: 1, Row: 2}, tl)
	assert.Equal(t, Coord{Col: 3, Row: 5}, br)

	tl, br = Rect(Coord{Col: 1, Row: 5}, Coord{Col: 3, Row: 2})
	assert.Equal(t, Coord{Col: 1, Row: 2}, tl)
	assert.Equal(t, Coord{Col: 3, Row: 5}, br)
}

// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

import "fmt"

// RangePhase is the phase of a RangeState.
type RangePhase uint8

const (
	RangeEmpty RangePhase = iota
	RangeOpen
	RangeClosed
)

func (p RangePhase) String() string {
	switch p {
	case RangeEmpty:
		return "empty"
	case RangeOpen:
		return "open"
	case RangeClosed:
		return "closed"
	}
	return fmt.Sprintf("RangePhase(%d)", uint8(p))
}

// RangeState accumulates a rectangular range: Empty, Open(start) or Closed(start, end).
//
// The zero value is Empty.
type RangeState struct {
	phase      RangePhase
	start, end Coord
}

// Phase of the range.
func (r RangeState) Phase() RangePhase { return r.phase }

// Start opens the range at c, forgetting any previous range.
func (r *RangeState) Start(c Coord) { *r = RangeState{phase: RangeOpen, start: c} }

// End closes an opened (or closed) range at c.
// On an Empty range it is a Start(c).
func (r *RangeState) End(c Coord) {
	if r.phase == RangeEmpty {
		r.Start(c)
		return
	}
	r.phase, r.end = RangeClosed, c
}

// Reset the range to Empty.
func (r *RangeState) Reset() { *r = RangeState{} }

// Bounds returns the corners of a closed range.
func (r RangeState) Bounds() (start, end Coord, ok bool) {
	if r.phase != RangeClosed {
		return Coord{}, Coord{}, false
	}
	return r.start, r.end, true
}

// Take returns the corners of a closed range and resets it to Empty.
// Ranges which are not closed are left untouched.
func (r *RangeState) Take() (topLeft, bottomRight Coord, ok bool) {
	start, end, ok := r.Bounds()
	if !ok {
		return start, end, false
	}
	r.Reset()
	topLeft, bottomRight = Rect(start, end)
	return topLeft, bottomRight, true
}

func (r RangeState) String() string {
	switch r.phase {
	case RangeOpen:
		return fmt.Sprintf("open(%s)", r.start)
	case RangeClosed:
		return fmt.Sprintf("closed(%s:%s)", r.start, r.end)
	}
	return "empty"
}

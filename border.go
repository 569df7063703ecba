// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

// BorderStyle is the line style of a border, in OOXML order.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantDashDot
)

var borderStyleNames = [...]string{
	BorderNone:             "none",
	BorderThin:             "thin",
	BorderMedium:           "medium",
	BorderDashed:           "dashed",
	BorderDotted:           "dotted",
	BorderThick:            "thick",
	BorderDouble:           "double",
	BorderHair:             "hair",
	BorderMediumDashed:     "mediumDashed",
	BorderDashDot:          "dashDot",
	BorderMediumDashDot:    "mediumDashDot",
	BorderDashDotDot:       "dashDotDot",
	BorderMediumDashDotDot: "mediumDashDotDot",
	BorderSlantDashDot:     "slantDashDot",
}

func (s BorderStyle) String() string {
	if int(s) < len(borderStyleNames) {
		return borderStyleNames[s]
	}
	return "BorderStyle(?)"
}

// ParseBorderStyle returns the style with the given name.
func ParseBorderStyle(name string) (BorderStyle, bool) {
	for i, nm := range borderStyleNames {
		if nm == name {
			return BorderStyle(i), true
		}
	}
	return BorderNone, false
}

// EdgeSelector tells which sides of a bordered region get the border.
type EdgeSelector string

const (
	EdgesAll        = EdgeSelector("allborders")
	EdgesOutline    = EdgeSelector("outline")
	EdgesInside     = EdgeSelector("inside")
	EdgesVertical   = EdgeSelector("vertical")
	EdgesHorizontal = EdgeSelector("horizontal")
	EdgesTop        = EdgeSelector("top")
	EdgesBottom     = EdgeSelector("bottom")
	EdgesLeft       = EdgeSelector("left")
	EdgesRight      = EdgeSelector("right")
)

// Valid reports whether e is one of the known selectors.
func (e EdgeSelector) Valid() bool {
	switch e {
	case EdgesAll, EdgesOutline, EdgesInside, EdgesVertical, EdgesHorizontal,
		EdgesTop, EdgesBottom, EdgesLeft, EdgesRight:
		return true
	}
	return false
}

// EdgeSet is a set of cell sides.
type EdgeSet uint8

const (
	SideTop EdgeSet = 1 << iota
	SideBottom
	SideLeft
	SideRight
)

// Sides returns the sides of cell c that get a border when the rectangle
// topLeft:bottomRight is bordered with selector e.
func (e EdgeSelector) Sides(c, topLeft, bottomRight Coord) EdgeSet {
	first, last := c.Row == topLeft.Row, c.Row == bottomRight.Row
	leftmost, rightmost := c.Col == topLeft.Col, c.Col == bottomRight.Col
	var s EdgeSet
	set := func(side EdgeSet, ok bool) {
		if ok {
			s |= side
		}
	}
	switch e {
	case EdgesAll:
		s = SideTop | SideBottom | SideLeft | SideRight
	case EdgesOutline:
		set(SideTop, first)
		set(SideBottom, last)
		set(SideLeft, leftmost)
		set(SideRight, rightmost)
	case EdgesInside:
		set(SideTop, !first)
		set(SideBottom, !last)
		set(SideLeft, !leftmost)
		set(SideRight, !rightmost)
	case EdgesVertical:
		set(SideLeft, !leftmost)
		set(SideRight, !rightmost)
	case EdgesHorizontal:
		set(SideTop, !first)
		set(SideBottom, !last)
	case EdgesTop:
		set(SideTop, first)
	case EdgesBottom:
		set(SideBottom, last)
	case EdgesLeft:
		set(SideLeft, leftmost)
	case EdgesRight:
		set(SideRight, rightmost)
	}
	return s
}

// BorderOptions is the symbolic border description given by callers.
type BorderOptions struct {
	Style string       `yaml:"border-style,omitempty"`
	Color string       `yaml:"border-color,omitempty"`
	Edges EdgeSelector `yaml:"bordering-type,omitempty"`
}

// IsZero reports whether no field is set.
func (o BorderOptions) IsZero() bool { return o.Style == "" && o.Color == "" && o.Edges == "" }

// BorderSpec is a fully populated border description.
type BorderSpec struct {
	Style BorderStyle
	// Color is AARRGGBB.
	Color string
	Edges EdgeSelector
}

// DefaultBorder is thin, black, around the outline.
var DefaultBorder = BorderSpec{Style: BorderThin, Color: "FF000000", Edges: EdgesOutline}

// Resolve the options into a BorderSpec, starting from DefaultBorder.
// Unknown style and selector names are ignored.
func (o BorderOptions) Resolve() BorderSpec {
	spec := DefaultBorder
	if st, ok := ParseBorderStyle(o.Style); ok {
		spec.Style = st
	}
	if o.Edges.Valid() {
		spec.Edges = o.Edges
	}
	if o.Color != "" {
		spec.Color = "FF" + o.Color
	}
	return spec
}

// Border returns the edge described by spec.
func (spec BorderSpec) Border() Border { return Border{Style: spec.Style, Color: spec.Color} }

// ApplyTo sets the sides of b to the border of spec.
func (spec BorderSpec) ApplyTo(b *Borders, sides EdgeSet) {
	e := spec.Border()
	if sides&SideTop != 0 {
		b.Top = e
	}
	if sides&SideBottom != 0 {
		b.Bottom = e
	}
	if sides&SideLeft != 0 {
		b.Left = e
	}
	if sides&SideRight != 0 {
		b.Right = e
	}
}

// CellBorders holds per-edge border options of a single cell.
type CellBorders struct {
	Top    *BorderOptions `yaml:"top,omitempty"`
	Bottom *BorderOptions `yaml:"bottom,omitempty"`
	Left   *BorderOptions `yaml:"left,omitempty"`
	Right  *BorderOptions `yaml:"right,omitempty"`
}

// ApplyTo resolves each given edge independently and sets it on b.
func (cb CellBorders) ApplyTo(b *Borders) {
	for _, x := range []struct {
		o    *BorderOptions
		side EdgeSet
	}{
		{cb.Top, SideTop}, {cb.Bottom, SideBottom},
		{cb.Left, SideLeft}, {cb.Right, SideRight},
	} {
		if x.o != nil {
			x.o.Resolve().ApplyTo(b, x.side)
		}
	}
}

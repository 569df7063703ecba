// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

// Options is a set of formatting options. A nil field is an absent option.
type Options struct {
	// BgColor is the background color as RRGGBB (without #).
	BgColor       *string  `yaml:"bgcolor,omitempty"`
	Bold          *bool    `yaml:"bold,omitempty"`
	Italic        *bool    `yaml:"italic,omitempty"`
	Underline     *bool    `yaml:"underline,omitempty"`
	Strikethrough *bool    `yaml:"strikethrough,omitempty"`
	Subscript     *bool    `yaml:"subscript,omitempty"`
	Superscript   *bool    `yaml:"superscript,omitempty"`
	Wrap          *bool    `yaml:"wrap,omitempty"`
	FontSize      *float64 `yaml:"font-size,omitempty"`

	// TextAlign is one of general, left, center, right, justify, centerContinuous.
	TextAlign *string `yaml:"text-align,omitempty"`
	// VerticalAlign is one of bottom, center, justify, top.
	VerticalAlign *string `yaml:"vertical-align,omitempty"`

	Borders   *CellBorders    `yaml:"borders,omitempty"`
	Comment   *CommentOptions `yaml:"comment,omitempty"`
	Hyperlink *bool           `yaml:"hyperlink,omitempty"`

	// Height is the row height; used only by Table.SetRowOptions.
	Height *float64 `yaml:"height,omitempty"`
}

// CommentOptions describes a cell comment.
type CommentOptions struct {
	Lines []CommentLine `yaml:"lines"`
	// Width and Height are in points.
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// CommentLine is one line of a comment.
type CommentLine struct {
	Text string `yaml:"text"`
	Bold bool   `yaml:"bold,omitempty"`
}

// Merge returns o overwritten by every option present in p.
// Nested options (borders, comment) are replaced as a whole.
func (o Options) Merge(p Options) Options {
	over := func(dst **bool, src *bool) {
		if src != nil {
			*dst = src
		}
	}
	if p.BgColor != nil {
		o.BgColor = p.BgColor
	}
	over(&o.Bold, p.Bold)
	over(&o.Italic, p.Italic)
	over(&o.Underline, p.Underline)
	over(&o.Strikethrough, p.Strikethrough)
	over(&o.Subscript, p.Subscript)
	over(&o.Superscript, p.Superscript)
	over(&o.Wrap, p.Wrap)
	over(&o.Hyperlink, p.Hyperlink)
	if p.FontSize != nil {
		o.FontSize = p.FontSize
	}
	if p.TextAlign != nil {
		o.TextAlign = p.TextAlign
	}
	if p.VerticalAlign != nil {
		o.VerticalAlign = p.VerticalAlign
	}
	if p.Borders != nil {
		o.Borders = p.Borders
	}
	if p.Comment != nil {
		o.Comment = p.Comment
	}
	if p.Height != nil {
		o.Height = p.Height
	}
	return o
}

// Cascade holds the session-wide and the row-scoped options.
type Cascade struct {
	Global, Row Options
}

// Resolve the effective options of one write.
//
// The per-call options are merged first, then the global ones, then the
// row options: a row option beats a global one, which beats a per-call one.
func (c Cascade) Resolve(call Options) Options {
	return call.Merge(c.Global).Merge(c.Row)
}

var (
	horizontalAlignments = map[string]string{
		"general": "general", "left": "left", "center": "center", "right": "right",
		"justify": "justify", "centerContinuous": "centerContinuous",
		"centerContinous": "centerContinuous",
	}
	verticalAlignments = map[string]string{
		"bottom": "bottom", "center": "center", "justify": "justify", "top": "top",
	}
)

// ApplyTo sets every present option on st. Absent options leave st untouched.
//
// Without an explicit font size, defaultFontSize is used when it is > 0.
// Comment and Hyperlink are not style options and are ignored here.
func (o Options) ApplyTo(st *Style, defaultFontSize float64) {
	if o.BgColor != nil {
		st.Fill = "FF" + *o.BgColor
	}
	f := &st.Font
	if o.Bold != nil {
		f.Bold = *o.Bold
	}
	if o.Italic != nil {
		f.Italic = *o.Italic
	}
	if o.Underline != nil {
		f.Underline = *o.Underline
	}
	if o.Strikethrough != nil {
		f.Strikethrough = *o.Strikethrough
	}
	if o.Subscript != nil {
		if f.Subscript = *o.Subscript; f.Subscript {
			f.Superscript = false
		}
	}
	if o.Superscript != nil {
		if f.Superscript = *o.Superscript; f.Superscript {
			f.Subscript = false
		}
	}
	if o.Wrap != nil {
		st.Alignment.Wrap = *o.Wrap
	}
	if o.FontSize != nil && *o.FontSize > 0 {
		f.Size = *o.FontSize
	} else if defaultFontSize > 0 {
		f.Size = defaultFontSize
	}
	if o.TextAlign != nil {
		if a, ok := horizontalAlignments[*o.TextAlign]; ok {
			st.Alignment.Horizontal = a
		}
	}
	if o.VerticalAlign != nil {
		if a, ok := verticalAlignments[*o.VerticalAlign]; ok {
			st.Alignment.Vertical = a
		}
	}
	if o.Borders != nil {
		o.Borders.ApplyTo(&st.Border)
	}
}

// Runs returns the rich text of the comment: each line followed by a line
// break, stopping at the first blank line.
func (co CommentOptions) Runs() []TextRun {
	runs := make([]TextRun, 0, 2*len(co.Lines))
	for _, l := range co.Lines {
		if isBlank(l.Text) {
			break
		}
		runs = append(runs, TextRun{Text: l.Text, Bold: l.Bold}, TextRun{Text: "\r\n"})
	}
	return runs
}

// RangeOptions are the options applicable to a range of cells.
type RangeOptions struct {
	BorderOptions `yaml:",inline"`
	Font          *FontOptions `yaml:"font,omitempty"`
}

// FontOptions are the font options of a range.
type FontOptions struct {
	Bold          *bool    `yaml:"bold,omitempty"`
	Italic        *bool    `yaml:"italic,omitempty"`
	Size          *float64 `yaml:"size,omitempty"`
	Underline     *bool    `yaml:"underline,omitempty"`
	Strikethrough *bool    `yaml:"strikethrough,omitempty"`
	Subscript     *bool    `yaml:"subscript,omitempty"`
	Superscript   *bool    `yaml:"superscript,omitempty"`
}

// Options returns the cell options equivalent of the font options.
func (fo FontOptions) Options() Options {
	return Options{
		Bold: fo.Bold, Italic: fo.Italic, FontSize: fo.Size,
		Underline: fo.Underline, Strikethrough: fo.Strikethrough,
		Subscript: fo.Subscript, Superscript: fo.Superscript,
	}
}

// Bool returns a pointer to b, for filling Options.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for filling Options.
func String(s string) *string { return &s }

// Float returns a pointer to f, for filling Options.
func Float(f float64) *float64 { return &f }

// Package keywords stores the canonical table of CSS identifiers.
//
// Each known identifier has a dense, stable id, which is used as a compact
// representation in values and as part of cache fingerprints.
// The table is immutable and safe to share between documents.
package keywords

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Keyword efficiently stores CSS keywords.
// The zero value is not a valid keyword.
type Keyword uint16

const (
	_ Keyword = iota
	Inherit
	Initial
	Auto
	None
	Normal
	Hidden
	Visible
	Scroll
	Fixed
	Repeat
	RepeatX
	RepeatY
	NoRepeat
	Space
	Round
	Cover
	Contain
	Top
	Bottom
	Left
	Right
	Center
	Middle
	Collapse
	Separate
	Transparent
	Currentcolor
	Invert
	Dotted
	Dashed
	Solid
	Double
	Groove
	Ridge
	Inset
	Outset
	Thin
	Medium
	Thick
	Both
	Block
	Inline
	InlineBlock
	ListItem
	RunIn
	Table
	InlineTable
	TableRowGroup
	TableHeaderGroup
	TableFooterGroup
	TableRow
	TableColumnGroup
	TableColumn
	TableCell
	TableCaption
	Flex
	InlineFlex
	Show
	Hide
	Italic
	Oblique
	SmallCaps
	Bold
	Bolder
	Lighter
	W100
	W200
	W300
	W400
	W500
	W600
	W700
	W800
	W900
	XxSmall
	XSmall
	Small
	Large
	XLarge
	XxLarge
	Larger
	Smaller
	Inside
	Outside
	Disc
	Circle
	Square
	Decimal
	DecimalLeadingZero
	LowerRoman
	UpperRoman
	LowerGreek
	LowerLatin
	UpperLatin
	Armenian
	Georgian
	LowerAlpha
	UpperAlpha
	Static
	Relative
	Absolute
	Always
	Avoid
	Portrait
	Landscape
	Justify
	Start
	End
	Capitalize
	Uppercase
	Lowercase
	Embed
	BidiOverride
	Baseline
	Sub
	Super
	TextTop
	TextBottom
	Pre
	Nowrap
	PreWrap
	PreLine
	Ltr
	Rtl
	ContentBox
	BorderBox
	BreakWord
	OpenQuote
	CloseQuote
	NoOpenQuote
	NoCloseQuote
	Crosshair
	Default
	Pointer
	Move
	EResize
	NeResize
	NwResize
	NResize
	SeResize
	SwResize
	SResize
	WResize
	Text
	Wait
	Help
	Progress
	Caption
	Icon
	Menu
	MessageBox
	SmallCaption
	StatusBar
	Serif
	SansSerif
	Cursive
	Fantasy
	Monospace
	Underline
	Overline
	LineThrough
	Blink
	A3
	A4
	A5
	B4
	B5
	Letter
	Legal
	Ledger

	count // number of keywords + 1
)

var names = [...]string{
	Inherit: "inherit",
	Initial: "initial",
	Auto: "auto",
	None: "none",
	Normal: "normal",
	Hidden: "hidden",
	Visible: "visible",
	Scroll: "scroll",
	Fixed: "fixed",
	Repeat: "repeat",
	RepeatX: "repeat-x",
	RepeatY: "repeat-y",
	NoRepeat: "no-repeat",
	Space: "space",
	Round: "round",
	Cover: "cover",
	Contain: "contain",
	Top: "top",
	Bottom: "bottom",
	Left: "left",
	Right: "right",
	Center: "center",
	Middle: "middle",
	Collapse: "collapse",
	Separate: "separate",
	Transparent: "transparent",
	Currentcolor: "currentcolor",
	Invert: "invert",
	Dotted: "dotted",
	Dashed: "dashed",
	Solid: "solid",
	Double: "double",
	Groove: "groove",
	Ridge: "ridge",
	Inset: "inset",
	Outset: "outset",
	Thin: "thin",
	Medium: "medium",
	Thick: "thick",
	Both: "both",
	Block: "block",
	Inline: "inline",
	InlineBlock: "inline-block",
	ListItem: "list-item",
	RunIn: "run-in",
	Table: "table",
	InlineTable: "inline-table",
	TableRowGroup: "table-row-group",
	TableHeaderGroup: "table-header-group",
	TableFooterGroup: "table-footer-group",
	TableRow: "table-row",
	TableColumnGroup: "table-column-group",
	TableColumn: "table-column",
	TableCell: "table-cell",
	TableCaption: "table-caption",
	Flex: "flex",
	InlineFlex: "inline-flex",
	Show: "show",
	Hide: "hide",
	Italic: "italic",
	Oblique: "oblique",
	SmallCaps: "small-caps",
	Bold: "bold",
	Bolder: "bolder",
	Lighter: "lighter",
	W100: "100",
	W200: "200",
	W300: "300",
	W400: "400",
	W500: "500",
	W600: "600",
	W700: "700",
	W800: "800",
	W900: "900",
	XxSmall: "xx-small",
	XSmall: "x-small",
	Small: "small",
	Large: "large",
	XLarge: "x-large",
	XxLarge: "xx-large",
	Larger: "larger",
	Smaller: "smaller",
	Inside: "inside",
	Outside: "outside",
	Disc: "disc",
	Circle: "circle",
	Square: "square",
	Decimal: "decimal",
	DecimalLeadingZero: "decimal-leading-zero",
	LowerRoman: "lower-roman",
	UpperRoman: "upper-roman",
	LowerGreek: "lower-greek",
	LowerLatin: "lower-latin",
	UpperLatin: "upper-latin",
	Armenian: "armenian",
	Georgian: "georgian",
	LowerAlpha: "lower-alpha",
	UpperAlpha: "upper-alpha",
	Static: "static",
	Relative: "relative",
	Absolute: "absolute",
	Always: "always",
	Avoid: "avoid",
	Portrait: "portrait",
	Landscape: "landscape",
	Justify: "justify",
	Start: "start",
	End: "end",
	Capitalize: "capitalize",
	Uppercase: "uppercase",
	Lowercase: "lowercase",
	Embed: "embed",
	BidiOverride: "bidi-override",
	Baseline: "baseline",
	Sub: "sub",
	Super: "super",
	TextTop: "text-top",
	TextBottom: "text-bottom",
	Pre: "pre",
	Nowrap: "nowrap",
	PreWrap: "pre-wrap",
	PreLine: "pre-line",
	Ltr: "ltr",
	Rtl: "rtl",
	ContentBox: "content-box",
	BorderBox: "border-box",
	BreakWord: "break-word",
	OpenQuote: "open-quote",
	CloseQuote: "close-quote",
	NoOpenQuote: "no-open-quote",
	NoCloseQuote: "no-close-quote",
	Crosshair: "crosshair",
	Default: "default",
	Pointer: "pointer",
	Move: "move",
	EResize: "e-resize",
	NeResize: "ne-resize",
	NwResize: "nw-resize",
	NResize: "n-resize",
	SeResize: "se-resize",
	SwResize: "sw-resize",
	SResize: "s-resize",
	WResize: "w-resize",
	Text: "text",
	Wait: "wait",
	Help: "help",
	Progress: "progress",
	Caption: "caption",
	Icon: "icon",
	Menu: "menu",
	MessageBox: "message-box",
	SmallCaption: "small-caption",
	StatusBar: "status-bar",
	Serif: "serif",
	SansSerif: "sans-serif",
	Cursive: "cursive",
	Fantasy: "fantasy",
	Monospace: "monospace",
	Underline: "underline",
	Overline: "overline",
	LineThrough: "line-through",
	Blink: "blink",
	A3: "a3",
	A4: "a4",
	A5: "a5",
	B4: "b4",
	B5: "b5",
	Letter: "letter",
	Legal: "legal",
	Ledger: "ledger",
}

var byName = make(map[string]Keyword, len(names))

func init() {
	for i, name := range names {
		if i == 0 {
			continue
		}
		byName[name] = Keyword(i)
	}
}

// Count returns the number of known keywords.
func Count() int { return int(count) - 1 }

// New returns the keyword matching `s`, ignoring ASCII case.
// The boolean is false for unknown identifiers, which callers
// should report as a validation failure.
func New(s string) (Keyword, bool) {
	k, ok := byName[s]
	if !ok {
		k, ok = byName[cases.Fold().String(s)]
	}
	return k, ok
}

// MustNew is like New but panics for unknown identifiers.
// It must only be used on pre-validated input: an unknown identifier
// here means the engine is broken.
func MustNew(s string) Keyword {
	k, ok := New(s)
	if !ok {
		panic(fmt.Sprintf("keywords: unknown identifier %q", s))
	}
	return k
}

// IsValid returns true for a keyword of the table.
func (k Keyword) IsValid() bool { return k > 0 && k < count }

func (k Keyword) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("<keyword %d>", k)
	}
	return names[k]
}

// Weight returns the numeric value of the font weight keywords
// W100 to W900, or 0.
func (k Keyword) Weight() int {
	if k >= W100 && k <= W900 {
		return int(k-W100+1) * 100
	}
	return 0
}

// FromWeight returns the keyword for the numeric font weight `w`,
// which must be one of 100, 200, ..., 900.
func FromWeight(w int) (Keyword, bool) {
	if w < 100 || w > 900 || w%100 != 0 {
		return 0, false
	}
	return W100 + Keyword(w/100-1), true
}

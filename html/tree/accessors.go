package tree

import (
	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"go.uber.org/zap"
)

// This file defines the used values, derived from the computed ones
// with an optional containing block dimension.

// RectSet stores the four sides of a box, in pixels.
type RectSet struct {
	Top, Right, Bottom, Left pr.Fl
}

// zeroRect is shared by all the styles without margins (or paddings).
var zeroRect = &RectSet{}

func (r RectSet) IsZero() bool { return r == RectSet{} }

// Horizontal returns Left + Right.
func (r RectSet) Horizontal() pr.Fl { return r.Left + r.Right }

// Vertical returns Top + Bottom.
func (r RectSet) Vertical() pr.Fl { return r.Top + r.Bottom }

func (r *RectSet) setSide(i int, v pr.Fl) {
	switch i {
	case 0:
		r.Top = v
	case 1:
		r.Right = v
	case 2:
		r.Bottom = v
	case 3:
		r.Left = v
	}
}

// BorderSet is the used border of a box.
type BorderSet struct {
	// Widths are zero for hidden borders.
	Widths RectSet
	Styles [4]kw.Keyword
	Colors [4]pr.Color
}

// HasVisibleBorder returns true if one side has a non zero width and
// a non transparent color.
func (b BorderSet) HasVisibleBorder() bool {
	widths := [4]pr.Fl{b.Widths.Top, b.Widths.Right, b.Widths.Bottom, b.Widths.Left}
	for i, w := range widths {
		if w > 0 && !b.Colors[i].IsTransparent() {
			return true
		}
	}
	return false
}

// zeroBorder is shared by all the styles without any border.
// Its colors are transparent.
var zeroBorder = &BorderSet{Styles: [4]kw.Keyword{kw.None, kw.None, kw.None, kw.None}}

// Corner is the (horizontal, vertical) radii of a border corner.
type Corner struct {
	Horizontal, Vertical pr.Fl
}

// disallowed margins, paddings and borders
// http://www.w3.org/TR/CSS21/box.html
func (c *CalculatedStyle) marginsAllowed() bool {
	switch c.Ident(pr.PDisplay) {
	case kw.TableHeaderGroup, kw.TableRowGroup, kw.TableFooterGroup, kw.TableRow, kw.TableCell:
		return false
	}
	return true
}

func (c *CalculatedStyle) paddingsAllowed() bool {
	switch c.Ident(pr.PDisplay) {
	case kw.TableHeaderGroup, kw.TableRowGroup, kw.TableFooterGroup, kw.TableRow:
		return false
	case kw.Table, kw.InlineTable:
		return !c.IsIdent(pr.PBorderCollapse, kw.Collapse)
	}
	return true
}

func (c *CalculatedStyle) bordersAllowed() bool {
	switch c.Ident(pr.PDisplay) {
	case kw.TableHeaderGroup, kw.TableRowGroup, kw.TableFooterGroup, kw.TableRow:
		return false
	}
	return true
}

// resolve returns the used value of `v`, with percentages relative to
// `base`. A negative `base` means the percentage can't be resolved :
// a warning is logged and 0 is returned.
func (c *CalculatedStyle) resolve(p pr.KnownProp, v pr.Value, base pr.Fl) pr.Fl {
	d, ok := v.(pr.Dimension)
	if !ok {
		// auto and other keywords
		return 0
	}
	switch {
	case d.IsPercentage():
		if base < 0 {
			c.ctx.log.Warn("percentage without containing block dimension",
				zap.Stringer("property", p), zap.Stringer("value", d))
			return 0
		}
		return d.Value * base / 100
	case d.Unit == pr.Px, d.IsNumber():
		return d.Value
	default:
		c.ctx.log.Warn("unresolved unit", zap.Stringer("property", p), zap.Stringer("value", d))
		return 0
	}
}

func hasPercentage(v pr.Value) bool {
	switch v := v.(type) {
	case pr.Dimension:
		return v.IsPercentage()
	case pr.List:
		for _, it := range v {
			if hasPercentage(it.Value) {
				return true
			}
		}
	}
	return false
}

// Length returns the used value of `p`, in pixels, with percentages
// relative to `base`. Keywords like auto or none return 0 : use IsIdent
// to detect them.
func (c *CalculatedStyle) Length(p pr.KnownProp, base pr.Fl) pr.Fl {
	return c.resolve(p, c.ValueOf(p), base)
}

// rect resolves four side properties, caching the result in `cache`
// when it is independent of the containing block.
func (c *CalculatedStyle) rect(props [4]pr.KnownProp, cbWidth pr.Fl, cache **RectSet) *RectSet {
	c.mu.Lock()
	cached := *cache
	c.mu.Unlock()
	if cached != nil {
		return cached
	}

	var (
		out       RectSet
		cacheable = true
	)
	for i, p := range props {
		v := c.ValueOf(p)
		if hasPercentage(v) {
			cacheable = false
		}
		out.setSide(i, c.resolve(p, v, cbWidth))
	}
	result := &out
	if out.IsZero() {
		result = zeroRect
	}
	if cacheable {
		c.mu.Lock()
		*cache = result
		c.mu.Unlock()
	}
	return result
}

// MarginRect returns the used margins, with percentages relative to the
// containing block width `cbWidth`. `auto` margins are returned as 0.
// The returned value is shared and must not be modified.
func (c *CalculatedStyle) MarginRect(cbWidth pr.Fl) *RectSet {
	if !c.marginsAllowed() {
		return zeroRect
	}
	return c.rect(pr.Margins, cbWidth, &c.margin)
}

// PaddingRect returns the used paddings, with percentages relative to the
// containing block width `cbWidth`.
// The returned value is shared and must not be modified.
func (c *CalculatedStyle) PaddingRect(cbWidth pr.Fl) *RectSet {
	if !c.paddingsAllowed() {
		return zeroRect
	}
	return c.rect(pr.Paddings, cbWidth, &c.padding)
}

// Border returns the used borders.
func (c *CalculatedStyle) Border() *BorderSet {
	c.mu.Lock()
	cached := c.border
	c.mu.Unlock()
	if cached != nil {
		return cached
	}

	out := zeroBorder
	if c.bordersAllowed() {
		border := &BorderSet{}
		empty := true
		for i := range pr.BorderWidths {
			style := c.Ident(pr.BorderStyles[i])
			border.Styles[i] = style
			border.Colors[i], _ = c.ColorOf(pr.BorderColors[i])
			if style != kw.None && style != kw.Hidden {
				border.Widths.setSide(i, c.Length(pr.BorderWidths[i], -1))
			}
			if style != kw.None {
				empty = false
			}
		}
		if !empty {
			out = border
		}
	}

	c.mu.Lock()
	c.border = out
	c.mu.Unlock()
	return out
}

// BorderRadii returns the corners, in the order top-left, top-right,
// bottom-right, bottom-left, with percentages relative to the border box
// dimensions.
func (c *CalculatedStyle) BorderRadii(width, height pr.Fl) [4]Corner {
	var out [4]Corner
	for i, p := range pr.BorderRadii {
		l, ok := c.ValueOf(p).(pr.List)
		if !ok || len(l) != 2 {
			continue
		}
		out[i] = Corner{
			Horizontal: c.resolve(p, l[0].Value, width),
			Vertical:   c.resolve(p, l[1].Value, height),
		}
	}
	return out
}

// ColorOf returns the color value of `p`. It returns false for
// keywords, like `invert` for outlines.
func (c *CalculatedStyle) ColorOf(p pr.KnownProp) (pr.Color, bool) {
	col, ok := c.ValueOf(p).(pr.Color)
	return col, ok
}

// Color returns the text color.
func (c *CalculatedStyle) Color() pr.Color {
	col, _ := c.ColorOf(pr.PColor)
	return col
}

// BackgroundColor returns the background color, which is
// transparent by default.
func (c *CalculatedStyle) BackgroundColor() pr.Color {
	col, _ := c.ColorOf(pr.PBackgroundColor)
	return col
}

// BackgroundImage returns the URL of the background image, or an empty string.
func (c *CalculatedStyle) BackgroundImage() string {
	u, _ := c.ValueOf(pr.PBackgroundImage).(pr.URI)
	return string(u)
}

// BackgroundPosition returns the offsets of the background image,
// with percentages relative to the free space (positioning area size
// minus the image size).
func (c *CalculatedStyle) BackgroundPosition(freeWidth, freeHeight pr.Fl) (x, y pr.Fl) {
	l, ok := c.ValueOf(pr.PBackgroundPosition).(pr.List)
	if !ok || len(l) != 2 {
		return 0, 0
	}
	return c.resolve(pr.PBackgroundPosition, l[0].Value, freeWidth),
		c.resolve(pr.PBackgroundPosition, l[1].Value, freeHeight)
}

// BackgroundSize returns the size of the background image, relative to
// the positioning area. A negative dimension stands for `auto`.
// For `cover` and `contain`, the keyword is returned instead.
func (c *CalculatedStyle) BackgroundSize(width, height pr.Fl) (w, h pr.Fl, keyword kw.Keyword) {
	v := c.ValueOf(pr.PBackgroundSize)
	if k, ok := pr.AsKeyword(v); ok {
		return -1, -1, k
	}
	l, ok := v.(pr.List)
	if !ok || len(l) != 2 {
		return -1, -1, 0
	}
	w, h = -1, -1
	if !pr.IsKeyword(l[0].Value, kw.Auto) {
		w = c.resolve(pr.PBackgroundSize, l[0].Value, width)
	}
	if !pr.IsKeyword(l[1].Value, kw.Auto) {
		h = c.resolve(pr.PBackgroundSize, l[1].Value, height)
	}
	return w, h, 0
}

// BorderSpacing returns the horizontal and vertical spacing between cells.
func (c *CalculatedStyle) BorderSpacing() (horizontal, vertical pr.Fl) {
	switch v := c.ValueOf(pr.PBorderSpacing).(type) {
	case pr.Dimension:
		return v.Value, v.Value
	case pr.List:
		if len(v) == 2 {
			return c.resolve(pr.PBorderSpacing, v[0].Value, -1), c.resolve(pr.PBorderSpacing, v[1].Value, -1)
		}
	}
	return 0, 0
}

// LineHeight returns the used line height, in pixels.
// `normal` is 1.2 times the font size.
func (c *CalculatedStyle) LineHeight() pr.Fl {
	d, ok := c.ValueOf(pr.PLineHeight).(pr.Dimension)
	if !ok {
		return 1.2 * c.FontSize()
	}
	if d.IsNumber() {
		return d.Value * c.FontSize()
	}
	return d.Value
}

// Opacity returns the opacity, clamped to [0, 1].
func (c *CalculatedStyle) Opacity() pr.Fl {
	d, _ := c.ValueOf(pr.POpacity).(pr.Dimension)
	switch {
	case d.Value < 0:
		return 0
	case d.Value > 1:
		return 1
	}
	return d.Value
}

// PageName returns the named page for the element, or an empty string.
func (c *CalculatedStyle) PageName() string {
	id, ok := c.ValueOf(pr.PPage).(pr.Ident)
	if !ok || id.Keyword == kw.Auto {
		return ""
	}
	return id.Name
}

// IsFloated returns true for left or right floats.
func (c *CalculatedStyle) IsFloated() bool { return !c.IsIdent(pr.PFloat, kw.None) }

// IsAbsolute returns true for absolutely positioned boxes, including fixed ones.
func (c *CalculatedStyle) IsAbsolute() bool {
	p := c.Ident(pr.PPosition)
	return p == kw.Absolute || p == kw.Fixed
}

// IsPositioned returns true for boxes whose position is not static.
func (c *CalculatedStyle) IsPositioned() bool { return !c.IsIdent(pr.PPosition, kw.Static) }

// IsInline returns true for inline level boxes.
func (c *CalculatedStyle) IsInline() bool {
	switch c.Ident(pr.PDisplay) {
	case kw.Inline, kw.InlineBlock, kw.InlineTable, kw.InlineFlex:
		return true
	}
	return false
}

// IsDisplayNone returns true if the element generates no box.
func (c *CalculatedStyle) IsDisplayNone() bool { return c.IsIdent(pr.PDisplay, kw.None) }

// IsVisible returns true if the element is painted.
func (c *CalculatedStyle) IsVisible() bool { return c.IsIdent(pr.PVisibility, kw.Visible) }

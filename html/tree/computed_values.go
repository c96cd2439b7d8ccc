package tree

import (
	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/text"
)

// Convert *specified* property values (the result of the cascade and
// inheritance) into *computed* values (that are inherited).

// computerFunc is called with the style lock held : it must use
// the internal accessors for the style itself.
type computerFunc = func(style *CalculatedStyle, name pr.KnownProp, value pr.Value) pr.Value

// Properties without computer use their specified value.
var computers [pr.NumLonghands]computerFunc

func init() {
	for _, p := range []pr.KnownProp{
		pr.PBottom, pr.PLeft, pr.PRight, pr.PTop,
		pr.PHeight, pr.PWidth, pr.PMinHeight, pr.PMinWidth, pr.PMaxHeight, pr.PMaxWidth,
		pr.PTextIndent, pr.PLetterSpacing, pr.PWordSpacing, pr.PVerticalAlign,
		pr.PBackgroundPosition, pr.PBackgroundSize, pr.PBorderSpacing, pr.PSize,
	} {
		computers[p] = length
	}
	for _, p := range pr.Margins {
		computers[p] = length
	}
	for _, p := range pr.Paddings {
		computers[p] = length
	}
	for _, p := range pr.BorderRadii {
		computers[p] = length
	}
	for _, p := range pr.BorderWidths {
		computers[p] = borderWidth
	}
	for _, p := range pr.BorderColors {
		computers[p] = color
	}
	computers[pr.POutlineWidth] = borderWidth
	computers[pr.POutlineColor] = color
	computers[pr.PColor] = color
	computers[pr.PClip] = clip
	computers[pr.PDisplay] = display
	computers[pr.PFloat] = floating
	computers[pr.PFontSize] = fontSize
	computers[pr.PFontWeight] = fontWeight
	computers[pr.PLineHeight] = lineHeight
	computers[pr.PPage] = page
}

// length computes a length, or a list of lengths.
// Keywords, numbers and percentages are left unchanged.
func length(computer *CalculatedStyle, _ pr.KnownProp, value pr.Value) pr.Value {
	switch value := value.(type) {
	case pr.Dimension:
		return computer.toPixels(value, false)
	case pr.List:
		out := make(pr.List, len(value))
		for i, it := range value {
			out[i] = it
			if d, ok := it.Value.(pr.Dimension); ok {
				out[i].Value = computer.toPixels(d, false)
			}
		}
		return out
	}
	return value
}

// toPixels converts the absolute and font relative lengths to pixels.
// For the font-size property, `forFontSize` is true and the font
// relative lengths refer to the parent font.
func (c *CalculatedStyle) toPixels(value pr.Dimension, forFontSize bool) pr.Dimension {
	if !value.IsLength() {
		return value
	}
	if value.Value == 0 {
		return pr.ZeroPixels
	}

	switch unit := value.Unit; unit {
	case pr.Px:
		return value
	case pr.Pt, pr.Pc, pr.In, pr.Cm, pr.Mm, pr.Q:
		// Convert absolute lengths to pixels
		return pr.Pixels(value.Value * pr.LengthsToPixels[unit])
	case pr.Rem:
		return pr.Pixels(value.Value * c.remSize(forFontSize))
	}

	var (
		fontSize pr.Fl
		font     func() text.FontSpec
	)
	if !forFontSize {
		fontSize, font = c.fontSize(), c.fontSpec
	} else if c.parent != nil {
		fontSize, font = c.parent.FontSize(), c.parent.Font
	} else {
		fontSize = c.ctx.defaultFontSize
		font = func() text.FontSpec { return text.FontSpec{Size: fontSize, Weight: 400} }
	}

	var result pr.Fl
	switch value.Unit {
	case pr.Em:
		result = value.Value * fontSize
	case pr.Ex:
		result = value.Value * c.ctx.metrics.XHeight(font())
	case pr.Ch:
		result = value.Value * c.ctx.metrics.ZeroAdvance(font())
	}
	return pr.Pixels(result)
}

// sideStyles maps the width properties to the matching style.
var sideStyles = map[pr.KnownProp]pr.KnownProp{
	pr.PBorderTopWidth:    pr.PBorderTopStyle,
	pr.PBorderRightWidth:  pr.PBorderRightStyle,
	pr.PBorderBottomWidth: pr.PBorderBottomStyle,
	pr.PBorderLeftWidth:   pr.PBorderLeftStyle,
	pr.POutlineWidth:      pr.POutlineStyle,
}

// Compute the “border-*-width“ or “outline-width“ property.
func borderWidth(computer *CalculatedStyle, name pr.KnownProp, value pr.Value) pr.Value {
	style, _ := pr.AsKeyword(computer.get(sideStyles[name]))
	if style == kw.None || style == kw.Hidden {
		return pr.ZeroPixels
	}
	if k, ok := pr.AsKeyword(value); ok {
		return pr.Pixels(pr.BorderWidthKeywords[k])
	}
	if d, ok := value.(pr.Dimension); ok {
		return computer.toPixels(d, false)
	}
	return value
}

// Compute the `currentcolor` keyword : for the `color` property it refers
// to the parent color, and to the element color otherwise.
func color(computer *CalculatedStyle, name pr.KnownProp, value pr.Value) pr.Value {
	if !pr.IsKeyword(value, kw.Currentcolor) {
		return value
	}
	if name != pr.PColor {
		return computer.get(pr.PColor)
	}
	if computer.parent == nil {
		return pr.InitialValue(pr.PColor)
	}
	return computer.parent.ValueOf(pr.PColor)
}

// Compute the arguments of rect().
func clip(computer *CalculatedStyle, name pr.KnownProp, value pr.Value) pr.Value {
	fn, ok := value.(pr.Function)
	if !ok {
		return value
	}
	args, _ := length(computer, name, fn.Args).(pr.List)
	return pr.Function{Name: fn.Name, Args: args}
}

// Compute the “display“ property.
// See http://www.w3.org/TR/CSS21/visuren.html#dis-pos-flo
func display(computer *CalculatedStyle, _ pr.KnownProp, value pr.Value) pr.Value {
	k, _ := pr.AsKeyword(value)
	if k == kw.None {
		return value
	}
	position, _ := pr.AsKeyword(computer.get(pr.PPosition))
	isFloated := !pr.IsKeyword(computer.get(pr.PFloat), kw.None)
	if position == kw.Absolute || position == kw.Fixed || isFloated || computer.isRoot() {
		switch k {
		case kw.InlineTable:
			return pr.KeywordValue(kw.Table)
		case kw.InlineFlex:
			return pr.KeywordValue(kw.Flex)
		case kw.Inline, kw.RunIn, kw.TableRowGroup, kw.TableColumn,
			kw.TableColumnGroup, kw.TableHeaderGroup, kw.TableFooterGroup,
			kw.TableRow, kw.TableCell, kw.TableCaption, kw.InlineBlock:
			return pr.KeywordValue(kw.Block)
		}
	}
	return value
}

// Compute the “float“ property.
// See http://www.w3.org/TR/CSS21/visuren.html#dis-pos-flo
func floating(computer *CalculatedStyle, _ pr.KnownProp, value pr.Value) pr.Value {
	position, _ := pr.AsKeyword(computer.get(pr.PPosition))
	if position == kw.Absolute || position == kw.Fixed {
		return pr.KeywordValue(kw.None)
	}
	return value
}

// Compute the “font-size“ property, in pixels.
func fontSize(computer *CalculatedStyle, _ pr.KnownProp, value pr.Value) pr.Value {
	parentSize := computer.ctx.defaultFontSize
	if computer.parent != nil {
		parentSize = computer.parent.FontSize()
	}
	switch value := value.(type) {
	case pr.Ident:
		if ratio, ok := pr.FontSizeKeywords[value.Keyword]; ok {
			return pr.Pixels(ratio * computer.ctx.defaultFontSize)
		}
		switch value.Keyword {
		case kw.Larger:
			return pr.Pixels(relativeFontSize(parentSize, computer.ctx.defaultFontSize, true))
		case kw.Smaller:
			return pr.Pixels(relativeFontSize(parentSize, computer.ctx.defaultFontSize, false))
		}
	case pr.Dimension:
		if value.IsPercentage() {
			return pr.Pixels(value.Value * parentSize / 100)
		}
		return computer.toPixels(value, true)
	}
	return pr.Pixels(parentSize)
}

// relativeFontSize moves to the next keyword in the table when the
// parent size is one of its entries, and scales by 1.2 otherwise.
func relativeFontSize(parentSize, medium pr.Fl, larger bool) pr.Fl {
	order := pr.FontSizeKeywordsOrder
	for i, k := range order {
		if pr.FontSizeKeywords[k]*medium != parentSize {
			continue
		}
		if larger && i+1 < len(order) {
			return pr.FontSizeKeywords[order[i+1]] * medium
		} else if !larger && i > 0 {
			return pr.FontSizeKeywords[order[i-1]] * medium
		}
		break
	}
	if larger {
		return parentSize * 1.2
	}
	return parentSize * 0.8
}

// Compute the “font-weight“ property, to one of the numeric keywords.
func fontWeight(computer *CalculatedStyle, _ pr.KnownProp, value pr.Value) pr.Value {
	k, _ := pr.AsKeyword(value)
	switch k {
	case kw.Normal:
		return pr.KeywordValue(kw.W400)
	case kw.Bold:
		return pr.KeywordValue(kw.W700)
	case kw.Bolder, kw.Lighter:
		parentWeight := 400
		if computer.parent != nil {
			pk, _ := pr.AsKeyword(computer.parent.ValueOf(pr.PFontWeight))
			parentWeight = pk.Weight()
		}
		table := pr.FontWeightRelative.Bolder
		if k == kw.Lighter {
			table = pr.FontWeightRelative.Lighter
		}
		out, _ := kw.FromWeight(table[parentWeight])
		return pr.KeywordValue(out)
	}
	return value
}

// Compute the “line-height“ property : numbers are kept, since they
// are inherited as such, percentages are resolved against the font size.
func lineHeight(computer *CalculatedStyle, _ pr.KnownProp, value pr.Value) pr.Value {
	d, ok := value.(pr.Dimension)
	if !ok || d.IsNumber() {
		return value
	}
	if d.IsPercentage() {
		return pr.Pixels(d.Value * computer.fontSize() / 100)
	}
	return computer.toPixels(d, false)
}

// Compute the “page“ property : `auto` uses the page of the parent.
func page(computer *CalculatedStyle, _ pr.KnownProp, value pr.Value) pr.Value {
	if pr.IsKeyword(value, kw.Auto) && computer.parent != nil {
		return computer.parent.ValueOf(pr.PPage)
	}
	return value
}

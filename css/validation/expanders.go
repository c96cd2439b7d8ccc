package validation

import (
	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
)

// Expand shorthands into their longhands.
// Longhands not specified by a shorthand are reset to their initial value.

type expanded struct {
	prop  pr.KnownProp
	value pr.Value
}

type expander func(d *pr.Descriptor, values pr.List) ([]expanded, error)

var expanders [pr.NumProperties]expander

func init() {
	expanders = [pr.NumProperties]expander{
		pr.SMargin:       expandFourSides,
		pr.SPadding:      expandFourSides,
		pr.SBorderColor:  expandFourSides,
		pr.SBorderStyle:  expandFourSides,
		pr.SBorderWidth:  expandFourSides,
		pr.SBorderRadius: expandBorderRadius,
		pr.SBorder:       expandBorder,
		pr.SBorderTop:    expandBorderSide,
		pr.SBorderRight:  expandBorderSide,
		pr.SBorderBottom: expandBorderSide,
		pr.SBorderLeft:   expandBorderSide,
		pr.SOutline:      expandBorderSide,
		pr.SBackground:   expandBackground,
		pr.SFont:         expandFont,
		pr.SListStyle:    expandListStyle,
	}
}

// tryLonghand validates `values` for `p`, returning nil if invalid.
func tryLonghand(p pr.KnownProp, values ...pr.Item) pr.Value {
	v, err := validateLonghand(pr.Describe(p), pr.List(values))
	if err != nil {
		return nil
	}
	return v
}

// namedValues gathers the longhands set by a shorthand, and completes the
// missing ones with `initial`.
type namedValues struct {
	longhands []pr.KnownProp
	values    map[pr.KnownProp]pr.Value
}

func newNamedValues(longhands []pr.KnownProp) namedValues {
	return namedValues{longhands: longhands, values: make(map[pr.KnownProp]pr.Value, len(longhands))}
}

func (nv namedValues) set(p pr.KnownProp, v pr.Value) error {
	if _, has := nv.values[p]; has {
		return invalid(ErrInvalidValue, "got multiple %s values", p)
	}
	nv.values[p] = v
	return nil
}

func (nv namedValues) has(p pr.KnownProp) bool {
	_, has := nv.values[p]
	return has
}

func (nv namedValues) expanded() []expanded {
	out := make([]expanded, len(nv.longhands))
	for i, p := range nv.longhands {
		v, ok := nv.values[p]
		if !ok {
			v = pr.KeywordValue(kw.Initial)
		}
		out[i] = expanded{prop: p, value: v}
	}
	return out
}

// fourValues applies the CSS defaulting for 1 to 4 values:
// the bottom defaults to the top, and the left to the right.
func fourValues(values pr.List) ([4]pr.Item, error) {
	var out [4]pr.Item
	if err := countBetween(values, 1, 4); err != nil {
		return out, err
	}
	if err := spaceSeparated(values); err != nil {
		return out, err
	}
	switch len(values) {
	case 1:
		out = [4]pr.Item{values[0], values[0], values[0], values[0]}
	case 2:
		out = [4]pr.Item{values[0], values[1], values[0], values[1]}
	case 3:
		out = [4]pr.Item{values[0], values[1], values[2], values[1]}
	case 4:
		copy(out[:], values)
	}
	for i := range out {
		out[i].Sep = pr.SepNone
	}
	return out, nil
}

// Expand properties setting a value for the four sides of a box:
// "margin", "padding", "border-color", "border-style", "border-width".
func expandFourSides(d *pr.Descriptor, values pr.List) ([]expanded, error) {
	items, err := fourValues(values)
	if err != nil {
		return nil, err
	}
	out := make([]expanded, 4)
	for i, p := range d.Longhands {
		v, err := validateLonghand(pr.Describe(p), pr.List{items[i]})
		if err != nil {
			return nil, err
		}
		out[i] = expanded{prop: p, value: v}
	}
	return out, nil
}

// Expand the "border-radius" property, with an optional "/" separating
// the horizontal and vertical radii.
// http://www.w3.org/TR/css3-background/#border-radius
//
// Each group is completed independently, with the corners in the order
// top-left, top-right, bottom-right, bottom-left: bottom-right defaults
// to top-left and bottom-left defaults to top-right.
func expandBorderRadius(d *pr.Descriptor, values pr.List) ([]expanded, error) {
	groups := values.Split(pr.SepSlash)
	if len(groups) > 2 {
		return nil, invalid(ErrInvalidValue, "expected only one '/' separator")
	}
	hor, err := fourValues(groups[0])
	if err != nil {
		return nil, err
	}
	ver := hor
	if len(groups) == 2 {
		ver, err = fourValues(groups[1])
		if err != nil {
			return nil, err
		}
	}
	out := make([]expanded, 4)
	for i, p := range d.Longhands {
		v := ver[i]
		v.Sep = pr.SepSpace
		value, err := validateLonghand(pr.Describe(p), pr.List{hor[i], v})
		if err != nil {
			return nil, err
		}
		out[i] = expanded{prop: p, value: value}
	}
	return out, nil
}

// Expand the "border-top", "border-right", "border-bottom", "border-left"
// and "outline" shorthands.
// http://www.w3.org/TR/CSS21/box.html#propdef-border-top
func expandBorderSide(d *pr.Descriptor, values pr.List) ([]expanded, error) {
	if err := countBetween(values, 1, 3); err != nil {
		return nil, err
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	// longhands are in the order width, style, color for borders
	// and color, style, width for outline
	var width, style, color pr.KnownProp
	for _, p := range d.Longhands {
		switch pr.Describe(p).Kind {
		case pr.KindColor:
			color = p
		case pr.KindIdent:
			style = p
		default:
			width = p
		}
	}
	nv := newNamedValues(d.Longhands)
	for _, it := range values {
		it.Sep = pr.SepNone
		var err error
		if v := tryLonghand(color, it); v != nil {
			err = nv.set(color, v)
		} else if v := tryLonghand(style, it); v != nil {
			err = nv.set(style, v)
		} else if v := tryLonghand(width, it); v != nil {
			err = nv.set(width, v)
		} else {
			return nil, invalid(ErrInvalidValue, "unexpected %s", it.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	return nv.expanded(), nil
}

// Expand the "border" shorthand, setting the four sides.
// http://www.w3.org/TR/CSS21/box.html#propdef-border
func expandBorder(d *pr.Descriptor, values pr.List) ([]expanded, error) {
	var out []expanded
	for _, side := range [4]pr.KnownProp{pr.SBorderTop, pr.SBorderRight, pr.SBorderBottom, pr.SBorderLeft} {
		props, err := expandBorderSide(pr.Describe(side), values)
		if err != nil {
			return nil, err
		}
		out = append(out, props...)
	}
	return out, nil
}

// Expand the "background" shorthand. Components may come in any order,
// the (one or two) position values being consecutive.
// http://www.w3.org/TR/CSS21/colors.html#propdef-background
func expandBackground(d *pr.Descriptor, values pr.List) ([]expanded, error) {
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	nv := newNamedValues(d.Longhands)
	for i := 0; i < len(values); i++ {
		it := values[i]
		it.Sep = pr.SepNone
		var err error
		if v := tryLonghand(pr.PBackgroundColor, it); v != nil {
			err = nv.set(pr.PBackgroundColor, v)
		} else if v := tryLonghand(pr.PBackgroundImage, it); v != nil {
			err = nv.set(pr.PBackgroundImage, v)
		} else if v := tryLonghand(pr.PBackgroundRepeat, it); v != nil {
			err = nv.set(pr.PBackgroundRepeat, v)
		} else if v := tryLonghand(pr.PBackgroundAttachment, it); v != nil {
			err = nv.set(pr.PBackgroundAttachment, v)
		} else {
			// try two values first
			var v pr.Value
			if i+1 < len(values) {
				v = tryLonghand(pr.PBackgroundPosition, it, values[i+1])
			}
			if v != nil {
				i++
			} else {
				v = tryLonghand(pr.PBackgroundPosition, it)
			}
			if v == nil {
				return nil, invalid(ErrInvalidValue, "unexpected %s", it.Value)
			}
			err = nv.set(pr.PBackgroundPosition, v)
		}
		if err != nil {
			return nil, err
		}
	}
	return nv.expanded(), nil
}

var systemFonts = [...]kw.Keyword{kw.Caption, kw.Icon, kw.Menu, kw.MessageBox, kw.SmallCaption, kw.StatusBar}

// Expand the "font" shorthand.
// http://www.w3.org/TR/CSS21/fonts.html#font-shorthand
func expandFont(d *pr.Descriptor, values pr.List) ([]expanded, error) {
	if len(values) == 1 {
		if k, ok := pr.AsKeyword(values[0].Value); ok {
			for _, sys := range systemFonts {
				if k == sys {
					return nil, invalid(ErrInvalidValue, "system fonts are not supported")
				}
			}
		}
	}
	nv := newNamedValues(d.Longhands)

	// font-style, font-variant and font-weight come in any order,
	// and are optional
	i := 0
	for ; i < len(values) && i < 3; i++ {
		it := values[i]
		if it.Sep != pr.SepNone && it.Sep != pr.SepSpace {
			break
		}
		it.Sep = pr.SepNone
		if pr.IsKeyword(it.Value, kw.Normal) {
			// unspecified properties get their initial value, which is normal
			continue
		}
		var err error
		if v := tryLonghand(pr.PFontStyle, it); v != nil {
			err = nv.set(pr.PFontStyle, v)
		} else if v := tryLonghand(pr.PFontVariant, it); v != nil {
			err = nv.set(pr.PFontVariant, v)
		} else if v := tryLonghand(pr.PFontWeight, it); v != nil {
			err = nv.set(pr.PFontWeight, v)
		} else {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	// font-size is mandatory
	if i >= len(values) {
		return nil, invalid(ErrValueCountMismatch, "font-size is mandatory in the font shorthand")
	}
	sizeItem := values[i]
	sizeItem.Sep = pr.SepNone
	size, err := validateLonghand(pr.Describe(pr.PFontSize), pr.List{sizeItem})
	if err != nil {
		return nil, err
	}
	nv.values[pr.PFontSize] = size
	i++

	// then line-height is optional
	if i < len(values) && values[i].Sep == pr.SepSlash {
		lhItem := values[i]
		lhItem.Sep = pr.SepNone
		lh, err := validateLonghand(pr.Describe(pr.PLineHeight), pr.List{lhItem})
		if err != nil {
			return nil, err
		}
		nv.values[pr.PLineHeight] = lh
		i++
	}

	// font-family is mandatory
	if i >= len(values) {
		return nil, invalid(ErrValueCountMismatch, "font-family is mandatory in the font shorthand")
	}
	family := append(pr.List(nil), values[i:]...)
	if family[0].Sep != pr.SepSpace {
		return nil, invalid(ErrInvalidValue, "unexpected separator before font-family")
	}
	family[0].Sep = pr.SepNone
	fam, err := validateLonghand(pr.Describe(pr.PFontFamily), family)
	if err != nil {
		return nil, err
	}
	nv.values[pr.PFontFamily] = fam
	return nv.expanded(), nil
}

// Expand the "list-style" shorthand.
// http://www.w3.org/TR/CSS21/generate.html#propdef-list-style
func expandListStyle(d *pr.Descriptor, values pr.List) ([]expanded, error) {
	if err := countBetween(values, 1, 3); err != nil {
		return nil, err
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	nv := newNamedValues(d.Longhands)
	noneCount := 0
	for _, it := range values {
		it.Sep = pr.SepNone
		if pr.IsKeyword(it.Value, kw.None) {
			// can be either -type or -image, see at the end
			// which is not otherwise specified
			noneCount++
			continue
		}
		var err error
		if v := tryLonghand(pr.PListStyleImage, it); v != nil {
			err = nv.set(pr.PListStyleImage, v)
		} else if v := tryLonghand(pr.PListStylePosition, it); v != nil {
			err = nv.set(pr.PListStylePosition, v)
		} else if v := tryLonghand(pr.PListStyleType, it); v != nil {
			err = nv.set(pr.PListStyleType, v)
		} else {
			return nil, invalid(ErrInvalidValue, "unexpected %s", it.Value)
		}
		if err != nil {
			return nil, err
		}
	}

	none := pr.KeywordValue(kw.None)
	if !nv.has(pr.PListStyleType) && noneCount > 0 {
		nv.values[pr.PListStyleType] = none
		noneCount--
	}
	if !nv.has(pr.PListStyleImage) && noneCount > 0 {
		nv.values[pr.PListStyleImage] = none
		noneCount--
	}
	if noneCount > 0 {
		return nil, invalid(ErrInvalidValue, "too many none values")
	}
	return nv.expanded(), nil
}

package validation

import (
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
)

// Validate property values.
// See http://www.w3.org/TR/CSS21/propidx.html

type validator func(d *pr.Descriptor, values pr.List) (pr.Value, error)

// validators maps each property family to its validation function.
// They return the normalized value, which is stored in the declaration.
var validators = [...]validator{
	pr.KindIdent:              identValidator,
	pr.KindLengthPercOrIdent:  lengthPercOrIdent,
	pr.KindLengthOrIdent:      lengthOrIdent,
	pr.KindColor:              colorValidator,
	pr.KindInteger:            integerValidator,
	pr.KindPositiveInteger:    positiveInteger,
	pr.KindNumber:             unitNumber,
	pr.KindLineHeight:         lineHeight,
	pr.KindFontSize:           fontSize,
	pr.KindFontWeight:         fontWeight,
	pr.KindFontFamily:         fontFamily,
	pr.KindURIOrNone:          uriOrNone,
	pr.KindBackgroundPosition: backgroundPosition,
	pr.KindBackgroundSize:     backgroundSize,
	pr.KindBorderSpacing:      borderSpacing,
	pr.KindRadius:             cornerRadius,
	pr.KindClip:               clip,
	pr.KindContent:            content,
	pr.KindCounter:            counter,
	pr.KindQuotes:             quotes,
	pr.KindCursor:             cursor,
	pr.KindPage:               page,
	pr.KindSize:               size,
	pr.KindTextDecoration:     textDecoration,
}

// single checks that `values` has exactly one element.
func single(values pr.List) (pr.Value, error) {
	if len(values) != 1 {
		return nil, invalid(ErrValueCountMismatch, "expected 1 value, got %d", len(values))
	}
	return values[0].Value, nil
}

func countBetween(values pr.List, min, max int) error {
	if len(values) < min || len(values) > max {
		return invalid(ErrValueCountMismatch, "expected %d to %d values, got %d", min, max, len(values))
	}
	return nil
}

// spaceSeparated rejects commas and slashes.
func spaceSeparated(values pr.List) error {
	for _, it := range values {
		if it.Sep == pr.SepComma || it.Sep == pr.SepSlash {
			return invalid(ErrInvalidValue, "unexpected separator %q", strings.TrimSpace(it.Sep.String()))
		}
	}
	return nil
}

// keyword returns the identifier of `v`, which must be accepted by `d`.
// The boolean is false if `v` is not an identifier.
func keyword(d *pr.Descriptor, v pr.Value) (pr.Ident, bool, error) {
	id, ok := v.(pr.Ident)
	if !ok {
		return pr.Ident{}, false, nil
	}
	if !id.Known() || !d.Accepts(id.Keyword) {
		return id, true, invalid(ErrInvalidIdent, "%q", id.Name)
	}
	return pr.KeywordValue(id.Keyword), true, nil
}

func checkNegative(d *pr.Descriptor, dim pr.Dimension) error {
	if !d.Negative && dim.Value < 0 {
		return invalid(ErrNegativeValue, "%s", dim)
	}
	return nil
}

func identValidator(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	id, isIdent, err := keyword(d, v)
	if err != nil {
		return nil, err
	}
	if !isIdent {
		return nil, invalid(ErrWrongCategory, "expected identifier, got %s", v)
	}
	return id, nil
}

func lengthOrIdentImpl(d *pr.Descriptor, values pr.List, percentage bool) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	if id, isIdent, err := keyword(d, v); isIdent {
		return id, err
	}
	dim, ok := v.(pr.Dimension)
	if !ok || !(dim.IsLength() || percentage && dim.IsPercentage()) {
		if percentage {
			return nil, invalid(ErrWrongCategory, "expected length or percentage, got %s", v)
		}
		return nil, invalid(ErrWrongCategory, "expected length, got %s", v)
	}
	if err := checkNegative(d, dim); err != nil {
		return nil, err
	}
	return dim, nil
}

// length, percentage or keyword, like `width` or `margin-top`
func lengthPercOrIdent(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	return lengthOrIdentImpl(d, values, true)
}

// length or keyword, like `border-top-width` or `letter-spacing`
func lengthOrIdent(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	return lengthOrIdentImpl(d, values, false)
}

// parseColor accepts colors, named colors and the keywords of `d`.
func parseColor(d *pr.Descriptor, v pr.Value) (pr.Value, error) {
	switch v := v.(type) {
	case pr.Color:
		return v, nil
	case pr.Ident:
		if v.Known() && d.Accepts(v.Keyword) {
			return pr.KeywordValue(v.Keyword), nil
		}
		if c, ok := pr.NamedColor(v.Name); ok {
			return c, nil
		}
		return nil, invalid(ErrInvalidIdent, "%q is not a color", v.Name)
	default:
		return nil, invalid(ErrWrongCategory, "expected color, got %s", v)
	}
}

func colorValidator(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	return parseColor(d, v)
}

func integerValidator(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	if id, isIdent, err := keyword(d, v); isIdent {
		return id, err
	}
	dim, ok := v.(pr.Dimension)
	if !ok || !dim.IsInteger() {
		return nil, invalid(ErrWrongCategory, "expected integer, got %s", v)
	}
	if err := checkNegative(d, dim); err != nil {
		return nil, err
	}
	return dim, nil
}

// `orphans` and `widows`
func positiveInteger(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	dim, ok := v.(pr.Dimension)
	if !ok || !dim.IsInteger() {
		return nil, invalid(ErrWrongCategory, "expected integer, got %s", v)
	}
	if dim.Value < 1 {
		return nil, invalid(ErrOutOfRange, "%s is not strictly positive", dim)
	}
	return dim, nil
}

// `opacity`
func unitNumber(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	dim, ok := v.(pr.Dimension)
	if !ok || !dim.IsNumber() {
		return nil, invalid(ErrWrongCategory, "expected number, got %s", v)
	}
	if dim.Value < 0 || dim.Value > 1 {
		return nil, invalid(ErrOutOfRange, "%s is not in [0, 1]", dim)
	}
	return dim, nil
}

func nonNegative(v pr.Value, percentage, number bool) (pr.Dimension, error) {
	dim, ok := v.(pr.Dimension)
	if !ok || !(dim.IsLength() || percentage && dim.IsPercentage() || number && dim.IsNumber()) {
		return pr.Dimension{}, invalid(ErrWrongCategory, "unexpected %s", v)
	}
	if dim.Value < 0 {
		return pr.Dimension{}, invalid(ErrNegativeValue, "%s", dim)
	}
	return dim, nil
}

// http://www.w3.org/TR/CSS21/visudet.html#propdef-line-height
func lineHeight(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	if pr.IsKeyword(v, kw.Normal) {
		return pr.KeywordValue(kw.Normal), nil
	}
	if _, isIdent := v.(pr.Ident); isIdent {
		return nil, invalid(ErrInvalidIdent, "%s", v)
	}
	return nonNegative(v, true, true)
}

// http://www.w3.org/TR/CSS21/fonts.html#propdef-font-size
func fontSize(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	if id, ok := v.(pr.Ident); ok {
		if _, isAbsolute := pr.FontSizeKeywords[id.Keyword]; isAbsolute || id.Keyword == kw.Larger || id.Keyword == kw.Smaller {
			return pr.KeywordValue(id.Keyword), nil
		}
		return nil, invalid(ErrInvalidIdent, "%q", id.Name)
	}
	return nonNegative(v, true, false)
}

// http://www.w3.org/TR/CSS21/fonts.html#propdef-font-weight
// Numeric weights are stored as their keyword.
func fontWeight(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case pr.Ident:
		switch v.Keyword {
		case kw.Normal, kw.Bold, kw.Bolder, kw.Lighter:
			return pr.KeywordValue(v.Keyword), nil
		}
		return nil, invalid(ErrInvalidIdent, "%q", v.Name)
	case pr.Dimension:
		if v.IsInteger() {
			if k, ok := kw.FromWeight(int(v.Value)); ok {
				return pr.KeywordValue(k), nil
			}
		}
		return nil, invalid(ErrOutOfRange, "%s is not a font weight", v)
	default:
		return nil, invalid(ErrWrongCategory, "expected font weight, got %s", v)
	}
}

var genericFamilies = [...]kw.Keyword{kw.Serif, kw.SansSerif, kw.Cursive, kw.Fantasy, kw.Monospace}

func isGenericFamily(k kw.Keyword) bool {
	for _, g := range genericFamilies {
		if g == k {
			return true
		}
	}
	return false
}

// http://www.w3.org/TR/CSS21/fonts.html#propdef-font-family
// Family names are returned as strings, generic families as keywords.
func fontFamily(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	var out pr.List
	for _, group := range values.Split(pr.SepComma) {
		if err := spaceSeparated(group); err != nil {
			return nil, err
		}
		var family pr.Value
		if len(group) == 1 {
			switch v := group[0].Value.(type) {
			case pr.String:
				family = v
			case pr.Ident:
				if isGenericFamily(v.Keyword) {
					family = pr.KeywordValue(v.Keyword)
				} else {
					family = pr.String(v.Name)
				}
			}
		} else {
			// unquoted names made of several identifiers
			names := make([]string, len(group))
			for i, it := range group {
				id, ok := it.Value.(pr.Ident)
				if !ok {
					return nil, invalid(ErrWrongCategory, "invalid family name %s", group)
				}
				names[i] = id.Name
			}
			family = pr.String(strings.Join(names, " "))
		}
		if family == nil {
			return nil, invalid(ErrWrongCategory, "invalid family name %s", group)
		}
		sep := pr.SepComma
		if len(out) == 0 {
			sep = pr.SepNone
		}
		out = append(out, pr.Item{Value: family, Sep: sep})
	}
	return out.Unwrap(), nil
}

// `background-image` and `list-style-image`
func uriOrNone(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case pr.URI:
		return v, nil
	case pr.Ident:
		if v.Keyword == kw.None {
			return pr.KeywordValue(kw.None), nil
		}
		return nil, invalid(ErrInvalidIdent, "%q", v.Name)
	default:
		return nil, invalid(ErrWrongCategory, "expected url or none, got %s", v)
	}
}

type axis uint8

const (
	anyAxis axis = iota
	horizontal
	vertical
)

var (
	zeroPercent    = pr.NewDim(0, pr.Perc)
	fiftyPercent   = pr.NewDim(50, pr.Perc)
	hundredPercent = pr.NewDim(100, pr.Perc)

	backgroundPositionKeywords = map[kw.Keyword]struct {
		value pr.Dimension
		axis  axis
	}{
		kw.Left:   {zeroPercent, horizontal},
		kw.Right:  {hundredPercent, horizontal},
		kw.Top:    {zeroPercent, vertical},
		kw.Bottom: {hundredPercent, vertical},
		kw.Center: {fiftyPercent, anyAxis},
	}
)

func positionComponent(v pr.Value) (pr.Dimension, axis, bool, error) {
	if id, ok := v.(pr.Ident); ok {
		p, ok := backgroundPositionKeywords[id.Keyword]
		if !ok {
			return pr.Dimension{}, 0, false, invalid(ErrInvalidIdent, "%q", id.Name)
		}
		return p.value, p.axis, true, nil
	}
	dim, ok := v.(pr.Dimension)
	if !ok || !(dim.IsLength() || dim.IsPercentage()) {
		return pr.Dimension{}, 0, false, invalid(ErrWrongCategory, "expected position, got %s", v)
	}
	return dim, anyAxis, false, nil
}

// http://www.w3.org/TR/CSS21/colors.html#propdef-background-position
// The value is normalized to a (horizontal, vertical) pair, with
// keywords converted to percentages.
func backgroundPosition(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	x, y, err := parsePosition(values)
	if err != nil {
		return nil, err
	}
	return pr.NewList(x, y), nil
}

func parsePosition(values pr.List) (x, y pr.Dimension, err error) {
	if err := countBetween(values, 1, 2); err != nil {
		return x, y, err
	}
	if err := spaceSeparated(values); err != nil {
		return x, y, err
	}
	v1, a1, isKw1, err := positionComponent(values[0].Value)
	if err != nil {
		return x, y, err
	}
	if len(values) == 1 {
		if a1 == vertical {
			return fiftyPercent, v1, nil
		}
		return v1, fiftyPercent, nil
	}
	v2, a2, isKw2, err := positionComponent(values[1].Value)
	if err != nil {
		return x, y, err
	}
	if a1 == vertical || a2 == horizontal {
		// only keywords may be swapped, like in "top left"
		if !isKw1 || !isKw2 {
			return x, y, invalid(ErrInvalidValue, "invalid position %s", values)
		}
		v1, a1, v2, a2 = v2, a2, v1, a1
	}
	if a1 == vertical || a2 == horizontal {
		return x, y, invalid(ErrInvalidValue, "invalid position %s", values)
	}
	return v1, v2, nil
}

// http://www.w3.org/TR/css3-background/#background-size
func backgroundSize(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if len(values) == 1 {
		if id, ok := values[0].Value.(pr.Ident); ok && (id.Keyword == kw.Cover || id.Keyword == kw.Contain) {
			return pr.KeywordValue(id.Keyword), nil
		}
	}
	if err := countBetween(values, 1, 2); err != nil {
		return nil, err
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	out := make([]pr.Value, len(values))
	for i, it := range values {
		if pr.IsKeyword(it.Value, kw.Auto) {
			out[i] = pr.KeywordValue(kw.Auto)
			continue
		}
		dim, err := nonNegative(it.Value, true, false)
		if err != nil {
			return nil, err
		}
		out[i] = dim
	}
	if len(out) == 1 {
		out = append(out, pr.KeywordValue(kw.Auto))
	}
	return pr.NewList(out...), nil
}

// http://www.w3.org/TR/CSS21/tables.html#propdef-border-spacing
func borderSpacing(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if err := countBetween(values, 1, 2); err != nil {
		return nil, err
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	dims := make([]pr.Value, len(values))
	for i, it := range values {
		dim, err := nonNegative(it.Value, false, false)
		if err != nil {
			return nil, err
		}
		dims[i] = dim
	}
	if len(dims) == 1 {
		return dims[0], nil
	}
	return pr.NewList(dims...), nil
}

// Corner radii are normalized to a (horizontal, vertical) pair.
// http://www.w3.org/TR/css3-background/#border-top-left-radius
func cornerRadius(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if err := countBetween(values, 1, 2); err != nil {
		return nil, err
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	var dims [2]pr.Value
	for i, it := range values {
		dim, err := nonNegative(it.Value, true, false)
		if err != nil {
			return nil, err
		}
		dims[i] = dim
	}
	if dims[1] == nil {
		dims[1] = dims[0]
	}
	return pr.NewList(dims[0], dims[1]), nil
}

// http://www.w3.org/TR/CSS21/visufx.html#propdef-clip
func clip(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	if pr.IsKeyword(v, kw.Auto) {
		return pr.KeywordValue(kw.Auto), nil
	}
	fn, ok := v.(pr.Function)
	if !ok || fn.Name != "rect" {
		return nil, invalid(ErrWrongCategory, "expected auto or rect(), got %s", v)
	}
	// the legacy syntax separates the arguments with spaces
	args := fn.Args
	if len(args) != 4 {
		return nil, invalid(ErrValueCountMismatch, "rect() expects 4 arguments, got %d", len(args))
	}
	out := make([]pr.Value, 4)
	for i, it := range args {
		if it.Sep == pr.SepSlash {
			return nil, invalid(ErrInvalidValue, "invalid rect() separator")
		}
		if pr.IsKeyword(it.Value, kw.Auto) {
			out[i] = pr.KeywordValue(kw.Auto)
			continue
		}
		dim, ok := it.Value.(pr.Dimension)
		if !ok || !dim.IsLength() {
			return nil, invalid(ErrWrongCategory, "invalid rect() argument %s", it.Value)
		}
		out[i] = dim
	}
	list := pr.NewList(out...)
	for i := 1; i < 4; i++ {
		list[i].Sep = pr.SepComma
	}
	return pr.Function{Name: "rect", Args: list}, nil
}

var listStyleTypes = pr.Describe(pr.PListStyleType)

// checkContentFunction validates counter(), counters() and attr().
func checkContentFunction(fn pr.Function) error {
	args := fn.Args.Split(pr.SepComma)
	switch fn.Name {
	case "attr":
		if len(args) == 1 && len(args[0]) == 1 {
			if _, ok := args[0][0].Value.(pr.Ident); ok {
				return nil
			}
		}
	case "counter", "counters":
		min, max := 1, 2
		if fn.Name == "counters" {
			min, max = 2, 3
		}
		if len(args) < min || len(args) > max {
			break
		}
		for _, arg := range args {
			if len(arg) != 1 {
				return invalid(ErrInvalidValue, "invalid %s()", fn.Name)
			}
		}
		if _, ok := args[0][0].Value.(pr.Ident); !ok {
			break
		}
		if fn.Name == "counters" {
			if _, ok := args[1][0].Value.(pr.String); !ok {
				break
			}
		}
		if len(args) == max {
			style, ok := args[max-1][0].Value.(pr.Ident)
			if !ok || !style.Known() || !listStyleTypes.Accepts(style.Keyword) {
				break
			}
		}
		return nil
	}
	return invalid(ErrInvalidValue, "invalid %s", fn)
}

// http://www.w3.org/TR/CSS21/generate.html#propdef-content
func content(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if len(values) == 1 {
		if k, ok := pr.AsKeyword(values[0].Value); ok && (k == kw.Normal || k == kw.None) {
			return pr.KeywordValue(k), nil
		}
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	out := make([]pr.Value, len(values))
	for i, it := range values {
		switch v := it.Value.(type) {
		case pr.String, pr.URI:
			out[i] = v
		case pr.Ident:
			switch v.Keyword {
			case kw.OpenQuote, kw.CloseQuote, kw.NoOpenQuote, kw.NoCloseQuote:
				out[i] = pr.KeywordValue(v.Keyword)
			default:
				return nil, invalid(ErrInvalidIdent, "%q", v.Name)
			}
		case pr.Function:
			if err := checkContentFunction(v); err != nil {
				return nil, err
			}
			out[i] = v
		default:
			return nil, invalid(ErrWrongCategory, "unexpected %s", v)
		}
	}
	return pr.NewList(out...), nil
}

// `counter-increment` and `counter-reset`: a list of
// counter names, each optionally followed by an integer.
func counter(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if len(values) == 1 && pr.IsKeyword(values[0].Value, kw.None) {
		return pr.KeywordValue(kw.None), nil
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	var out []pr.Value
	for i := 0; i < len(values); i++ {
		name, ok := values[i].Value.(pr.Ident)
		if !ok {
			return nil, invalid(ErrWrongCategory, "expected counter name, got %s", values[i].Value)
		}
		if name.Keyword == kw.None || name.Keyword == kw.Inherit || name.Keyword == kw.Initial {
			return nil, invalid(ErrInvalidIdent, "invalid counter name %q", name.Name)
		}
		out = append(out, pr.Ident{Name: name.Name})
		if i+1 < len(values) {
			if dim, ok := values[i+1].Value.(pr.Dimension); ok {
				if !dim.IsInteger() {
					return nil, invalid(ErrWrongCategory, "expected integer, got %s", dim)
				}
				out = append(out, dim)
				i++
			}
		}
	}
	return pr.NewList(out...), nil
}

// http://www.w3.org/TR/CSS21/generate.html#propdef-quotes
func quotes(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if len(values) == 1 && pr.IsKeyword(values[0].Value, kw.None) {
		return pr.KeywordValue(kw.None), nil
	}
	if len(values)%2 != 0 {
		return nil, invalid(ErrValueCountMismatch, "expected pairs of strings, got %d values", len(values))
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	for _, it := range values {
		if _, ok := it.Value.(pr.String); !ok {
			return nil, invalid(ErrWrongCategory, "expected string, got %s", it.Value)
		}
	}
	return values, nil
}

// http://www.w3.org/TR/CSS21/ui.html#propdef-cursor
func cursor(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	groups := values.Split(pr.SepComma)
	last := groups[len(groups)-1]
	if len(last) != 1 {
		return nil, invalid(ErrValueCountMismatch, "expected a cursor keyword")
	}
	id, isIdent, err := keyword(d, last[0].Value)
	if err != nil {
		return nil, err
	}
	if !isIdent {
		return nil, invalid(ErrWrongCategory, "the last cursor must be a keyword, got %s", last[0].Value)
	}
	if len(groups) == 1 {
		return id, nil
	}
	out := make(pr.List, 0, len(groups))
	for _, g := range groups[:len(groups)-1] {
		if len(g) != 1 {
			return nil, invalid(ErrValueCountMismatch, "invalid cursor %s", g)
		}
		uri, ok := g[0].Value.(pr.URI)
		if !ok {
			return nil, invalid(ErrWrongCategory, "expected url, got %s", g[0].Value)
		}
		out = append(out, pr.Item{Value: uri, Sep: pr.SepComma})
	}
	out = append(out, pr.Item{Value: id, Sep: pr.SepComma})
	out[0].Sep = pr.SepNone
	return out, nil
}

// http://www.w3.org/TR/css3-page/#using-named-pages
func page(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	id, ok := v.(pr.Ident)
	if !ok {
		return nil, invalid(ErrWrongCategory, "expected page name, got %s", v)
	}
	if id.Keyword == kw.Auto {
		return pr.KeywordValue(kw.Auto), nil
	}
	if id.Known() {
		return nil, invalid(ErrInvalidIdent, "%q is not a valid page name", id.Name)
	}
	return id, nil
}

// http://www.w3.org/TR/css3-page/#page-size
func size(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if err := countBetween(values, 1, 2); err != nil {
		return nil, err
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	if len(values) == 1 && pr.IsKeyword(values[0].Value, kw.Auto) {
		return pr.KeywordValue(kw.Auto), nil
	}

	var (
		lengths     []pr.Value
		pageSize    pr.Value
		orientation pr.Value
	)
	for _, it := range values {
		switch v := it.Value.(type) {
		case pr.Dimension:
			if !v.IsLength() || v.Value < 0 {
				return nil, invalid(ErrWrongCategory, "invalid page size %s", v)
			}
			lengths = append(lengths, v)
		case pr.Ident:
			if _, isSize := pr.PageSizes[v.Keyword]; isSize && pageSize == nil {
				pageSize = pr.KeywordValue(v.Keyword)
			} else if (v.Keyword == kw.Portrait || v.Keyword == kw.Landscape) && orientation == nil {
				orientation = pr.KeywordValue(v.Keyword)
			} else {
				return nil, invalid(ErrInvalidIdent, "%q", v.Name)
			}
		default:
			return nil, invalid(ErrWrongCategory, "invalid page size %s", v)
		}
	}
	if len(lengths) != 0 {
		if pageSize != nil || orientation != nil {
			return nil, invalid(ErrInvalidValue, "lengths can't be mixed with keywords")
		}
		if len(lengths) == 1 {
			lengths = append(lengths, lengths[0])
		}
		return pr.NewList(lengths...), nil
	}
	var out []pr.Value
	if pageSize != nil {
		out = append(out, pageSize)
	}
	if orientation != nil {
		out = append(out, orientation)
	}
	return pr.NewList(out...).Unwrap(), nil
}

// http://www.w3.org/TR/CSS21/text.html#propdef-text-decoration
func textDecoration(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if len(values) == 1 && pr.IsKeyword(values[0].Value, kw.None) {
		return pr.KeywordValue(kw.None), nil
	}
	if err := spaceSeparated(values); err != nil {
		return nil, err
	}
	seen := map[kw.Keyword]bool{}
	out := make([]pr.Value, len(values))
	for i, it := range values {
		k, ok := pr.AsKeyword(it.Value)
		switch {
		case !ok:
			return nil, invalid(ErrWrongCategory, "unexpected %s", it.Value)
		case k != kw.Underline && k != kw.Overline && k != kw.LineThrough && k != kw.Blink:
			return nil, invalid(ErrInvalidIdent, "%s", it.Value)
		case seen[k]:
			return nil, invalid(ErrInvalidValue, "duplicated %s", k)
		}
		seen[k] = true
		out[i] = pr.KeywordValue(k)
	}
	return pr.NewList(out...).Unwrap(), nil
}

package properties

import (
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/utils"
)

type Fl = utils.Fl

// Unit is the unit of a Dimension.
// The zero value is not a valid unit.
type Unit uint8

const (
	Scalar Unit = iota + 1 // means no unit, but a valid value
	Perc                   // percentage (%)
	Ex
	Em
	Ch
	Rem
	Px
	Pt
	Pc
	In
	Cm
	Mm
	Q

	Rad
	Turn
	Deg
	Grad
)

var unitNames = [...]string{
	Scalar: "",
	Perc:   "%",
	Ex:     "ex",
	Em:     "em",
	Ch:     "ch",
	Rem:    "rem",
	Px:     "px",
	Pt:     "pt",
	Pc:     "pc",
	In:     "in",
	Cm:     "cm",
	Mm:     "mm",
	Q:      "q",
	Rad:    "rad",
	Turn:   "turn",
	Deg:    "deg",
	Grad:   "grad",
}

// units by their lower case name; percentages are handled by the tokenizer
var unitsByName = map[string]Unit{
	"ex":   Ex,
	"em":   Em,
	"ch":   Ch,
	"rem":  Rem,
	"px":   Px,
	"pt":   Pt,
	"pc":   Pc,
	"in":   In,
	"cm":   Cm,
	"mm":   Mm,
	"q":    Q,
	"rad":  Rad,
	"turn": Turn,
	"deg":  Deg,
	"grad": Grad,
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "<invalid unit>"
}

// IsLength returns true for absolute and font relative length units.
func (u Unit) IsLength() bool { return u >= Ex && u <= Q }

// IsAngle returns true for angle units.
func (u Unit) IsAngle() bool { return u >= Rad }

// IsRelative returns true for units which need a base value (a containing
// block dimension or a font size) to be expressed in pixels.
func (u Unit) IsRelative() bool { return u >= Perc && u <= Rem }

// IsAbsolute is the opposite of IsRelative, for length units.
func (u Unit) IsAbsolute() bool { return u >= Px && u <= Q }

// How many CSS pixels is one <unit>?
// http://www.w3.org/TR/CSS21/syndata.html#length-units
var LengthsToPixels = [...]Fl{
	Px: 1,
	Pt: 1. / 0.75,
	Pc: 16.,             // LengthsToPixels["pt"] * 12
	In: 96.,             // LengthsToPixels["pt"] * 72
	Cm: 96. / 2.54,      // LengthsToPixels["in"] / 2.54
	Mm: 96. / 25.4,      // LengthsToPixels["in"] / 25.4
	Q:  96. / 25.4 / 4., // LengthsToPixels[Mm] / 4
}

// DefaultFontSize is the size in pixels of the `medium` keyword,
// used when no other value is configured.
const DefaultFontSize Fl = 16

// FontSizeKeywords stores the ratio to `medium` of <absolute-size> keywords,
// as given in CSS3:
// http://www.w3.org/TR/css3-fonts/#font-size-prop
var FontSizeKeywords = map[kw.Keyword]Fl{
	kw.XxSmall: 3. / 5,
	kw.XSmall:  3. / 4,
	kw.Small:   8. / 9,
	kw.Medium:  1,
	kw.Large:   6. / 5,
	kw.XLarge:  3. / 2,
	kw.XxLarge: 2,
}

// FontSizeKeywordsOrder lists the <absolute-size> keywords, from the smallest.
var FontSizeKeywordsOrder = [...]kw.Keyword{kw.XxSmall, kw.XSmall, kw.Small, kw.Medium, kw.Large, kw.XLarge, kw.XxLarge}

// FontWeightRelative resolves `bolder` and `lighter`, from the parent weight.
// http://www.w3.org/TR/CSS21/fonts.html#propdef-font-weight
var FontWeightRelative = struct {
	Bolder, Lighter map[int]int
}{
	Bolder: map[int]int{
		100: 400,
		200: 400,
		300: 400,
		400: 700,
		500: 700,
		600: 900,
		700: 900,
		800: 900,
		900: 900,
	},
	Lighter: map[int]int{
		100: 100,
		200: 100,
		300: 100,
		400: 100,
		500: 100,
		600: 400,
		700: 400,
		800: 700,
		900: 700,
	},
}

// BorderWidthKeywords are unspecified, other than 'thin' <='medium' <= 'thick'.
// Values are in pixels.
var BorderWidthKeywords = map[kw.Keyword]Fl{
	kw.Thin:   1,
	kw.Medium: 3,
	kw.Thick:  5,
}

// Point is a (width, height) pair.
type Point [2]Dimension

// A4 is the default page size.
var A4 = Point{Dimension{Value: 210, Unit: Mm}, Dimension{Value: 297, Unit: Mm}}

// PageSizes stores the named page sizes, in portrait orientation.
// http://www.w3.org/TR/css3-page/#size
var PageSizes = map[kw.Keyword]Point{
	kw.A5:     {Dimension{Value: 148, Unit: Mm}, Dimension{Value: 210, Unit: Mm}},
	kw.A4:     A4,
	kw.A3:     {Dimension{Value: 297, Unit: Mm}, Dimension{Value: 420, Unit: Mm}},
	kw.B5:     {Dimension{Value: 176, Unit: Mm}, Dimension{Value: 250, Unit: Mm}},
	kw.B4:     {Dimension{Value: 250, Unit: Mm}, Dimension{Value: 353, Unit: Mm}},
	kw.Letter: {Dimension{Value: 8.5, Unit: In}, Dimension{Value: 11, Unit: In}},
	kw.Legal:  {Dimension{Value: 8.5, Unit: In}, Dimension{Value: 14, Unit: In}},
	kw.Ledger: {Dimension{Value: 11, Unit: In}, Dimension{Value: 17, Unit: In}},
}

package properties

import (
	"strconv"
	"strings"

	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
)

// Value is the tagged union of CSS values : one of Dimension
// (numbers, lengths, percentages and angles), Color, Ident, String,
// URI, Function or List.
type Value interface {
	// String returns the canonical CSS text of the value.
	String() string
	// Fingerprint returns a deterministic key for the value,
	// used to dedup cascades across elements.
	Fingerprint() string
}

var (
	_ Value = Dimension{}
	_ Value = Color{}
	_ Value = Ident{}
	_ Value = String("")
	_ Value = URI("")
	_ Value = Function{}
	_ Value = List{}
)

// Dimension stores numbers (with the Scalar unit), lengths, percentages
// and angles.
type Dimension struct {
	Value Fl
	Unit  Unit
}

// ZeroPixels is the 0px length.
var ZeroPixels = Dimension{Unit: Px}

func NewDim(v Fl, u Unit) Dimension { return Dimension{Value: v, Unit: u} }

// Pixels returns a length in pixels.
func Pixels(v Fl) Dimension { return Dimension{Value: v, Unit: Px} }

func formatFloat(f Fl) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func (d Dimension) String() string {
	if d.Unit == 0 {
		return formatFloat(d.Value) + "<no unit>"
	}
	return formatFloat(d.Value) + d.Unit.String()
}

func (d Dimension) Fingerprint() string { return d.String() }

// IsNumber returns true for unit-less values.
func (d Dimension) IsNumber() bool { return d.Unit == Scalar }

// IsInteger returns true for unit-less, integral values.
func (d Dimension) IsInteger() bool { return d.Unit == Scalar && Fl(int(d.Value)) == d.Value }

// IsPercentage returns true for % values.
func (d Dimension) IsPercentage() bool { return d.Unit == Perc }

// IsLength returns true for lengths, including the unit-less 0,
// which CSS accepts wherever a length is expected.
func (d Dimension) IsLength() bool {
	return d.Unit.IsLength() || (d.Unit == Scalar && d.Value == 0)
}

// IsZero returns true for a zero value, whatever its unit.
func (d Dimension) IsZero() bool { return d.Value == 0 }

// ToPixels converts absolute lengths (and the unit-less zero) to pixels.
// It returns false for other units.
func (d Dimension) ToPixels() (Fl, bool) {
	if d.Value == 0 && (d.Unit == Scalar || d.Unit.IsLength()) {
		return 0, true
	}
	if d.Unit.IsAbsolute() {
		return d.Value * LengthsToPixels[d.Unit], true
	}
	return 0, false
}

// Ident is a CSS identifier. Keyword is zero for identifiers not
// in the canonical table (font family or counter names, for instance).
type Ident struct {
	Name    string
	Keyword kw.Keyword
}

// NewIdent resolves `name` against the keyword table.
func NewIdent(name string) Ident {
	k, _ := kw.New(name)
	return Ident{Name: name, Keyword: k}
}

// KeywordValue returns the Ident for a known keyword.
func KeywordValue(k kw.Keyword) Ident { return Ident{Name: k.String(), Keyword: k} }

// Known returns true if the identifier is in the keyword table.
func (i Ident) Known() bool { return i.Keyword.IsValid() }

// Get returns the keyword of the identifier. It panics for unknown
// identifiers: callers must pre-validate the value.
func (i Ident) Get() kw.Keyword {
	if !i.Keyword.IsValid() {
		panic("properties: unknown identifier " + strconv.Quote(i.Name))
	}
	return i.Keyword
}

func (i Ident) String() string {
	if i.Keyword.IsValid() {
		return i.Keyword.String()
	}
	return i.Name
}

func (i Ident) Fingerprint() string {
	if i.Keyword.IsValid() {
		return "#" + strconv.Itoa(int(i.Keyword))
	}
	return "i:" + i.Name
}

// String is a quoted CSS string, stored unescaped.
type String string

func (s String) String() string { return quote(string(s)) }

func (s String) Fingerprint() string { return s.String() }

// URI is the content of a url() token.
type URI string

func (u URI) String() string { return "url(" + quote(string(u)) + ")" }

func (u URI) Fingerprint() string { return u.String() }

// Function is a functional notation, like counter(), attr() or rect().
type Function struct {
	Name string // lower case
	Args List
}

func (f Function) String() string { return f.Name + "(" + f.Args.String() + ")" }

func (f Function) Fingerprint() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	f.Args.fingerprint(&b)
	b.WriteByte(')')
	return b.String()
}

// Sep is the separator before an item of a List.
type Sep uint8

const (
	SepNone  Sep = iota // first item
	SepSpace            // whitespace
	SepComma            // ,
	SepSlash            // /
)

func (s Sep) String() string {
	switch s {
	case SepSpace:
		return " "
	case SepComma:
		return ", "
	case SepSlash:
		return " / "
	default:
		return ""
	}
}

// Item is one component of a List.
type Item struct {
	Value Value
	Sep   Sep
}

// List is an ordered sequence of values, each possibly
// carrying its separator.
type List []Item

// NewList returns a space separated list.
func NewList(values ...Value) List {
	out := make(List, len(values))
	for i, v := range values {
		out[i] = Item{Value: v, Sep: SepSpace}
	}
	if len(out) != 0 {
		out[0].Sep = SepNone
	}
	return out
}

func (l List) String() string {
	var b strings.Builder
	for i, it := range l {
		if i != 0 {
			b.WriteString(it.Sep.String())
		}
		b.WriteString(it.Value.String())
	}
	return b.String()
}

func (l List) fingerprint(b *strings.Builder) {
	for i, it := range l {
		if i != 0 {
			b.WriteString(it.Sep.String())
		}
		b.WriteString(it.Value.Fingerprint())
	}
}

func (l List) Fingerprint() string {
	var b strings.Builder
	b.WriteByte('[')
	l.fingerprint(&b)
	b.WriteByte(']')
	return b.String()
}

// Values returns the values, without separators.
func (l List) Values() []Value {
	out := make([]Value, len(l))
	for i, it := range l {
		out[i] = it.Value
	}
	return out
}

// Split returns the groups of items separated by `sep`.
func (l List) Split(sep Sep) []List {
	var (
		out     []List
		current List
	)
	for _, it := range l {
		if it.Sep == sep && len(current) != 0 {
			out = append(out, current)
			current = nil
			it.Sep = SepNone
		}
		current = append(current, it)
	}
	return append(out, current)
}

// Unwrap returns the single element of a one-item list,
// or the list itself.
func (l List) Unwrap() Value {
	if len(l) == 1 {
		return l[0].Value
	}
	return l
}

// AsKeyword returns the keyword of `v`, if `v` is a known identifier.
func AsKeyword(v Value) (kw.Keyword, bool) {
	id, ok := v.(Ident)
	if !ok || !id.Keyword.IsValid() {
		return 0, false
	}
	return id.Keyword, true
}

// IsKeyword returns true if `v` is the identifier `k`.
func IsKeyword(v Value, k kw.Keyword) bool {
	got, ok := AsKeyword(v)
	return ok && got == k
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\a `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Package properties defines the CSS property registry and the value model
// shared by the validation, cascade and used value steps.
//
// Schematically, the style computation is :
//
//	raw tokens (ParseTokens)-> declared values (validation)-> cascaded values (tree)-> used values
//
// Properties are identified by a dense KnownProp id, which is used as
// index in fixed size arrays all along the pipeline.
package properties

import (
	"fmt"
	"sync"

	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"golang.org/x/text/cases"
)

// Descriptor is the static description of a property.
type Descriptor struct {
	Name    string
	Initial string // CSS text, empty for shorthands
	Kind    Kind

	// Keywords accepted by the property, for the
	// kinds using a keyword set.
	Keywords []kw.Keyword

	Inherited bool
	Negative  bool // negative numeric values are accepted

	Longhands []KnownProp // for shorthands only

	ID      KnownProp
	initial Value
}

// Accepts returns true if `k` is one of the property keywords.
func (d *Descriptor) Accepts(k kw.Keyword) bool {
	for _, o := range d.Keywords {
		if o == k {
			return true
		}
	}
	return false
}

var (
	registryOnce sync.Once
	byName       map[string]KnownProp
)

// InitRegistry parses the initial values and builds the name index.
// It is safe to call it several times, and it is automatically called
// by the lookup functions. It panics if an initial value is invalid,
// which is a programming error.
func InitRegistry() {
	registryOnce.Do(func() {
		byName = make(map[string]KnownProp, len(descriptors))
		for i := range descriptors {
			d := &descriptors[i]
			d.ID = KnownProp(i)
			if d.Name == "" {
				panic(fmt.Sprintf("properties: missing descriptor for %d", i))
			}
			byName[d.Name] = d.ID
			if d.Kind == KindShorthand {
				continue
			}
			values, err := ParseValue(d.Initial)
			if err != nil || len(values) == 0 {
				panic(fmt.Sprintf("properties: invalid initial value %q for %s: %v", d.Initial, d.Name, err))
			}
			d.initial = normalizeInitial(values.Unwrap())
		}
	})
}

// named colors are stored as resolved colors
func normalizeInitial(v Value) Value {
	if id, ok := v.(Ident); ok && !id.Known() {
		if c, ok := NamedColor(id.Name); ok {
			return c
		}
	}
	if id, ok := v.(Ident); ok && id.Keyword == kw.Transparent {
		return Transparent
	}
	return v
}

// Describe returns the descriptor of `p`.
func Describe(p KnownProp) *Descriptor {
	InitRegistry()
	return &descriptors[p]
}

// LookupByName returns the property with the given CSS name,
// ASCII case-insensitively.
func LookupByName(name string) (KnownProp, bool) {
	InitRegistry()
	if p, ok := byName[name]; ok {
		return p, true
	}
	p, ok := byName[cases.Fold().String(name)]
	return p, ok
}

// InitialValue returns the parsed initial value of the longhand `p`.
// It panics for shorthands.
func InitialValue(p KnownProp) Value {
	d := Describe(p)
	if d.Kind == KindShorthand {
		panic("properties: no initial value for shorthand " + d.Name)
	}
	return d.initial
}

// Inherits returns true if `p` is inherited by default.
func Inherits(p KnownProp) bool { return Describe(p).Inherited }

// IsShorthand returns true for shorthand properties.
func (p KnownProp) IsShorthand() bool { return p >= NumLonghands && p < NumProperties }

// IsValid returns true if `p` is a known property.
func (p KnownProp) IsValid() bool { return p < NumProperties }

func (p KnownProp) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("<invalid property %d>", p)
	}
	return descriptors[p].Name
}

// Longhands returns the properties set by the shorthand `p`,
// or `p` itself for a longhand.
func (p KnownProp) Longhands() []KnownProp {
	if !p.IsShorthand() {
		return []KnownProp{p}
	}
	return descriptors[p].Longhands
}

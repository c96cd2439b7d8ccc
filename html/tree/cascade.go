package tree

import (
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/validation"
)

// CascadedStyle stores the winning declaration of each property,
// for one element (or pseudo-element, or page).
// It is immutable once built.
type CascadedStyle struct {
	// sorted by property
	decls []validation.Declaration
	// 1 + index in decls, 0 for undeclared properties
	index [pr.NumLonghands]uint8

	fingerprint string
}

// emptyCascadedStyle is shared by all the elements without declarations.
var emptyCascadedStyle = &CascadedStyle{}

// newCascadedStyle resolves the cascade : `decls` are expected in
// increasing specificity order (presentational hints, rulesets, inline
// style). They are then ordered by origin and importance, and the last
// declaration of each property wins.
// http://www.w3.org/TR/CSS21/cascade.html#cascading-order
func newCascadedStyle(decls []validation.Declaration) *CascadedStyle {
	if len(decls) == 0 {
		return emptyCascadedStyle
	}
	var buckets [validation.PrecedenceUserImportant + 1][]validation.Declaration
	for _, d := range decls {
		p := d.Precedence()
		buckets[p] = append(buckets[p], d)
	}

	var winners [pr.NumLonghands]*validation.Declaration
	for _, bucket := range buckets {
		for i := range bucket {
			winners[bucket[i].Prop] = &bucket[i]
		}
	}

	out := &CascadedStyle{}
	var fp strings.Builder
	for p, d := range winners {
		if d == nil {
			continue
		}
		out.decls = append(out.decls, *d)
		out.index[p] = uint8(len(out.decls))
		fp.WriteString(d.Fingerprint())
		fp.WriteByte(';')
	}
	out.fingerprint = fp.String()
	return out
}

// Get returns the winning declaration for `p`.
func (cs *CascadedStyle) Get(p pr.KnownProp) (validation.Declaration, bool) {
	if p >= pr.NumLonghands {
		return validation.Declaration{}, false
	}
	i := cs.index[p]
	if i == 0 {
		return validation.Declaration{}, false
	}
	return cs.decls[i-1], true
}

// Declarations returns the winning declarations, sorted by property.
// The slice must not be modified.
func (cs *CascadedStyle) Declarations() []validation.Declaration { return cs.decls }

// IsEmpty returns true if no property is declared.
func (cs *CascadedStyle) IsEmpty() bool { return len(cs.decls) == 0 }

// Fingerprint identifies the winning (property, value) pairs :
// two cascaded styles with the same fingerprint compute to the same style
// under the same parent.
func (cs *CascadedStyle) Fingerprint() string { return cs.fingerprint }

func (cs *CascadedStyle) String() string {
	chunks := make([]string, len(cs.decls))
	for i, d := range cs.decls {
		chunks[i] = d.String()
	}
	return strings.Join(chunks, "; ")
}

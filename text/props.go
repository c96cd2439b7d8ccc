package text

import (
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
)

// FontSpec exposes the subset of a calculated style
// required to select a font and measure text.
type FontSpec struct {
	Families []string
	Size     pr.Fl      // in pixels
	Style    kw.Keyword // Normal, Italic or Oblique
	Variant  kw.Keyword // Normal or SmallCaps
	Weight   int        // 100 to 900
}

// String returns the CSS `font` shorthand for the font.
func (fs FontSpec) String() string {
	chunks := make([]string, 0, 5)
	if fs.Style != kw.Normal && fs.Style.IsValid() {
		chunks = append(chunks, fs.Style.String())
	}
	if fs.Variant != kw.Normal && fs.Variant.IsValid() {
		chunks = append(chunks, fs.Variant.String())
	}
	if fs.Weight != 400 && fs.Weight != 0 {
		w, _ := kw.FromWeight(fs.Weight)
		chunks = append(chunks, w.String())
	}
	chunks = append(chunks, pr.Pixels(fs.Size).String())
	families := make([]string, len(fs.Families))
	for i, f := range fs.Families {
		if strings.ContainsAny(f, " \t") {
			f = pr.String(f).String()
		}
		families[i] = f
	}
	chunks = append(chunks, strings.Join(families, ", "))
	return strings.Join(chunks, " ")
}

// FamilyNames extracts the family names of a computed
// `font-family` value.
func FamilyNames(v pr.Value) []string {
	var items []pr.Value
	if l, ok := v.(pr.List); ok {
		items = l.Values()
	} else {
		items = []pr.Value{v}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch item := item.(type) {
		case pr.String:
			out = append(out, string(item))
		case pr.Ident:
			out = append(out, item.String())
		}
	}
	return out
}

package tree

import (
	"sort"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/css/validation"
)

// Page describes a page box, for the matching of @page rules.
type Page struct {
	// Name is the value of the `page` property, or empty.
	Name string
	// Side is "left", "right" or empty.
	Side  string
	First bool
	Blank bool
}

// PageInfo is the style of a page box and of its margin boxes.
type PageInfo struct {
	Page  Page
	Style *CalculatedStyle
	// MarginBoxes only contains the margin boxes with declarations,
	// keyed by name (like "top-center").
	MarginBoxes map[string]*CalculatedStyle
}

// Size returns the page size, in pixels, which defaults
// to A4 in portrait orientation.
// https://drafts.csswg.org/css-page-3/#page-size-prop
func (pi PageInfo) Size() (width, height pr.Fl) {
	toPx := func(p pr.Point) (pr.Fl, pr.Fl) {
		w, _ := p[0].ToPixels()
		h, _ := p[1].ToPixels()
		return w, h
	}
	size := pr.A4
	landscape := false
	switch v := pi.Style.ValueOf(pr.PSize).(type) {
	case pr.Ident:
		if s, ok := pr.PageSizes[v.Keyword]; ok {
			size = s
		}
		landscape = v.Keyword == kw.Landscape
	case pr.List:
		if len(v) == 2 {
			if w, ok := v[0].Value.(pr.Dimension); ok {
				h, _ := v[1].Value.(pr.Dimension)
				return toPx(pr.Point{w, h})
			}
		}
		for _, it := range v {
			k, _ := pr.AsKeyword(it.Value)
			if s, ok := pr.PageSizes[k]; ok {
				size = s
			}
			if k == kw.Landscape {
				landscape = true
			}
		}
	}
	width, height = toPx(size)
	if landscape {
		width, height = height, width
	}
	return width, height
}

// MarginBox returns the style of the margin box `name`, or nil.
func (pi PageInfo) MarginBox(name string) *CalculatedStyle { return pi.MarginBoxes[name] }

// PageStyle returns the style of a page box, by cascading the
// matching @page rules. Rules are applied by increasing page
// selector specificity, then source order.
func (d *Document) PageStyle(page Page) PageInfo {
	d.lock.Lock()
	defer d.lock.Unlock()
	if info, ok := d.pageInfos[page]; ok {
		return info
	}

	var matching []parser.PageRule
	for _, rule := range d.pageRules {
		if rule.Selector.Matches(page.Name, page.Side, page.First, page.Blank) {
			matching = append(matching, rule)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Selector.Specificity.Less(matching[j].Selector.Specificity)
	})

	var (
		pageDecls   []validation.Declaration
		marginDecls = map[string][]validation.Declaration{}
	)
	for _, rule := range matching {
		if rule.MarginBox == "" {
			pageDecls = append(pageDecls, rule.Declarations...)
		} else {
			marginDecls[rule.MarginBox] = append(marginDecls[rule.MarginBox], rule.Declarations...)
		}
	}

	info := PageInfo{
		Page:        page,
		Style:       d.ctx.pageInitial.Derive(newCascadedStyle(pageDecls)),
		MarginBoxes: make(map[string]*CalculatedStyle, len(marginDecls)),
	}
	for name, decls := range marginDecls {
		info.MarginBoxes[name] = info.Style.Derive(newCascadedStyle(decls))
	}
	d.pageInfos[page] = info
	return info
}

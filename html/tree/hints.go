package tree

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/webstyle/css/validation"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Presentational hints are the styles given by legacy HTML attributes.
// They are applied as author declarations with the lowest specificity.
// https://html.spec.whatwg.org/multipage/rendering.html#presentational-hints

// hint is a CSS declaration, in text form
type hint struct{ name, value string }

// htmlLength converts an HTML dimension attribute to CSS,
// returning false for invalid values.
func htmlLength(attr string) (string, bool) {
	attr = strings.TrimSpace(attr)
	if strings.HasSuffix(attr, "%") {
		if _, err := strconv.ParseFloat(strings.TrimSuffix(attr, "%"), 32); err != nil {
			return "", false
		}
		return attr, true
	}
	attr = strings.TrimSuffix(attr, "px")
	if _, err := strconv.ParseFloat(attr, 32); err != nil {
		return "", false
	}
	return attr + "px", true
}

var (
	alignments = map[string]string{
		"left": "left", "right": "right", "center": "center", "middle": "center", "justify": "justify",
	}
	verticalAlignments = map[string]string{
		"top": "top", "middle": "middle", "bottom": "bottom", "baseline": "baseline",
	}
	listTypes = map[string]string{
		"disc": "disc", "circle": "circle", "square": "square",
		"1": "decimal", "a": "lower-alpha", "A": "upper-alpha", "i": "lower-roman", "I": "upper-roman",
	}
	// font sizes of the <font size=N> element, from 1 to 7
	fontSizes = [...]string{"x-small", "small", "medium", "large", "x-large", "xx-large", "xx-large"}
)

// fontSizeHint handles the size attribute of <font>,
// which may be relative to 3.
func fontSizeHint(attr string) (string, bool) {
	attr = strings.TrimSpace(attr)
	relative := strings.HasPrefix(attr, "+") || strings.HasPrefix(attr, "-")
	n, err := strconv.Atoi(attr)
	if err != nil {
		return "", false
	}
	if relative {
		n += 3
	}
	if n < 1 {
		n = 1
	} else if n > 7 {
		n = 7
	}
	return fontSizes[n-1], true
}

func elementHints(e *html.Node) []hint {
	var out []hint
	add := func(name, value string) { out = append(out, hint{name, value}) }
	attr := func(name string) (string, bool) {
		v, ok := getAttr(e, name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	switch e.DataAtom {
	case atom.Body:
		if v, ok := attr("text"); ok {
			add("color", v)
		}
	case atom.Font:
		if v, ok := attr("color"); ok {
			add("color", v)
		}
		if v, ok := attr("face"); ok {
			add("font-family", v)
		}
		if v, ok := attr("size"); ok {
			if size, ok := fontSizeHint(v); ok {
				add("font-size", size)
			}
		}
	case atom.Ul, atom.Ol, atom.Li:
		if v, ok := attr("type"); ok {
			if t, ok := listTypes[v]; ok {
				add("list-style-type", t)
			} else if t, ok := listTypes[strings.ToLower(v)]; ok {
				add("list-style-type", t)
			}
		}
	case atom.Img, atom.Object:
		if v, ok := attr("hspace"); ok {
			if l, ok := htmlLength(v); ok {
				add("margin-left", l)
				add("margin-right", l)
			}
		}
		if v, ok := attr("vspace"); ok {
			if l, ok := htmlLength(v); ok {
				add("margin-top", l)
				add("margin-bottom", l)
			}
		}
	case atom.Hr:
		if _, ok := getAttr(e, "noshade"); ok {
			add("border-style", "solid")
		}
		if v, ok := attr("size"); ok {
			if l, ok := htmlLength(v); ok {
				add("height", l)
			}
		}
	case atom.Td, atom.Th:
		if _, ok := getAttr(e, "nowrap"); ok {
			add("white-space", "nowrap")
		}
		if table := ancestorWithTag(e, atom.Table); table != nil {
			if v, ok := getAttr(table, "cellpadding"); ok {
				if l, ok := htmlLength(v); ok {
					add("padding", l)
				}
			}
			if v, ok := getAttr(table, "border"); ok && strings.TrimSpace(v) != "0" {
				add("border", "1px inset")
			}
		}
	case atom.Table:
		if v, ok := attr("cellspacing"); ok {
			if l, ok := htmlLength(v); ok {
				add("border-spacing", l)
			}
		}
		if v, ok := attr("border"); ok {
			if l, ok := htmlLength(v); ok {
				add("border", l+" outset")
			}
		}
	}

	switch e.DataAtom {
	case atom.Table, atom.Img, atom.Object:
		if v, ok := attr("align"); ok {
			v = strings.ToLower(v)
			if v == "left" || v == "right" {
				add("float", v)
			} else if v == "center" && e.DataAtom == atom.Table {
				add("margin-left", "auto")
				add("margin-right", "auto")
			}
		}
	case atom.Div, atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Caption, atom.Td, atom.Th, atom.Tr, atom.Thead, atom.Tbody, atom.Tfoot:
		if v, ok := attr("align"); ok {
			if a, ok := alignments[strings.ToLower(v)]; ok {
				add("text-align", a)
			}
		}
	}

	switch e.DataAtom {
	case atom.Td, atom.Th, atom.Tr, atom.Thead, atom.Tbody, atom.Tfoot, atom.Col, atom.Colgroup:
		if v, ok := attr("valign"); ok {
			if a, ok := verticalAlignments[strings.ToLower(v)]; ok {
				add("vertical-align", a)
			}
		}
	}

	switch e.DataAtom {
	case atom.Body, atom.Table, atom.Tr, atom.Td, atom.Th:
		if v, ok := attr("bgcolor"); ok {
			add("background-color", v)
		}
		if v, ok := attr("background"); ok {
			add("background-image", "url("+strconv.Quote(v)+")")
		}
	}

	switch e.DataAtom {
	case atom.Table, atom.Td, atom.Th, atom.Img, atom.Object, atom.Col, atom.Hr, atom.Canvas, atom.Video:
		if v, ok := attr("width"); ok {
			if l, ok := htmlLength(v); ok {
				add("width", l)
			}
		}
	}
	switch e.DataAtom {
	case atom.Table, atom.Td, atom.Th, atom.Tr, atom.Img, atom.Object, atom.Canvas, atom.Video:
		if v, ok := attr("height"); ok {
			if l, ok := htmlLength(v); ok {
				add("height", l)
			}
		}
	}
	return out
}

// presentationalHints validates the hints of `e`.
// Invalid attribute values are ignored.
func presentationalHints(log *zap.Logger, e *html.Node) []validation.Declaration {
	var out []validation.Declaration
	for _, h := range elementHints(e) {
		decls, err := validation.Validate(h.name, h.value, validation.Author, false)
		if err != nil {
			log.Debug("ignored presentational hint", zap.String("element", Describe(e)), zap.Error(err))
			continue
		}
		out = append(out, decls...)
	}
	return out
}

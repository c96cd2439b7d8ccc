package parser

import (
	"errors"
	"testing"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/css/validation"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func parseSheet(t *testing.T, text, medium string) (*Stylesheet, []string) {
	t.Helper()
	capt := tu.CaptureLogs()
	defer capt.Restore()
	sheet := NewParser(nil, medium).Parse(text, validation.Author, "test.css")
	return sheet, capt.Logs()
}

func TestParseRulesets(t *testing.T) {
	sheet, logs := parseSheet(t, `
		/* comment */
		p { color: red }
		h1, h2 em{margin:0 !important;;}
		div>p+a { color: blue; }
	`, "print")
	assert.Empty(t, logs)
	assert.NoError(t, sheet.Errors)
	require.Len(t, sheet.Rulesets, 3)

	red, _ := pr.NamedColor("red")
	p := sheet.Rulesets[0]
	tu.AssertEqual(t, p.Declarations, []validation.Declaration{
		{Prop: pr.PColor, Value: red, Origin: validation.Author},
	})
	assert.Equal(t, validation.Author, p.Origin)

	h := sheet.Rulesets[1]
	require.Len(t, h.Selectors, 2)
	assert.Equal(t, "h2 em", h.Selectors[1].String())
	require.Len(t, h.Declarations, 4)
	for _, decl := range h.Declarations {
		assert.True(t, decl.Important)
		assert.Equal(t, validation.PrecedenceAuthorImportant, decl.Precedence())
	}

	sel := sheet.Rulesets[2].Selectors[0]
	assert.Equal(t, selector.ChildAxis, sel.Chained.Axis)
	assert.Equal(t, selector.Specificity{0, 0, 3}, sel.Specificity)
}

func TestParseErrors(t *testing.T) {
	sheet, logs := parseSheet(t, `
		p { color: red; unknown: 3; width: -2px }
		p:unknown-class { color: blue }
		@keyframes spin { from { color: red } }
		em { font-weight: bold }
		div { color: red
	`, "print")

	// the valid declarations are kept
	require.Len(t, sheet.Rulesets, 3)
	require.Len(t, sheet.Rulesets[0].Declarations, 1)
	assert.Equal(t, pr.PFontWeight, sheet.Rulesets[1].Declarations[0].Prop)
	assert.Equal(t, pr.PColor, sheet.Rulesets[2].Declarations[0].Prop)

	errs := multierr.Errors(sheet.Errors)
	require.Len(t, errs, 4)
	assert.True(t, errors.Is(errs[0], validation.ErrUnknownProperty))
	assert.True(t, errors.Is(errs[1], validation.ErrNegativeValue))
	assert.True(t, errors.Is(errs[2], selector.ErrUnsupportedSelector))
	assert.True(t, errors.Is(errs[3], ErrUnsupportedRule))
	assert.Len(t, logs, 4)
}

func TestEvaluateMediaQuery(t *testing.T) {
	for _, test := range []struct {
		query    string
		medium   string
		expected bool
	}{
		{"", "print", true},
		{"all", "print", true},
		{"print", "print", true},
		{"PRINT", "print", true},
		{"screen", "print", false},
		{"screen, print", "print", true},
		{"only screen", "screen", true},
		{"not screen", "print", true},
		{"not print", "print", false},
		{"not all", "screen", false},
		{"print and (color)", "print", false},
		{"(min-width: 10cm)", "print", false},
	} {
		got, err := EvaluateMediaQuery(test.query, test.medium)
		require.NoError(t, err, test.query)
		assert.Equal(t, test.expected, got, test.query)
	}

	for _, query := range []string{"not", "print screen", "print and", "12px", "print, , screen", "(color) and"} {
		_, err := EvaluateMediaQuery(query, "print")
		assert.True(t, errors.Is(err, ErrInvalidMediaQuery), query)
	}
}

func TestMediaRules(t *testing.T) {
	const text = `
		@media print { p { color: red } @media not screen { em { color: red } } }
		@media screen { a { color: blue } }
		@media only screen, print { h1 { color: green } }
		@media 12px { h2 { color: blue } }
		b { color: black }
	`
	sheet, logs := parseSheet(t, text, "print")
	var got []string
	for _, rs := range sheet.Rulesets {
		got = append(got, rs.Selectors[0].String())
	}
	tu.AssertEqual(t, got, []string{"p", "em", "h1", "b"})
	assert.Len(t, logs, 1)
	assert.True(t, errors.Is(sheet.Errors, ErrInvalidMediaQuery))

	sheet, _ = parseSheet(t, text, "screen")
	got = got[:0]
	for _, rs := range sheet.Rulesets {
		got = append(got, rs.Selectors[0].String())
	}
	tu.AssertEqual(t, got, []string{"a", "h1", "b"})
}

func TestPageRules(t *testing.T) {
	sheet, logs := parseSheet(t, `
		@page { margin: 1cm }
		@page chapter:first, :left {
			size: a4 landscape;
			@top-left { color: red; content: "title" }
			margin-top: 2cm;
		}
		@page :first:blank { margin: 0 }
		@page :left:right { margin: 0 }
		@page :nth(2) { margin: 0 }
		@page { @middle-box { color: red } }
	`, "print")
	assert.Len(t, logs, 3)
	errs := multierr.Errors(sheet.Errors)
	require.Len(t, errs, 3)
	assert.True(t, errors.Is(errs[0], ErrInvalidPageSelector))
	assert.True(t, errors.Is(errs[1], ErrInvalidPageSelector))
	assert.True(t, errors.Is(errs[2], ErrUnsupportedRule))

	require.Len(t, sheet.Pages, 7)
	assert.Equal(t, PageSelector{}, sheet.Pages[0].Selector)
	assert.Len(t, sheet.Pages[0].Declarations, 4)

	chapter := sheet.Pages[1]
	assert.Equal(t, PageSelector{Name: "chapter", First: true, Specificity: selector.Specificity{1, 1, 0}}, chapter.Selector)
	assert.Equal(t, "", chapter.MarginBox)
	tu.AssertEqual(t, chapter.Declarations, []validation.Declaration{
		{Prop: pr.PSize, Value: pr.NewList(pr.KeywordValue(kw.A4), pr.KeywordValue(kw.Landscape)), Origin: validation.Author},
		{Prop: pr.PMarginTop, Value: pr.NewDim(2, pr.Cm), Origin: validation.Author},
	})
	topLeft := sheet.Pages[2]
	assert.Equal(t, "top-left", topLeft.MarginBox)
	assert.Equal(t, chapter.Selector, topLeft.Selector)
	assert.Len(t, topLeft.Declarations, 2)

	left := sheet.Pages[3]
	assert.Equal(t, PageSelector{Side: "left", Specificity: selector.Specificity{0, 0, 1}}, left.Selector)
	assert.Equal(t, "top-left", sheet.Pages[4].MarginBox)

	blank := sheet.Pages[5].Selector
	assert.Equal(t, selector.Specificity{0, 2, 0}, blank.Specificity)
	assert.True(t, blank.Matches("", "right", true, true))
	assert.False(t, blank.Matches("", "right", true, false))

	// the unknown margin box is dropped, not the page rule
	assert.Equal(t, PageSelector{}, sheet.Pages[6].Selector)
	assert.Empty(t, sheet.Pages[6].Declarations)
}

func TestPageSelectorMatches(t *testing.T) {
	sel := PageSelector{Name: "chapter", Side: "right"}
	assert.True(t, sel.Matches("chapter", "right", false, false))
	assert.False(t, sel.Matches("chapter", "left", false, false))
	assert.False(t, sel.Matches("", "right", false, false))
	assert.True(t, PageSelector{}.Matches("index", "left", true, true))
}

func TestFontFaceRules(t *testing.T) {
	sheet, logs := parseSheet(t, `
		@font-face { font-family: "My Font"; src: url(font.woff) format("woff"); font-weight: bold }
		@font-face { font-family: Missing }
	`, "print")
	assert.Len(t, logs, 1)
	require.Len(t, sheet.FontFaces, 1)
	face := sheet.FontFaces[0]
	assert.Equal(t, "My Font", face.FontFamily)
	tu.AssertEqual(t, face.Src, []validation.FontSource{{URL: "font.woff", Format: "woff"}})
	assert.Equal(t, kw.Bold, face.FontWeight)
	assert.True(t, errors.Is(sheet.Errors, validation.ErrInvalidValue))
}

func TestImportRules(t *testing.T) {
	sheet, logs := parseSheet(t, `
		@charset "utf-8";
		@import url(a.css);
		@import "b.css" screen;
		@import 'c.css' print, tv;
		@import url("d.css") all;
		p { color: red }
		@import "e.css";
	`, "print")
	tu.AssertEqual(t, sheet.Imports, []string{"a.css", "c.css", "d.css"})
	assert.Len(t, logs, 1)
	assert.True(t, errors.Is(sheet.Errors, ErrUnsupportedRule))
	assert.Len(t, sheet.Rulesets, 1)
}

func TestParseDeclarations(t *testing.T) {
	raws, err := ParseDeclarations("color: red !important; margin : 1px 2px;; font-family: a, b")
	require.NoError(t, err)
	require.Len(t, raws, 3)
	assert.Equal(t, "color", raws[0].Name)
	assert.True(t, raws[0].Important)
	assert.Len(t, raws[0].Tokens, 1)
	assert.Equal(t, "margin", raws[1].Name)
	assert.False(t, raws[1].Important)
	assert.Equal(t, "font-family", raws[2].Name)

	decls, err := validation.PreprocessDeclarations(nil, validation.Author, raws)
	require.NoError(t, err)
	assert.Len(t, decls, 1+4+1)
}

func TestParseStyleAttribute(t *testing.T) {
	raws, err := ParseStyleAttribute(" COLOR: red; width: 10px !important ")
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "color", raws[0].Name)
	assert.Equal(t, "width", raws[1].Name)
	assert.True(t, raws[1].Important)

	decls, err := validation.PreprocessDeclarations(nil, validation.Author, raws)
	require.NoError(t, err)
	tu.AssertEqual(t, decls[1], validation.Declaration{Prop: pr.PWidth, Value: pr.Pixels(10), Important: true, Origin: validation.Author})

	raws, err = ParseStyleAttribute("")
	assert.NoError(t, err)
	assert.Empty(t, raws)
}

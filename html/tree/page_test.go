package tree

import (
	"testing"

	pr "github.com/benoitkugler/webstyle/css/properties"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"github.com/stretchr/testify/assert"
)

func TestPageSize(t *testing.T) {
	for _, test := range []struct {
		css  string
		w, h pr.Fl
	}{
		{"", 793.7008, 1122.5197},
		{"@page { size: A4 landscape }", 1122.5197, 793.7008},
		{"@page { size: letter }", 816, 1056},
		{"@page { size: 200px 300px }", 200, 300},
		{"@page { size: 1in }", 96, 96},
		{"@page { size: landscape }", 1122.5197, 793.7008},
	} {
		d := newTestDocument(t, `<p>`, test.css, Options{})
		w, h := d.PageStyle(Page{}).Size()
		assert.InDelta(t, test.w, w, 1e-3, test.css)
		assert.InDelta(t, test.h, h, 1e-3, test.css)
	}
}

func TestPageCascade(t *testing.T) {
	d := newTestDocument(t, `<p>`, `
		@page { margin-left: 20px }
		@page :first { margin-top: 10px }
		@page chapter { margin-top: 30px }
		@page chapter:first { margin-bottom: 5px }
		@page :left { margin-right: 1cm }
		@page { @top-center { content: "title"; color: red } }
	`, Options{})

	// the user agent margins
	def := d.PageStyle(Page{Side: "right"})
	tu.AssertEqual(t, *def.Style.MarginRect(-1), RectSet{75, 75, 75, 20})

	first := d.PageStyle(Page{Side: "right", First: true})
	tu.AssertEqual(t, *first.Style.MarginRect(-1), RectSet{10, 75, 75, 20})

	// a page name is more specific than :first
	chapterFirst := d.PageStyle(Page{Name: "chapter", Side: "right", First: true})
	tu.AssertEqual(t, *chapterFirst.Style.MarginRect(-1), RectSet{30, 75, 5, 20})
	chapter := d.PageStyle(Page{Name: "chapter", Side: "right"})
	tu.AssertEqual(t, *chapter.Style.MarginRect(-1), RectSet{30, 75, 75, 20})

	left := d.PageStyle(Page{Side: "left"})
	assert.InDelta(t, 37.795, left.Style.MarginRect(-1).Right, 1e-3)

	box := def.MarginBox("top-center")
	assert.NotNil(t, box)
	tu.AssertEqual(t, box.Color(), namedColor("red"))
	assert.Nil(t, def.MarginBox("bottom-center"))

	// cached
	assert.True(t, d.PageStyle(Page{Side: "right"}).Style == def.Style)
}

func TestPageStyleIsNotBlockified(t *testing.T) {
	d := newTestDocument(t, `<p>`, `@page { font-size: 20px; margin: 2em }`, Options{})
	page := d.PageStyle(Page{})
	tu.AssertEqual(t, page.Style.FontSize(), pr.Fl(20))
	tu.AssertEqual(t, page.Style.Length(pr.PMarginTop, -1), pr.Fl(40))
	assert.True(t, page.Style.IsInline())
	assert.Nil(t, page.Style.Parent())
}

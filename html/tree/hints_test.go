package tree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/css/validation"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

const hintsSource = `<body id=body text=red>
	<table id=table bgcolor=yellow cellpadding=5 border=2 align=center width=50%>
		<tr><td id=td valign=top nowrap>a</td><td id=td2 class=author>b</td></tr>
	</table>
	<p id=p align=middle><img id=img align=left hspace=4 src=a.png><font id=font size=+2 color=green>c</font></p>
	<ol id=ol type=a></ol>
	<hr id=hr noshade size=3>
	</body>`

func TestPresentationalHints(t *testing.T) {
	d := newTestDocument(t, hintsSource, `td.author { padding: 2px }`, Options{PresentationalHints: true})

	tu.AssertEqual(t, styleOf(t, d, "body").Color(), namedColor("red"))

	table := styleOf(t, d, "table")
	tu.AssertEqual(t, table.BackgroundColor(), namedColor("yellow"))
	tu.AssertEqual(t, table.Border().Widths, RectSet{2, 2, 2, 2})
	tu.AssertEqual(t, table.Border().Styles[0], kw.Outset)
	assert.True(t, table.IsIdent(pr.PMarginLeft, kw.Auto))
	tu.AssertEqual(t, table.Length(pr.PWidth, 400), pr.Fl(200))

	td := styleOf(t, d, "td")
	tu.AssertEqual(t, *td.PaddingRect(-1), RectSet{5, 5, 5, 5})
	tu.AssertEqual(t, td.Border().Widths, RectSet{1, 1, 1, 1})
	tu.AssertEqual(t, td.Ident(pr.PVerticalAlign), kw.Top)
	tu.AssertEqual(t, td.Ident(pr.PWhiteSpace), kw.Nowrap)
	// author rules win over hints
	tu.AssertEqual(t, *styleOf(t, d, "td2").PaddingRect(-1), RectSet{2, 2, 2, 2})

	tu.AssertEqual(t, styleOf(t, d, "p").Ident(pr.PTextAlign), kw.Center)
	img := styleOf(t, d, "img")
	assert.True(t, img.IsFloated())
	tu.AssertEqual(t, *img.MarginRect(-1), RectSet{0, 4, 0, 4})

	font := styleOf(t, d, "font")
	tu.AssertEqual(t, font.FontSize(), pr.FontSizeKeywords[kw.XLarge]*16)
	tu.AssertEqual(t, font.Color(), namedColor("green"))

	tu.AssertEqual(t, styleOf(t, d, "ol").Ident(pr.PListStyleType), kw.LowerAlpha)
	hr := styleOf(t, d, "hr")
	tu.AssertEqual(t, hr.Border().Styles[0], kw.Solid)
	tu.AssertEqual(t, hr.Length(pr.PHeight, -1), pr.Fl(3))
}

func TestHintsDisabled(t *testing.T) {
	d := newTestDocument(t, hintsSource, "", Options{})

	table := styleOf(t, d, "table")
	tu.AssertEqual(t, table.BackgroundColor().IsTransparent(), true)
	assert.True(t, table.Border().Widths.IsZero())
	tu.AssertEqual(t, *styleOf(t, d, "td").PaddingRect(-1), RectSet{1, 1, 1, 1})
	assert.False(t, styleOf(t, d, "img").IsFloated())
}

func TestInvalidHints(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.Restore()

	d := newTestDocument(t, `<table id=table bgcolor="not a color" width=wide><tr><td>a`, "", Options{PresentationalHints: true})
	table := styleOf(t, d, "table")
	assert.True(t, table.BackgroundColor().IsTransparent())
	assert.True(t, table.IsIdent(pr.PWidth, kw.Auto))
	// hints are not reported
	logs.AssertNoLogs(t)
	tu.AssertNoErr(t, d.Errors())
}

func TestHTMLLength(t *testing.T) {
	for _, test := range []struct {
		attr, exp string
		ok        bool
	}{
		{"12", "12px", true},
		{" 12px ", "12px", true},
		{"50%", "50%", true},
		{"1.5", "1.5px", true},
		{"wide", "", false},
		{"x%", "", false},
	} {
		got, ok := htmlLength(test.attr)
		tu.AssertEqual(t, ok, test.ok)
		tu.AssertEqual(t, got, test.exp)
	}
}

func TestLoadCSS(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), os.ModePerm)
		tu.AssertNoErr(t, err)
	}
	write("main.css", `@import "base.css"; @import url(missing.css); p { color: red }`)
	write("base.css", `@import "main.css"; p { color: blue; font-size: 20px }`)

	logs := tu.CaptureLogs()
	defer logs.Restore()

	sheet, err := LoadCSS(filepath.Join(dir, "main.css"), validation.Author, "print")
	tu.AssertNoErr(t, err)
	// missing.css, and main.css imported by base.css
	errs := multierr.Errors(sheet.Errors())
	tu.AssertEqual(t, len(errs), 2)
	tu.AssertEqual(t, len(logs.Logs()), 2)

	flat := sheet.flatten()
	tu.AssertEqual(t, len(flat), 2)

	root, err := ParseHTML(strings.NewReader(`<p id=p>`))
	tu.AssertNoErr(t, err)
	d := NewDocument(root, Options{}, sheet)
	p := styleOf(t, d, "p")
	// imported rules come first
	tu.AssertEqual(t, p.Color(), namedColor("red"))
	tu.AssertEqual(t, p.FontSize(), pr.Fl(20))

	_, err = LoadCSS(filepath.Join(dir, "nope.css"), validation.Author, "print")
	assert.Error(t, err)
}

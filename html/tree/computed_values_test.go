package tree

import (
	"testing"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/text"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"github.com/stretchr/testify/assert"
)

func TestFontSize(t *testing.T) {
	d := newTestDocument(t, `
		<div id=larger style="font-size: larger"><span id=smaller style="font-size: smaller">a</span></div>
		<div id=keyword style="font-size: x-large"></div>
		<div id=percent style="font-size: 20px"><span id=p2 style="font-size: 150%">b</span><span id=em style="font-size: 0.5em"></span></div>
		<div id=rem style="font-size: 2rem"></div>
		<div id=pt style="font-size: 12pt"></div>
		<div id=odd style="font-size: 17px"><span id=odd-larger style="font-size: larger"></span></div>
	`, `html { font-size: 20px }`, Options{DefaultFontSize: 10})

	// 20px is xx-large : no larger keyword
	assert.InDelta(t, 24, styleOf(t, d, "larger").FontSize(), 1e-4)
	assert.InDelta(t, 19.2, styleOf(t, d, "smaller").FontSize(), 1e-4)
	tu.AssertEqual(t, styleOf(t, d, "keyword").FontSize(), pr.FontSizeKeywords[kw.XLarge]*10)
	tu.AssertEqual(t, styleOf(t, d, "p2").FontSize(), pr.Fl(30))
	tu.AssertEqual(t, styleOf(t, d, "em").FontSize(), pr.Fl(10))
	tu.AssertEqual(t, styleOf(t, d, "rem").FontSize(), pr.Fl(40))
	assert.InDelta(t, 16, styleOf(t, d, "pt").FontSize(), 1e-4)
	assert.InDelta(t, 20.4, styleOf(t, d, "odd-larger").FontSize(), 1e-4)
}

func TestFontSizeKeywordSteps(t *testing.T) {
	d := newTestDocument(t, `<div id=a style="font-size: larger"><p id=b style="font-size: smaller"></p></div>`, "", Options{})
	tu.AssertEqual(t, styleOf(t, d, "a").FontSize(), pr.FontSizeKeywords[kw.Large]*16)
	tu.AssertEqual(t, styleOf(t, d, "b").FontSize(), pr.Fl(16))
}

func TestFontWeight(t *testing.T) {
	d := newTestDocument(t, `<p id=p><b id=b1>a<b id=b2>b</b></b><span id=l style="font-weight: lighter"></span><span id=n style="font-weight: 600"></span></p>`, "", Options{})
	tu.AssertEqual(t, styleOf(t, d, "p").Font().Weight, 400)
	tu.AssertEqual(t, styleOf(t, d, "b1").Font().Weight, 700)
	tu.AssertEqual(t, styleOf(t, d, "b2").Font().Weight, 900)
	tu.AssertEqual(t, styleOf(t, d, "l").Font().Weight, 100)
	tu.AssertEqual(t, styleOf(t, d, "n").Ident(pr.PFontWeight), kw.W600)
}

func TestFontRelativeLengths(t *testing.T) {
	d := newTestDocument(t, `<div id=a style="font-size: 20px; margin-top: 1.5em; margin-left: 2ex; margin-right: 1ch; padding-top: 0.5rem">`,
		"", Options{})
	a := styleOf(t, d, "a")
	margins := a.MarginRect(-1)
	tu.AssertEqual(t, margins.Top, pr.Fl(30))
	// the fallback metrics use 0.5em for ex and ch
	tu.AssertEqual(t, margins.Left, pr.Fl(20))
	tu.AssertEqual(t, margins.Right, pr.Fl(10))
	tu.AssertEqual(t, a.PaddingRect(-1).Top, pr.Fl(8))

	metrics, err := text.Builtin()
	tu.AssertNoErr(t, err)
	d = newTestDocument(t, `<div id=a style="font-size: 20px; margin-left: 1ex">`, "", Options{Metrics: metrics})
	tu.AssertEqual(t, styleOf(t, d, "a").Length(pr.PMarginLeft, -1), metrics.XHeight(text.FontSpec{Size: 20}))
}

func TestLineHeight(t *testing.T) {
	d := newTestDocument(t, `<div id=a style="font-size: 20px; line-height: 150%"><p id=b style="font-size: 10px"></p></div>
		<div id=c style="font-size: 20px; line-height: 1.5"><p id=d style="font-size: 10px"></p></div>`, "", Options{})
	// percentages are computed, and inherited as such
	tu.AssertEqual(t, styleOf(t, d, "a").LineHeight(), pr.Fl(30))
	tu.AssertEqual(t, styleOf(t, d, "b").LineHeight(), pr.Fl(30))
	// numbers are inherited as numbers
	tu.AssertEqual(t, styleOf(t, d, "c").LineHeight(), pr.Fl(30))
	tu.AssertEqual(t, styleOf(t, d, "d").LineHeight(), pr.Fl(15))
}

func TestDisplayAndFloat(t *testing.T) {
	d := newTestDocument(t, `<body><span id=float style="float: left">a</span>
		<span id=abs style="position: absolute; float: right">b</span>
		<span id=table style="display: inline-table; float: left"></span>
		<span id=none style="display: none; float: left"></span>
		<span id=inline>c</span></body>`, `html { display: inline }`, Options{})

	tu.AssertEqual(t, styleOf(t, d, "float").Ident(pr.PDisplay), kw.Block)
	assert.True(t, styleOf(t, d, "float").IsFloated())
	abs := styleOf(t, d, "abs")
	tu.AssertEqual(t, abs.Ident(pr.PDisplay), kw.Block)
	tu.AssertEqual(t, abs.Ident(pr.PFloat), kw.None)
	assert.True(t, abs.IsAbsolute())
	tu.AssertEqual(t, styleOf(t, d, "table").Ident(pr.PDisplay), kw.Table)
	assert.True(t, styleOf(t, d, "none").IsDisplayNone())
	assert.True(t, styleOf(t, d, "inline").IsInline())

	root, err := d.GetCalculatedStyle(d.Root())
	tu.AssertNoErr(t, err)
	tu.AssertEqual(t, root.Ident(pr.PDisplay), kw.Block)
}

func TestPercentages(t *testing.T) {
	logs := tu.CaptureLogs()
	defer logs.Restore()

	d := newTestDocument(t, `<div id=a style="width: 50%; margin: 10% 5px; padding: 1%"></div>`, "", Options{})
	a := styleOf(t, d, "a")
	tu.AssertEqual(t, *a.MarginRect(200), RectSet{20, 5, 20, 5})
	tu.AssertEqual(t, *a.MarginRect(100), RectSet{10, 5, 10, 5})
	tu.AssertEqual(t, *a.PaddingRect(100), RectSet{1, 1, 1, 1})
	tu.AssertEqual(t, a.Length(pr.PWidth, 400), pr.Fl(200))
	logs.AssertNoLogs(t)

	// percentages are kept as computed values
	tu.AssertEqual(t, a.ValueOf(pr.PWidth), pr.Value(pr.NewDim(50, pr.Perc)))

	// no containing block
	tu.AssertEqual(t, a.Length(pr.PWidth, -1), pr.Fl(0))
	tu.AssertEqual(t, len(logs.Logs()), 1)
}

func TestAutoValues(t *testing.T) {
	d := newTestDocument(t, `<div id=a style="margin: auto 10px"></div>`, "", Options{})
	a := styleOf(t, d, "a")
	assert.True(t, a.IsIdent(pr.PMarginTop, kw.Auto))
	tu.AssertEqual(t, *a.MarginRect(100), RectSet{0, 10, 0, 10})
	assert.True(t, a.IsIdent(pr.PWidth, kw.Auto))
	tu.AssertEqual(t, a.Length(pr.PWidth, 100), pr.Fl(0))
}

func TestBorders(t *testing.T) {
	d := newTestDocument(t, `
		<div id=nostyle style="border-width: 5px"></div>
		<div id=solid style="border: 2px solid red"></div>
		<div id=current style="border-top: solid; color: green"></div>
		<div id=radius style="border-radius: 10px 50%"></div>
		<div id=outline style="outline-width: 4px"></div>
	`, "", Options{})

	nostyle := styleOf(t, d, "nostyle").Border()
	assert.True(t, nostyle.Widths.IsZero())
	tu.AssertEqual(t, nostyle.Styles[0], kw.None)
	assert.True(t, nostyle == zeroBorder)
	assert.False(t, styleOf(t, d, "solid").Border() == zeroBorder)

	solid := styleOf(t, d, "solid").Border()
	tu.AssertEqual(t, solid.Widths, RectSet{2, 2, 2, 2})
	tu.AssertEqual(t, solid.Styles, [4]kw.Keyword{kw.Solid, kw.Solid, kw.Solid, kw.Solid})
	tu.AssertEqual(t, solid.Colors[3], namedColor("red"))
	assert.True(t, solid.HasVisibleBorder())

	current := styleOf(t, d, "current").Border()
	tu.AssertEqual(t, current.Widths, RectSet{Top: 3})
	tu.AssertEqual(t, current.Colors[0], namedColor("green"))

	radii := styleOf(t, d, "radius").BorderRadii(200, 100)
	tu.AssertEqual(t, radii[0], Corner{10, 10})
	tu.AssertEqual(t, radii[1], Corner{100, 50})

	tu.AssertEqual(t, styleOf(t, d, "outline").Length(pr.POutlineWidth, -1), pr.Fl(0))
}

func TestTableBoxes(t *testing.T) {
	d := newTestDocument(t, `<table id=table style="border-collapse: collapse; padding: 4px"><tr id=tr style="margin: 5px; padding: 3px; border: 1px solid">
		<td id=td style="margin: 5px; padding: 3px">a</td></tr></table>`, "", Options{})

	tr := styleOf(t, d, "tr")
	assert.True(t, tr.MarginRect(-1) == zeroRect)
	assert.True(t, tr.PaddingRect(-1) == zeroRect)
	assert.True(t, tr.Border() == zeroBorder)

	td := styleOf(t, d, "td")
	assert.True(t, td.MarginRect(-1) == zeroRect)
	tu.AssertEqual(t, *td.PaddingRect(-1), RectSet{3, 3, 3, 3})

	// border-collapse: collapse
	assert.True(t, styleOf(t, d, "table").PaddingRect(-1) == zeroRect)
}

func TestBackground(t *testing.T) {
	d := newTestDocument(t, `<div id=a style="background: url(img.png) no-repeat 10px 50% yellow; background-size: 50% auto; border-spacing: 2px 4px">`, "", Options{})
	a := styleOf(t, d, "a")
	tu.AssertEqual(t, a.BackgroundColor(), namedColor("yellow"))
	tu.AssertEqual(t, a.BackgroundImage(), "img.png")
	x, y := a.BackgroundPosition(100, 40)
	tu.AssertEqual(t, [2]pr.Fl{x, y}, [2]pr.Fl{10, 20})
	w, h, k := a.BackgroundSize(300, 100)
	tu.AssertEqual(t, [2]pr.Fl{w, h}, [2]pr.Fl{150, -1})
	tu.AssertEqual(t, k, kw.Keyword(0))
	sx, sy := a.BorderSpacing()
	tu.AssertEqual(t, [2]pr.Fl{sx, sy}, [2]pr.Fl{2, 4})
}

func TestPageProperty(t *testing.T) {
	d := newTestDocument(t, `<div id=a><p id=b>a</p><p id=c style="page: other">b</p></div>`, `div { page: chapter }`, Options{})
	tu.AssertEqual(t, styleOf(t, d, "a").PageName(), "chapter")
	tu.AssertEqual(t, styleOf(t, d, "b").PageName(), "chapter")
	tu.AssertEqual(t, styleOf(t, d, "c").PageName(), "other")
	root, _ := d.GetCalculatedStyle(d.Root())
	tu.AssertEqual(t, root.PageName(), "")
}

func TestOpacity(t *testing.T) {
	d := newTestDocument(t, `<div id=a style="opacity: 0.5"></div>`, "", Options{})
	tu.AssertEqual(t, styleOf(t, d, "a").Opacity(), pr.Fl(0.5))
}

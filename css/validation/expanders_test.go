package validation

import (
	"testing"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
)

func TestExpandFourSides(t *testing.T) {
	assertValidDict(t, "margin: inherit", map[pr.KnownProp]pr.Value{
		pr.PMarginTop:    ident(kw.Inherit),
		pr.PMarginRight:  ident(kw.Inherit),
		pr.PMarginBottom: ident(kw.Inherit),
		pr.PMarginLeft:   ident(kw.Inherit),
	})
	assertValidDict(t, "margin: 1em", map[pr.KnownProp]pr.Value{
		pr.PMarginTop:    pr.NewDim(1, pr.Em),
		pr.PMarginRight:  pr.NewDim(1, pr.Em),
		pr.PMarginBottom: pr.NewDim(1, pr.Em),
		pr.PMarginLeft:   pr.NewDim(1, pr.Em),
	})
	assertValidDict(t, "margin: -1em auto 20%", map[pr.KnownProp]pr.Value{
		pr.PMarginTop:    pr.NewDim(-1, pr.Em),
		pr.PMarginRight:  ident(kw.Auto),
		pr.PMarginBottom: pr.NewDim(20, pr.Perc),
		pr.PMarginLeft:   ident(kw.Auto),
	})
	assertValidDict(t, "padding: 1em 0", map[pr.KnownProp]pr.Value{
		pr.PPaddingTop:    pr.NewDim(1, pr.Em),
		pr.PPaddingRight:  pr.NewDim(0, pr.Scalar),
		pr.PPaddingBottom: pr.NewDim(1, pr.Em),
		pr.PPaddingLeft:   pr.NewDim(0, pr.Scalar),
	})
	assertValidDict(t, "padding: 1em 0 2em 5px", map[pr.KnownProp]pr.Value{
		pr.PPaddingTop:    pr.NewDim(1, pr.Em),
		pr.PPaddingRight:  pr.NewDim(0, pr.Scalar),
		pr.PPaddingBottom: pr.NewDim(2, pr.Em),
		pr.PPaddingLeft:   px(5),
	})
	assertValidDict(t, "border-style: solid dotted", map[pr.KnownProp]pr.Value{
		pr.PBorderTopStyle:    ident(kw.Solid),
		pr.PBorderRightStyle:  ident(kw.Dotted),
		pr.PBorderBottomStyle: ident(kw.Solid),
		pr.PBorderLeftStyle:   ident(kw.Dotted),
	})

	assertInvalid(t, "padding: 1 2 3 4 5", "wrong number of values")
	assertInvalid(t, "margin: 1px, 2px", "unexpected separator")
	assertInvalid(t, "padding: -12px", "negative values are not allowed")
	assertInvalid(t, "border-width: -3em", "negative values are not allowed")
	assertInvalid(t, "border-style: solid wavy", "invalid identifier")
}

func TestExpandBorderRadius(t *testing.T) {
	corners := func(tl, tr, br, bl [2]pr.Dimension) map[pr.KnownProp]pr.Value {
		out := map[pr.KnownProp]pr.Value{}
		for i, c := range [4][2]pr.Dimension{tl, tr, br, bl} {
			out[pr.BorderRadii[i]] = pr.NewList(c[0], c[1])
		}
		return out
	}
	r := func(h, v pr.Dimension) [2]pr.Dimension { return [2]pr.Dimension{h, v} }

	assertValidDict(t, "border-radius: 10px", corners(
		r(px(10), px(10)), r(px(10), px(10)), r(px(10), px(10)), r(px(10), px(10))))
	assertValidDict(t, "border-radius: 10px 5px", corners(
		r(px(10), px(10)), r(px(5), px(5)), r(px(10), px(10)), r(px(5), px(5))))
	assertValidDict(t, "border-radius: 1px 2px 3px", corners(
		r(px(1), px(1)), r(px(2), px(2)), r(px(3), px(3)), r(px(2), px(2))))
	assertValidDict(t, "border-radius: 1px 2px 3px 4px / 5%", corners(
		r(px(1), pr.NewDim(5, pr.Perc)), r(px(2), pr.NewDim(5, pr.Perc)),
		r(px(3), pr.NewDim(5, pr.Perc)), r(px(4), pr.NewDim(5, pr.Perc))))
	assertValidDict(t, "border-radius: 1px / 2px 3px", corners(
		r(px(1), px(2)), r(px(1), px(3)), r(px(1), px(2)), r(px(1), px(3))))

	assertInvalid(t, "border-radius: 1px / 2px / 3px", "expected only one '/' separator")
	assertInvalid(t, "border-radius: -1px", "negative values are not allowed")
	assertInvalid(t, "border-radius: 1px 2px 3px 4px 5px", "wrong number of values")
	assertInvalid(t, "border-radius: auto", "unexpected")
}

func TestExpandBorder(t *testing.T) {
	assertValidDict(t, "border-top: 3px dotted red", map[pr.KnownProp]pr.Value{
		pr.PBorderTopWidth: px(3),
		pr.PBorderTopStyle: ident(kw.Dotted),
		pr.PBorderTopColor: color("red"),
	})
	assertValidDict(t, "border-left: solid", map[pr.KnownProp]pr.Value{
		pr.PBorderLeftStyle: ident(kw.Solid),
	})
	assertValidDict(t, "border-bottom: thick currentColor", map[pr.KnownProp]pr.Value{
		pr.PBorderBottomWidth: ident(kw.Thick),
		pr.PBorderBottomColor: ident(kw.Currentcolor),
	})

	full := expandToDict(t, "border: 1px solid #00f", "")
	if len(full) != 12 {
		t.Fatalf("expected 12 longhands, got %v", full)
	}
	for i := range pr.BorderWidths {
		expected := map[pr.KnownProp]pr.Value{
			pr.BorderWidths[i]: px(1),
			pr.BorderStyles[i]: ident(kw.Solid),
			pr.BorderColors[i]: color("blue"),
		}
		for p, v := range expected {
			if full[p] != v {
				t.Fatalf("for %s, expected %s, got %v", p, v, full[p])
			}
		}
	}

	assertInvalid(t, "border: 1px 2px", "got multiple")
	assertInvalid(t, "border-top: solid solid", "got multiple")
	assertInvalid(t, "border-right: 1px solid red blue", "wrong number of values")
	assertInvalid(t, "border-left: 3px 'dotted'", "unexpected")
}

func TestExpandOutline(t *testing.T) {
	assertValidDict(t, "outline: thick dotted", map[pr.KnownProp]pr.Value{
		pr.POutlineWidth: ident(kw.Thick),
		pr.POutlineStyle: ident(kw.Dotted),
	})
	assertValidDict(t, "outline: invert 2px", map[pr.KnownProp]pr.Value{
		pr.POutlineColor: ident(kw.Invert),
		pr.POutlineWidth: px(2),
	})
}

func TestExpandListStyle(t *testing.T) {
	assertValidDict(t, "list-style: inherit", map[pr.KnownProp]pr.Value{
		pr.PListStyleImage:    ident(kw.Inherit),
		pr.PListStylePosition: ident(kw.Inherit),
		pr.PListStyleType:     ident(kw.Inherit),
	})
	assertValidDict(t, "list-style: url(foo.png)", map[pr.KnownProp]pr.Value{
		pr.PListStyleImage: pr.URI("foo.png"),
	})
	assertValidDict(t, "list-style: square inside", map[pr.KnownProp]pr.Value{
		pr.PListStylePosition: ident(kw.Inside),
		pr.PListStyleType:     ident(kw.Square),
	})
	assertValidDict(t, "list-style: none", map[pr.KnownProp]pr.Value{
		pr.PListStyleType: ident(kw.None),
	})
	assertValidDict(t, "list-style: none none", map[pr.KnownProp]pr.Value{
		pr.PListStyleImage: ident(kw.None),
		pr.PListStyleType:  ident(kw.None),
	})
	assertValidDict(t, "list-style: url(a.png) none", map[pr.KnownProp]pr.Value{
		pr.PListStyleImage: pr.URI("a.png"),
		pr.PListStyleType:  ident(kw.None),
	})

	assertInvalid(t, "list-style: none none none", "too many none values")
	assertInvalid(t, "list-style: circle disc", "got multiple")
	assertInvalid(t, "list-style: red", "unexpected")
}

func TestExpandBackground(t *testing.T) {
	assertValidDict(t, "background: red", map[pr.KnownProp]pr.Value{
		pr.PBackgroundColor: color("red"),
	})
	assertValidDict(t, "background: url(foo.png) no-repeat", map[pr.KnownProp]pr.Value{
		pr.PBackgroundImage:  pr.URI("foo.png"),
		pr.PBackgroundRepeat: ident(kw.NoRepeat),
	})
	assertValidDict(t, "background: #0f0 url(x.png) top left fixed repeat-x", map[pr.KnownProp]pr.Value{
		pr.PBackgroundColor:      color("lime"),
		pr.PBackgroundImage:      pr.URI("x.png"),
		pr.PBackgroundPosition:   pr.NewList(zeroPercent, zeroPercent),
		pr.PBackgroundAttachment: ident(kw.Fixed),
		pr.PBackgroundRepeat:     ident(kw.RepeatX),
	})
	assertValidDict(t, "background: 10px none", map[pr.KnownProp]pr.Value{
		pr.PBackgroundImage:    ident(kw.None),
		pr.PBackgroundPosition: pr.NewList(px(10), fiftyPercent),
	})
	assertValidDict(t, "background: 1px 2px transparent", map[pr.KnownProp]pr.Value{
		pr.PBackgroundColor:    pr.Transparent,
		pr.PBackgroundPosition: pr.NewList(px(1), px(2)),
	})

	assertInvalid(t, "background: red blue", "got multiple")
	assertInvalid(t, "background: 1px 2px 3px", "got multiple")
	assertInvalid(t, "background: url(a.png), url(b.png)", "unexpected separator")
	assertInvalid(t, "background: 3", "unexpected")
}

func TestExpandFont(t *testing.T) {
	assertValidDict(t, "font: 12px serif", map[pr.KnownProp]pr.Value{
		pr.PFontSize:   px(12),
		pr.PFontFamily: ident(kw.Serif),
	})
	assertValidDict(t, `font: italic bold 12px/30px Georgia, serif`, map[pr.KnownProp]pr.Value{
		pr.PFontStyle:  ident(kw.Italic),
		pr.PFontWeight: ident(kw.Bold),
		pr.PFontSize:   px(12),
		pr.PLineHeight: px(30),
		pr.PFontFamily: pr.List{
			{Value: pr.String("Georgia")},
			{Value: ident(kw.Serif), Sep: pr.SepComma},
		},
	})
	assertValidDict(t, `font: small-caps 700 large/1.2 "Some Font"`, map[pr.KnownProp]pr.Value{
		pr.PFontVariant: ident(kw.SmallCaps),
		pr.PFontWeight:  ident(kw.W700),
		pr.PFontSize:    ident(kw.Large),
		pr.PLineHeight:  pr.NewDim(1.2, pr.Scalar),
		pr.PFontFamily:  pr.String("Some Font"),
	})
	assertValidDict(t, "font: normal normal 80% Times New Roman", map[pr.KnownProp]pr.Value{
		pr.PFontSize:   pr.NewDim(80, pr.Perc),
		pr.PFontFamily: pr.String("Times New Roman"),
	})

	assertInvalid(t, "font: caption", "system fonts are not supported")
	assertInvalid(t, "font: bold", "font-size is mandatory")
	assertInvalid(t, "font: 12px", "font-family is mandatory")
	assertInvalid(t, "font: 12px/ serif", "invalid identifier")
	assertInvalid(t, "font: italic italic 12px serif", "got multiple")
	assertInvalid(t, "font: -1px serif", "negative values are not allowed")
}

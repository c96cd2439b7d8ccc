package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// parseDeclarations splits an inline declaration list.
func parseDeclarations(t *testing.T, s string) []RawDeclaration {
	t.Helper()
	p := css.NewParser(parse.NewInputString(s), true)
	var out []RawDeclaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return out
		case css.DeclarationGrammar:
			var tokens []css.Token
			for _, tok := range p.Values() {
				tokens = append(tokens, css.Token{TokenType: tok.TokenType, Data: append([]byte(nil), tok.Data...)})
			}
			out = append(out, RawDeclaration{Name: string(data), Tokens: tokens})
		}
	}
}

// Helper to test validators and shorthand expanders.
// Longhands reset to `initial` are omitted.
func expandToDict(t *testing.T, css string, expectedError string) map[pr.KnownProp]pr.Value {
	t.Helper()

	capt := tu.CaptureLogs()
	defer capt.Restore()

	validated, err := PreprocessDeclarations(nil, Author, parseDeclarations(t, css))
	logs := capt.Logs()

	if expectedError != "" {
		if len(logs) != 1 || !strings.Contains(logs[0], expectedError) {
			t.Fatalf("for %s expected error \n%s\n got\n%v (len : %d)", css, expectedError, logs, len(logs))
		}
		if err == nil {
			t.Fatalf("for %s expected an error", css)
		}
	} else {
		capt.AssertNoLogs(t)
		tu.AssertNoErr(t, err)
	}
	out := map[pr.KnownProp]pr.Value{}
	for _, v := range validated {
		if !pr.IsKeyword(v.Value, kw.Initial) {
			out[v.Prop] = v.Value
		}
	}
	return out
}

func assertInvalid(t *testing.T, css, message string) {
	t.Helper()

	d := expandToDict(t, css, message)
	if len(d) != 0 {
		t.Fatalf("expected no properties, got %v", d)
	}
}

func assertValidDict(t *testing.T, css string, ref map[pr.KnownProp]pr.Value) {
	t.Helper()

	got := expandToDict(t, css, "")
	if !reflect.DeepEqual(ref, got) {
		t.Fatalf("for %s expected %v got %v", css, ref, got)
	}
}

func ident(k kw.Keyword) pr.Ident { return pr.KeywordValue(k) }

func px(v pr.Fl) pr.Dimension { return pr.Pixels(v) }

func color(name string) pr.Color {
	c, _ := pr.NamedColor(name)
	return c
}

func TestUnknownProperty(t *testing.T) {
	assertInvalid(t, "not-a-property: 3px", "unknown property")
	assertInvalid(t, "-webkit-transform: none", "unknown property")
}

func TestLengthValidators(t *testing.T) {
	assertValidDict(t, "width: 10px", map[pr.KnownProp]pr.Value{pr.PWidth: px(10)})
	assertValidDict(t, "width: auto", map[pr.KnownProp]pr.Value{pr.PWidth: ident(kw.Auto)})
	assertValidDict(t, "width: 0", map[pr.KnownProp]pr.Value{pr.PWidth: pr.NewDim(0, pr.Scalar)})
	assertValidDict(t, "top: -5px", map[pr.KnownProp]pr.Value{pr.PTop: px(-5)})
	assertValidDict(t, "margin-left: -2em", map[pr.KnownProp]pr.Value{pr.PMarginLeft: pr.NewDim(-2, pr.Em)})
	assertValidDict(t, "vertical-align: super", map[pr.KnownProp]pr.Value{pr.PVerticalAlign: ident(kw.Super)})
	assertValidDict(t, "vertical-align: -10%", map[pr.KnownProp]pr.Value{pr.PVerticalAlign: pr.NewDim(-10, pr.Perc)})

	assertInvalid(t, "width: -5px", "negative values are not allowed")
	assertInvalid(t, "padding-top: -1px", "negative values are not allowed")
	assertInvalid(t, "width: 5", "wrong value type")
	assertInvalid(t, "width: 10px 5px", "wrong number of values")
	assertInvalid(t, "width: none", "invalid identifier")
	assertInvalid(t, "border-top-width: 10%", "wrong value type")
	assertInvalid(t, "max-width: auto", "invalid identifier")
}

func TestIdentValidators(t *testing.T) {
	assertValidDict(t, "display: TABLE-row", map[pr.KnownProp]pr.Value{pr.PDisplay: ident(kw.TableRow)})
	assertValidDict(t, "float: left", map[pr.KnownProp]pr.Value{pr.PFloat: ident(kw.Left)})
	assertInvalid(t, "float: top", "invalid identifier")
	assertInvalid(t, "position: 3px", "wrong value type")
}

func TestInheritAndInitial(t *testing.T) {
	assertValidDict(t, "color: inherit", map[pr.KnownProp]pr.Value{pr.PColor: ident(kw.Inherit)})
	assertValidDict(t, "margin: inherit", map[pr.KnownProp]pr.Value{
		pr.PMarginTop:    ident(kw.Inherit),
		pr.PMarginRight:  ident(kw.Inherit),
		pr.PMarginBottom: ident(kw.Inherit),
		pr.PMarginLeft:   ident(kw.Inherit),
	})

	_, err := Build(pr.PColor, pr.NewList(ident(kw.Inherit)), Author, false, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInheritNotAllowed))

	decls, err := Build(pr.SPadding, pr.NewList(ident(kw.Initial)), User, true, false)
	require.NoError(t, err)
	require.Len(t, decls, 4)
	for _, d := range decls {
		assert.Equal(t, PrecedenceUserImportant, d.Precedence())
	}
}

func TestColors(t *testing.T) {
	assertValidDict(t, "color: red", map[pr.KnownProp]pr.Value{pr.PColor: color("red")})
	assertValidDict(t, "color: #0f0", map[pr.KnownProp]pr.Value{pr.PColor: color("lime")})
	assertValidDict(t, "background-color: transparent", map[pr.KnownProp]pr.Value{pr.PBackgroundColor: pr.Transparent})
	assertValidDict(t, "border-top-color: currentColor", map[pr.KnownProp]pr.Value{pr.PBorderTopColor: ident(kw.Currentcolor)})
	assertValidDict(t, "outline-color: invert", map[pr.KnownProp]pr.Value{pr.POutlineColor: ident(kw.Invert)})
	assertInvalid(t, "color: invert", "is not a color")
	assertInvalid(t, "color: 3px", "wrong value type")
}

func TestNumbers(t *testing.T) {
	assertValidDict(t, "opacity: 0.5", map[pr.KnownProp]pr.Value{pr.POpacity: pr.NewDim(0.5, pr.Scalar)})
	assertValidDict(t, "z-index: -3", map[pr.KnownProp]pr.Value{pr.PZIndex: pr.NewDim(-3, pr.Scalar)})
	assertValidDict(t, "orphans: 3", map[pr.KnownProp]pr.Value{pr.POrphans: pr.NewDim(3, pr.Scalar)})
	assertInvalid(t, "opacity: 2", "number out of range")
	assertInvalid(t, "orphans: 0", "number out of range")
	assertInvalid(t, "z-index: 1.5", "wrong value type")
}

func TestFontWeight(t *testing.T) {
	assertValidDict(t, "font-weight: 700", map[pr.KnownProp]pr.Value{pr.PFontWeight: ident(kw.W700)})
	assertValidDict(t, "font-weight: bolder", map[pr.KnownProp]pr.Value{pr.PFontWeight: ident(kw.Bolder)})
	assertInvalid(t, "font-weight: 650", "number out of range")
	assertInvalid(t, "font-weight: 1000", "number out of range")
	assertInvalid(t, "font-weight: heavy", "invalid identifier")
}

func TestFontFamily(t *testing.T) {
	assertValidDict(t, `font-family: "Times New Roman", Georgia, serif`, map[pr.KnownProp]pr.Value{
		pr.PFontFamily: pr.List{
			{Value: pr.String("Times New Roman")},
			{Value: pr.String("Georgia"), Sep: pr.SepComma},
			{Value: ident(kw.Serif), Sep: pr.SepComma},
		},
	})
	assertValidDict(t, "font-family: DejaVu Sans", map[pr.KnownProp]pr.Value{pr.PFontFamily: pr.String("DejaVu Sans")})
	assertValidDict(t, "font-family: monospace", map[pr.KnownProp]pr.Value{pr.PFontFamily: ident(kw.Monospace)})
	assertInvalid(t, "font-family: 3px", "wrong value type")
}

func TestBackgroundPosition(t *testing.T) {
	for css, expected := range map[string][2]pr.Dimension{
		"background-position: top":         {fiftyPercent, zeroPercent},
		"background-position: left":        {zeroPercent, fiftyPercent},
		"background-position: top left":    {zeroPercent, zeroPercent},
		"background-position: right 10px":  {hundredPercent, px(10)},
		"background-position: 10px 20%":   {px(10), pr.NewDim(20, pr.Perc)},
		"background-position: center":      {fiftyPercent, fiftyPercent},
		"background-position: bottom left": {zeroPercent, hundredPercent},
	} {
		assertValidDict(t, css, map[pr.KnownProp]pr.Value{pr.PBackgroundPosition: pr.NewList(expected[0], expected[1])})
	}
	assertInvalid(t, "background-position: 10px left", "invalid position")
	assertInvalid(t, "background-position: left right", "invalid position")
	assertInvalid(t, "background-position: 1px 2px 3px", "wrong number of values")
}

func TestContentAndCounters(t *testing.T) {
	assertValidDict(t, `content: "a" counter(item) open-quote attr(title)`, map[pr.KnownProp]pr.Value{
		pr.PContent: pr.NewList(
			pr.String("a"),
			pr.Function{Name: "counter", Args: pr.NewList(pr.NewIdent("item"))},
			ident(kw.OpenQuote),
			pr.Function{Name: "attr", Args: pr.NewList(pr.NewIdent("title"))},
		),
	})
	assertValidDict(t, "content: none", map[pr.KnownProp]pr.Value{pr.PContent: ident(kw.None)})
	assertInvalid(t, "content: counter(item, not-a-style)", "invalid counter")
	assertInvalid(t, "content: 3px", "wrong value type")

	assertValidDict(t, "counter-reset: a 2 b", map[pr.KnownProp]pr.Value{
		pr.PCounterReset: pr.NewList(pr.Ident{Name: "a"}, pr.NewDim(2, pr.Scalar), pr.Ident{Name: "b"}),
	})
	assertInvalid(t, "counter-increment: a 1.5", "wrong value type")

	assertValidDict(t, `quotes: "«" "»"`, map[pr.KnownProp]pr.Value{pr.PQuotes: pr.NewList(pr.String("«"), pr.String("»"))})
	assertInvalid(t, `quotes: "«"`, "wrong number of values")
}

func TestMiscValidators(t *testing.T) {
	assertValidDict(t, "clip: rect(1px, auto, 3px, 4px)", map[pr.KnownProp]pr.Value{
		pr.PClip: pr.Function{Name: "rect", Args: pr.List{
			{Value: px(1)}, {Value: ident(kw.Auto), Sep: pr.SepComma},
			{Value: px(3), Sep: pr.SepComma}, {Value: px(4), Sep: pr.SepComma},
		}},
	})
	assertValidDict(t, "cursor: url(a.cur), pointer", map[pr.KnownProp]pr.Value{
		pr.PCursor: pr.List{{Value: pr.URI("a.cur")}, {Value: ident(kw.Pointer), Sep: pr.SepComma}},
	})
	assertValidDict(t, "page: chapter", map[pr.KnownProp]pr.Value{pr.PPage: pr.Ident{Name: "chapter"}})
	assertValidDict(t, "size: a4 landscape", map[pr.KnownProp]pr.Value{pr.PSize: pr.NewList(ident(kw.A4), ident(kw.Landscape))})
	assertValidDict(t, "size: 10cm", map[pr.KnownProp]pr.Value{pr.PSize: pr.NewList(pr.NewDim(10, pr.Cm), pr.NewDim(10, pr.Cm))})
	assertValidDict(t, "text-decoration: underline overline", map[pr.KnownProp]pr.Value{
		pr.PTextDecoration: pr.NewList(ident(kw.Underline), ident(kw.Overline)),
	})
	assertValidDict(t, "background-size: cover", map[pr.KnownProp]pr.Value{pr.PBackgroundSize: ident(kw.Cover)})
	assertValidDict(t, "border-spacing: 1px 2px", map[pr.KnownProp]pr.Value{pr.PBorderSpacing: pr.NewList(px(1), px(2))})
	assertValidDict(t, "line-height: 1.5", map[pr.KnownProp]pr.Value{pr.PLineHeight: pr.NewDim(1.5, pr.Scalar)})

	assertInvalid(t, "text-decoration: underline underline", "duplicated")
	assertInvalid(t, "size: a4 10cm", "can't be mixed")
	assertInvalid(t, "page: auto auto", "wrong number of values")
	assertInvalid(t, "line-height: -1", "negative values are not allowed")
}

func TestValidationError(t *testing.T) {
	_, err := Validate("width", "-3px", Author, false)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "width", ve.Property)
	assert.True(t, errors.Is(err, ErrNegativeValue))
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "width: negative values are not allowed")
}

func TestPreprocessKeepsValidDeclarations(t *testing.T) {
	capt := tu.CaptureLogs()
	defer capt.Restore()

	decls, err := PreprocessDeclarations(nil, Author, parseDeclarations(t, "color: red; width: -1px; height: 2px"))
	require.Error(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, pr.PColor, decls[0].Prop)
	assert.Equal(t, pr.PHeight, decls[1].Prop)
	assert.Len(t, capt.Logs(), 1)
}

func TestFingerprint(t *testing.T) {
	d1, err := Validate("color", "red", Author, false)
	require.NoError(t, err)
	d2, err := Validate("color", "#f00", UserAgent, true)
	require.NoError(t, err)
	assert.Equal(t, d1[0].Fingerprint(), d2[0].Fingerprint())

	d3, err := Validate("background-color", "red", Author, false)
	require.NoError(t, err)
	assert.NotEqual(t, d1[0].Fingerprint(), d3[0].Fingerprint())
}

func TestPrecedence(t *testing.T) {
	for _, test := range []struct {
		origin    Origin
		important bool
		expected  int
	}{
		{UserAgent, false, PrecedenceUserAgent},
		{UserAgent, true, PrecedenceUserAgent},
		{User, false, PrecedenceUserNormal},
		{Author, false, PrecedenceAuthorNormal},
		{Author, true, PrecedenceAuthorImportant},
		{User, true, PrecedenceUserImportant},
	} {
		d := Declaration{Origin: test.origin, Important: test.important}
		assert.Equal(t, test.expected, d.Precedence())
	}
}

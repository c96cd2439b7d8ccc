package text

import (
	"testing"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinMetrics(t *testing.T) {
	m, err := Builtin()
	require.NoError(t, err)

	small := FontSpec{Size: 10}
	big := FontSpec{Size: 20}
	xh, zero := m.XHeight(small), m.ZeroAdvance(small)

	// plausible values for a latin sans serif
	assert.True(t, 3 < xh && xh < 7, "got %v", xh)
	assert.True(t, 3 < zero && zero < 8, "got %v", zero)

	// metrics are proportional to the font size
	assert.InDelta(t, 2*xh, m.XHeight(big), 1e-4)
	assert.InDelta(t, 2*zero, m.ZeroAdvance(big), 1e-4)

	again, _ := Builtin()
	assert.Same(t, m, again)
}

func TestInvalidFont(t *testing.T) {
	_, err := NewSfntMetrics([]byte("not a font"))
	assert.Error(t, err)
}

func TestNoMetrics(t *testing.T) {
	var m Metrics = NoMetrics{}
	assert.Equal(t, pr.Fl(6), m.XHeight(FontSpec{Size: 12}))
	assert.Equal(t, pr.Fl(6), m.ZeroAdvance(FontSpec{Size: 12}))
}

func TestFontSpec(t *testing.T) {
	spec := FontSpec{
		Families: []string{"Times New Roman", "serif"},
		Size:     12,
		Style:    kw.Italic,
		Variant:  kw.Normal,
		Weight:   700,
	}
	assert.Equal(t, `italic 700 12px "Times New Roman", serif`, spec.String())

	assert.Equal(t, []string{"Georgia", "serif"}, FamilyNames(pr.List{
		{Value: pr.String("Georgia")},
		{Value: pr.KeywordValue(kw.Serif), Sep: pr.SepComma},
	}))
	assert.Equal(t, []string{"monospace"}, FamilyNames(pr.KeywordValue(kw.Monospace)))
}

// Package text provides the font metrics needed to resolve
// the font relative CSS units `ex` and `ch`.
package text

import (
	"fmt"
	"sync"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics gives the font measures used to convert
// font relative lengths to pixels.
type Metrics interface {
	// XHeight returns the height of the lowercase 'x', in pixels.
	XHeight(font FontSpec) pr.Fl
	// ZeroAdvance returns the advance width of the '0' glyph, in pixels.
	ZeroAdvance(font FontSpec) pr.Fl
}

// NoMetrics uses the 0.5em fallback for both `ex` and `ch`.
type NoMetrics struct{}

func (NoMetrics) XHeight(font FontSpec) pr.Fl     { return font.Size / 2 }
func (NoMetrics) ZeroAdvance(font FontSpec) pr.Fl { return font.Size / 2 }

// ratios to the font size
type faceMetrics struct {
	xHeight, zeroAdvance pr.Fl
}

// SfntMetrics measures a TrueType or OpenType font.
// The same face is used whatever the requested family.
type SfntMetrics struct {
	ratios faceMetrics
}

var (
	builtinOnce sync.Once
	builtin     *SfntMetrics
	builtinErr  error
)

// Builtin returns the metrics of the Go Regular font,
// which is embedded in the binary.
func Builtin() (*SfntMetrics, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = NewSfntMetrics(goregular.TTF)
	})
	return builtin, builtinErr
}

// NewSfntMetrics parses the font file content `data`.
func NewSfntMetrics(data []byte) (*SfntMetrics, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid font file: %s", err)
	}
	var buf sfnt.Buffer
	// measure at one unit per em, so that metrics are ratios
	upem := fixed.I(int(f.UnitsPerEm()))
	metrics, err := f.Metrics(&buf, upem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("invalid font metrics: %s", err)
	}
	out := &SfntMetrics{}
	out.ratios.xHeight = ratio(metrics.XHeight, upem)
	if out.ratios.xHeight == 0 {
		out.ratios.xHeight = 0.5
	}

	out.ratios.zeroAdvance = 0.5
	if gid, err := f.GlyphIndex(&buf, '0'); err == nil && gid != 0 {
		if adv, err := f.GlyphAdvance(&buf, gid, upem, font.HintingNone); err == nil && adv != 0 {
			out.ratios.zeroAdvance = ratio(adv, upem)
		}
	}
	return out, nil
}

func ratio(v, upem fixed.Int26_6) pr.Fl { return pr.Fl(v) / pr.Fl(upem) }

func (sm *SfntMetrics) XHeight(font FontSpec) pr.Fl { return sm.ratios.xHeight * font.Size }

func (sm *SfntMetrics) ZeroAdvance(font FontSpec) pr.Fl { return sm.ratios.zeroAdvance * font.Size }

package properties

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
)

// Color is an RGBA color, with components in [0, 1].
type Color struct {
	R, G, B, A Fl
}

// Transparent is the fully transparent black.
var Transparent = Color{}

// NewColor returns a color, clamping its components.
func NewColor(r, g, b, a Fl) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

func clamp01(f Fl) Fl {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// IsTransparent returns true if the alpha channel is zero.
func (c Color) IsTransparent() bool { return c.A == 0 }

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func (c Color) String() string {
	if c.A == 1 {
		return c.colorful().Hex()
	}
	r, g, b := c.colorful().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatFloat(c.A))
}

// Fingerprint uses the full precision components, since
// String rounds them to 8 bits.
func (c Color) Fingerprint() string {
	return "rgba(" + formatFloat(c.R) + "," + formatFloat(c.G) + "," + formatFloat(c.B) + "," + formatFloat(c.A) + ")"
}

func rgb255(r, g, b uint8) Color {
	return Color{R: Fl(r) / 255, G: Fl(g) / 255, B: Fl(b) / 255, A: 1}
}

// the CSS 2.1 basic colors
var namedColors = map[string]Color{
	"maroon":  rgb255(0x80, 0x00, 0x00),
	"red":     rgb255(0xff, 0x00, 0x00),
	"orange":  rgb255(0xff, 0xa5, 0x00),
	"yellow":  rgb255(0xff, 0xff, 0x00),
	"olive":   rgb255(0x80, 0x80, 0x00),
	"purple":  rgb255(0x80, 0x00, 0x80),
	"fuchsia": rgb255(0xff, 0x00, 0xff),
	"white":   rgb255(0xff, 0xff, 0xff),
	"lime":    rgb255(0x00, 0xff, 0x00),
	"green":   rgb255(0x00, 0x80, 0x00),
	"navy":    rgb255(0x00, 0x00, 0x80),
	"blue":    rgb255(0x00, 0x00, 0xff),
	"aqua":    rgb255(0x00, 0xff, 0xff),
	"teal":    rgb255(0x00, 0x80, 0x80),
	"black":   rgb255(0x00, 0x00, 0x00),
	"silver":  rgb255(0xc0, 0xc0, 0xc0),
	"gray":    rgb255(0x80, 0x80, 0x80),
	"grey":    rgb255(0x80, 0x80, 0x80),

	"transparent": Transparent,
}

// NamedColor returns the color for a CSS named color (including `transparent`).
func NamedColor(name string) (Color, bool) {
	c, ok := namedColors[cases.Fold().String(name)]
	return c, ok
}

// parseHashColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa.
func parseHashColor(hash string) (Color, error) {
	s := strings.TrimPrefix(hash, "#")
	alpha := Fl(1)
	switch len(s) {
	case 4:
		a, err := hexDigits(s[3:4] + s[3:4])
		if err != nil {
			return Color{}, err
		}
		alpha = Fl(a) / 255
		s = s[:3]
	case 8:
		a, err := hexDigits(s[6:8])
		if err != nil {
			return Color{}, err
		}
		alpha = Fl(a) / 255
		s = s[:6]
	case 3, 6:
	default:
		return Color{}, fmt.Errorf("invalid hash color %q", hash)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hash color %q: %s", hash, err)
	}
	return Color{R: Fl(c.R), G: Fl(c.G), B: Fl(c.B), A: alpha}, nil
}

func hexDigits(s string) (uint8, error) {
	out, err := strconv.ParseUint(s, 16, 8)
	return uint8(out), err
}

// parseColorFunction handles rgb(), rgba(), hsl() and hsla().
// The boolean is false if `name` is not a color function.
func parseColorFunction(name string, args List) (Color, bool, error) {
	switch name {
	case "rgb", "rgba", "hsl", "hsla":
	default:
		return Color{}, false, nil
	}
	var values []Dimension
	for i, it := range args {
		if i != 0 && it.Sep != SepComma {
			return Color{}, true, fmt.Errorf("%s(): expected comma separated arguments", name)
		}
		d, ok := it.Value.(Dimension)
		if !ok {
			return Color{}, true, fmt.Errorf("%s(): expected numeric arguments, got %s", name, it.Value)
		}
		values = append(values, d)
	}
	if len(values) != 3 && len(values) != 4 {
		return Color{}, true, fmt.Errorf("%s(): expected 3 or 4 arguments, got %d", name, len(values))
	}
	alpha := Fl(1)
	if len(values) == 4 {
		a := values[3]
		switch a.Unit {
		case Scalar:
			alpha = clamp01(a.Value)
		case Perc:
			alpha = clamp01(a.Value / 100)
		default:
			return Color{}, true, fmt.Errorf("%s(): invalid alpha %s", name, a)
		}
	}

	if name == "rgb" || name == "rgba" {
		// all percentages or all numbers
		unit := values[0].Unit
		var channels [3]Fl
		for i, v := range values[:3] {
			if v.Unit != unit || (unit != Scalar && unit != Perc) {
				return Color{}, true, fmt.Errorf("%s(): mixed or invalid channel units", name)
			}
			if unit == Perc {
				channels[i] = clamp01(v.Value / 100)
			} else {
				channels[i] = clamp01(v.Value / 255)
			}
		}
		return Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, true, nil
	}

	hue, sat, light := values[0], values[1], values[2]
	if hue.Unit != Scalar && !hue.Unit.IsAngle() || sat.Unit != Perc || light.Unit != Perc {
		return Color{}, true, fmt.Errorf("%s(): invalid arguments", name)
	}
	h := float64(toDegrees(hue))
	h = math.Mod(math.Mod(h, 360)+360, 360)
	c := colorful.Hsl(h, float64(clamp01(sat.Value/100)), float64(clamp01(light.Value/100))).Clamped()
	return Color{R: Fl(c.R), G: Fl(c.G), B: Fl(c.B), A: alpha}, true, nil
}

func toDegrees(d Dimension) Fl {
	switch d.Unit {
	case Rad:
		return d.Value * 180 / math.Pi
	case Grad:
		return d.Value * 360 / 400
	case Turn:
		return d.Value * 360
	default:
		return d.Value
	}
}

package choropleth

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a CSS colour as Leaflet path options accept it.
type Color string

// Choropleth fill colours, darkest to lightest, plus the fixed style colours.
const (
	ColorDarkest   Color = "#08306b"
	ColorDark      Color = "#08519c"
	ColorMedium    Color = "#3182bd"
	ColorLight     Color = "#6baed6"
	ColorVeryLight Color = "#c6dbef"
	ColorNone      Color = "#ffffff"

	ColorHighlight Color = "yellow"
	ColorBorder    Color = "black"
)

// Threshold pairs a strict lower bound with the colour used above it.
type Threshold struct {
	Above float64 `json:"above"`
	Color Color   `json:"color"`
}

// thresholds is ordered strictly descending; the first bound a count exceeds wins.
var thresholds = []Threshold{
	{Above: 9, Color: ColorDarkest},
	{Above: 6, Color: ColorDark},
	{Above: 3, Color: ColorMedium},
	{Above: 1, Color: ColorLight},
	{Above: 0, Color: ColorVeryLight},
}

// namedColors resolves the CSS keywords used by the fixed styles.
var namedColors = map[Color]string{
	ColorHighlight: "#ffff00",
	ColorBorder:    "#000000",
	"white":        "#ffffff",
}

// ColorFor maps a partner count to its fill colour. Counts of zero, negative
// counts and NaN all fall through to white.
func ColorFor(count float64) Color {
	if math.IsNaN(count) {
		return ColorNone
	}
	for _, t := range thresholds {
		if count > t.Above {
			return t.Color
		}
	}
	return ColorNone
}

// Thresholds returns a copy of the scale's breakpoints, highest first.
func Thresholds() []Threshold {
	out := make([]Threshold, len(thresholds))
	copy(out, thresholds)
	return out
}

// Palette returns the six fill colours from lightest to darkest.
func Palette() []Color {
	out := []Color{ColorNone}
	for i := len(thresholds) - 1; i >= 0; i-- {
		out = append(out, thresholds[i].Color)
	}
	return out
}

// RGB parses the colour, resolving the CSS keywords used by the fixed styles.
func (c Color) RGB() (colorful.Color, error) {
	hex := string(c)
	if named, ok := namedColors[c]; ok {
		hex = named
	}
	return colorful.Hex(hex)
}

// Lightness returns the CIE L* component of the colour, 0 (black) to 1 (white).
func (c Color) Lightness() float64 {
	rgb, err := c.RGB()
	if err != nil {
		return 0
	}
	l, _, _ := rgb.Lab()
	return l
}

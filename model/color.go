package model

// This module defines the color representations used by the engine and the
// conversions between them.  RGBA is the hub, every other representation is
// converted to and from RGBA, and conversions between two non RGBA types are
// chained through it
//

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RgbColor is an opaque 8 bit per channel color, the native format of the LED drivers
type RgbColor struct {
	R, G, B uint8
}

// RgbaColor is an 8 bit per channel color with an alpha channel
type RgbaColor struct {
	R, G, B, A uint8
}

// HsvaColor is a hue, saturation, value color.  H is in degrees [0,360), S and V are
// in the range [0,1]
type HsvaColor struct {
	H, S, V float64
	A       uint8
}

// HslaColor is a hue, saturation, lightness color.  H is in degrees [0,360), S and L
// are in the range [0,1]
type HslaColor struct {
	H, S, L float64
	A       uint8
}

var (
	// Black is opaque black, the color displayed when nothing else is available
	Black = RgbaColor{0, 0, 0, 255}
	// Transparent is the zero RgbaColor
	Transparent = RgbaColor{}
)

// NewHsva builds an HsvaColor normalizing the hue into [0,360) and clamping
// saturation and value into [0,1]
func NewHsva(h, s, v float64, a uint8) HsvaColor {
	return HsvaColor{H: normalizeHue(h), S: clamp01(s), V: clamp01(v), A: a}
}

// NewHsla builds an HslaColor normalizing the hue into [0,360) and clamping
// saturation and lightness into [0,1]
func NewHsla(h, s, l float64, a uint8) HslaColor {
	return HslaColor{H: normalizeHue(h), S: clamp01(s), L: clamp01(l), A: a}
}

func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// Mod of a tiny negative number can round back up to 360
	if h >= 360 {
		h = 0
	}
	return h
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (c RgbaColor) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

func fromColorful(c colorful.Color, a uint8) RgbaColor {
	r, g, b := c.Clamped().RGB255()
	return RgbaColor{R: r, G: g, B: b, A: a}
}

// Rgba widens the color to RGBA, fully opaque
func (c RgbColor) Rgba() RgbaColor {
	return RgbaColor{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hsva converts through RGBA
func (c RgbColor) Hsva() HsvaColor {
	return c.Rgba().Hsva()
}

// Hsla converts through RGBA
func (c RgbColor) Hsla() HslaColor {
	return c.Rgba().Hsla()
}

// Rgb drops the alpha channel
func (c RgbaColor) Rgb() RgbColor {
	return RgbColor{R: c.R, G: c.G, B: c.B}
}

// Hsva converts the color to hue, saturation, value.  Achromatic colors have a hue
// and saturation of 0
func (c RgbaColor) Hsva() HsvaColor {
	h, s, v := c.colorful().Hsv()
	return HsvaColor{H: normalizeHue(h), S: clamp01(s), V: clamp01(v), A: c.A}
}

// Hsla converts the color to hue, saturation, lightness.  Achromatic colors have a
// hue and saturation of 0
func (c RgbaColor) Hsla() HslaColor {
	h, s, l := c.colorful().Hsl()
	return HslaColor{H: normalizeHue(h), S: clamp01(s), L: clamp01(l), A: c.A}
}

// Rgba converts using the sector formulas, rounding each channel to the nearest value
func (c HsvaColor) Rgba() RgbaColor {
	return fromColorful(colorful.Hsv(normalizeHue(c.H), clamp01(c.S), clamp01(c.V)), c.A)
}

// Rgb converts through RGBA
func (c HsvaColor) Rgb() RgbColor {
	return c.Rgba().Rgb()
}

// Hsla converts through RGBA
func (c HsvaColor) Hsla() HslaColor {
	return c.Rgba().Hsla()
}

// Rgba converts using the sector formulas, rounding each channel to the nearest value
func (c HslaColor) Rgba() RgbaColor {
	return fromColorful(colorful.Hsl(normalizeHue(c.H), clamp01(c.S), clamp01(c.L)), c.A)
}

// Rgb converts through RGBA
func (c HslaColor) Rgb() RgbColor {
	return c.Rgba().Rgb()
}

// Hsva converts through RGBA
func (c HslaColor) Hsva() HsvaColor {
	return c.Rgba().Hsva()
}

func blendChannel(start, end uint8, progress float64) uint8 {
	return uint8((float64(end)-float64(start))*progress + float64(start))
}

// LinearBlendRgb interpolates every channel independently.  progress is not
// clamped, callers are expected to stay inside [0,1]
func LinearBlendRgb(start, end RgbColor, progress float64) RgbColor {
	return RgbColor{
		R: blendChannel(start.R, end.R, progress),
		G: blendChannel(start.G, end.G, progress),
		B: blendChannel(start.B, end.B, progress),
	}
}

// LinearBlendRgba interpolates every channel, alpha included, independently
func LinearBlendRgba(start, end RgbaColor, progress float64) RgbaColor {
	return RgbaColor{
		R: blendChannel(start.R, end.R, progress),
		G: blendChannel(start.G, end.G, progress),
		B: blendChannel(start.B, end.B, progress),
		A: blendChannel(start.A, end.A, progress),
	}
}

// ParseHex reads a "#rrggbb" (or "#rgb") string into an opaque color
func ParseHex(hex string) (c RgbaColor, ok bool) {
	parsed, errGo := colorful.Hex(hex)
	if errGo != nil {
		return Black, false
	}
	return fromColorful(parsed, 255), true
}

// Hex renders the color channels as "#rrggbb", alpha is not included
func (c RgbaColor) Hex() string {
	return c.colorful().Hex()
}

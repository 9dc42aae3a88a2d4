package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertWithinOne(t *testing.T, expected, actual RgbColor) {
	t.Helper()
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	assert.LessOrEqual(t, diff(expected.R, actual.R), 1, "red %v vs %v", expected, actual)
	assert.LessOrEqual(t, diff(expected.G, actual.G), 1, "green %v vs %v", expected, actual)
	assert.LessOrEqual(t, diff(expected.B, actual.B), 1, "blue %v vs %v", expected, actual)
}

func TestLinearBlendEndpoints(t *testing.T) {
	a := RgbaColor{10, 200, 33, 255}
	b := RgbaColor{250, 0, 128, 0}

	assert.Equal(t, a, LinearBlendRgba(a, b, 0))
	assert.Equal(t, b, LinearBlendRgba(a, b, 1))

	for _, p := range []float64{0, 0.1, 0.33, 0.5, 0.75, 0.99, 1} {
		assert.Equal(t, a, LinearBlendRgba(a, a, p))
		assert.Equal(t, a.Rgb(), LinearBlendRgb(a.Rgb(), a.Rgb(), p))
	}

	assert.Equal(t, RgbColor{128, 0, 64}, LinearBlendRgb(RgbColor{0, 0, 0}, RgbColor{255, 0, 128}, 0.503))
}

func TestRoundTrips(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 51 {
				c := RgbColor{uint8(r), uint8(g), uint8(b)}
				assertWithinOne(t, c, c.Hsva().Rgb())
				assertWithinOne(t, c, c.Hsla().Rgb())
			}
		}
	}
}

func TestAchromaticHue(t *testing.T) {
	for _, v := range []uint8{0, 1, 128, 255} {
		c := RgbaColor{v, v, v, 255}
		assert.Equal(t, 0.0, c.Hsva().H)
		assert.Equal(t, 0.0, c.Hsva().S)
		assert.Equal(t, 0.0, c.Hsla().H)
		assert.Equal(t, 0.0, c.Hsla().S)
	}
}

func TestPrimaryConversions(t *testing.T) {
	red := RgbaColor{255, 0, 0, 255}
	hsv := red.Hsva()
	assert.InDelta(t, 0.0, hsv.H, 1e-9)
	assert.InDelta(t, 1.0, hsv.S, 1e-9)
	assert.InDelta(t, 1.0, hsv.V, 1e-9)

	blue := RgbaColor{0, 0, 255, 7}
	hsl := blue.Hsla()
	assert.InDelta(t, 240.0, hsl.H, 1e-9)
	assert.InDelta(t, 1.0, hsl.S, 1e-9)
	assert.InDelta(t, 0.5, hsl.L, 1e-9)
	assert.Equal(t, uint8(7), hsl.A)
	assert.Equal(t, blue, hsl.Rgba())

	assert.Equal(t, RgbaColor{0, 255, 0, 255}, NewHsva(120, 1, 1, 255).Rgba())
	assert.Equal(t, RgbaColor{0, 255, 255, 9}, NewHsla(180, 1, 0.5, 9).Rgba())
}

func TestHueNormalization(t *testing.T) {
	assert.InDelta(t, 350.0, NewHsva(-10, 0.5, 0.5, 255).H, 1e-9)
	assert.InDelta(t, 30.0, NewHsva(390, 0.5, 0.5, 255).H, 1e-9)
	assert.Equal(t, 0.0, NewHsva(360, 0.5, 0.5, 255).H)

	c := NewHsla(10, 2, -1, 255)
	assert.Equal(t, 1.0, c.S)
	assert.Equal(t, 0.0, c.L)
}

func TestChainedConversionsKeepAlpha(t *testing.T) {
	c := NewHsva(200, 0.4, 0.8, 42)
	assert.Equal(t, uint8(42), c.Hsla().A)
	assert.Equal(t, uint8(42), c.Hsla().Hsva().A)
	assert.Equal(t, uint8(255), RgbColor{1, 2, 3}.Hsva().A)
}

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#ff8000")
	assert.True(t, ok)
	assert.Equal(t, RgbaColor{255, 128, 0, 255}, c)
	assert.Equal(t, "#ff8000", c.Hex())

	_, ok = ParseHex("orange")
	assert.False(t, ok)
}

package model

import (
	"github.com/ojrac/opensimplex-go"
)

// offsetKind identifies how a PixelOffsetConfig derives its offsets
type offsetKind int

const (
	kindNone offsetKind = iota
	kindScale
	kindList
	// kindRandom uses a seeded noise field, stable across frames
	kindRandom
)

// Distance between the noise samples of neighbouring pixels, large enough that
// adjacent pixels are not visibly correlated
const noiseStride = 1.7

// PixelOffsetConfig produces a phase offset for a pixel on a strip, roughly in the
// range [-1,1].  Color sources add the offset to their progress so that pixels along
// a strip are out of step with one another
type PixelOffsetConfig struct {
	kind    offsetKind
	scale   float64
	offsets []float64
	noise   opensimplex.Noise
}

// OffsetNone disables per pixel offsets
func OffsetNone() PixelOffsetConfig {
	return PixelOffsetConfig{kind: kindNone}
}

// OffsetScale offsets pixel i of n by i/(n-1) * scale
func OffsetScale(scale float64) PixelOffsetConfig {
	return PixelOffsetConfig{kind: kindScale, scale: scale}
}

// OffsetList uses the supplied offsets, pixels past the end of the list are not offset
func OffsetList(offsets ...float64) PixelOffsetConfig {
	cpy := make([]float64, len(offsets))
	copy(cpy, offsets)
	return PixelOffsetConfig{kind: kindList, offsets: cpy}
}

// OffsetRandom gives each pixel a pseudo random offset drawn from OpenSimplex noise.
// The same seed always produces the same offsets
func OffsetRandom(seed int64) PixelOffsetConfig {
	return PixelOffsetConfig{kind: kindRandom, noise: opensimplex.New(seed)}
}

// Offset returns the phase offset for the pixel at index on a strip of count pixels
func (c PixelOffsetConfig) Offset(index, count int) float64 {
	if index < 0 {
		return 0
	}
	switch c.kind {
	case kindScale:
		if count <= 1 {
			return 0
		}
		return float64(index) / float64(count-1) * c.scale
	case kindList:
		if index >= len(c.offsets) {
			return 0
		}
		return c.offsets[index]
	case kindRandom:
		if c.noise == nil {
			return 0
		}
		return c.noise.Eval2(float64(index)*noiseStride, 0.5)
	}
	return 0
}

// IsZero is true when the config never offsets any pixel
func (c PixelOffsetConfig) IsZero() bool {
	switch c.kind {
	case kindScale:
		return c.scale == 0
	case kindList:
		for _, o := range c.offsets {
			if o != 0 {
				return false
			}
		}
		return true
	case kindRandom:
		return c.noise == nil
	}
	return true
}

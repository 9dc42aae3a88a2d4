package source

import (
	"github.com/Oelderoth/LightWeaver-Module/animation"
	"github.com/Oelderoth/LightWeaver-Module/model"
)

// Overlay adds an overlay source on top of a background source, scaled by the
// alpha of the overlay color.  Both children keep animating, they are driven by
// an animator private to the overlay that advances in step with the overlay's
// own animation
type Overlay struct {
	uid        uint32
	background ColorSource
	overlay    ColorSource
	animator   *animation.Animator
}

// NewOverlay creates an overlay owning clones of the two sources it is given
func NewOverlay(uid uint32, background ColorSource, overlay ColorSource) (src *Overlay) {
	return &Overlay{
		uid:        uid,
		background: background.Clone(),
		overlay:    overlay.Clone(),
		animator:   animation.NewAnimator(2),
	}
}

func (src *Overlay) UID() uint32 {
	return src.uid
}

func (src *Overlay) Duration() uint32 {
	return 0
}

func composite(bg model.RgbaColor, ov model.RgbaColor) model.RgbaColor {
	alpha := float64(ov.A) / 255.0
	add := func(b, o uint8) uint8 {
		sum := uint16(float64(b) + alpha*float64(o))
		if sum > 255 {
			return 255
		}
		return uint8(sum)
	}
	return model.RgbaColor{
		R: add(bg.R, ov.R),
		G: add(bg.G, ov.G),
		B: add(bg.B, ov.B),
		A: 255,
	}
}

func (src *Overlay) Color() model.RgbaColor {
	return composite(src.background.Color(), src.overlay.Color())
}

func (src *Overlay) PixelColor(index int, count int) model.RgbaColor {
	return composite(src.background.PixelColor(index, count), src.overlay.PixelColor(index, count))
}

func (src *Overlay) Clone() ColorSource {
	return NewOverlay(src.uid, src.background, src.overlay)
}

// Animation is an every tick animation that never completes, each tick forwards
// the elapsed time to the children
func (src *Overlay) Animation() (anim animation.Animation, isPresent bool) {
	return animation.Animation{
		Duration: 0,
		Loop:     true,
		Callback: src.onTick,
	}, true
}

func (src *Overlay) onTick(param animation.Param) {
	if param.State == animation.Started {
		src.animator.StopAll()
		if anim, isPresent := src.background.Animation(); isPresent {
			src.animator.PlayAt(0, anim)
		}
		if anim, isPresent := src.overlay.Animation(); isPresent {
			src.animator.PlayAt(1, anim)
		}
	}
	src.animator.Advance(param.Elapsed)
}

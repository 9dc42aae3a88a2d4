package source

import (
	"github.com/Oelderoth/LightWeaver-Module/animation"
	"github.com/Oelderoth/LightWeaver-Module/model"
)

// Gradient walks through a model.Gradient over its duration.  The gradient carries
// the easing used between stops, the source carries the easing applied to the
// overall progress
type Gradient struct {
	uid      uint32
	gradient model.Gradient
	duration uint32
	loop     bool
	easing   animation.EasingFunc
	offsets  model.PixelOffsetConfig

	progress float64
}

// NewGradient creates a gradient source, a nil easing is Linear
func NewGradient(uid uint32, gradient model.Gradient, duration uint32, loop bool, easing animation.EasingFunc, offsets model.PixelOffsetConfig) (src *Gradient) {
	if easing == nil {
		easing = animation.Linear
	}
	return &Gradient{
		uid:      uid,
		gradient: gradient,
		duration: duration,
		loop:     loop,
		easing:   easing,
		offsets:  offsets,
	}
}

func (src *Gradient) UID() uint32 {
	return src.uid
}

func (src *Gradient) Duration() uint32 {
	return src.duration
}

func (src *Gradient) Color() model.RgbaColor {
	return src.gradient.Color(src.progress)
}

// PixelColor shifts the progress of each pixel by its configured offset so that
// pixels show different parts of the gradient at the same time
func (src *Gradient) PixelColor(index int, count int) model.RgbaColor {
	if src.offsets.IsZero() {
		return src.Color()
	}
	offset := src.offsets.Offset(index, count)
	if offset == 0 {
		return src.Color()
	}
	return src.gradient.Color(wrap(src.progress + offset))
}

// Clone copies the gradient including its progress, the copy shows the same
// color until its own animation is started
func (src *Gradient) Clone() ColorSource {
	cpy := NewGradient(src.uid, src.gradient, src.duration, src.loop, src.easing, src.offsets)
	cpy.progress = src.progress
	return cpy
}

func (src *Gradient) Animation() (anim animation.Animation, isPresent bool) {
	return animation.Animation{
		Duration: src.duration,
		Loop:     src.loop,
		Easing:   src.easing,
		Callback: src.onTick,
	}, true
}

func (src *Gradient) onTick(param animation.Param) {
	src.progress = param.EasedProgress
}

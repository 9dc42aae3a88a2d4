package source

// This package contains the color sources that can be installed on the core.
// A source is sampled once per loop for either a single aggregate color or
// a color for every pixel, any time based behavior is driven by the animation
// the source hands to the core which is ticked by the core's animator.
//
// Sources are not safe for concurrent use, they are expected to be owned by
// the goroutine running the core loop

import (
	"math"

	"github.com/Oelderoth/LightWeaver-Module/animation"
	"github.com/Oelderoth/LightWeaver-Module/model"
)

// ColorSource is implemented by every source of color the core can display
type ColorSource interface {
	// UID is the identity assigned by whoever created the source
	UID() uint32
	// Duration is the length in ticks of one pass of the source's animation
	Duration() uint32
	// Color samples the aggregate color at the current progress
	Color() model.RgbaColor
	// PixelColor samples the color for one pixel of a strip of count pixels
	PixelColor(index int, count int) model.RgbaColor
	// Clone returns an independent copy with its own progress, animations
	// obtained from the clone only drive the clone
	Clone() ColorSource
	// Animation returns the animation that drives this source, if any
	Animation() (anim animation.Animation, isPresent bool)
}

// wrap folds a progress value into [0,1)
func wrap(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p - math.Floor(p)
}

// Solid is a constant color
type Solid struct {
	uid   uint32
	color model.RgbaColor
}

// NewSolid creates a source that always displays color
func NewSolid(uid uint32, color model.RgbaColor) (src *Solid) {
	return &Solid{uid: uid, color: color}
}

func (src *Solid) UID() uint32 {
	return src.uid
}

func (src *Solid) Duration() uint32 {
	return 0
}

func (src *Solid) Color() model.RgbaColor {
	return src.color
}

func (src *Solid) PixelColor(index int, count int) model.RgbaColor {
	return src.color
}

func (src *Solid) Clone() ColorSource {
	return NewSolid(src.uid, src.color)
}

func (src *Solid) Animation() (anim animation.Animation, isPresent bool) {
	return anim, false
}

// Fade blends from a start color to an end color over its duration
type Fade struct {
	uid      uint32
	start    model.RgbaColor
	end      model.RgbaColor
	duration uint32
	loop     bool
	easing   animation.EasingFunc

	progress float64
}

// NewFade creates a fade, a nil easing is Linear.  Pairing loop with a Mirror easing
// produces an oscillation between the two colors
func NewFade(uid uint32, start model.RgbaColor, end model.RgbaColor, duration uint32, loop bool, easing animation.EasingFunc) (src *Fade) {
	if easing == nil {
		easing = animation.Linear
	}
	return &Fade{
		uid:      uid,
		start:    start,
		end:      end,
		duration: duration,
		loop:     loop,
		easing:   easing,
	}
}

func (src *Fade) UID() uint32 {
	return src.uid
}

func (src *Fade) Duration() uint32 {
	return src.duration
}

func (src *Fade) Color() model.RgbaColor {
	return model.LinearBlendRgba(src.start, src.end, src.progress)
}

func (src *Fade) PixelColor(index int, count int) model.RgbaColor {
	return src.Color()
}

func (src *Fade) Clone() ColorSource {
	cpy := NewFade(src.uid, src.start, src.end, src.duration, src.loop, src.easing)
	cpy.progress = src.progress
	return cpy
}

func (src *Fade) Animation() (anim animation.Animation, isPresent bool) {
	return animation.Animation{
		Duration: src.duration,
		Loop:     src.loop,
		Easing:   src.easing,
		Callback: src.onTick,
	}, true
}

func (src *Fade) onTick(param animation.Param) {
	src.progress = param.EasedProgress
}

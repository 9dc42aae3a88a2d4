package source

import (
	"math"

	"github.com/Oelderoth/LightWeaver-Module/animation"
	"github.com/Oelderoth/LightWeaver-Module/model"
)

// wander is a sum of five sine waves of differing frequencies sampled at a
// phase derived from progress, giving motion in [-1,1] that does not visibly
// repeat within one pass
func wander(progress float64) float64 {
	x := wrap(progress) * 96.5
	return (math.Sin(x) + math.Sin(0.3*x) + math.Sin(0.2*x) + math.Sin(0.15*x) + math.Sin(0.9*x)) * 0.2
}

// pixelPhase applies the pixel offset to progress, wrapped into [0,1)
func pixelPhase(progress float64, offsets model.PixelOffsetConfig, index int, count int) float64 {
	return wrap(progress + offsets.Offset(index, count))
}

// bounds returns the range a channel may wander within around its base value
func bounds(base float64, distance float64) (min float64, max float64) {
	return math.Max(0, base-distance), math.Min(1, base+distance)
}

// HsvMeander wanders the hue, saturation and value of a base color within the
// configured distances of it
type HsvMeander struct {
	uid                uint32
	color              model.HsvaColor
	duration           uint32
	hueDistance        float64
	saturationDistance float64
	valueDistance      float64
	offsets            model.PixelOffsetConfig

	progress float64
}

// NewHsvMeander creates a meander.  The hue distance is in degrees, the saturation
// and value distances are fractions of the [0,1] range
func NewHsvMeander(uid uint32, color model.HsvaColor, duration uint32, hueDistance float64, saturationDistance float64, valueDistance float64, offsets model.PixelOffsetConfig) (src *HsvMeander) {
	return &HsvMeander{
		uid:                uid,
		color:              color,
		duration:           duration,
		hueDistance:        hueDistance,
		saturationDistance: saturationDistance,
		valueDistance:      valueDistance,
		offsets:            offsets,
	}
}

func (src *HsvMeander) UID() uint32 {
	return src.uid
}

func (src *HsvMeander) Duration() uint32 {
	return src.duration
}

func (src *HsvMeander) Color() model.RgbaColor {
	h := src.color.H + wander(src.progress)*src.hueDistance
	s := src.color.S + wander(1-src.progress)*src.saturationDistance
	v := src.color.V + wander(0.5+src.progress)*src.valueDistance
	return model.NewHsva(h, s, v, src.color.A).Rgba()
}

func (src *HsvMeander) PixelColor(index int, count int) model.RgbaColor {
	p := pixelPhase(src.progress, src.offsets, index, count)

	h := src.color.H + wander(p)*src.hueDistance

	minS, maxS := bounds(src.color.S, src.saturationDistance)
	minV, maxV := bounds(src.color.V, src.valueDistance)
	s := minS + (maxS-minS)*(wander(1-p)+1)/2
	v := minV + (maxV-minV)*(wander(0.5+p)+1)/2

	return model.NewHsva(h, s, v, src.color.A).Rgba()
}

func (src *HsvMeander) Clone() ColorSource {
	cpy := NewHsvMeander(src.uid, src.color, src.duration, src.hueDistance, src.saturationDistance, src.valueDistance, src.offsets)
	cpy.progress = src.progress
	return cpy
}

func (src *HsvMeander) Animation() (anim animation.Animation, isPresent bool) {
	return animation.Animation{
		Duration: src.duration,
		Loop:     true,
		Easing:   animation.Linear,
		Callback: src.onTick,
	}, true
}

func (src *HsvMeander) onTick(param animation.Param) {
	src.progress = param.Progress
}

// HueMeander wanders only the hue of a base color, saturation and value are fixed
type HueMeander struct {
	uid         uint32
	color       model.HsvaColor
	duration    uint32
	hueDistance float64
	offsets     model.PixelOffsetConfig

	progress float64
}

// NewHueMeander creates a hue meander, the hue distance is in degrees
func NewHueMeander(uid uint32, color model.HsvaColor, duration uint32, hueDistance float64, offsets model.PixelOffsetConfig) (src *HueMeander) {
	return &HueMeander{
		uid:         uid,
		color:       color,
		duration:    duration,
		hueDistance: hueDistance,
		offsets:     offsets,
	}
}

func (src *HueMeander) UID() uint32 {
	return src.uid
}

func (src *HueMeander) Duration() uint32 {
	return src.duration
}

func (src *HueMeander) hue(p float64) model.RgbaColor {
	return model.NewHsva(src.color.H+wander(p)*src.hueDistance, src.color.S, src.color.V, src.color.A).Rgba()
}

func (src *HueMeander) Color() model.RgbaColor {
	return src.hue(src.progress)
}

func (src *HueMeander) PixelColor(index int, count int) model.RgbaColor {
	return src.hue(pixelPhase(src.progress, src.offsets, index, count))
}

func (src *HueMeander) Clone() ColorSource {
	cpy := NewHueMeander(src.uid, src.color, src.duration, src.hueDistance, src.offsets)
	cpy.progress = src.progress
	return cpy
}

func (src *HueMeander) Animation() (anim animation.Animation, isPresent bool) {
	return animation.Animation{
		Duration: src.duration,
		Loop:     true,
		Easing:   animation.Linear,
		Callback: src.onTick,
	}, true
}

func (src *HueMeander) onTick(param animation.Param) {
	src.progress = param.Progress
}

package source

import (
	"math"
	"math/rand"

	"github.com/Oelderoth/LightWeaver-Module/animation"
	"github.com/Oelderoth/LightWeaver-Module/model"
)

// HueDrift performs a random walk of the hue around a base color.  Each step picks
// a target within maxDistance degrees of the base hue and eases toward it taking
// a time proportional to the distance travelled, up to maxDuration ticks for the
// longest possible step
type HueDrift struct {
	uid         uint32
	color       model.HsvaColor
	maxDistance float64
	maxDuration uint32
	easing      animation.EasingFunc
	seed        int64

	rnd      *rand.Rand
	animator *animation.Animator

	start    float64
	end      float64
	progress float64
}

// NewHueDrift creates a drift, a nil easing is Linear.  Drifts created with the same
// seed walk the same path
func NewHueDrift(uid uint32, color model.HsvaColor, maxDistance float64, maxDuration uint32, easing animation.EasingFunc, seed int64) (src *HueDrift) {
	if easing == nil {
		easing = animation.Linear
	}
	src = &HueDrift{
		uid:         uid,
		color:       color,
		maxDistance: math.Abs(maxDistance),
		maxDuration: maxDuration,
		easing:      easing,
		seed:        seed,
		rnd:         rand.New(rand.NewSource(seed)),
		animator:    animation.NewAnimator(2),
		start:       color.H,
		end:         color.H,
	}
	src.step()
	return src
}

// step begins the next leg of the walk from wherever the previous leg ended
func (src *HueDrift) step() {
	src.start = src.end
	src.end = src.color.H + (src.rnd.Float64()*2-1)*src.maxDistance
	src.progress = 0

	duration := uint32(0)
	if src.maxDistance > 0 {
		duration = uint32(math.Abs(src.end-src.start) / (2 * src.maxDistance) * float64(src.maxDuration))
	}
	src.animator.Play(animation.Animation{
		Duration: duration,
		Easing:   src.easing,
		Callback: src.onStep,
	})
}

func (src *HueDrift) onStep(param animation.Param) {
	src.progress = param.EasedProgress
	if param.State == animation.Completed {
		src.step()
	}
}

func (src *HueDrift) UID() uint32 {
	return src.uid
}

func (src *HueDrift) Duration() uint32 {
	return 0
}

// Hue is the current position of the walk in degrees, not normalized
func (src *HueDrift) Hue() float64 {
	return (src.end-src.start)*src.progress + src.start
}

func (src *HueDrift) Color() model.RgbaColor {
	return model.NewHsva(src.Hue(), src.color.S, src.color.V, src.color.A).Rgba()
}

func (src *HueDrift) PixelColor(index int, count int) model.RgbaColor {
	return src.Color()
}

func (src *HueDrift) Clone() ColorSource {
	return NewHueDrift(src.uid, src.color, src.maxDistance, src.maxDuration, src.easing, src.seed)
}

// Animation is an every tick animation that forwards the elapsed time to the
// animator running the legs of the walk
func (src *HueDrift) Animation() (anim animation.Animation, isPresent bool) {
	return animation.Animation{
		Duration: 0,
		Loop:     true,
		Callback: src.onTick,
	}, true
}

func (src *HueDrift) onTick(param animation.Param) {
	src.animator.Advance(param.Elapsed)
}

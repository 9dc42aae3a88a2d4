package animation

// Easing functions remap the linear progress of an animation, adapted from
// http://gizma.com/easing/

import (
	"math"
)

// EasingFunc maps a progress value in [0,1] onto a remapped progress
type EasingFunc func(p float64) float64

func Linear(p float64) float64 {
	return p
}

func QuadraticIn(p float64) float64 {
	return p * p
}

func QuadraticOut(p float64) float64 {
	return p * (2.0 - p)
}

func QuadraticInOut(p float64) float64 {
	p *= 2.0
	if p < 1.0 {
		return p * p * 0.5
	}
	p -= 1.0
	return -0.5 * (p*(p-2.0) - 1.0)
}

func CubicIn(p float64) float64 {
	return p * p * p
}

func CubicOut(p float64) float64 {
	p -= 1.0
	return p*p*p + 1.0
}

func CubicInOut(p float64) float64 {
	p *= 2.0
	if p < 1.0 {
		return p * p * p * 0.5
	}
	p -= 2.0
	return 0.5 * (p*p*p + 2.0)
}

func QuarticIn(p float64) float64 {
	return p * p * p * p
}

func QuarticOut(p float64) float64 {
	p -= 1.0
	return -1.0 * (p*p*p*p - 1.0)
}

func QuarticInOut(p float64) float64 {
	p *= 2.0
	if p < 1.0 {
		return p * p * p * p * 0.5
	}
	p -= 2.0
	return -0.5 * (p*p*p*p - 2.0)
}

func QuinticIn(p float64) float64 {
	return p * p * p * p * p
}

func QuinticOut(p float64) float64 {
	p -= 1.0
	return p*p*p*p*p + 1.0
}

func QuinticInOut(p float64) float64 {
	p *= 2.0
	if p < 1.0 {
		return p * p * p * p * p * 0.5
	}
	p -= 2.0
	return 0.5 * (p*p*p*p*p + 2.0)
}

func SinusoidalIn(p float64) float64 {
	return -math.Cos(p*math.Pi/2) + 1.0
}

func SinusoidalOut(p float64) float64 {
	return math.Sin(p * math.Pi / 2)
}

func SinusoidalInOut(p float64) float64 {
	return -0.5 * (math.Cos(math.Pi*p) - 1.0)
}

func ExponentialIn(p float64) float64 {
	return math.Pow(2, 10.0*(p-1))
}

func ExponentialOut(p float64) float64 {
	return -math.Pow(2, -10.0*p) + 1.0
}

func ExponentialInOut(p float64) float64 {
	p *= 2.0
	if p < 1.0 {
		return 0.5 * math.Pow(2, 10*(p-1.0))
	}
	p -= 1.0
	return 0.5 * (-math.Pow(2, -10*p) + 2)
}

// Mirror plays the wrapped curve forwards over the first half of the progress and
// backwards over the second half, paired with a looping animation this produces
// a ping-pong
func Mirror(f EasingFunc) EasingFunc {
	if f == nil {
		f = Linear
	}
	return func(p float64) float64 {
		if p < 0.5 {
			return f(2 * p)
		}
		return f(2 * (1 - p))
	}
}

// Reverse flips the wrapped curve so that an ease-in becomes an ease-out
func Reverse(f EasingFunc) EasingFunc {
	if f == nil {
		f = Linear
	}
	return func(p float64) float64 {
		return 1 - f(1-p)
	}
}

type namedEasing struct {
	name string
	f    EasingFunc
}

// The index of each entry is part of the external contract for easing lookups,
// append only
var easings = []namedEasing{
	{"Linear", Linear},
	{"QuadraticIn", QuadraticIn},
	{"QuadraticOut", QuadraticOut},
	{"QuadraticInOut", QuadraticInOut},
	{"CubicIn", CubicIn},
	{"CubicOut", CubicOut},
	{"CubicInOut", CubicInOut},
	{"QuarticIn", QuarticIn},
	{"QuarticOut", QuarticOut},
	{"QuarticInOut", QuarticInOut},
	{"QuinticIn", QuinticIn},
	{"QuinticOut", QuinticOut},
	{"QuinticInOut", QuinticInOut},
	{"SinusoidalIn", SinusoidalIn},
	{"SinusoidalOut", SinusoidalOut},
	{"SinusoidalInOut", SinusoidalInOut},
	{"ExponentialIn", ExponentialIn},
	{"ExponentialOut", ExponentialOut},
	{"ExponentialInOut", ExponentialInOut},
}

// EasingByName looks up one of the named curves, Mirror and Reverse are combinators
// and are not returned here
func EasingByName(name string) (f EasingFunc, isPresent bool) {
	for _, e := range easings {
		if e.name == name {
			return e.f, true
		}
	}
	return nil, false
}

// EasingByIndex looks up a named curve by its position in EasingNames
func EasingByIndex(index int) (f EasingFunc, isPresent bool) {
	if index < 0 || index >= len(easings) {
		return nil, false
	}
	return easings[index].f, true
}

// EasingNames lists the named curves in index order
func EasingNames() (names []string) {
	names = make([]string, 0, len(easings))
	for _, e := range easings {
		names = append(names, e.name)
	}
	return names
}

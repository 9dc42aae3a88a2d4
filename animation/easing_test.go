package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEasingEndpoints(t *testing.T) {
	for i, name := range EasingNames() {
		f, isPresent := EasingByName(name)
		assert.True(t, isPresent, name)

		byIndex, isPresent := EasingByIndex(i)
		assert.True(t, isPresent, name)

		assert.InDelta(t, 0.0, f(0), 0.001, name)
		assert.InDelta(t, 1.0, f(1), 0.001, name)
		assert.InDelta(t, f(0.3), byIndex(0.3), 0.0000001, name)
	}
	assert.Len(t, EasingNames(), 19)
}

func TestEasingLookupMisses(t *testing.T) {
	_, isPresent := EasingByName("Bounce")
	assert.False(t, isPresent)
	_, isPresent = EasingByName("Mirror")
	assert.False(t, isPresent)
	_, isPresent = EasingByIndex(-1)
	assert.False(t, isPresent)
	_, isPresent = EasingByIndex(len(EasingNames()))
	assert.False(t, isPresent)
}

func TestEasingShapes(t *testing.T) {
	assert.InDelta(t, 0.25, QuadraticIn(0.5), 0.0000001)
	assert.InDelta(t, 0.75, QuadraticOut(0.5), 0.0000001)
	assert.InDelta(t, 0.5, QuadraticInOut(0.5), 0.0000001)
	assert.InDelta(t, 0.125, QuadraticInOut(0.25), 0.0000001)
	assert.InDelta(t, 0.875, QuadraticInOut(0.75), 0.0000001)
	assert.InDelta(t, 0.5, CubicInOut(0.5), 0.0000001)
	assert.InDelta(t, 0.5, SinusoidalInOut(0.5), 0.0000001)
	assert.InDelta(t, 0.5, ExponentialInOut(0.5), 0.0000001)
}

func TestMirror(t *testing.T) {
	m := Mirror(Linear)
	assert.InDelta(t, 0.0, m(0), 0.0000001)
	assert.InDelta(t, 0.5, m(0.25), 0.0000001)
	assert.InDelta(t, 1.0, m(0.5), 0.0000001)
	assert.InDelta(t, 0.5, m(0.75), 0.0000001)
	assert.InDelta(t, 0.0, m(1), 0.0000001)

	// A nil curve behaves as Linear
	assert.InDelta(t, 0.5, Mirror(nil)(0.75), 0.0000001)
}

func TestReverse(t *testing.T) {
	r := Reverse(QuadraticIn)
	for _, p := range []float64{0, 0.2, 0.5, 0.9, 1} {
		assert.InDelta(t, QuadraticOut(p), r(p), 0.0000001)
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetScale(t *testing.T) {
	c := OffsetScale(0.5)
	assert.Equal(t, 0.0, c.Offset(0, 5))
	assert.Equal(t, 0.25, c.Offset(2, 5))
	assert.Equal(t, 0.5, c.Offset(4, 5))
	assert.Equal(t, 0.0, c.Offset(0, 1))
	assert.False(t, c.IsZero())
	assert.True(t, OffsetScale(0).IsZero())
}

func TestOffsetList(t *testing.T) {
	c := OffsetList(0.1, -0.2)
	assert.Equal(t, 0.1, c.Offset(0, 10))
	assert.Equal(t, -0.2, c.Offset(1, 10))
	assert.Equal(t, 0.0, c.Offset(2, 10))
	assert.Equal(t, 0.0, c.Offset(-1, 10))
	assert.Equal(t, 0.0, OffsetList().Offset(0, 10))
}

func TestOffsetRandomIsStable(t *testing.T) {
	a := OffsetRandom(42)
	b := OffsetRandom(42)

	distinct := map[float64]struct{}{}
	for i := 0; i < 16; i++ {
		off := a.Offset(i, 16)
		assert.Equal(t, off, b.Offset(i, 16))
		assert.GreaterOrEqual(t, off, -1.0)
		assert.LessOrEqual(t, off, 1.0)
		distinct[off] = struct{}{}
	}
	assert.Greater(t, len(distinct), 8)
	assert.Equal(t, kindRandom, a.kind)
}

func TestOffsetNone(t *testing.T) {
	c := OffsetNone()
	assert.True(t, c.IsZero())
	assert.Equal(t, 0.0, c.Offset(3, 4))
	assert.Equal(t, kindNone, c.kind)
}

package lightweaver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oelderoth/LightWeaver-Module/model"
)

func TestFrameScaled(t *testing.T) {
	frame := &Frame{
		Pixels:     []model.RgbColor{{255, 128, 0}, {10, 20, 30}},
		Brightness: 128,
	}
	assert.Equal(t, []model.RgbColor{{128, 64, 0}, {5, 10, 15}}, frame.Scaled())

	frame.Brightness = 255
	assert.Equal(t, frame.Pixels, frame.Scaled())

	cpy := frame.DeepCopy()
	cpy.Pixels[0] = model.RgbColor{}
	assert.Equal(t, model.RgbColor{255, 128, 0}, frame.Pixels[0])
}

func TestFrameDriver(t *testing.T) {
	frameC := make(chan *Frame, 1)
	driver := NewFrameDriver(4, frameC)
	assert.True(t, driver.SupportedFeatures().Has(FeatureAddressable))

	driver.SetColor(model.RgbColor{1, 2, 3})
	driver.SetColorRange(model.RgbColor{9, 9, 9}, 2, 5)
	driver.SetColorRange(model.RgbColor{7, 7, 7}, -1, 2)
	driver.SetBrightness(42)
	driver.Loop()

	frame := <-frameC
	require.NotNil(t, frame)
	assert.Equal(t, uint64(1), frame.Sequence)
	assert.Equal(t, uint8(42), frame.Brightness)
	assert.Equal(t, []model.RgbColor{{7, 7, 7}, {1, 2, 3}, {9, 9, 9}, {9, 9, 9}}, frame.Pixels)

	// The published frame does not change with the driver
	driver.SetColor(model.RgbColor{})
	assert.Equal(t, model.RgbColor{1, 2, 3}, frame.Pixels[1])

	// A full channel drops frames rather than blocking
	driver.Loop()
	driver.Loop()
	assert.Equal(t, uint64(1), driver.Dropped())
	assert.Equal(t, uint64(2), (<-frameC).Sequence)
}

func TestFanOut(t *testing.T) {
	quitC := make(chan struct{})
	defer close(quitC)

	inC, subC := startFanOut(discardLogger(), quitC)

	first := make(chan *Frame, 1)
	second := make(chan *Frame, 1)
	subC <- first
	subC <- second

	// Allow the subscriptions to land before publishing
	time.Sleep(50 * time.Millisecond)

	inC <- &Frame{Sequence: 9}

	for _, ch := range []chan *Frame{first, second} {
		select {
		case frame := <-ch:
			assert.Equal(t, uint64(9), frame.Sequence)
		case <-time.After(time.Second):
			t.Fatal("frame was not delivered")
		}
	}

	// A closed subscriber is dropped without disturbing the others
	close(first)
	inC <- &Frame{Sequence: 10}
	inC <- &Frame{Sequence: 11}

	select {
	case frame := <-second:
		assert.Equal(t, uint64(10), frame.Sequence)
	case <-time.After(time.Second):
		t.Fatal("frame was not delivered")
	}
}

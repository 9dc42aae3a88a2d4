package lightweaver

import (
	"testing"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oelderoth/LightWeaver-Module/model"
	"github.com/Oelderoth/LightWeaver-Module/source"
)

func TestRunDrivesCore(t *testing.T) {
	frameC := make(chan *Frame, 1)
	driver := NewFrameDriver(2, frameC)
	core := NewCore(driver, 2)
	core.SetColorSource(source.NewSolid(1, blue))

	quitC := make(chan struct{})
	doneC := make(chan struct{})
	go func() {
		defer close(doneC)
		Run(quitC, core, time.Millisecond, discardLogger())
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case frame := <-frameC:
			if frame.Pixels[0] != (model.RgbColor{0, 0, 255}) {
				continue
			}
			close(quitC)
			<-doneC

			timer, ok := metrics.DefaultRegistry.Get(LoopTimerName).(metrics.Timer)
			require.True(t, ok)
			assert.True(t, timer.Count() > 0)
			return
		case <-deadline:
			t.Fatal("core never reached the source color")
		}
	}
}

func TestLogDriver(t *testing.T) {
	driver := NewLogDriver(discardLogger())
	driver.Setup()
	driver.SetColor(model.RgbColor{1, 2, 3})
	driver.SetBrightness(4)
	driver.Loop()
	first := driver.hash

	driver.Loop()
	assert.Equal(t, first, driver.hash)

	driver.SetColorRange(model.RgbColor{3, 2, 1}, 0, 1)
	driver.Loop()
	assert.NotEqual(t, first, driver.hash)
	assert.Equal(t, FeatureBrightness|FeatureColor, driver.SupportedFeatures())
}

func TestLoopStats(t *testing.T) {
	timer := metrics.NewTimer()
	timer.Update(2 * time.Millisecond)

	msg := loopStats(timer, 1000, 2*time.Second, NewLogDriver(nil))
	assert.Contains(t, msg, "avg loop rate for past 1000 loops 500.0/s")
	assert.NotContains(t, msg, "dropped")

	frameC := make(chan *Frame)
	driver := NewFrameDriver(1, frameC)
	driver.Loop()
	msg = loopStats(timer, 1000, 2*time.Second, driver)
	assert.Contains(t, msg, "1 frames dropped")
}

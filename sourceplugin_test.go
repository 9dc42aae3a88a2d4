package lightweaver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oelderoth/LightWeaver-Module/model"
	"github.com/Oelderoth/LightWeaver-Module/source"
)

func TestSourcePlugin(t *testing.T) {
	driver := newRecordingDriver(FeatureColor|FeatureBrightness, nil)
	core, clock := newTestCore(driver, 1)

	updateC := make(chan *Update, 4)
	require.True(t, core.AddPlugin(NewSourcePlugin(updateC)))

	plugin, ok := core.PluginOfType(SourcePluginType).(*SourcePlugin)
	require.True(t, ok)

	dim := uint8(60)
	updateC <- &Update{Source: source.NewSolid(1, red)}
	updateC <- &Update{Brightness: &dim}
	updateC <- nil

	step(core, clock, time.Millisecond)
	assert.Equal(t, uint64(2), plugin.Applied())
	require.NotNil(t, core.ColorSource())
	assert.Equal(t, uint32(1), core.ColorSource().UID())
	assert.Equal(t, uint8(60), core.Brightness())

	step(core, clock, time.Second)
	step(core, clock, time.Second)
	assert.Equal(t, model.RgbColor{255, 0, 0}, driver.color)
	assert.Equal(t, uint8(60), driver.brightness)

	updateC <- &Update{Clear: true}
	step(core, clock, time.Millisecond)
	assert.Nil(t, core.ColorSource())

	// Closing the channel leaves the plugin idle
	close(updateC)
	step(core, clock, time.Millisecond)
	step(core, clock, time.Millisecond)
	assert.Equal(t, uint64(3), plugin.Applied())
}

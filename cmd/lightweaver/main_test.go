package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/karlmutch/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	lightweaver "github.com/Oelderoth/LightWeaver-Module"
	"github.com/Oelderoth/LightWeaver-Module/model"
	"github.com/Oelderoth/LightWeaver-Module/scene"
	"github.com/Oelderoth/LightWeaver-Module/source"
)

func TestRenderPreview(t *testing.T) {
	frame := &lightweaver.Frame{
		Pixels:     []model.RgbColor{{255, 0, 0}, {0, 0, 255}},
		Brightness: 255,
	}
	out := renderPreview(newPreviewRenderer(&bytes.Buffer{}), frame)

	assert.True(t, strings.HasPrefix(out, "\r"))
	assert.True(t, strings.HasSuffix(out, " 255"))
	red := strings.Index(out, "48;2;255;0;0m  ")
	blue := strings.Index(out, "48;2;0;0;255m  ")
	require.NotEqual(t, -1, red)
	require.NotEqual(t, -1, blue)
	assert.Less(t, red, blue)
}

func TestRenderPreviewBrightness(t *testing.T) {
	frame := &lightweaver.Frame{
		Pixels:     []model.RgbColor{{200, 100, 50}},
		Brightness: 0,
	}
	out := renderPreview(newPreviewRenderer(&bytes.Buffer{}), frame)

	assert.Contains(t, out, "48;2;0;0;0m")
	assert.True(t, strings.HasSuffix(out, "   0"))
}

func TestRelayScenes(t *testing.T) {
	docC := make(chan *scene.Document, 1)
	updateC := make(chan *lightweaver.Update, 1)
	quitC := make(chan struct{})
	defer close(quitC)

	go relayScenes(docC, updateC, quitC)

	level := uint8(9)
	docC <- &scene.Document{Brightness: &level, Source: source.NewSolid(3, model.Black)}

	select {
	case update := <-updateC:
		require.NotNil(t, update.Brightness)
		assert.Equal(t, uint8(9), *update.Brightness)
		assert.Equal(t, uint32(3), update.Source.UID())
	case <-time.After(time.Second):
		t.Fatal("update was not relayed")
	}
}

func TestPreviewWritesFrames(t *testing.T) {
	subscribeC := make(chan chan *lightweaver.Frame, 1)
	quitC := make(chan struct{})
	doneC := make(chan struct{})
	out := &bytes.Buffer{}

	go func() {
		defer close(doneC)
		runPreview(subscribeC, out, quitC)
	}()

	frameC := <-subscribeC
	frameC <- &lightweaver.Frame{Pixels: []model.RgbColor{{1, 2, 3}}, Brightness: 255}
	time.Sleep(50 * time.Millisecond)
	close(quitC)
	<-doneC

	assert.Contains(t, out.String(), "\x1b[48;2;1;2;3m")
}

func TestStartDriver(t *testing.T) {
	quitC := make(chan struct{})
	defer close(quitC)
	errorC := make(chan errors.Error, 1)
	g := &errgroup.Group{}

	driver := startDriver(g, driverLog, 4, errorC, quitC)
	assert.IsType(t, &lightweaver.LogDriver{}, driver)
	assert.False(t, driver.SupportedFeatures().Has(lightweaver.FeatureAddressable))

	driver = startDriver(g, driverOPC, 4, errorC, quitC)
	assert.IsType(t, &lightweaver.FrameDriver{}, driver)
	assert.True(t, driver.SupportedFeatures().Has(lightweaver.FeatureAddressable))
}

func TestValidateDriverFlag(t *testing.T) {
	defer func(name string) { *driverName = name }(*driverName)

	*driverName = "serial"
	_, err := validateFlags()
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "driver")

	*driverName = driverLog
	_, err = validateFlags()
	assert.Nil(t, err)
}

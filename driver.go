package lightweaver

// This file contains the contract between the core and the hardware, or
// anything pretending to be hardware, that displays the colors it produces

import (
	"strings"

	"github.com/Oelderoth/LightWeaver-Module/model"
)

// Feature is a set of capabilities advertised by a driver
type Feature uint32

const (
	FeatureBrightness Feature = 1 << iota
	FeatureColor
	FeatureAnimation
	FeatureAddressable
)

var featureNames = []struct {
	feature Feature
	name    string
}{
	{FeatureBrightness, "Brightness"},
	{FeatureColor, "Color"},
	{FeatureAnimation, "Animation"},
	{FeatureAddressable, "Addressable"},
}

// Has is true when every feature in other is present
func (f Feature) Has(other Feature) bool {
	return f&other == other
}

func (f Feature) String() string {
	names := []string{}
	for _, fn := range featureNames {
		if f.Has(fn.feature) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// Driver displays colors.  The core calls SetColor, or SetColorRange for every
// pixel when the driver is addressable, and SetBrightness exactly once per loop
// followed by Loop
type Driver interface {
	Setup()
	Loop()
	SetColor(color model.RgbColor)
	SetColorRange(color model.RgbColor, offset int, length int)
	SetBrightness(brightness uint8)
	SupportedFeatures() Feature
}

// NoopDriver discards everything
type NoopDriver struct{}

func (NoopDriver) Setup() {}
func (NoopDriver) Loop() {}
func (NoopDriver) SetColor(color model.RgbColor) {}
func (NoopDriver) SetColorRange(model.RgbColor, int, int) {}
func (NoopDriver) SetBrightness(brightness uint8) {}
func (NoopDriver) SupportedFeatures() Feature { return 0 }

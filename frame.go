package lightweaver

// This file contains a driver that captures what the core displays on every
// loop as a frame, frames are handed off to other goroutines for delivery to
// the LEDs

import (
	"github.com/Oelderoth/LightWeaver-Module/model"
)

// Frame is a snapshot of one loop of the core.  Frames are shared between
// subscribers once published and must be treated as read only
type Frame struct {
	Sequence   uint64
	Pixels     []model.RgbColor
	Brightness uint8
}

// Scaled returns the pixels with the brightness applied
func (f *Frame) Scaled() (pixels []model.RgbColor) {
	pixels = make([]model.RgbColor, len(f.Pixels))
	scale := func(c uint8) uint8 {
		return uint8(uint16(c) * uint16(f.Brightness) / 255)
	}
	for i, p := range f.Pixels {
		pixels[i] = model.RgbColor{R: scale(p.R), G: scale(p.G), B: scale(p.B)}
	}
	return pixels
}

// DeepCopy returns a frame that shares nothing with the original
func (f *Frame) DeepCopy() (cpy *Frame) {
	if f == nil {
		return nil
	}
	cpy = &Frame{
		Sequence:   f.Sequence,
		Pixels:     make([]model.RgbColor, len(f.Pixels)),
		Brightness: f.Brightness,
	}
	copy(cpy.Pixels, f.Pixels)
	return cpy
}

// FrameDriver is an addressable driver that publishes a Frame on every loop.  The
// driver never blocks the core, frames that cannot be published immediately
// are dropped and counted
type FrameDriver struct {
	pixels     []model.RgbColor
	brightness uint8
	sequence   uint64
	dropped    uint64
	frameC     chan<- *Frame
}

// NewFrameDriver creates a driver for pixelCount pixels publishing on frameC
func NewFrameDriver(pixelCount int, frameC chan<- *Frame) (driver *FrameDriver) {
	if pixelCount < 1 {
		pixelCount = 1
	}
	return &FrameDriver{
		pixels:     make([]model.RgbColor, pixelCount),
		brightness: 255,
		frameC:     frameC,
	}
}

func (driver *FrameDriver) Setup() {}

// Loop publishes the colors and brightness set since the previous loop
func (driver *FrameDriver) Loop() {
	driver.sequence++
	frame := &Frame{
		Sequence:   driver.sequence,
		Pixels:     make([]model.RgbColor, len(driver.pixels)),
		Brightness: driver.brightness,
	}
	copy(frame.Pixels, driver.pixels)

	select {
	case driver.frameC <- frame:
	default:
		driver.dropped++
	}
}

// SetColor sets every pixel to the same color
func (driver *FrameDriver) SetColor(color model.RgbColor) {
	for i := range driver.pixels {
		driver.pixels[i] = color
	}
}

// SetColorRange sets length pixels starting at offset, the range is clipped to the strip
func (driver *FrameDriver) SetColorRange(color model.RgbColor, offset int, length int) {
	if offset < 0 {
		length += offset
		offset = 0
	}
	for i := offset; i < offset+length && i < len(driver.pixels); i++ {
		driver.pixels[i] = color
	}
}

func (driver *FrameDriver) SetBrightness(brightness uint8) {
	driver.brightness = brightness
}

func (driver *FrameDriver) SupportedFeatures() Feature {
	return FeatureBrightness | FeatureColor | FeatureAnimation | FeatureAddressable
}

// Dropped is the number of frames that could not be published
func (driver *FrameDriver) Dropped() uint64 {
	return driver.dropped
}

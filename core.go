package lightweaver

// This file contains the core of the engine.  The core owns the installed
// color source and hides every change to the source or brightness behind a
// short crossfade, it pushes the result to a driver once per loop.
//
// The core is not safe for concurrent use, every method is expected to be called
// from the goroutine calling Loop.  Other goroutines pass changes in using the
// SourcePlugin
//

import (
	"fmt"

	"github.com/mgutz/logxi"

	"github.com/Oelderoth/LightWeaver-Module/animation"
	"github.com/Oelderoth/LightWeaver-Module/model"
	"github.com/Oelderoth/LightWeaver-Module/source"
)

// TransitionDuration is the length in ticks of color and brightness crossfades
const TransitionDuration = 500

const (
	backgroundSlot = iota
	colorTransitionSlot
	brightnessTransitionSlot
	slotCount
)

var transitionEasing = animation.QuadraticInOut

// colorTransition remembers what was displayed when a crossfade began
type colorTransition struct {
	from     []model.RgbColor
	progress float64
}

func (t *colorTransition) onTick(param animation.Param) {
	t.progress = param.EasedProgress
}

type brightnessTransition struct {
	from     uint8
	progress float64
}

func (t *brightnessTransition) onTick(param animation.Param) {
	t.progress = param.EasedProgress
}

// Core drives a single driver from a color source
type Core struct {
	driver     Driver
	pixelCount int
	brightness uint8

	animator   *animation.Animator
	source     source.ColorSource
	background animation.Handle
	color      *colorTransition
	bright     *brightnessTransition

	plugins    []Plugin
	maxPlugins int
	connected  bool

	logger logxi.Logger
}

// CoreOption configures a Core
type CoreOption func(c *Core)

// WithClock replaces the clock used to measure ticks
func WithClock(clock animation.Clock) CoreOption {
	return func(c *Core) {
		c.animator = animation.NewAnimator(slotCount, animation.WithClock(clock))
	}
}

// WithBrightness sets the brightness shown from the first loop, without a crossfade
func WithBrightness(brightness uint8) CoreOption {
	return func(c *Core) {
		c.brightness = brightness
	}
}

// WithLogger logs source and brightness changes at debug level
func WithLogger(logger logxi.Logger) CoreOption {
	return func(c *Core) {
		c.logger = logger
	}
}

// WithMaxPlugins limits the number of plugins that can be added
func WithMaxPlugins(max int) CoreOption {
	return func(c *Core) {
		if max >= 0 {
			c.maxPlugins = max
		}
	}
}

// NewCore creates a core displaying on driver, a strip of pixelCount pixels.  A
// nil driver is replaced by a NoopDriver
func NewCore(driver Driver, pixelCount int, opts ...CoreOption) (c *Core) {
	if driver == nil {
		driver = NoopDriver{}
	}
	if pixelCount < 1 {
		pixelCount = 1
	}
	c = &Core{
		driver:     driver,
		pixelCount: pixelCount,
		brightness: 255,
		maxPlugins: 4,
		plugins:    []Plugin{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.animator == nil {
		c.animator = animation.NewAnimator(slotCount)
	}
	return c
}

func (c *Core) debug(msg string, args ...interface{}) {
	if c.logger != nil && c.logger.IsDebug() {
		c.logger.Debug(msg, args...)
	}
}

// AddPlugin creates and registers a plugin, false is returned if the core already
// holds the maximum number of plugins
func (c *Core) AddPlugin(factory PluginFactory) bool {
	if factory == nil || len(c.plugins) >= c.maxPlugins {
		return false
	}
	plugin := factory(c)
	if plugin == nil {
		return false
	}
	c.plugins = append(c.plugins, plugin)
	c.debug("plugin added", "type", plugin.Type())
	return true
}

// PluginOfType returns the first registered plugin of the named type
func (c *Core) PluginOfType(pluginType string) Plugin {
	for _, plugin := range c.plugins {
		if plugin.Type() == pluginType {
			return plugin
		}
	}
	return nil
}

// SetConnected informs network plugins when the network state changes, repeating
// the current state does nothing
func (c *Core) SetConnected(connected bool) {
	if connected == c.connected {
		return
	}
	c.connected = connected
	for _, plugin := range c.plugins {
		if np, ok := plugin.(NetworkPlugin); ok {
			if connected {
				np.OnConnected()
			} else {
				np.OnDisconnected()
			}
		}
	}
}

// SupportedFeatures are the features of the driver
func (c *Core) SupportedFeatures() Feature {
	return c.driver.SupportedFeatures()
}

// Setup runs the plugin setup hooks in the order the plugins were added, then the
// driver setup
func (c *Core) Setup() {
	for _, plugin := range c.plugins {
		plugin.Setup()
	}
	c.driver.Setup()
	c.animator.Setup()
}

// Loop runs one iteration of the engine
func (c *Core) Loop() {
	for _, plugin := range c.plugins {
		plugin.Loop()
	}

	c.animator.Loop()

	colors := c.displayColors()
	if c.addressable() {
		for i, color := range colors {
			c.driver.SetColorRange(color, i, 1)
		}
	} else {
		c.driver.SetColor(colors[0])
	}
	c.driver.SetBrightness(c.displayBrightness())
	c.driver.Loop()
}

func (c *Core) addressable() bool {
	return c.pixelCount > 1 && c.driver.SupportedFeatures().Has(FeatureAddressable)
}

// targetColors samples the installed source, opaque black without one
func (c *Core) targetColors() (colors []model.RgbColor) {
	if !c.addressable() {
		if c.source == nil {
			return []model.RgbColor{model.Black.Rgb()}
		}
		return []model.RgbColor{c.source.Color().Rgb()}
	}

	colors = make([]model.RgbColor, c.pixelCount)
	if c.source == nil {
		return colors
	}
	for i := range colors {
		colors[i] = c.source.PixelColor(i, c.pixelCount).Rgb()
	}
	return colors
}

// displayColors is what the driver is shown, the source colors blended from the
// colors captured when the last crossfade began
func (c *Core) displayColors() (colors []model.RgbColor) {
	colors = c.targetColors()
	if c.color == nil {
		return colors
	}
	if c.color.progress >= 1 {
		c.color = nil
		return colors
	}
	for i := range colors {
		if i < len(c.color.from) {
			colors[i] = model.LinearBlendRgb(c.color.from[i], colors[i], c.color.progress)
		}
	}
	return colors
}

func (c *Core) displayBrightness() uint8 {
	if c.bright == nil {
		return c.brightness
	}
	if c.bright.progress >= 1 {
		c.bright = nil
		return c.brightness
	}
	from := float64(c.bright.from)
	return uint8((float64(c.brightness)-from)*c.bright.progress + from)
}

func (c *Core) startColorTransition() {
	t := &colorTransition{from: c.displayColors()}
	c.color = t
	c.animator.PlayAt(colorTransitionSlot, animation.Animation{
		Duration: TransitionDuration,
		Easing:   transitionEasing,
		Callback: t.onTick,
	})
}

func (c *Core) startBrightnessTransition() {
	t := &brightnessTransition{from: c.displayBrightness()}
	c.bright = t
	c.animator.PlayAt(brightnessTransitionSlot, animation.Animation{
		Duration: TransitionDuration,
		Easing:   transitionEasing,
		Callback: t.onTick,
	})
}

// ClearColorSource fades to black and drops the installed source
func (c *Core) ClearColorSource() {
	c.startColorTransition()
	c.animator.Stop(c.background)
	c.background = animation.Handle{}
	c.source = nil
}

// SetColorSource crossfades to a clone of src, the caller keeps ownership of src.
// A nil src is the same as ClearColorSource
func (c *Core) SetColorSource(src source.ColorSource) {
	c.ClearColorSource()
	if src == nil {
		c.debug("color source cleared")
		return
	}

	c.source = src.Clone()
	if anim, isPresent := c.source.Animation(); isPresent {
		c.background = c.animator.PlayAt(backgroundSlot, anim)
	}
	c.debug(fmt.Sprintf("color source %d set", c.source.UID()), "type", fmt.Sprintf("%T", c.source))
}

// SetBrightness crossfades to a new brightness
func (c *Core) SetBrightness(brightness uint8) {
	c.startBrightnessTransition()
	c.brightness = brightness
	c.debug("brightness set", "brightness", brightness)
}

// Brightness is the brightness most recently set, ignoring any crossfade in progress
func (c *Core) Brightness() uint8 {
	return c.brightness
}

// ColorSource returns the installed source, nil when none is installed
func (c *Core) ColorSource() source.ColorSource {
	return c.source
}

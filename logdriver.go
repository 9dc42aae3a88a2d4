package lightweaver

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"github.com/mgutz/logxi"

	"github.com/Oelderoth/LightWeaver-Module/model"
)

type logState struct {
	Color      model.RgbColor
	Brightness uint8
}

// LogDriver is a single color driver that logs at debug level every time the
// displayed color or brightness changes
type LogDriver struct {
	logger logxi.Logger
	state  logState
	hash   []byte
}

// NewLogDriver creates a driver that logs to logger
func NewLogDriver(logger logxi.Logger) (driver *LogDriver) {
	if logger == nil {
		logger = logxi.NewLogger(io.Discard, "lightweaver")
	}
	return &LogDriver{
		logger: logger,
		hash:   []byte{},
	}
}

func (driver *LogDriver) Setup() {
	driver.logger.Debug("log driver ready")
}

func (driver *LogDriver) Loop() {
	hash := structhash.Md5(driver.state, 1)
	if bytes.Equal(hash, driver.hash) {
		return
	}
	driver.hash = hash
	driver.logger.Debug(fmt.Sprintf("display %s", driver.state.Color.Rgba().Hex()), "brightness", driver.state.Brightness)
}

func (driver *LogDriver) SetColor(color model.RgbColor) {
	driver.state.Color = color
}

// SetColorRange is never used by the core for a non addressable driver, the color
// is still recorded
func (driver *LogDriver) SetColorRange(color model.RgbColor, offset int, length int) {
	driver.state.Color = color
}

func (driver *LogDriver) SetBrightness(brightness uint8) {
	driver.state.Brightness = brightness
}

func (driver *LogDriver) SupportedFeatures() Feature {
	return FeatureBrightness | FeatureColor
}

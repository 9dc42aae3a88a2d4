package lightweaver

// This file contains the contract for add-ons that run inside the core loop
// alongside the animations

import (
	"github.com/Oelderoth/LightWeaver-Module/source"
)

// Controller is the view of the core given to plugins
type Controller interface {
	SetColorSource(src source.ColorSource)
	ClearColorSource()
	SetBrightness(brightness uint8)
	Brightness() uint8
	SupportedFeatures() Feature
	PluginOfType(pluginType string) Plugin
}

// Plugin is an add-on with hooks called once per core setup and loop
type Plugin interface {
	Type() string
	Setup()
	Loop()
}

// NetworkPlugin is a Plugin that also wants to know when the network comes and goes
type NetworkPlugin interface {
	Plugin
	OnConnected()
	OnDisconnected()
}

// PluginFactory creates a plugin bound to the controller it will use
type PluginFactory func(ctrl Controller) Plugin

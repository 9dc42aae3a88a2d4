package lightweaver

import (
	"github.com/Oelderoth/LightWeaver-Module/source"
)

// SourcePluginType identifies the SourcePlugin
const SourcePluginType = "source"

// Update is a change requested from outside the core loop.  A nil Source leaves
// the installed source alone unless Clear is set, a nil Brightness leaves the
// brightness alone
type Update struct {
	Source     source.ColorSource
	Clear      bool
	Brightness *uint8
}

// SourcePlugin applies updates received on a channel, it is the way for other
// goroutines to change what the core displays.  Updates are drained and applied
// in order at the start of every core loop
type SourcePlugin struct {
	ctrl    Controller
	updateC <-chan *Update
	applied uint64
}

// NewSourcePlugin returns a factory for a SourcePlugin reading from updateC
func NewSourcePlugin(updateC <-chan *Update) PluginFactory {
	return func(ctrl Controller) Plugin {
		return &SourcePlugin{
			ctrl:    ctrl,
			updateC: updateC,
		}
	}
}

func (p *SourcePlugin) Type() string {
	return SourcePluginType
}

func (p *SourcePlugin) Setup() {}

func (p *SourcePlugin) Loop() {
	for {
		select {
		case update, ok := <-p.updateC:
			if !ok {
				// A nil channel is never ready so the plugin goes quiet
				p.updateC = nil
				return
			}
			p.apply(update)
		default:
			return
		}
	}
}

func (p *SourcePlugin) apply(update *Update) {
	if update == nil {
		return
	}
	switch {
	case update.Source != nil:
		p.ctrl.SetColorSource(update.Source)
	case update.Clear:
		p.ctrl.ClearColorSource()
	}
	if update.Brightness != nil && *update.Brightness != p.ctrl.Brightness() {
		p.ctrl.SetBrightness(*update.Brightness)
	}
	p.applied++
}

// Applied is the number of updates applied so far
func (p *SourcePlugin) Applied() uint64 {
	return p.applied
}

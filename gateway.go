package lightweaver

// This module wires the frames produced by the core to the goroutines that
// consume them

import (
	"io"
	"time"

	"github.com/karlmutch/errors"
	"github.com/mgutz/logxi"
)

// DefaultRefresh is how often the fadecandy sender checks for a new frame
const DefaultRefresh = 20 * time.Millisecond

type Gateway struct {
	Logger logxi.Logger
}

// Start creates the frame broadcaster and, when a server is given, a fadecandy
// sender subscribed to it.  Frames sent on frameC are relayed to every
// subscription added using subscribeC
func (gw *Gateway) Start(server string, channel uint8, refresh time.Duration, errorC chan<- errors.Error, quitC <-chan struct{}) (frameC chan *Frame, subscribeC chan chan *Frame) {

	logger := gw.Logger
	if logger == nil {
		logger = logxi.NewLogger(io.Discard, "lightweaver")
	}
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	frameC, subscribeC = startFanOut(logger, quitC)

	if len(server) != 0 {
		StartFadeCandy(server, channel, refresh, subscribeC, errorC, quitC)
	}

	return frameC, subscribeC
}

package lightweaver

// This file contains a function that when started will subscribe to the frames
// produced by the core and will on a regular basis send the most recent one to
// a fadecandy server using the Open Pixel Control protocol

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/cnf/structhash"

	"github.com/kellydunn/go-opc"

	"github.com/Oelderoth/LightWeaver-Module/model"
)

// reconnectBackoff limits how often a lost fadecandy server is redialed
const reconnectBackoff = time.Second

type lastFrame struct {
	frame *Frame
	sync.Mutex
}

// opcFrame is the hashed content of a frame, the sequence number is left out so
// that identical frames are not resent
type opcFrame struct {
	Pixels []model.RgbColor
}

// StartFadeCandy subscribes to frames and sends them to the fcserver at server on
// the OPC channel given, checking for a new frame every refresh interval
//
func StartFadeCandy(server string, channel uint8, refresh time.Duration, subscribeC chan chan *Frame, errorC chan<- errors.Error, quitC <-chan struct{}) {

	frameC := make(chan *Frame, 1)
	subscribeC <- frameC

	last := &lastFrame{}

	go func() {
		defer close(frameC)
		for {
			select {
			case frame := <-frameC:
				if nil == frame {
					continue
				}
				last.Lock()
				last.frame = frame
				last.Unlock()
			case <-quitC:
				return
			}
		}
	}()

	go runFadeCandyOPC(last, server, channel, refresh, errorC, quitC)
}

func sendError(err errors.Error, errorC chan<- errors.Error) {
	select {
	case errorC <- err:
	case <-time.After(100 * time.Millisecond):
		fmt.Fprintln(os.Stderr, err.Error())
	}
}

func sendOPC(oc *opc.Client, channel uint8, pixels []model.RgbColor) (err errors.Error) {

	m := opc.NewMessage(channel)
	m.SetLength(uint16(len(pixels) * 3))

	for i, p := range pixels {
		m.SetPixelColor(i, p.R, p.G, p.B)
	}

	if errGo := oc.Send(m); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

func runFadeCandyOPC(last *lastFrame, server string, channel uint8, refresh time.Duration, errorC chan<- errors.Error, quitC <-chan struct{}) {

	hash := []byte{}

	oc := opc.NewClient()
	connected := false
	nextDial := time.Time{}

	connect := func() {
		if connected || time.Now().Before(nextDial) {
			return
		}
		if errGo := oc.Connect("tcp", server); errGo != nil {
			nextDial = time.Now().Add(reconnectBackoff)
			sendError(errors.Wrap(errGo).With("url", server).With("stack", stack.Trace().TrimRuntime()), errorC)
			return
		}
		connected = true
		// Resend whatever is current to the new connection
		hash = []byte{}
	}

	for {
		select {
		case <-time.After(refresh):
			connect()
			if !connected {
				continue
			}

			last.Lock()
			frame := last.frame
			last.Unlock()
			if frame == nil {
				continue
			}

			content := opcFrame{Pixels: frame.Scaled()}
			newHash := structhash.Md5(content, 1)
			if bytes.Compare(hash, newHash) == 0 {
				continue
			}
			if err := sendOPC(oc, channel, content.Pixels); err != nil {
				connected = false
				nextDial = time.Now().Add(reconnectBackoff)
				sendError(err.With("url", server), errorC)
				continue
			}
			hash = newHash
		case <-quitC:
			return
		}
	}
}

package lightweaver

import (
	"fmt"
	"sync"
	"time"

	"github.com/mgutz/logxi"
)

// subscriberTimeout bounds how long a slow subscriber can hold up delivery to
// the others
const subscriberTimeout = 50 * time.Millisecond

type subscriptions struct {
	subs []chan *Frame
	sync.Mutex
}

// send delivers a frame to one subscriber, false is returned if the subscriber
// has closed its channel and should be dropped
func (s *subscriptions) send(ch chan *Frame, frame *Frame, logger logxi.Logger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	select {
	case ch <- frame:
	case <-time.After(subscriberTimeout):
		logger.Debug(fmt.Sprintf("subscriber missed frame %d", frame.Sequence))
	}
	return true
}

// startFanOut implement a broadcast mechanisim for accepting frames and relaying
// then to subscribers.  The function returns a single channel to which frames
// get sent and, a channel that can be used to add listeners.  Subscribers
// that close their channel are dropped on the next frame
//
func startFanOut(logger logxi.Logger, quitC <-chan struct{}) (inC chan *Frame, subC chan chan *Frame) {

	inC = make(chan *Frame, 1)
	subC = make(chan chan *Frame, 1)

	subs := &subscriptions{
		subs: []chan *Frame{},
	}

	go func(quitC <-chan struct{}) {
		defer logger.Debug("fanout stopped")
		for {
			select {
			case <-quitC:
				return
			case sub := <-subC:
				if nil != sub {
					subs.Lock()
					subs.subs = append(subs.subs, sub)
					subs.Unlock()
					logger.Debug("subscription added")
				}
			case frame := <-inC:
				if frame == nil {
					continue
				}
				// Subscribers that fail are groomed out using
				// https://github.com/golang/go/wiki/SliceTricks#filtering-without-allocating
				subs.Lock()
				newSubs := subs.subs[:0]
				for _, ch := range subs.subs {
					if subs.send(ch, frame, logger) {
						newSubs = append(newSubs, ch)
						continue
					}
					logger.Debug("subscription dropped failed to send")
				}
				subs.subs = newSubs
				subs.Unlock()
			}
		}
	}(quitC)

	return inC, subC
}

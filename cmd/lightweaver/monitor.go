package main

import (
	"fmt"

	lightweaver "github.com/Oelderoth/LightWeaver-Module"
	"github.com/Oelderoth/LightWeaver-Module/model"
)

// This file implements a monitor that subscribes to and logs the frames being
// displayed, frames are only logged when they differ from the previous one

func sameFrame(a []model.RgbColor, b *lightweaver.Frame) bool {
	if len(a) != len(b.Pixels) {
		return false
	}
	for i := range a {
		if a[i] != b.Pixels[i] {
			return false
		}
	}
	return true
}

func runMonitoring(subscribeC chan chan *lightweaver.Frame, quitC <-chan struct{}) {

	frameC := make(chan *lightweaver.Frame, 1)
	defer close(frameC)
	subscribeC <- frameC

	last := []model.RgbColor{}
	brightness := uint8(0)

	for {
		select {
		case frame := <-frameC:
			if frame == nil || !logger.IsDebug() {
				continue
			}
			if frame.Brightness == brightness && sameFrame(last, frame) {
				continue
			}
			last = frame.DeepCopy().Pixels
			brightness = frame.Brightness
			logger.Debug(fmt.Sprintf("frame %d %+v", frame.Sequence, frame.Pixels), "brightness", frame.Brightness)
		case <-quitC:
			return
		}
	}
}

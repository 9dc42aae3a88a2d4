package lightweaver

import (
	"fmt"
	"time"

	"github.com/mgutz/logxi"
	"github.com/rcrowley/go-metrics"
)

const (
	// LoopTimerName is the go-metrics timer in the default registry recording the
	// duration of every core loop
	LoopTimerName = "lightweaver.loop"

	statsEvery = 1000
)

// Run sets up the core and then calls its Loop every interval until quitC is
// closed.  Every 1000 loops the achieved loop rate is logged
func Run(quitC <-chan struct{}, core *Core, interval time.Duration, logger logxi.Logger) {

	timer := metrics.GetOrRegisterTimer(LoopTimerName, metrics.DefaultRegistry)

	core.Setup()

	tick := time.NewTicker(interval)
	defer tick.Stop()

	loops := 0
	checkpoint := time.Now()

	for {
		select {
		case <-tick.C:
			timer.Time(core.Loop)

			loops++
			if loops%statsEvery != 0 || logger == nil {
				continue
			}
			logger.Info(loopStats(timer, statsEvery, time.Since(checkpoint), core.driver))
			checkpoint = time.Now()

		case <-quitC:
			return
		}
	}
}

// droppingDriver is implemented by drivers that can fail to deliver frames
type droppingDriver interface {
	Dropped() uint64
}

// loopStats formats the statistics line logged by Run
func loopStats(timer metrics.Timer, loops int, since time.Duration, driver Driver) (msg string) {
	snapshot := timer.Snapshot()
	msg = fmt.Sprintf("avg loop rate for past %d loops %.1f/s, mean %s, p99 %s", loops, float64(loops)/since.Seconds(),
		time.Duration(snapshot.Mean()).String(),
		time.Duration(snapshot.Percentile(0.99)).String())
	if d, ok := driver.(droppingDriver); ok {
		msg += fmt.Sprintf(", %d frames dropped", d.Dropped())
	}
	return msg
}

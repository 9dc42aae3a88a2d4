package animation

// This file contains the value types exchanged between an Animator and the
// code that schedules animations on it

import (
	"time"
)

// State is the lifecycle position of an animator slot
type State int

const (
	Stopped State = iota
	Started
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Started:
		return "Started"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Completed:
		return "Completed"
	}
	return "Unknown"
}

// Param is delivered to an animation callback on every tick the animation advances
type Param struct {
	Progress      float64
	EasedProgress float64
	Iterations    int
	State         State
	// Elapsed is the number of whole ticks consumed by the advance that produced
	// this callback, used to drive nested animators in lock step
	Elapsed uint32
}

// Callback receives the progress of an animation
type Callback func(param Param)

// Animation describes a single scheduled animation.  A Duration of 0 ticks is
// treated as already complete on every tick it is advanced
type Animation struct {
	Duration uint32
	Loop     bool
	Easing   EasingFunc
	Callback Callback
}

// Handle addresses a specific animation on an Animator.  Handles outlive the
// animation they were issued for, once the slot is reused the old handle no
// longer matches and operations using it are ignored
type Handle struct {
	Index      int
	Generation uint64
}

// IsZero is true for the zero Handle which an Animator never issues
func (h Handle) IsZero() bool {
	return h.Generation == 0
}

// Timescale is the wall clock length of one animator tick
type Timescale time.Duration

const (
	Millisecond = Timescale(time.Millisecond)
	Centisecond = Timescale(10 * time.Millisecond)
	Decisecond  = Timescale(100 * time.Millisecond)
	Second      = Timescale(time.Second)
	Decasecond  = Timescale(10 * time.Second)
)

// Duration returns the timescale as a time.Duration
func (ts Timescale) Duration() time.Duration {
	return time.Duration(ts)
}

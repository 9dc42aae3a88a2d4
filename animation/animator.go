package animation

// This file contains a fixed size pool of animation slots that are advanced
// cooperatively, one call to Loop per iteration of the owning control loop.
// Nothing in here blocks, all callbacks are run synchronously on the caller

import (
	"time"
)

type slot struct {
	anim       Animation
	state      State
	remaining  uint32
	iterations int
	generation uint64
}

func (s *slot) active() bool {
	return s.state == Started || s.state == Running || s.state == Paused
}

func (s *slot) running() bool {
	return s.state == Started || s.state == Running
}

// Animator runs up to capacity animations concurrently, each in its own slot
type Animator struct {
	slots     []slot
	timescale Timescale
	clock     Clock
	prev      time.Time
}

// Option configures an Animator
type Option func(a *Animator)

// WithTimescale sets the wall clock length of a tick, the default is Millisecond
func WithTimescale(ts Timescale) Option {
	return func(a *Animator) {
		if ts > 0 {
			a.timescale = ts
		}
	}
}

// WithClock replaces the system clock, typically with a ManualClock
func WithClock(clock Clock) Option {
	return func(a *Animator) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// NewAnimator creates an animator with capacity slots, a capacity below 1 is
// raised to 1
func NewAnimator(capacity int, opts ...Option) (a *Animator) {
	if capacity < 1 {
		capacity = 1
	}
	a = &Animator{
		slots:     make([]slot, capacity),
		timescale: Millisecond,
		clock:     SystemClock{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.prev = a.clock.Now()
	return a
}

// Capacity is the number of slots in the pool
func (a *Animator) Capacity() int {
	return len(a.slots)
}

// Setup re-anchors the tick accounting to the current time, time passing before
// Setup is not delivered to animations
func (a *Animator) Setup() {
	a.prev = a.clock.Now()
}

// Loop advances all running animations by the number of whole ticks since the
// previous call.  Partial ticks are carried forward to the next call
func (a *Animator) Loop() {
	now := a.clock.Now()
	delta := now.Sub(a.prev)
	if delta < 0 {
		// The clock went backwards, start counting again from here
		a.prev = now
		return
	}
	tick := a.timescale.Duration()
	ticks := delta / tick
	if ticks == 0 {
		return
	}
	a.prev = a.prev.Add(ticks * tick)

	// Very long stalls are delivered as a single maximal advance
	elapsed := uint32(^uint32(0))
	if uint64(ticks) < uint64(elapsed) {
		elapsed = uint32(ticks)
	}
	a.Advance(elapsed)
}

// Advance moves every running animation forward by elapsed ticks, in ascending
// slot order.  An elapsed of 0 does nothing
func (a *Animator) Advance(elapsed uint32) {
	if elapsed == 0 {
		return
	}
	for i := range a.slots {
		s := &a.slots[i]
		if !s.running() {
			continue
		}

		// Slot state is settled before the callback, the callback may
		// schedule or stop animations on this animator
		anim := s.anim
		param := Param{Elapsed: elapsed}

		switch {
		case s.state == Started:
			s.state = Running
			param.Progress = 0
			param.State = Started
		case s.remaining <= elapsed:
			param.Progress = 1
			if anim.Loop {
				s.remaining = anim.Duration
				s.iterations++
				param.State = Running
			} else {
				s.state = Stopped
				param.State = Completed
			}
		default:
			// remaining is reduced before progress is taken, 500 of 1000 ticks is 0.5
			s.remaining -= elapsed
			param.Progress = float64(anim.Duration-s.remaining) / float64(anim.Duration)
			param.State = Running
		}
		param.Iterations = s.iterations
		param.EasedProgress = ease(anim.Easing, param.Progress)

		if anim.Callback != nil {
			anim.Callback(param)
		}
	}
}

func ease(f EasingFunc, p float64) float64 {
	if f == nil {
		return p
	}
	return f(p)
}

// Play schedules the animation in the first free slot.  When every slot is busy
// the last slot is overwritten, scheduling never fails
func (a *Animator) Play(anim Animation) (h Handle) {
	index := len(a.slots) - 1
	for i := range a.slots {
		if !a.slots[i].active() {
			index = i
			break
		}
	}
	return a.PlayAt(index, anim)
}

// PlayAt schedules the animation in a specific slot replacing anything already
// there.  Out of range indexes are clamped into the pool
func (a *Animator) PlayAt(index int, anim Animation) (h Handle) {
	index = a.clampIndex(index)
	s := &a.slots[index]
	s.generation++
	s.anim = anim
	s.state = Started
	s.remaining = anim.Duration
	s.iterations = 0
	return Handle{Index: index, Generation: s.generation}
}

func (a *Animator) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index >= len(a.slots) {
		return len(a.slots) - 1
	}
	return index
}

func (a *Animator) lookup(h Handle) (s *slot) {
	if h.Index < 0 || h.Index >= len(a.slots) || h.IsZero() {
		return nil
	}
	s = &a.slots[h.Index]
	if s.generation != h.Generation {
		return nil
	}
	return s
}

// Stop halts the animation addressed by the handle, stale handles are ignored
func (a *Animator) Stop(h Handle) {
	if s := a.lookup(h); s != nil {
		s.state = Stopped
	}
}

// Pause suspends a running animation, time does not accrue while paused
func (a *Animator) Pause(h Handle) {
	if s := a.lookup(h); s != nil && s.state == Running {
		s.state = Paused
	}
}

// Resume continues a paused animation
func (a *Animator) Resume(h Handle) {
	if s := a.lookup(h); s != nil && s.state == Paused {
		s.state = Running
	}
}

// StopAll halts every slot
func (a *Animator) StopAll() {
	for i := range a.slots {
		a.slots[i].state = Stopped
	}
}

// PauseAll suspends every running slot
func (a *Animator) PauseAll() {
	for i := range a.slots {
		if a.slots[i].state == Running {
			a.slots[i].state = Paused
		}
	}
}

// ResumeAll continues every paused slot
func (a *Animator) ResumeAll() {
	for i := range a.slots {
		if a.slots[i].state == Paused {
			a.slots[i].state = Running
		}
	}
}

// IsAnimating is true when any slot holds an active animation
func (a *Animator) IsAnimating() bool {
	for i := range a.slots {
		if a.slots[i].active() {
			return true
		}
	}
	return false
}

// IsActive is true when the handle still addresses a started, running or paused
// animation
func (a *Animator) IsActive(h Handle) bool {
	s := a.lookup(h)
	return s != nil && s.active()
}

// State reports the state of the animation addressed by the handle, stale
// handles report Stopped
func (a *Animator) State(h Handle) State {
	if s := a.lookup(h); s != nil {
		return s.state
	}
	return Stopped
}
